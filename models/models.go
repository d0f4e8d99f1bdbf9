package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

// Checkout and review errors wrap the generic sentinels so the handler
// layer maps them to statuses without knowing each one.
var ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrBadRequest)
var ErrDuplicateReview = fmt.Errorf("%w: you have already reviewed this product", ErrNotAllowed)
var ErrInvalidRating = fmt.Errorf("%w: rating must be between 1 and 5", ErrBadRequest)
var ErrNotOwner = fmt.Errorf("%w: not the author of this review", ErrNotAllowed)
var ErrInvalidTransition = fmt.Errorf("%w: order status transition is not allowed", ErrNotAllowed)

// ErrOrderNumberConflict signals that a concurrent checkout claimed the
// same order number first. The order service re-derives the number and
// retries once before giving up.
var ErrOrderNumberConflict = errors.New("order number already taken")

type InsufficientStockError struct {
	ProductId int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductId, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrNotAllowed
}

type Credentials struct {
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type PasswordData struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type Product_db struct {
	Id          int             `db:"Id"`
	Name        string          `db:"Name"`
	Slug        string          `db:"Slug"`
	Description sql.NullString  `db:"Description"`
	Price       decimal.Decimal `db:"Price"`
	Stock       int             `db:"Stock"`
	Active      bool            `db:"Active"`
	CategoryId  int             `db:"CategoryId"`
	BrandId     sql.NullInt64   `db:"BrandId"`
	Created     time.Time       `db:"Created"`
	Updated     time.Time       `db:"Updated"`
}

// ProductInput is the manager-facing create/update payload. Pointer fields
// mean "not submitted" on update.
type ProductInput struct {
	Id          int              `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Active      *bool            `json:"active"`
	CategoryId  int              `json:"category_id"`
	BrandId     *int             `json:"brand_id"`
}

type ProductFilter struct {
	Query        string
	CategorySlug string
	BrandSlug    string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	InStock      bool
	MinRating    *float64
	MaxRating    *float64
}

type Category_db struct {
	Id          int
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Brand_db struct {
	Id          int
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Cart_db struct {
	Id      int
	UserId  int
	Updated time.Time
}

type CartItem_db struct {
	Id        int
	CartId    int
	ProductId int
	Quantity  int
}

type Order_db struct {
	Id       int
	UserId   int
	Number   string
	Created  time.Time
	Status   string
	Total    decimal.Decimal
	FullName string
	Email    string
	Phone    string
	Address  string
	Payment  string
	IsPaid   bool
	PaidDate sql.NullTime
}

type OrderItem_db struct {
	Id        int
	OrderId   int
	ProductId int
	Price     decimal.Decimal
	Quantity  int
}

// CheckoutForm carries the customer contact fields copied onto the order.
// Blank name and email are prefilled from the user profile.
type CheckoutForm struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Payment  string `json:"payment"`
}

type OrderSearchData struct {
	DateStart *time.Time
	DateEnd   *time.Time
	UserId    *int
	Status    *string
	ProdId    *int
}

type Review_db struct {
	Id        int
	ProductId int
	UserId    int
	Rating    int
	Body      string
	Created   time.Time
}

type User_db struct {
	Id        int
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type ProfileData struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

var OrderStatuses = []string{"new", "confirmed", "sent", "done", "canceled"}
var PaymentTypes = []string{"cash", "card", "online"}

func IsValidPayment(payment string) bool {
	for _, p := range PaymentTypes {
		if p == payment {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
