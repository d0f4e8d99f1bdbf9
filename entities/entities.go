package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductPreview struct {
	Id       int             `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	InStock  bool            `json:"in_stock"`
	Rating   float64         `json:"rating"`
	Reviews  int             `json:"reviews"`
	Category string          `json:"category"`
	Brand    string          `json:"brand,omitempty"`
}

type ProductDetail struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
	Category    Category        `json:"category"`
	Brand       *Brand          `json:"brand,omitempty"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
}

type Category struct {
	Id   int    `json:"category_id"`
	Name string `json:"category_name"`
	Slug string `json:"category_slug"`
}

type Brand struct {
	Id   int    `json:"brand_id"`
	Name string `json:"brand_name"`
	Slug string `json:"brand_slug"`
}

// CartData is the anonymous session cart payload stored in redis,
// a map of product id to quantity.
type CartData struct {
	Items map[int]int
}

type CartRequest struct {
	ProductId int  `json:"product_id"`
	Quantity  int  `json:"quantity"`
	Override  bool `json:"override"`
}

// CartLine is one cart position priced at the current product price.
type CartLine struct {
	ProductId int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Active    bool            `json:"active"`
}

type CartTotals struct {
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalQuantity int             `json:"total_quantity"`
}

type CartView struct {
	Lines  []CartLine `json:"lines"`
	Totals CartTotals `json:"totals"`
}

type OrderLine struct {
	ProductId int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Sum       decimal.Decimal `json:"sum"`
}

type OrderView struct {
	Id       int             `json:"id"`
	Number   string          `json:"number"`
	Created  time.Time       `json:"created"`
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
	FullName string          `json:"full_name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Payment  string          `json:"payment"`
	IsPaid   bool            `json:"is_paid"`
	PaidDate *time.Time      `json:"paid_date,omitempty"`
	UserId   int             `json:"user_id"`
	Lines    []OrderLine     `json:"lines"`
}

type ReviewView struct {
	Id       int       `json:"id"`
	Username string    `json:"username"`
	Rating   int       `json:"rating"`
	Body     string    `json:"body,omitempty"`
	Created  time.Time `json:"created"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
