package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"techStore/entities"
	"techStore/models"
	"techStore/repository"

	"github.com/shopspring/decimal"
)

const orderNumberPrefix = "ORDER-"

// allowedTransitions is the order status machine: new -> confirmed ->
// sent -> done, with canceled reachable from new or confirmed only.
var allowedTransitions = map[string][]string{
	"new":       {"confirmed", "canceled"},
	"confirmed": {"sent", "canceled"},
	"sent":      {"done"},
}

func CanTransition(from string, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	pr repository.ProductRepository
	cr repository.CartRepository
	ur repository.UserRepository
	or repository.OrderRepository
}

func NewOrderService(productRepo repository.ProductRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, orderRepo repository.OrderRepository) OrderService {
	return OrderService{
		pr: productRepo,
		cr: cartRepo,
		ur: userRepo,
		or: orderRepo,
	}
}

// Checkout converts the user's cart into an order. The stock pre-flight
// here only fails fast; the authoritative check happens inside the
// conversion transaction, where concurrent checkouts are serialized by
// the database. On an order number collision the number is re-derived and
// the conversion retried once.
func (ors *OrderService) Checkout(userId int, form models.CheckoutForm) (order entities.OrderView, err error) {
	form, err = ors.fillForm(userId, form)
	if err != nil {
		return
	}

	cart, err := ors.cr.GetOrCreateCart(userId)
	if err != nil {
		return
	}
	items, err := ors.cr.GetCartItems(cart.Id)
	if err != nil {
		return
	}
	if len(items) == 0 {
		err = models.ErrEmptyCart
		return
	}

	orderItems := []models.OrderItem_db{}
	total := decimal.Zero
	for _, item := range items {
		p, ex, e := ors.pr.GetProductById(item.ProductId)
		if e != nil {
			err = e
			return
		}
		if !ex {
			log.Printf("Checkout: cart references missing product %d", item.ProductId)
			err = models.ErrServerError
			return
		}
		if !p.Active {
			log.Printf("Checkout: product %s is unavailable", p.Name)
			err = models.ErrNotAllowed
			return
		}
		if p.Stock < item.Quantity {
			err = &models.InsufficientStockError{
				ProductId: p.Id,
				Requested: item.Quantity,
				Available: p.Stock,
			}
			return
		}
		orderItems = append(orderItems, models.OrderItem_db{
			ProductId: p.Id,
			Price:     p.Price,
			Quantity:  item.Quantity,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now().UTC()
	newOrder := models.Order_db{
		UserId:   userId,
		Created:  now,
		Status:   "new",
		Total:    total,
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Address:  form.Address,
		Payment:  form.Payment,
	}

	var orderId int
	for attempt := 0; attempt < 2; attempt++ {
		newOrder.Number, err = ors.nextOrderNumber(now)
		if err != nil {
			return
		}
		orderId, err = ors.or.CreateOrderFromCart(newOrder, orderItems, cart.Id)
		if err != models.ErrOrderNumberConflict {
			break
		}
		log.Printf("Checkout: order number %s already taken, retrying", newOrder.Number)
	}
	if err != nil {
		return
	}

	order, err = ors.or.GetOrderById(orderId)
	return
}

// nextOrderNumber derives ORDER-YYMMDD-NNNN from the count of orders
// sharing the day prefix. Two concurrent checkouts can derive the same
// value; the unique constraint on the number is the backstop and the
// caller retries once.
func (ors *OrderService) nextOrderNumber(now time.Time) (number string, err error) {
	prefix := orderNumberPrefix + now.Format("060102")
	count, err := ors.or.CountOrdersByPrefix(prefix)
	if err != nil {
		return
	}
	number = fmt.Sprintf("%s-%04d", prefix, count+1)
	return
}

func (ors *OrderService) fillForm(userId int, form models.CheckoutForm) (filled models.CheckoutForm, err error) {
	filled = form
	if filled.Payment == "" {
		filled.Payment = "cash"
	}
	if !models.IsValidPayment(filled.Payment) {
		err = models.ErrBadRequest
		return
	}

	user, ex, e := ors.ur.GetUserById(userId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrUnauthorized
		return
	}
	if filled.FullName == "" {
		filled.FullName = strings.TrimSpace(user.FirstName + " " + user.LastName)
		if filled.FullName == "" {
			filled.FullName = user.Username
		}
	}
	if filled.Email == "" {
		filled.Email = user.Email
	}
	if filled.Email == "" || filled.Phone == "" || filled.Address == "" {
		err = models.ErrBadRequest
	}
	return
}

func (ors *OrderService) GetOrderById(orderId int) (order entities.OrderView, err error) {
	order, err = ors.or.GetOrderById(orderId)
	return
}

// GetOrderForUser returns the order only to its owner or a manager;
// anyone else sees not found.
func (ors *OrderService) GetOrderForUser(orderId int, userId int, role string) (order entities.OrderView, err error) {
	order, err = ors.or.GetOrderById(orderId)
	if err != nil {
		return
	}
	if order.UserId != userId && role != "manager" {
		order = entities.OrderView{}
		err = models.ErrNotFoundError
	}
	return
}

func (ors *OrderService) GetCurrentUserOrders(userId int) (orders []entities.OrderView, err error) {
	orders, err = ors.or.SearchOrders(models.OrderSearchData{UserId: &userId})
	return
}

func (ors *OrderService) SearchOrders(data models.OrderSearchData) (orders []entities.OrderView, err error) {
	orders, err = ors.or.SearchOrders(data)
	return
}

func (ors *OrderService) SetOrderStatus(orderId int, status string) (err error) {
	if !models.IsValidStatus(status) {
		err = models.ErrBadRequest
		return
	}
	_, current, err := ors.or.GetOrderOwnerAndStatus(orderId)
	if err != nil {
		return
	}
	if !CanTransition(current, status) {
		log.Printf("SetOrderStatus: transition %s -> %s is not allowed", current, status)
		err = models.ErrInvalidTransition
		return
	}
	err = ors.or.SetOrderStatus(orderId, status)
	return
}

// CancelOrder lets the owner cancel while the order is still new or
// confirmed, via the same transition table as the manager path.
func (ors *OrderService) CancelOrder(orderId int, userId int) (err error) {
	ownerId, current, err := ors.or.GetOrderOwnerAndStatus(orderId)
	if err != nil {
		return
	}
	if ownerId != userId {
		err = models.ErrNotFoundError
		return
	}
	if !CanTransition(current, "canceled") {
		log.Printf("CancelOrder: order %d can not be canceled from status %s", orderId, current)
		err = models.ErrInvalidTransition
		return
	}
	err = ors.or.SetOrderStatus(orderId, "canceled")
	return
}

func (ors *OrderService) MarkPaid(orderId int) (err error) {
	_, _, err = ors.or.GetOrderOwnerAndStatus(orderId)
	if err != nil {
		return
	}
	err = ors.or.MarkPaid(orderId, time.Now().UTC())
	return
}
