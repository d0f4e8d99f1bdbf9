package services

import (
	"log"

	"techStore/entities"
	"techStore/models"
	"techStore/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the common contract of the two cart kinds: the persistent cart
// of an authenticated user and the redis-held cart of an anonymous
// session. The identity resolver picks the implementation once per
// request; callers never branch on the concrete type.
//
// Totals are priced at the current product prices on every call. A line
// whose product no longer exists is treated as if it were not there.
type Cart interface {
	Add(productId int, quantity int, override bool) (err error)
	Remove(productId int) (err error)
	SetQuantity(productId int, quantity int) (err error)
	Clear() (err error)
	Lines() (lines []entities.CartLine, err error)
	Totals() (totals entities.CartTotals, err error)
}

type CartService struct {
	pr  repository.ProductRepository
	cr  repository.CartRepository
	scr repository.SessionCartRepository
}

func NewCartService(productRepo repository.ProductRepository, cartRepo repository.CartRepository, sessionCartRepo repository.SessionCartRepository) CartService {
	return CartService{
		pr:  productRepo,
		cr:  cartRepo,
		scr: sessionCartRepo,
	}
}

// UserCart resolves the authenticated user's cart, creating an empty one
// on first use.
func (cs *CartService) UserCart(userId int) (cart Cart, err error) {
	c, err := cs.cr.GetOrCreateCart(userId)
	if err != nil {
		return
	}
	cart = &userCart{cartId: c.Id, cr: cs.cr, pr: cs.pr}
	return
}

// SessionCart addresses the anonymous cart behind the given token. The
// token must have been minted with NewCartSession.
func (cs *CartService) SessionCart(token string) Cart {
	return &sessionCart{token: token, scr: cs.scr, pr: cs.pr}
}

func (cs *CartService) NewCartSession() (token string, err error) {
	token = uuid.NewString()
	err = cs.scr.SetCart(token, entities.CartData{Items: map[int]int{}})
	return
}

// AddToCart is the business-rule wrapper around Cart.Add: the product must
// exist, be active and have enough stock for the requested quantity. The
// cart itself only enforces quantity validity.
func (cs *CartService) AddToCart(cart Cart, req entities.CartRequest) (err error) {
	if req.Quantity < 1 {
		err = models.ErrBadRequest
		return
	}
	p, ex, e := cs.pr.GetProductById(req.ProductId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("AddToCart: product does not exist")
		err = models.ErrBadRequest
		return
	}
	if !p.Active || p.Stock < req.Quantity {
		log.Printf("AddToCart: the required quantity of product %d is not available", req.ProductId)
		err = models.ErrNotAllowed
		return
	}
	err = cart.Add(req.ProductId, req.Quantity, req.Override)
	return
}

func (cs *CartService) View(cart Cart) (view entities.CartView, err error) {
	view.Lines, err = cart.Lines()
	if err != nil {
		return
	}
	view.Totals = sumLines(view.Lines)
	return
}

// MergeSessionIntoUser folds the anonymous cart into the user's cart when
// a visitor signs in, accumulating quantities for overlapping products.
// Products that vanished since they were added are skipped silently. The
// session cart is deleted afterwards.
func (cs *CartService) MergeSessionIntoUser(token string, userId int) (err error) {
	data, err := cs.scr.GetCart(token)
	if err != nil {
		return
	}
	if len(data.Items) > 0 {
		var cart Cart
		cart, err = cs.UserCart(userId)
		if err != nil {
			return
		}
		for productId, quantity := range data.Items {
			if quantity < 1 {
				continue
			}
			_, ex, e := cs.pr.GetProductById(productId)
			if e != nil {
				err = e
				return
			}
			if !ex {
				continue
			}
			err = cart.Add(productId, quantity, false)
			if err != nil {
				return
			}
		}
	}
	err = cs.scr.DeleteCart(token)
	return
}

type userCart struct {
	cartId int
	cr     repository.CartRepository
	pr     repository.ProductRepository
}

func (c *userCart) Add(productId int, quantity int, override bool) (err error) {
	if quantity < 1 {
		err = models.ErrBadRequest
		return
	}
	err = c.cr.AddItem(c.cartId, productId, quantity, override)
	return
}

func (c *userCart) Remove(productId int) (err error) {
	err = c.cr.RemoveItem(c.cartId, productId)
	return
}

func (c *userCart) SetQuantity(productId int, quantity int) (err error) {
	if quantity > 0 {
		err = c.Add(productId, quantity, true)
		return
	}
	err = c.Remove(productId)
	return
}

func (c *userCart) Clear() (err error) {
	err = c.cr.ClearItems(c.cartId)
	return
}

func (c *userCart) Lines() (lines []entities.CartLine, err error) {
	items, err := c.cr.GetCartItems(c.cartId)
	if err != nil {
		return
	}
	for _, item := range items {
		line, ok, e := priceLine(c.pr, item.ProductId, item.Quantity)
		if e != nil {
			err = e
			return
		}
		if !ok {
			continue
		}
		lines = append(lines, line)
	}
	return
}

func (c *userCart) Totals() (totals entities.CartTotals, err error) {
	lines, err := c.Lines()
	if err != nil {
		return
	}
	totals = sumLines(lines)
	return
}

type sessionCart struct {
	token string
	scr   repository.SessionCartRepository
	pr    repository.ProductRepository
}

func (c *sessionCart) Add(productId int, quantity int, override bool) (err error) {
	if quantity < 1 {
		err = models.ErrBadRequest
		return
	}
	data, e := c.scr.GetCart(c.token)
	if e != nil {
		err = e
		return
	}
	if override {
		data.Items[productId] = quantity
	} else {
		data.Items[productId] = data.Items[productId] + quantity
	}
	err = c.scr.SetCart(c.token, data)
	return
}

func (c *sessionCart) Remove(productId int) (err error) {
	data, e := c.scr.GetCart(c.token)
	if e != nil {
		err = e
		return
	}
	if _, ok := data.Items[productId]; !ok {
		return
	}
	delete(data.Items, productId)
	err = c.scr.SetCart(c.token, data)
	return
}

func (c *sessionCart) SetQuantity(productId int, quantity int) (err error) {
	if quantity > 0 {
		err = c.Add(productId, quantity, true)
		return
	}
	err = c.Remove(productId)
	return
}

func (c *sessionCart) Clear() (err error) {
	err = c.scr.SetCart(c.token, entities.CartData{Items: map[int]int{}})
	return
}

func (c *sessionCart) Lines() (lines []entities.CartLine, err error) {
	data, err := c.scr.GetCart(c.token)
	if err != nil {
		return
	}
	for productId, quantity := range data.Items {
		line, ok, e := priceLine(c.pr, productId, quantity)
		if e != nil {
			err = e
			return
		}
		if !ok {
			continue
		}
		lines = append(lines, line)
	}
	return
}

func (c *sessionCart) Totals() (totals entities.CartTotals, err error) {
	lines, err := c.Lines()
	if err != nil {
		return
	}
	totals = sumLines(lines)
	return
}

func priceLine(pr repository.ProductRepository, productId int, quantity int) (line entities.CartLine, ok bool, err error) {
	p, ex, e := pr.GetProductById(productId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		return
	}
	line = entities.CartLine{
		ProductId: p.Id,
		Name:      p.Name,
		Quantity:  quantity,
		Price:     p.Price,
		LineTotal: p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Active:    p.Active,
	}
	ok = true
	return
}

func sumLines(lines []entities.CartLine) (totals entities.CartTotals) {
	totals.TotalPrice = decimal.Zero
	for _, line := range lines {
		totals.TotalPrice = totals.TotalPrice.Add(line.LineTotal)
		totals.TotalQuantity = totals.TotalQuantity + line.Quantity
	}
	return
}
