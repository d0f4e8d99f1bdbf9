package repository

import (
	"database/sql"
	"errors"
	"log"

	"techStore/models"
)

// CartRepository is the persistent cart of an authenticated user, one cart
// per user. Resolving a cart creates it on first use.
type CartRepository interface {
	GetOrCreateCart(userId int) (cart models.Cart_db, err error)
	GetCartItems(cartId int) (items []models.CartItem_db, err error)
	AddItem(cartId int, productId int, quantity int, override bool) (err error)
	RemoveItem(cartId int, productId int) (err error)
	ClearItems(cartId int) (err error)
}

type CartRepo struct {
	db *sql.DB
}

func NewCartRepository(conn *sql.DB) (CartRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &CartRepo{
		db: conn,
	}, nil
}

func (c *CartRepo) GetOrCreateCart(userId int) (cart models.Cart_db, err error) {
	row := c.db.QueryRow("SELECT Id, UserId, Updated FROM Carts WHERE UserId = $1", userId)
	err = row.Scan(&cart.Id, &cart.UserId, &cart.Updated)
	if err == nil {
		return
	}
	if err != sql.ErrNoRows {
		log.Printf("GetOrCreateCart: %v", err)
		err = models.ErrServerError
		return
	}
	err = c.db.QueryRow("INSERT INTO Carts (UserId) VALUES ($1) RETURNING Id, UserId, Updated", userId).
		Scan(&cart.Id, &cart.UserId, &cart.Updated)
	if err != nil {
		log.Printf("GetOrCreateCart: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CartRepo) GetCartItems(cartId int) (items []models.CartItem_db, err error) {
	rows, e := c.db.Query("SELECT Id, CartId, ProductId, Quantity FROM CartItems WHERE CartId = $1 ORDER BY Id", cartId)
	if e != nil {
		log.Printf("GetCartItems: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		item := models.CartItem_db{}
		err = rows.Scan(&item.Id, &item.CartId, &item.ProductId, &item.Quantity)
		if err != nil {
			log.Printf("GetCartItems: %v", err)
			err = models.ErrServerError
			return
		}
		items = append(items, item)
	}
	return
}

// AddItem creates the line or, when one exists, adds to or replaces its
// quantity depending on override. The increment path is a plain
// read-then-write, so a rapid double submission can lose an update; that
// matches the cart contract, which leaves stock checks and stricter
// concurrency to the caller.
func (c *CartRepo) AddItem(cartId int, productId int, quantity int, override bool) (err error) {
	if quantity < 1 {
		err = models.ErrBadRequest
		return
	}
	var current int
	row := c.db.QueryRow("SELECT Quantity FROM CartItems WHERE CartId = $1 AND ProductId = $2", cartId, productId)
	e := row.Scan(&current)
	switch {
	case e == sql.ErrNoRows:
		_, e = c.db.Exec("INSERT INTO CartItems (CartId, ProductId, Quantity) VALUES ($1, $2, $3)", cartId, productId, quantity)
	case e != nil:
		log.Printf("AddItem: %v", e)
		err = models.ErrServerError
		return
	default:
		if !override {
			quantity = current + quantity
		}
		_, e = c.db.Exec("UPDATE CartItems SET Quantity = $1 WHERE CartId = $2 AND ProductId = $3", quantity, cartId, productId)
	}
	if e != nil {
		log.Printf("AddItem: %v", e)
		err = models.ErrServerError
		return
	}
	err = c.touch(cartId)
	return
}

func (c *CartRepo) RemoveItem(cartId int, productId int) (err error) {
	_, e := c.db.Exec("DELETE FROM CartItems WHERE CartId = $1 AND ProductId = $2", cartId, productId)
	if e != nil {
		log.Printf("RemoveItem: %v", e)
		err = models.ErrServerError
		return
	}
	err = c.touch(cartId)
	return
}

func (c *CartRepo) ClearItems(cartId int) (err error) {
	_, e := c.db.Exec("DELETE FROM CartItems WHERE CartId = $1", cartId)
	if e != nil {
		log.Printf("ClearItems: %v", e)
		err = models.ErrServerError
		return
	}
	err = c.touch(cartId)
	return
}

func (c *CartRepo) touch(cartId int) (err error) {
	_, e := c.db.Exec("UPDATE Carts SET Updated = CURRENT_TIMESTAMP WHERE Id = $1", cartId)
	if e != nil {
		log.Printf("touch: %v", e)
		err = models.ErrServerError
	}
	return
}
