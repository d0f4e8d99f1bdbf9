package repository

import (
	"database/sql"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"techStore/entities"
	"techStore/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CountOrdersByPrefix(prefix string) (count int, err error)
	CreateOrderFromCart(order models.Order_db, items []models.OrderItem_db, cartId int) (orderId int, err error)
	GetOrderById(orderId int) (order entities.OrderView, err error)
	GetOrderOwnerAndStatus(orderId int) (userId int, status string, err error)
	SetOrderStatus(orderId int, status string) (err error)
	MarkPaid(orderId int, when time.Time) (err error)
	SearchOrders(data models.OrderSearchData) (orders []entities.OrderView, err error)
}

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepository(conn *sql.DB) (OrderRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		db: conn,
	}, nil
}

func (o *OrderRepo) CountOrdersByPrefix(prefix string) (count int, err error) {
	e := o.db.QueryRow("SELECT COUNT(*) FROM Orders WHERE Number LIKE $1 || '%'", prefix).Scan(&count)
	if e != nil {
		log.Printf("CountOrdersByPrefix: %v", e)
		err = models.ErrServerError
	}
	return
}

// CreateOrderFromCart performs the whole conversion in one transaction:
// order row, order items with the price frozen, guarded stock decrements,
// and deletion of the cart lines. Any failure rolls back everything, so
// after an error the cart and all stock levels are untouched.
//
// The stock decrement is conditional (Stock >= quantity) and its
// RowsAffected is the authoritative check: two checkouts racing over the
// same product cannot both pass it, whatever the pre-flight saw.
func (o *OrderRepo) CreateOrderFromCart(order models.Order_db, items []models.OrderItem_db, cartId int) (orderId int, err error) {
	tx, e := o.db.Begin()
	if e != nil {
		log.Printf("CreateOrderFromCart: %v", e)
		err = models.ErrServerError
		return
	}
	defer tx.Rollback()

	e = tx.QueryRow("INSERT INTO Orders (UserId, Number, Created, Status, Total, FullName, Email, Phone, Address, Payment) "+
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING Id",
		order.UserId, order.Number, order.Created, order.Status, order.Total,
		order.FullName, order.Email, order.Phone, order.Address, order.Payment).Scan(&orderId)
	if e != nil {
		if isUniqueViolation(e) {
			err = models.ErrOrderNumberConflict
			return
		}
		log.Printf("CreateOrderFromCart: %v", e)
		err = models.ErrServerError
		return
	}

	for _, item := range items {
		_, e = tx.Exec("INSERT INTO OrderItems (OrderId, ProductId, Price, Quantity) VALUES ($1, $2, $3, $4)",
			orderId, item.ProductId, item.Price, item.Quantity)
		if e != nil {
			log.Printf("CreateOrderFromCart: %v", e)
			err = models.ErrServerError
			return
		}

		res, e2 := tx.Exec("UPDATE Products SET Stock = Stock - $1 WHERE Id = $2 AND Stock >= $1",
			item.Quantity, item.ProductId)
		if e2 != nil {
			log.Printf("CreateOrderFromCart: %v", e2)
			err = models.ErrServerError
			return
		}
		n, e2 := res.RowsAffected()
		if e2 != nil {
			log.Printf("CreateOrderFromCart: %v", e2)
			err = models.ErrServerError
			return
		}
		if n == 0 {
			var available int
			if e3 := tx.QueryRow("SELECT Stock FROM Products WHERE Id = $1", item.ProductId).Scan(&available); e3 != nil {
				log.Printf("CreateOrderFromCart: %v", e3)
				err = models.ErrServerError
				return
			}
			err = &models.InsufficientStockError{
				ProductId: item.ProductId,
				Requested: item.Quantity,
				Available: available,
			}
			return
		}
	}

	_, e = tx.Exec("DELETE FROM CartItems WHERE CartId = $1", cartId)
	if e != nil {
		log.Printf("CreateOrderFromCart: %v", e)
		err = models.ErrServerError
		return
	}

	if e = tx.Commit(); e != nil {
		log.Printf("CreateOrderFromCart: %v", e)
		err = models.ErrServerError
	}
	return
}

func (o *OrderRepo) GetOrderById(orderId int) (order entities.OrderView, err error) {
	row := o.db.QueryRow("SELECT Id, UserId, Number, Created, Status, Total, FullName, Email, Phone, Address, Payment, IsPaid, PaidDate FROM Orders WHERE Id = $1", orderId)
	var paidDate sql.NullTime
	err = row.Scan(&order.Id, &order.UserId, &order.Number, &order.Created, &order.Status,
		&order.Total, &order.FullName, &order.Email, &order.Phone, &order.Address,
		&order.Payment, &order.IsPaid, &paidDate)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Printf("GetOrderById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	if paidDate.Valid {
		order.PaidDate = &paidDate.Time
	}
	order.Lines, err = o.getOrderLines(orderId)
	return
}

func (o *OrderRepo) getOrderLines(orderId int) (lines []entities.OrderLine, err error) {
	rows, e := o.db.Query("SELECT OrderItems.ProductId, Products.Name, OrderItems.Quantity, OrderItems.Price "+
		"FROM OrderItems JOIN Products ON OrderItems.ProductId = Products.Id WHERE OrderItems.OrderId = $1 ORDER BY OrderItems.Id", orderId)
	if e != nil {
		log.Printf("getOrderLines: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		line := entities.OrderLine{}
		err = rows.Scan(&line.ProductId, &line.Name, &line.Quantity, &line.Price)
		if err != nil {
			log.Printf("getOrderLines: %v", err)
			err = models.ErrServerError
			return
		}
		line.Sum = line.Price.Mul(decimalFromInt(line.Quantity))
		lines = append(lines, line)
	}
	return
}

func (o *OrderRepo) GetOrderOwnerAndStatus(orderId int) (userId int, status string, err error) {
	row := o.db.QueryRow("SELECT UserId, Status FROM Orders WHERE Id = $1", orderId)
	err = row.Scan(&userId, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			err = models.ErrNotFoundError
		} else {
			log.Printf("GetOrderOwnerAndStatus: %v", err)
			err = models.ErrServerError
		}
	}
	return
}

func (o *OrderRepo) SetOrderStatus(orderId int, status string) (err error) {
	_, e := o.db.Exec("UPDATE Orders SET Status = $1 WHERE Id = $2", status, orderId)
	if e != nil {
		log.Printf("SetOrderStatus: %v", e)
		err = models.ErrServerError
	}
	return
}

// MarkPaid sets the paid flag exactly once; an already-paid order is left
// alone and reported as not acceptable.
func (o *OrderRepo) MarkPaid(orderId int, when time.Time) (err error) {
	res, e := o.db.Exec("UPDATE Orders SET IsPaid = TRUE, PaidDate = $1 WHERE Id = $2 AND IsPaid = FALSE", when, orderId)
	if e != nil {
		log.Printf("MarkPaid: %v", e)
		err = models.ErrServerError
		return
	}
	n, e := res.RowsAffected()
	if e != nil {
		log.Printf("MarkPaid: %v", e)
		err = models.ErrServerError
		return
	}
	if n == 0 {
		err = models.ErrNotAllowed
	}
	return
}

func (o *OrderRepo) SearchOrders(data models.OrderSearchData) (orders []entities.OrderView, err error) {
	var queryParams []any
	var conds []string
	count := 0

	query := "SELECT DISTINCT Orders.Id FROM Orders"
	if data.ProdId != nil {
		query = query + " JOIN OrderItems ON OrderItems.OrderId = Orders.Id"
	}
	if data.DateStart != nil && data.DateEnd != nil {
		conds = append(conds, "Orders.Created BETWEEN $"+strconv.Itoa(count+1)+" AND $"+strconv.Itoa(count+2))
		count = count + 2
		queryParams = append(queryParams, *data.DateStart, *data.DateEnd)
	}
	if data.UserId != nil {
		count++
		conds = append(conds, "Orders.UserId = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *data.UserId)
	}
	if data.Status != nil {
		count++
		conds = append(conds, "Orders.Status = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *data.Status)
	}
	if data.ProdId != nil {
		count++
		conds = append(conds, "OrderItems.ProductId = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *data.ProdId)
	}
	if len(conds) > 0 {
		query = query + " WHERE " + strings.Join(conds, " AND ")
	}
	query = query + " ORDER BY Orders.Id DESC"

	rows, e := o.db.Query(query, queryParams...)
	if e != nil {
		log.Printf("SearchOrders: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	var ids []int
	for rows.Next() {
		var id int
		err = rows.Scan(&id)
		if err != nil {
			log.Printf("SearchOrders: %v", err)
			err = models.ErrServerError
			return
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		order, e := o.GetOrderById(id)
		if e != nil {
			err = e
			return
		}
		orders = append(orders, order)
	}
	return
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// sqlite wording, seen when running against the test database
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
