package repository

import (
	"database/sql"
	"testing"

	"techStore/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory sqlite database with the storefront schema.
// The pool is pinned to one connection so every statement sees the same
// memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE Categories (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			Name TEXT NOT NULL,
			Slug TEXT UNIQUE NOT NULL,
			Description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE Brands (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			Name TEXT NOT NULL,
			Slug TEXT UNIQUE NOT NULL,
			Description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE Products (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			Name TEXT NOT NULL,
			Slug TEXT UNIQUE NOT NULL,
			Description TEXT NOT NULL DEFAULT '',
			Price NUMERIC NOT NULL,
			Stock INTEGER NOT NULL DEFAULT 0 CHECK (Stock >= 0),
			Active BOOLEAN NOT NULL DEFAULT 1,
			CategoryId INTEGER NOT NULL REFERENCES Categories(Id) ON DELETE CASCADE,
			BrandId INTEGER REFERENCES Brands(Id),
			Created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			Updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE Users (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			Username TEXT UNIQUE NOT NULL,
			Password TEXT NOT NULL,
			Role TEXT NOT NULL DEFAULT 'user',
			Email TEXT NOT NULL DEFAULT '',
			FirstName TEXT NOT NULL DEFAULT '',
			LastName TEXT NOT NULL DEFAULT '',
			Phone TEXT NOT NULL DEFAULT '',
			Address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE Carts (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			UserId INTEGER UNIQUE NOT NULL REFERENCES Users(Id) ON DELETE CASCADE,
			Updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE CartItems (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			CartId INTEGER NOT NULL REFERENCES Carts(Id) ON DELETE CASCADE,
			ProductId INTEGER NOT NULL REFERENCES Products(Id) ON DELETE CASCADE,
			Quantity INTEGER NOT NULL CHECK (Quantity > 0),
			UNIQUE (CartId, ProductId)
		)`,
		`CREATE TABLE Orders (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			UserId INTEGER NOT NULL REFERENCES Users(Id),
			Number TEXT UNIQUE NOT NULL,
			Created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			Status TEXT NOT NULL DEFAULT 'new',
			Total NUMERIC NOT NULL DEFAULT 0,
			FullName TEXT NOT NULL,
			Email TEXT NOT NULL,
			Phone TEXT NOT NULL,
			Address TEXT NOT NULL,
			Payment TEXT NOT NULL DEFAULT 'cash',
			IsPaid BOOLEAN NOT NULL DEFAULT 0,
			PaidDate TIMESTAMP
		)`,
		`CREATE TABLE OrderItems (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			OrderId INTEGER NOT NULL REFERENCES Orders(Id) ON DELETE CASCADE,
			ProductId INTEGER NOT NULL REFERENCES Products(Id),
			Price NUMERIC NOT NULL,
			Quantity INTEGER NOT NULL CHECK (Quantity > 0)
		)`,
		`CREATE TABLE Reviews (
			Id INTEGER PRIMARY KEY AUTOINCREMENT,
			ProductId INTEGER NOT NULL REFERENCES Products(Id) ON DELETE CASCADE,
			UserId INTEGER NOT NULL REFERENCES Users(Id) ON DELETE CASCADE,
			Rating INTEGER NOT NULL CHECK (Rating BETWEEN 1 AND 5),
			Body TEXT NOT NULL DEFAULT '',
			Created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (ProductId, UserId)
		)`,
	}
	for _, stmt := range stmts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func seedUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()
	var id int
	err := db.QueryRow("INSERT INTO Users (Username, Password, Role) VALUES ($1, 'x', 'user') RETURNING Id", username).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedCategory(t *testing.T, db *sql.DB, name, slug string) int {
	t.Helper()
	var id int
	err := db.QueryRow("INSERT INTO Categories (Name, Slug) VALUES ($1, $2) RETURNING Id", name, slug).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedProduct(t *testing.T, db *sql.DB, name string, price string, stock int, categoryId int) int {
	t.Helper()
	var id int
	err := db.QueryRow("INSERT INTO Products (Name, Slug, Price, Stock, Active, CategoryId) VALUES ($1, $2, $3, $4, 1, $5) RETURNING Id",
		name, name, price, stock, categoryId).Scan(&id)
	require.NoError(t, err)
	return id
}

func productStock(t *testing.T, db *sql.DB, productId int) int {
	t.Helper()
	var stock int
	err := db.QueryRow("SELECT Stock FROM Products WHERE Id = $1", productId).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func insufficientStock(t *testing.T, err error) *models.InsufficientStockError {
	t.Helper()
	var stockErr *models.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	return stockErr
}
