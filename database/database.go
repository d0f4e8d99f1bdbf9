package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// InitializeTables creates all tables if they don't exist, in foreign key
// dependency order. OrderItems references Products without a cascade so a
// product that appears in any order cannot be deleted.
func InitializeTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Categories (
			Id SERIAL PRIMARY KEY,
			Name VARCHAR(100) NOT NULL,
			Slug VARCHAR(100) UNIQUE NOT NULL,
			Description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS Brands (
			Id SERIAL PRIMARY KEY,
			Name VARCHAR(100) NOT NULL,
			Slug VARCHAR(100) UNIQUE NOT NULL,
			Description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS Products (
			Id SERIAL PRIMARY KEY,
			Name VARCHAR(100) NOT NULL,
			Slug VARCHAR(100) UNIQUE NOT NULL,
			Description TEXT NOT NULL DEFAULT '',
			Price NUMERIC(10,2) NOT NULL,
			Stock INTEGER NOT NULL DEFAULT 0 CHECK (Stock >= 0),
			Active BOOLEAN NOT NULL DEFAULT TRUE,
			CategoryId INTEGER NOT NULL REFERENCES Categories(Id) ON DELETE CASCADE,
			BrandId INTEGER REFERENCES Brands(Id),
			Created TIMESTAMP NOT NULL DEFAULT NOW(),
			Updated TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS Users (
			Id SERIAL PRIMARY KEY,
			Username VARCHAR(100) UNIQUE NOT NULL,
			Password VARCHAR(100) NOT NULL,
			Role VARCHAR(20) NOT NULL DEFAULT 'user',
			Email VARCHAR(100) NOT NULL DEFAULT '',
			FirstName VARCHAR(100) NOT NULL DEFAULT '',
			LastName VARCHAR(100) NOT NULL DEFAULT '',
			Phone VARCHAR(20) NOT NULL DEFAULT '',
			Address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS Carts (
			Id SERIAL PRIMARY KEY,
			UserId INTEGER UNIQUE NOT NULL REFERENCES Users(Id) ON DELETE CASCADE,
			Updated TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS CartItems (
			Id SERIAL PRIMARY KEY,
			CartId INTEGER NOT NULL REFERENCES Carts(Id) ON DELETE CASCADE,
			ProductId INTEGER NOT NULL REFERENCES Products(Id) ON DELETE CASCADE,
			Quantity INTEGER NOT NULL CHECK (Quantity > 0),
			UNIQUE (CartId, ProductId)
		)`,
		`CREATE TABLE IF NOT EXISTS Orders (
			Id SERIAL PRIMARY KEY,
			UserId INTEGER NOT NULL REFERENCES Users(Id),
			Number VARCHAR(20) UNIQUE NOT NULL,
			Created TIMESTAMP NOT NULL DEFAULT NOW(),
			Status VARCHAR(20) NOT NULL DEFAULT 'new',
			Total NUMERIC(10,2) NOT NULL DEFAULT 0,
			FullName VARCHAR(100) NOT NULL,
			Email VARCHAR(100) NOT NULL,
			Phone VARCHAR(20) NOT NULL,
			Address TEXT NOT NULL,
			Payment VARCHAR(20) NOT NULL DEFAULT 'cash',
			IsPaid BOOLEAN NOT NULL DEFAULT FALSE,
			PaidDate TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS OrderItems (
			Id SERIAL PRIMARY KEY,
			OrderId INTEGER NOT NULL REFERENCES Orders(Id) ON DELETE CASCADE,
			ProductId INTEGER NOT NULL REFERENCES Products(Id),
			Price NUMERIC(10,2) NOT NULL,
			Quantity INTEGER NOT NULL CHECK (Quantity > 0)
		)`,
		`CREATE TABLE IF NOT EXISTS Reviews (
			Id SERIAL PRIMARY KEY,
			ProductId INTEGER NOT NULL REFERENCES Products(Id) ON DELETE CASCADE,
			UserId INTEGER NOT NULL REFERENCES Users(Id) ON DELETE CASCADE,
			Rating INTEGER NOT NULL CHECK (Rating BETWEEN 1 AND 5),
			Body TEXT NOT NULL DEFAULT '',
			Created TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (ProductId, UserId)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
