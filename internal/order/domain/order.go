package domain

import (
	"context"
	"time"
)

// Order is one purchased line. Orders are append-only.
type Order struct {
	ID          string    `json:"id" bson:"_id"`
	Username    string    `json:"username" bson:"username"`
	ProductID   string    `json:"product_id" bson:"product_id"`
	ProductName string    `json:"product_name" bson:"product_name"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	UnitPrice   float64   `json:"unit_price" bson:"unit_price"`
	Total       float64   `json:"total" bson:"total"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Item is one cart line submitted for checkout
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Ledger is a list of orders with running totals
type Ledger struct {
	Orders        []Order `json:"orders"`
	Count         int     `json:"count"`
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}

// Repository defines the contract for the purchase ledger
type Repository interface {
	// Append stores orders as one unit where the backend allows it
	Append(ctx context.Context, orders []Order) error
	// ListByUsername returns the orders of one user, oldest first
	ListByUsername(ctx context.Context, username string) ([]Order, error)
	// ListAll returns every order, oldest first
	ListAll(ctx context.Context) ([]Order, error)
}

// EventPublisher announces placed orders to other instances
type EventPublisher interface {
	OrderPlaced(ctx context.Context, order Order) error
}
