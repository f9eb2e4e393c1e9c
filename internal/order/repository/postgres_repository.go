package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tair/retail-dashboard/internal/order/domain"
	"github.com/tair/retail-dashboard/pkg/database"
)

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id           TEXT PRIMARY KEY,
	username     TEXT NOT NULL,
	product_id   TEXT NOT NULL,
	product_name TEXT NOT NULL,
	quantity     INTEGER NOT NULL CHECK (quantity > 0),
	unit_price   NUMERIC(12, 2) NOT NULL,
	total        NUMERIC(12, 2) NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_username ON orders (username);`

const selectOrders = `SELECT id, username, product_id, product_name, quantity, unit_price, total, created_at FROM orders`

// PostgresOrderRepository stores the ledger through database/sql
type PostgresOrderRepository struct {
	db *sql.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate creates the orders table when missing
func (r *PostgresOrderRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("failed to create orders table: %w", database.MapSQLError(err))
	}
	return nil
}

func (r *PostgresOrderRepository) Append(ctx context.Context, orders []domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return database.MapSQLError(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orders (id, username, product_id, product_name, quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return database.MapSQLError(err)
	}
	defer stmt.Close()

	for _, o := range orders {
		if _, err := stmt.ExecContext(ctx,
			o.ID, o.Username, o.ProductID, o.ProductName,
			o.Quantity, o.UnitPrice, o.Total, o.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.ID, database.MapSQLError(err))
		}
	}

	return database.MapSQLError(tx.Commit())
}

func (r *PostgresOrderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	return r.query(ctx, selectOrders+` WHERE username = $1 ORDER BY created_at, id`, username)
}

func (r *PostgresOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, selectOrders+` ORDER BY created_at, id`)
}

func (r *PostgresOrderRepository) query(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, database.MapSQLError(err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.Username, &o.ProductID, &o.ProductName,
			&o.Quantity, &o.UnitPrice, &o.Total, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, database.MapSQLError(rows.Err())
}
