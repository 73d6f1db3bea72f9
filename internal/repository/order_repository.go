package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrollo/retailgen/internal/models"
)

// OrderRepository is the storage sink for generated orders.
type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []*models.Order) error
	Count(ctx context.Context) (int64, error)
}

// orderRepository implements OrderRepository using PostgreSQL
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateBatch inserts a batch of orders in a single transaction.
func (r *orderRepository) CreateBatch(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orders (order_id, customer_id, source_id, date)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, order := range orders {
		_, err := stmt.ExecContext(ctx, order.OrderID, order.CustomerID, order.SourceID, order.Date)
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of orders in storage.
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
