package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrollo/retailgen/internal/models"
)

// TransactionRepository is the storage sink for generated order lines.
type TransactionRepository interface {
	CreateBatch(ctx context.Context, transactions []*models.Transaction) error
	Count(ctx context.Context) (int64, error)
}

// transactionRepository implements TransactionRepository using PostgreSQL
type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateBatch inserts a batch of transactions in a single transaction.
// transaction_id is assigned by the sequence on the table.
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if len(transactions) == 0 {
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
		INSERT INTO transactions (order_id, product, quantity, unit_price, total_amount)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, txn := range transactions {
		_, err := stmt.ExecContext(ctx, txn.OrderID, txn.Product, txn.Quantity, txn.UnitPrice, txn.TotalAmount)
		if err != nil {
			return fmt.Errorf("failed to insert transaction for order %s: %w", txn.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of transactions in storage.
func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
