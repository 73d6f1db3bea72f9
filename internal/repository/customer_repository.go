package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrollo/retailgen/internal/models"
)

// CustomerRepository is the storage sink for generated customers. The
// schema owns primary-key enforcement as a backstop; the orchestrator is
// the primary uniqueness guarantee.
type CustomerRepository interface {
	CreateBatch(ctx context.Context, customers []*models.Customer) error
	Count(ctx context.Context) (int64, error)
}

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// CreateBatch inserts a batch of customers in a single transaction.
func (r *customerRepository) CreateBatch(ctx context.Context, customers []*models.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Rollback is safe to call even after Commit
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO customers (customer_id, country, name, surname, date_of_birth, email, mobile_phone_number, source_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, customer := range customers {
		_, err := stmt.ExecContext(
			ctx,
			customer.CustomerID,
			customer.Country,
			customer.Name,
			customer.Surname,
			customer.DateOfBirth,
			customer.Email,
			customer.MobilePhoneNumber,
			customer.SourceID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", customer.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of customers in storage.
func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
