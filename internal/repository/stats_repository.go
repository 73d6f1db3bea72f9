package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrollo/retailgen/internal/models"
)

// StatsRepository verifies the loaded dataset: table counts plus
// referential-integrity orphan counts.
type StatsRepository interface {
	Verify(ctx context.Context) (*models.IntegrityReport, error)
}

// statsRepository implements StatsRepository using PostgreSQL
type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Verify collects row counts and orphan counts across the dataset.
func (r *statsRepository) Verify(ctx context.Context) (*models.IntegrityReport, error) {
	report := &models.IntegrityReport{}

	counts := map[string]*int64{
		"customers":    &report.Customers,
		"orders":       &report.Orders,
		"transactions": &report.Transactions,
	}
	for table, dest := range counts {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := r.db.QueryRowContext(ctx, query).Scan(dest); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
	}

	orphanOrders := `
		SELECT COUNT(*) FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.customer_id
		WHERE c.customer_id IS NULL`
	if err := r.db.QueryRowContext(ctx, orphanOrders).Scan(&report.OrphanOrders); err != nil {
		return nil, fmt.Errorf("failed to count orphan orders: %w", err)
	}

	orphanTransactions := `
		SELECT COUNT(*) FROM transactions t
		LEFT JOIN orders o ON t.order_id = o.order_id
		WHERE o.order_id IS NULL`
	if err := r.db.QueryRowContext(ctx, orphanTransactions).Scan(&report.OrphanTransactions); err != nil {
		return nil, fmt.Errorf("failed to count orphan transactions: %w", err)
	}

	return report, nil
}
