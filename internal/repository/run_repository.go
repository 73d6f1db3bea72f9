package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrollo/retailgen/internal/models"
)

// RunRepository defines the interface for generation run data access
type RunRepository interface {
	Create(ctx context.Context, run *models.GenerationRun) error
	GetByID(ctx context.Context, id string) (*models.GenerationRun, error)
	List(ctx context.Context, filter models.RunFilter) ([]*models.GenerationRun, int64, error)
	MarkRunning(ctx context.Context, id string) error
	Finish(ctx context.Context, id, status string, counts models.RunCounts, errMsg *string) error
}

// runRepository implements RunRepository using PostgreSQL
type runRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) RunRepository {
	return &runRepository{db: db}
}

// Create inserts a new generation run in pending state.
func (r *runRepository) Create(ctx context.Context, run *models.GenerationRun) error {
	params, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal run params: %w", err)
	}

	query := `
		INSERT INTO generation_runs (id, status, params)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query, run.ID, run.Status, params).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetByID retrieves a generation run by ID
func (r *runRepository) GetByID(ctx context.Context, id string) (*models.GenerationRun, error) {
	query := `
		SELECT id, status, params, base_customers, duplicates, requested_duplicates,
		       degraded_records, orders, transactions, error, created_at, started_at, completed_at
		FROM generation_runs
		WHERE id = $1`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("run %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// List retrieves runs with pagination and optional status filtering
func (r *runRepository) List(ctx context.Context, filter models.RunFilter) ([]*models.GenerationRun, int64, error) {
	filter.Normalize()

	query := `
		SELECT id, status, params, base_customers, duplicates, requested_duplicates,
		       degraded_records, orders, transactions, error, created_at, started_at, completed_at
		FROM generation_runs
		WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM generation_runs WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		countQuery += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.GenerationRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, totalCount, nil
}

// MarkRunning transitions a pending run to running.
func (r *runRepository) MarkRunning(ctx context.Context, id string) error {
	query := `
		UPDATE generation_runs
		SET status = $1, started_at = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, models.RunStatusRunning, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark run running: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("run %s not found", id))
	}

	return nil
}

// Finish records the terminal status and realized counts of a run.
func (r *runRepository) Finish(ctx context.Context, id, status string, counts models.RunCounts, errMsg *string) error {
	query := `
		UPDATE generation_runs
		SET status = $1, base_customers = $2, duplicates = $3, requested_duplicates = $4,
		    degraded_records = $5, orders = $6, transactions = $7, error = $8, completed_at = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(
		ctx,
		query,
		status,
		counts.BaseCustomers,
		counts.Duplicates,
		counts.RequestedDuplicates,
		counts.DegradedRecords,
		counts.Orders,
		counts.Transactions,
		errMsg,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("run %s not found", id))
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.GenerationRun, error) {
	run := &models.GenerationRun{}
	var params []byte
	err := row.Scan(
		&run.ID,
		&run.Status,
		&params,
		&run.Counts.BaseCustomers,
		&run.Counts.Duplicates,
		&run.Counts.RequestedDuplicates,
		&run.Counts.DegradedRecords,
		&run.Counts.Orders,
		&run.Counts.Transactions,
		&run.Error,
		&run.CreatedAt,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		if err := json.Unmarshal(params, &run.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run params: %w", err)
		}
	}

	return run, nil
}
