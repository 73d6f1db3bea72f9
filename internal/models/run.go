package models

import (
	"fmt"
	"time"
)

// Generation run status constants
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusShortfall = "completed_with_shortfall"
	RunStatusFailed    = "failed"
)

// RunParams holds the per-run generation knobs. Zero values mean "use the
// configured default"; the service resolves them before persisting.
type RunParams struct {
	Customers            int     `json:"customers"`
	Orders               int     `json:"orders"`
	CustomerBatchSize    int     `json:"customer_batch_size"`
	OrderBatchSize       int     `json:"order_batch_size"`
	TransactionBatchSize int     `json:"transaction_batch_size"`
	DuplicationRate      float64 `json:"duplication_rate"`
	ContactMatchRate     float64 `json:"contact_match_rate"`
	NameTypoRate         float64 `json:"name_typo_rate"`
	TypoProbability      float64 `json:"typo_probability"`
	CountryFillRate      float64 `json:"country_fill_rate"`
	DOBFillRate          float64 `json:"dob_fill_rate"`
	EmailFillRate        float64 `json:"email_fill_rate"`
	PhoneFillRate        float64 `json:"phone_fill_rate"`
	Seed                 int64   `json:"seed"`
}

// RunCounts holds the realized output of a run.
type RunCounts struct {
	BaseCustomers       int64 `json:"base_customers"`
	Duplicates          int64 `json:"duplicates"`
	RequestedDuplicates int64 `json:"requested_duplicates"`
	DegradedRecords     int64 `json:"degraded_records"`
	Orders              int64 `json:"orders"`
	Transactions        int64 `json:"transactions"`
}

// GenerationRun represents one dataset generation run.
type GenerationRun struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Params      RunParams  `json:"params"`
	Counts      RunCounts  `json:"counts"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunFilter holds filtering options for listing runs
type RunFilter struct {
	Status   string
	Page     int
	PageSize int
}

// Normalize clamps the paging fields to usable values.
func (f *RunFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
}

// Offset is the SQL offset for the current page.
func (f *RunFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// RunJob is the queue payload for a generation run.
type RunJob struct {
	RunID string `json:"run_id"`
}

// Validate performs validation on run data
func (r *GenerationRun) Validate() error {
	if r.Params.Customers < 1 {
		return ErrInvalidInput("customers must be at least 1")
	}
	// Duplicates per base can exceed 1:1, so the duplication rate is only
	// loosely bounded. Rates above 1 shrink the base population and may end
	// the run with a duplicate shortfall.
	if r.Params.DuplicationRate < 0 || r.Params.DuplicationRate > 100 {
		return ErrInvalidInput("duplication_rate must be between 0 and 100")
	}
	for name, rate := range map[string]float64{
		"contact_match_rate": r.Params.ContactMatchRate,
		"name_typo_rate":     r.Params.NameTypoRate,
		"typo_probability":   r.Params.TypoProbability,
		"country_fill_rate":  r.Params.CountryFillRate,
		"dob_fill_rate":      r.Params.DOBFillRate,
		"email_fill_rate":    r.Params.EmailFillRate,
		"phone_fill_rate":    r.Params.PhoneFillRate,
	} {
		if rate < 0 || rate > 1 {
			return ErrInvalidInput(fmt.Sprintf("%s must be between 0 and 1", name))
		}
	}
	if r.Status != "" && !IsValidRunStatus(r.Status) {
		return ErrInvalidInput(fmt.Sprintf("invalid status: %s", r.Status))
	}
	return nil
}

// IsValidRunStatus checks if the run status is valid
func IsValidRunStatus(status string) bool {
	switch status {
	case RunStatusPending, RunStatusRunning, RunStatusCompleted, RunStatusShortfall, RunStatusFailed:
		return true
	default:
		return false
	}
}

// CanStart reports whether the worker may pick the run up. Runs already
// running or finished are skipped, so re-delivered jobs do not generate
// the dataset twice.
func (r *GenerationRun) CanStart() bool {
	return r.Status == RunStatusPending
}
