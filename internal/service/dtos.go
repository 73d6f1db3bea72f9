package service

import (
	"time"

	"github.com/mrollo/retailgen/internal/models"
)

// GenerateCustomersParams holds the customer stage inputs resolved from
// run parameters.
type GenerateCustomersParams struct {
	Total            int
	BatchSize        int
	DuplicationRate  float64
	ContactMatchRate float64
}

// CustomerGenerationResult is the customer stage output: realized counts
// plus the carry-forward records for order generation.
type CustomerGenerationResult struct {
	Refs                []models.CustomerRef
	BaseCount           int
	Duplicates          int
	RequestedDuplicates int
	Degraded            int
	Shortfall           bool
}

// GenerateOrdersParams holds the order stage inputs.
type GenerateOrdersParams struct {
	Total     int
	BatchSize int
	StartDate time.Time
	EndDate   time.Time
}

// OrderGenerationResult is the order stage output: realized count plus
// the order projections handed to transaction generation.
type OrderGenerationResult struct {
	Refs  []models.OrderRef
	Count int
}

// GenerateTransactionsParams holds the transaction stage inputs.
type GenerateTransactionsParams struct {
	BatchSize int
}

// TransactionGenerationResult is the transaction stage output.
type TransactionGenerationResult struct {
	Count int
}
