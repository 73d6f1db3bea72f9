package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/repository"
	"github.com/mrollo/retailgen/internal/synth"
)

// Line item count bounds per order.
const (
	minItemsPerOrder = 1
	maxItemsPerOrder = 10
)

// TransactionService drives the line item stage of a run.
type TransactionService interface {
	Generate(ctx context.Context, orders []models.OrderRef, params GenerateTransactionsParams) (*TransactionGenerationResult, error)
}

type transactionService struct {
	r               *rand.Rand
	transactionRepo repository.TransactionRepository
	categories      synth.Table[string]
	quantities      synth.Table[int]
	logger          *slog.Logger
}

// NewTransactionService creates the transaction generation service.
func NewTransactionService(r *rand.Rand, transactionRepo repository.TransactionRepository, logger *slog.Logger) (TransactionService, error) {
	for name, err := range map[string]error{
		"category": synth.ProductCategories.Validate(),
		"quantity": synth.QuantityWeights.Validate(),
	} {
		if err != nil {
			return nil, fmt.Errorf("%s table: %w", name, err)
		}
	}
	return &transactionService{
		r:               r,
		transactionRepo: transactionRepo,
		categories:      synth.ProductCategories,
		quantities:      synth.QuantityWeights,
		logger:          logger,
	}, nil
}

// Generate fills every order with 1 to 10 line items. Prices are drawn
// uniformly from the category's range, scaled by the purchasing-power
// factor of the order's origin country, and rounded to cents. Batches
// accumulate across orders so flush sizes stay uniform regardless of
// how many items each order gets.
func (s *transactionService) Generate(ctx context.Context, orders []models.OrderRef, params GenerateTransactionsParams) (*TransactionGenerationResult, error) {
	if params.BatchSize < 1 {
		return nil, models.ErrInvalidInput("transaction batch size must be at least 1")
	}

	s.logger.Info("transaction generation planned", slog.Int("orders", len(orders)))

	count := 0
	batch := make([]*models.Transaction, 0, params.BatchSize)

	for _, order := range orders {
		items := minItemsPerOrder + s.r.Intn(maxItemsPerOrder-minItemsPerOrder+1)
		for i := 0; i < items; i++ {
			tx, err := s.lineItem(order)
			if err != nil {
				return nil, err
			}

			count++
			batch = append(batch, tx)

			if len(batch) == params.BatchSize {
				if err := s.flush(ctx, batch); err != nil {
					return nil, err
				}
				batch = batch[:0]
			}
		}
	}
	if len(batch) > 0 {
		if err := s.flush(ctx, batch); err != nil {
			return nil, err
		}
	}

	s.logger.Info("transaction generation completed", slog.Int("transactions", count))

	return &TransactionGenerationResult{Count: count}, nil
}

func (s *transactionService) lineItem(order models.OrderRef) (*models.Transaction, error) {
	category, err := s.categories.Pick(s.r)
	if err != nil {
		return nil, err
	}
	quantity, err := s.quantities.Pick(s.r)
	if err != nil {
		return nil, err
	}

	products := synth.ProductsByCategory[category]
	product := category
	if len(products) > 0 {
		product = products[s.r.Intn(len(products))]
	}

	priceRange, ok := synth.PriceRanges[category]
	if !ok {
		return nil, models.ErrInvalidDistribution(fmt.Sprintf("no price range for category %q", category))
	}

	factor, ok := synth.IncomeFactors[order.OriginCountry]
	if !ok {
		factor = 1.0
	}

	unitPrice := roundCents((priceRange.Min + s.r.Float64()*(priceRange.Max-priceRange.Min)) * factor)

	return &models.Transaction{
		OrderID:     order.OrderID,
		Product:     product,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: roundCents(unitPrice * float64(quantity)),
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *transactionService) flush(ctx context.Context, batch []*models.Transaction) error {
	if err := s.transactionRepo.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("transaction batch flush failed",
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()),
		)
		return models.ErrSinkFailure(fmt.Sprintf("failed to flush transaction batch of %d", len(batch)), err)
	}
	s.logger.Debug("transaction batch flushed", slog.Int("batch_size", len(batch)))
	return nil
}
