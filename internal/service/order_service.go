package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/repository"
	"github.com/mrollo/retailgen/internal/synth"
)

// Probability that an order stays on the channel the customer was
// acquired through.
const channelAffinity = 0.7

// OrderService drives the order stage of a run.
type OrderService interface {
	Generate(ctx context.Context, customers []models.CustomerRef, params GenerateOrdersParams) (*OrderGenerationResult, error)
}

type orderService struct {
	r         *rand.Rand
	orderRepo repository.OrderRepository
	sources   synth.Table[int]
	logger    *slog.Logger
}

// NewOrderService creates the order generation service.
func NewOrderService(r *rand.Rand, orderRepo repository.OrderRepository, logger *slog.Logger) (OrderService, error) {
	if err := synth.TransactionSources.Validate(); err != nil {
		return nil, fmt.Errorf("transaction source table: %w", err)
	}
	return &orderService{
		r:         r,
		orderRepo: orderRepo,
		sources:   synth.TransactionSources,
		logger:    logger,
	}, nil
}

// Generate attaches params.Total orders to uniformly drawn customers.
// Orders mostly stay on the customer's acquisition channel and get a
// uniform date inside the configured window. Returns the order
// projections consumed by transaction generation.
func (s *orderService) Generate(ctx context.Context, customers []models.CustomerRef, params GenerateOrdersParams) (*OrderGenerationResult, error) {
	if len(customers) == 0 {
		return nil, models.ErrInvalidInput("order generation requires at least one customer")
	}
	if params.Total < 1 {
		return nil, models.ErrInvalidInput("order total must be at least 1")
	}
	if params.BatchSize < 1 {
		return nil, models.ErrInvalidInput("order batch size must be at least 1")
	}
	if params.EndDate.Before(params.StartDate) {
		return nil, models.ErrInvalidInput("order window end precedes start")
	}

	s.logger.Info("order generation planned",
		slog.Int("total", params.Total),
		slog.Int("customers", len(customers)),
	)

	window := int(params.EndDate.Sub(params.StartDate)/(24*time.Hour)) + 1
	usedIDs := make(map[string]struct{}, params.Total)
	refs := make([]models.OrderRef, 0, params.Total)
	batch := make([]*models.Order, 0, params.BatchSize)

	for i := 0; i < params.Total; i++ {
		customer := customers[s.r.Intn(len(customers))]

		sourceID := customer.SourceID
		if s.r.Float64() >= channelAffinity {
			drawn, err := s.sources.Pick(s.r)
			if err != nil {
				return nil, err
			}
			sourceID = drawn
		}

		order := &models.Order{
			OrderID:    s.reserveID(usedIDs),
			CustomerID: customer.CustomerID,
			SourceID:   sourceID,
			Date:       params.StartDate.AddDate(0, 0, s.r.Intn(window)),
		}

		refs = append(refs, models.OrderRef{
			OrderID:       order.OrderID,
			OriginCountry: customer.OriginCountry,
		})
		batch = append(batch, order)

		if len(batch) == params.BatchSize {
			if err := s.flush(ctx, batch); err != nil {
				return nil, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.flush(ctx, batch); err != nil {
			return nil, err
		}
	}

	s.logger.Info("order generation completed", slog.Int("orders", len(refs)))

	return &OrderGenerationResult{Refs: refs, Count: len(refs)}, nil
}

func (s *orderService) reserveID(used map[string]struct{}) string {
	id := synth.NewOrderID(s.r)
	for {
		if _, taken := used[id]; !taken {
			break
		}
		id = synth.NewOrderID(s.r)
	}
	used[id] = struct{}{}
	return id
}

func (s *orderService) flush(ctx context.Context, batch []*models.Order) error {
	if err := s.orderRepo.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("order batch flush failed",
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()),
		)
		return models.ErrSinkFailure(fmt.Sprintf("failed to flush order batch of %d", len(batch)), err)
	}
	s.logger.Debug("order batch flushed", slog.Int("batch_size", len(batch)))
	return nil
}
