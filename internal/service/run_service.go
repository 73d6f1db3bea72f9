package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mrollo/retailgen/internal/config"
	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/queue"
	"github.com/mrollo/retailgen/internal/repository"
)

// RunService handles generation run coordination: accepting run requests,
// queueing them for the worker, and reporting run state.
type RunService interface {
	Create(ctx context.Context, params models.RunParams) (*models.GenerationRun, error)
	GetByID(ctx context.Context, id string) (*models.GenerationRun, error)
	List(ctx context.Context, filter models.RunFilter) ([]*models.GenerationRun, models.PaginationResult, error)
}

type runService struct {
	runRepo  repository.RunRepository
	queue    queue.Client
	defaults config.GenerationConfig
	logger   *slog.Logger
}

// NewRunService creates a new run service
func NewRunService(
	runRepo repository.RunRepository,
	queueClient queue.Client,
	defaults config.GenerationConfig,
	logger *slog.Logger,
) RunService {
	return &runService{
		runRepo:  runRepo,
		queue:    queueClient,
		defaults: defaults,
		logger:   logger,
	}
}

// Create resolves unset parameters against the configured defaults,
// persists a pending run and queues it for the worker.
func (s *runService) Create(ctx context.Context, params models.RunParams) (*models.GenerationRun, error) {
	run := &models.GenerationRun{
		ID:     uuid.NewString(),
		Status: models.RunStatusPending,
		Params: s.resolve(params),
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.Error("failed to create run",
			slog.String("run_id", run.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	if err := s.queue.Publish(ctx, &models.RunJob{RunID: run.ID}); err != nil {
		s.logger.Error("failed to queue run",
			slog.String("run_id", run.ID),
			slog.String("error", err.Error()),
		)
		// The pending row stays behind so the failure is visible; the
		// run is never picked up and the caller sees the error.
		return nil, fmt.Errorf("failed to queue run: %w", err)
	}

	s.logger.Info("run queued",
		slog.String("run_id", run.ID),
		slog.Int("customers", run.Params.Customers),
		slog.Int("orders", run.Params.Orders),
	)

	return run, nil
}

// GetByID retrieves a run by ID
func (s *runService) GetByID(ctx context.Context, id string) (*models.GenerationRun, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// List retrieves runs with pagination
func (s *runService) List(ctx context.Context, filter models.RunFilter) ([]*models.GenerationRun, models.PaginationResult, error) {
	if filter.Status != "" && !models.IsValidRunStatus(filter.Status) {
		return nil, models.PaginationResult{}, models.ErrInvalidInput(fmt.Sprintf("invalid status: %s", filter.Status))
	}

	runs, totalCount, err := s.runRepo.List(ctx, filter)
	if err != nil {
		return nil, models.PaginationResult{}, fmt.Errorf("failed to list runs: %w", err)
	}

	filter.Normalize()
	pagination := models.NewPaginationResult(filter.Page, filter.PageSize, totalCount)

	return runs, pagination, nil
}

// resolve fills zero-valued knobs from the configured defaults. Rates use
// a negative sentinel for "unset" so an explicit zero still means zero.
func (s *runService) resolve(params models.RunParams) models.RunParams {
	if params.Customers == 0 {
		params.Customers = s.defaults.NumCustomers
	}
	if params.Orders == 0 {
		params.Orders = s.defaults.NumOrders
	}
	if params.CustomerBatchSize == 0 {
		params.CustomerBatchSize = s.defaults.CustomerBatchSize
	}
	if params.OrderBatchSize == 0 {
		params.OrderBatchSize = s.defaults.OrderBatchSize
	}
	if params.TransactionBatchSize == 0 {
		params.TransactionBatchSize = s.defaults.TransactionBatchSize
	}
	if params.Seed == 0 {
		params.Seed = s.defaults.Seed
	}

	rates := []struct {
		dest       *float64
		defaultVal float64
	}{
		{&params.DuplicationRate, s.defaults.DuplicationRate},
		{&params.ContactMatchRate, s.defaults.ContactMatchRate},
		{&params.NameTypoRate, s.defaults.NameTypoRate},
		{&params.TypoProbability, s.defaults.TypoProbability},
		{&params.CountryFillRate, s.defaults.CountryFillRate},
		{&params.DOBFillRate, s.defaults.DOBFillRate},
		{&params.EmailFillRate, s.defaults.EmailFillRate},
		{&params.PhoneFillRate, s.defaults.PhoneFillRate},
	}
	for _, r := range rates {
		if *r.dest < 0 {
			*r.dest = r.defaultVal
		}
	}

	return params
}
