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

// CustomerService drives the customer stage of a run: base population,
// controlled duplication, batched flushing.
type CustomerService interface {
	Generate(ctx context.Context, params GenerateCustomersParams) (*CustomerGenerationResult, error)
}

type customerService struct {
	r            *rand.Rand
	factory      *synth.Factory
	duplicator   *synth.Duplicator
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewCustomerService creates the customer generation service. The rand
// source must be the same one threaded through the synth components so a
// seeded run replays identically.
func NewCustomerService(
	r *rand.Rand,
	factory *synth.Factory,
	duplicator *synth.Duplicator,
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		r:            r,
		factory:      factory,
		duplicator:   duplicator,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Generate produces the run's customer population. Given a target total N
// and duplication rate dr it plans round(N/(1+dr)) base records, derives
// the remainder as duplicates split between the exact-contact and
// fuzzy-name strategies by the contact match rate, and flushes fixed-size
// batches as they fill. Every record keeps a run-wide unique customer id;
// a flush failure aborts the run because a dropped batch would leave the
// id bookkeeping out of sync with storage.
func (s *customerService) Generate(ctx context.Context, params GenerateCustomersParams) (*CustomerGenerationResult, error) {
	if params.Total < 1 {
		return nil, models.ErrInvalidInput("customer total must be at least 1")
	}
	if params.BatchSize < 1 {
		return nil, models.ErrInvalidInput("customer batch size must be at least 1")
	}
	if params.DuplicationRate < 0 {
		return nil, models.ErrInvalidInput("duplication rate must not be negative")
	}

	baseCount := int(math.Round(float64(params.Total) / (1 + params.DuplicationRate)))
	if baseCount < 1 {
		baseCount = 1
	}
	requestedDuplicates := params.Total - baseCount

	s.logger.Info("customer generation planned",
		slog.Int("total", params.Total),
		slog.Int("base", baseCount),
		slog.Int("duplicates", requestedDuplicates),
		slog.Float64("duplication_rate", params.DuplicationRate),
	)

	usedIDs := make(map[string]struct{}, params.Total)
	arena := make([]*models.Customer, 0, baseCount)
	refs := make([]models.CustomerRef, 0, params.Total)
	degraded := 0

	// Base population. Every produced record is retained in the arena as
	// a potential duplication source, not just the current batch.
	batch := make([]*models.Customer, 0, params.BatchSize)
	for i := 0; i < baseCount; i++ {
		customer, isDegraded := s.factory.NewCustomer(0)
		if isDegraded {
			degraded++
		}
		s.reserveID(customer, usedIDs)

		arena = append(arena, customer)
		refs = append(refs, customer.Ref())
		batch = append(batch, customer)

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
		batch = batch[:0]
	}

	// Clamp: a duplicate needs a distinct source, so the realized count
	// can never exceed the base population.
	realized := requestedDuplicates
	shortfall := false
	if realized > len(arena) {
		realized = len(arena)
		shortfall = true
		s.logger.Warn("duplicate count clamped to base population",
			slog.Int("requested", requestedDuplicates),
			slog.Int("realized", realized),
		)
	}

	exactCount := int(math.Round(float64(realized) * params.ContactMatchRate))

	// Partial Fisher-Yates over arena indices: the first `realized`
	// positions of the permutation are the duplication sources, each base
	// record drawn at most once per run.
	sources := s.sampleSources(len(arena), realized)

	for i, idx := range sources {
		strategy := synth.StrategyFuzzyName
		if i < exactCount {
			strategy = synth.StrategyExactContact
		}

		dup, isDegraded := s.duplicator.Duplicate(arena[idx], strategy)
		if isDegraded {
			degraded++
		}
		s.reserveID(dup, usedIDs)

		refs = append(refs, dup.Ref())
		batch = append(batch, dup)

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

	s.logger.Info("customer generation completed",
		slog.Int("base", baseCount),
		slog.Int("duplicates", realized),
		slog.Int("degraded", degraded),
		slog.Bool("shortfall", shortfall),
	)

	return &CustomerGenerationResult{
		Refs:                refs,
		BaseCount:           baseCount,
		Duplicates:          realized,
		RequestedDuplicates: requestedDuplicates,
		Degraded:            degraded,
		Shortfall:           shortfall,
	}, nil
}

// reserveID re-rolls the customer id until it is unique within the run,
// then records it. Storage-side primary keys are a backstop only.
func (s *customerService) reserveID(customer *models.Customer, used map[string]struct{}) {
	for {
		if _, taken := used[customer.CustomerID]; !taken {
			break
		}
		customer.CustomerID = synth.NewCustomerID(s.r)
	}
	used[customer.CustomerID] = struct{}{}
}

// sampleSources returns k distinct indices in [0, n), uniformly and
// without replacement.
func (s *customerService) sampleSources(n, k int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.r.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:k]
}

func (s *customerService) flush(ctx context.Context, batch []*models.Customer) error {
	if err := s.customerRepo.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("customer batch flush failed",
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()),
		)
		return models.ErrSinkFailure(fmt.Sprintf("failed to flush customer batch of %d", len(batch)), err)
	}
	s.logger.Debug("customer batch flushed", slog.Int("batch_size", len(batch)))
	return nil
}
