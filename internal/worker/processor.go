package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mrollo/retailgen/internal/config"
	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/repository"
	"github.com/mrollo/retailgen/internal/service"
	"github.com/mrollo/retailgen/internal/synth"
)

// RunProcessor executes generation run jobs: it builds a seeded synthesis
// stack per run and drives the pipeline customers -> orders ->
// transactions -> integrity verification, keeping the run row current.
type RunProcessor struct {
	runRepo         repository.RunRepository
	customerRepo    repository.CustomerRepository
	orderRepo       repository.OrderRepository
	transactionRepo repository.TransactionRepository
	statsRepo       repository.StatsRepository
	defaults        config.GenerationConfig
	logger          *slog.Logger
}

// NewRunProcessor creates a new run processor
func NewRunProcessor(
	runRepo repository.RunRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	transactionRepo repository.TransactionRepository,
	statsRepo repository.StatsRepository,
	defaults config.GenerationConfig,
	logger *slog.Logger,
) *RunProcessor {
	return &RunProcessor{
		runRepo:         runRepo,
		customerRepo:    customerRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		statsRepo:       statsRepo,
		defaults:        defaults,
		logger:          logger,
	}
}

// HandleJob processes a single run job from the queue.
func (p *RunProcessor) HandleJob(ctx context.Context, job *models.RunJob) error {
	run, err := p.runRepo.GetByID(ctx, job.RunID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", job.RunID, err)
	}

	// Re-delivered or already handled jobs are dropped, never re-run:
	// generating the dataset twice would double the population.
	if !run.CanStart() {
		p.logger.Warn("skipping run not in pending state",
			slog.String("run_id", run.ID),
			slog.String("status", run.Status),
		)
		return nil
	}

	if err := p.runRepo.MarkRunning(ctx, run.ID); err != nil {
		return fmt.Errorf("failed to mark run %s running: %w", run.ID, err)
	}

	started := time.Now()
	counts, status, runErr := p.execute(ctx, run)
	if runErr != nil {
		msg := runErr.Error()
		if finishErr := p.runRepo.Finish(ctx, run.ID, models.RunStatusFailed, counts, &msg); finishErr != nil {
			p.logger.Error("failed to record run failure",
				slog.String("run_id", run.ID),
				slog.String("error", finishErr.Error()),
			)
		}
		p.logger.Error("run failed",
			slog.String("run_id", run.ID),
			slog.String("error", msg),
		)
		return runErr
	}

	if err := p.runRepo.Finish(ctx, run.ID, status, counts, nil); err != nil {
		return fmt.Errorf("failed to finish run %s: %w", run.ID, err)
	}

	p.logger.Info("run finished",
		slog.String("run_id", run.ID),
		slog.String("status", status),
		slog.Int64("customers", counts.BaseCustomers+counts.Duplicates),
		slog.Int64("orders", counts.Orders),
		slog.Int64("transactions", counts.Transactions),
		slog.Duration("elapsed", time.Since(started)),
	)

	return nil
}

// execute runs the generation pipeline and returns the realized counts
// with the terminal status. Counts reflect whatever stages completed
// before a failure so a failed run row still shows partial progress.
func (p *RunProcessor) execute(ctx context.Context, run *models.GenerationRun) (models.RunCounts, string, error) {
	var counts models.RunCounts

	seed := run.Params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	p.logger.Info("run started",
		slog.String("run_id", run.ID),
		slog.Int64("seed", seed),
		slog.Int("customers", run.Params.Customers),
		slog.Int("orders", run.Params.Orders),
	)

	customerSvc, orderSvc, transactionSvc, err := p.buildServices(rng, seed, run.Params)
	if err != nil {
		return counts, models.RunStatusFailed, err
	}

	customers, err := customerSvc.Generate(ctx, service.GenerateCustomersParams{
		Total:            run.Params.Customers,
		BatchSize:        run.Params.CustomerBatchSize,
		DuplicationRate:  run.Params.DuplicationRate,
		ContactMatchRate: run.Params.ContactMatchRate,
	})
	if err != nil {
		return counts, models.RunStatusFailed, fmt.Errorf("customer stage: %w", err)
	}
	counts.BaseCustomers = int64(customers.BaseCount)
	counts.Duplicates = int64(customers.Duplicates)
	counts.RequestedDuplicates = int64(customers.RequestedDuplicates)
	counts.DegradedRecords = int64(customers.Degraded)

	orders, err := orderSvc.Generate(ctx, customers.Refs, service.GenerateOrdersParams{
		Total:     run.Params.Orders,
		BatchSize: run.Params.OrderBatchSize,
		StartDate: p.defaults.OrderStartDate,
		EndDate:   p.defaults.OrderEndDate,
	})
	if err != nil {
		return counts, models.RunStatusFailed, fmt.Errorf("order stage: %w", err)
	}
	counts.Orders = int64(orders.Count)

	transactions, err := transactionSvc.Generate(ctx, orders.Refs, service.GenerateTransactionsParams{
		BatchSize: run.Params.TransactionBatchSize,
	})
	if err != nil {
		return counts, models.RunStatusFailed, fmt.Errorf("transaction stage: %w", err)
	}
	counts.Transactions = int64(transactions.Count)

	p.verify(ctx, run.ID)

	status := models.RunStatusCompleted
	if customers.Shortfall {
		status = models.RunStatusShortfall
	}
	return counts, status, nil
}

// buildServices assembles the per-run synthesis stack around a single
// seeded rand source.
func (p *RunProcessor) buildServices(rng *rand.Rand, seed int64, params models.RunParams) (service.CustomerService, service.OrderService, service.TransactionService, error) {
	provider := synth.NewTextProvider(uint64(seed))

	contact, err := synth.NewContactSynthesizer(rng, provider, synth.EmailDomains, p.logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("contact synthesizer: %w", err)
	}

	factory, err := synth.NewFactory(rng, provider, contact, synth.FactoryConfig{
		TypoProbability: params.TypoProbability,
		CountryFillRate: params.CountryFillRate,
		DOBFillRate:     params.DOBFillRate,
		EmailFillRate:   params.EmailFillRate,
		PhoneFillRate:   params.PhoneFillRate,
	}, p.logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("customer factory: %w", err)
	}

	duplicator := synth.NewDuplicator(rng, contact, synth.DuplicatorConfig{
		NameTypoRate: params.NameTypoRate,
	}, p.logger)

	customerSvc := service.NewCustomerService(rng, factory, duplicator, p.customerRepo, p.logger)

	orderSvc, err := service.NewOrderService(rng, p.orderRepo, p.logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("order service: %w", err)
	}

	transactionSvc, err := service.NewTransactionService(rng, p.transactionRepo, p.logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("transaction service: %w", err)
	}

	return customerSvc, orderSvc, transactionSvc, nil
}

// verify checks referential integrity after the pipeline. A verification
// problem is logged, not fatal: the dataset is already flushed and the
// report exists to make dirty output visible.
func (p *RunProcessor) verify(ctx context.Context, runID string) {
	report, err := p.statsRepo.Verify(ctx)
	if err != nil {
		p.logger.Error("integrity verification failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return
	}

	attrs := []any{
		slog.String("run_id", runID),
		slog.Int64("customers", report.Customers),
		slog.Int64("orders", report.Orders),
		slog.Int64("transactions", report.Transactions),
		slog.String("avg_transactions_per_order", fmt.Sprintf("%.2f", report.AvgTransactionsPerOrder())),
	}

	if !report.Clean() {
		attrs = append(attrs,
			slog.Int64("orphan_orders", report.OrphanOrders),
			slog.Int64("orphan_transactions", report.OrphanTransactions),
		)
		p.logger.Warn("integrity verification found orphans", attrs...)
		return
	}

	p.logger.Info("integrity verification passed", attrs...)
}
