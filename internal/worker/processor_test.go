package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mrollo/retailgen/internal/config"
	"github.com/mrollo/retailgen/internal/models"
)

// Mock repositories for testing
type mockRunRepo struct {
	runs     map[string]*models.GenerationRun
	finishes []finishCall
}

type finishCall struct {
	status string
	counts models.RunCounts
	errMsg *string
}

func (m *mockRunRepo) Create(ctx context.Context, run *models.GenerationRun) error {
	m.runs[run.ID] = run
	return nil
}

func (m *mockRunRepo) GetByID(ctx context.Context, id string) (*models.GenerationRun, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg("run not found")
	}
	return run, nil
}

func (m *mockRunRepo) List(ctx context.Context, filter models.RunFilter) ([]*models.GenerationRun, int64, error) {
	return nil, 0, nil
}

func (m *mockRunRepo) MarkRunning(ctx context.Context, id string) error {
	run, ok := m.runs[id]
	if !ok {
		return models.ErrNotFoundWithMsg("run not found")
	}
	run.Status = models.RunStatusRunning
	return nil
}

func (m *mockRunRepo) Finish(ctx context.Context, id, status string, counts models.RunCounts, errMsg *string) error {
	run, ok := m.runs[id]
	if !ok {
		return models.ErrNotFoundWithMsg("run not found")
	}
	run.Status = status
	run.Counts = counts
	run.Error = errMsg
	m.finishes = append(m.finishes, finishCall{status, counts, errMsg})
	return nil
}

type mockCustomerRepo struct {
	flushed int
	err     error
}

func (m *mockCustomerRepo) CreateBatch(ctx context.Context, customers []*models.Customer) error {
	if m.err != nil {
		return m.err
	}
	m.flushed += len(customers)
	return nil
}

func (m *mockCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(m.flushed), nil
}

type mockOrderRepo struct {
	flushed int
}

func (m *mockOrderRepo) CreateBatch(ctx context.Context, orders []*models.Order) error {
	m.flushed += len(orders)
	return nil
}

func (m *mockOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(m.flushed), nil
}

type mockTransactionRepo struct {
	flushed int
}

func (m *mockTransactionRepo) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	m.flushed += len(transactions)
	return nil
}

func (m *mockTransactionRepo) Count(ctx context.Context) (int64, error) {
	return int64(m.flushed), nil
}

type mockStatsRepo struct {
	report *models.IntegrityReport
	err    error
}

func (m *mockStatsRepo) Verify(ctx context.Context) (*models.IntegrityReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

type processorFixture struct {
	processor       *RunProcessor
	runRepo         *mockRunRepo
	customerRepo    *mockCustomerRepo
	orderRepo       *mockOrderRepo
	transactionRepo *mockTransactionRepo
}

func newProcessorFixture() *processorFixture {
	runRepo := &mockRunRepo{runs: map[string]*models.GenerationRun{}}
	customerRepo := &mockCustomerRepo{}
	orderRepo := &mockOrderRepo{}
	transactionRepo := &mockTransactionRepo{}
	statsRepo := &mockStatsRepo{report: &models.IntegrityReport{}}

	defaults := config.GenerationConfig{
		OrderStartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		OrderEndDate:   time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC),
	}

	processor := NewRunProcessor(
		runRepo,
		customerRepo,
		orderRepo,
		transactionRepo,
		statsRepo,
		defaults,
		slog.New(slog.DiscardHandler),
	)

	return &processorFixture{
		processor:       processor,
		runRepo:         runRepo,
		customerRepo:    customerRepo,
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
	}
}

func testRunParams() models.RunParams {
	return models.RunParams{
		Customers:            20,
		Orders:               30,
		CustomerBatchSize:    10,
		OrderBatchSize:       10,
		TransactionBatchSize: 50,
		DuplicationRate:      0.25,
		ContactMatchRate:     0.8,
		NameTypoRate:         0.5,
		TypoProbability:      0.2,
		CountryFillRate:      0.95,
		DOBFillRate:          0.5,
		EmailFillRate:        0.8,
		PhoneFillRate:        0.75,
		Seed:                 42,
	}
}

func pendingRun(repo *mockRunRepo, params models.RunParams) *models.GenerationRun {
	run := &models.GenerationRun{
		ID:     "run-1",
		Status: models.RunStatusPending,
		Params: params,
	}
	repo.runs[run.ID] = run
	return run
}

func TestHandleJobCompletesRun(t *testing.T) {
	f := newProcessorFixture()
	run := pendingRun(f.runRepo, testRunParams())

	err := f.processor.HandleJob(context.Background(), &models.RunJob{RunID: run.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Status != models.RunStatusCompleted {
		t.Errorf("expected completed status, got %s", run.Status)
	}
	// round(20 / 1.25) = 16 bases, 4 duplicates.
	if run.Counts.BaseCustomers != 16 {
		t.Errorf("expected 16 base customers, got %d", run.Counts.BaseCustomers)
	}
	if run.Counts.Duplicates != 4 {
		t.Errorf("expected 4 duplicates, got %d", run.Counts.Duplicates)
	}
	if f.customerRepo.flushed != 20 {
		t.Errorf("expected 20 flushed customers, got %d", f.customerRepo.flushed)
	}
	if run.Counts.Orders != 30 || f.orderRepo.flushed != 30 {
		t.Errorf("expected 30 orders, got counts=%d flushed=%d", run.Counts.Orders, f.orderRepo.flushed)
	}
	if int(run.Counts.Transactions) != f.transactionRepo.flushed {
		t.Errorf("transaction count %d does not match flushed %d", run.Counts.Transactions, f.transactionRepo.flushed)
	}
	if run.Counts.Transactions < run.Counts.Orders {
		t.Errorf("expected at least one line item per order, got %d for %d orders",
			run.Counts.Transactions, run.Counts.Orders)
	}
}

func TestHandleJobSkipsNonPendingRun(t *testing.T) {
	f := newProcessorFixture()
	run := pendingRun(f.runRepo, testRunParams())
	run.Status = models.RunStatusCompleted

	err := f.processor.HandleJob(context.Background(), &models.RunJob{RunID: run.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.customerRepo.flushed != 0 {
		t.Errorf("expected no generation for a finished run, flushed %d customers", f.customerRepo.flushed)
	}
	if len(f.runRepo.finishes) != 0 {
		t.Error("expected no finish call for a skipped run")
	}
}

func TestHandleJobUnknownRun(t *testing.T) {
	f := newProcessorFixture()

	err := f.processor.HandleJob(context.Background(), &models.RunJob{RunID: "ghost"})
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestHandleJobShortfall(t *testing.T) {
	f := newProcessorFixture()
	params := testRunParams()
	params.Customers = 5
	params.DuplicationRate = 4.0
	run := pendingRun(f.runRepo, params)

	err := f.processor.HandleJob(context.Background(), &models.RunJob{RunID: run.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Status != models.RunStatusShortfall {
		t.Errorf("expected shortfall status, got %s", run.Status)
	}
	if run.Counts.RequestedDuplicates != 4 || run.Counts.Duplicates != 1 {
		t.Errorf("expected 1/4 duplicates, got %d/%d", run.Counts.Duplicates, run.Counts.RequestedDuplicates)
	}
}

func TestHandleJobSinkFailureFailsRun(t *testing.T) {
	f := newProcessorFixture()
	f.customerRepo.err = errors.New("disk full")
	run := pendingRun(f.runRepo, testRunParams())

	err := f.processor.HandleJob(context.Background(), &models.RunJob{RunID: run.ID})
	if err == nil {
		t.Fatal("expected sink failure to propagate")
	}

	if run.Status != models.RunStatusFailed {
		t.Errorf("expected failed status, got %s", run.Status)
	}
	if run.Error == nil {
		t.Error("expected error message on failed run")
	}
}
