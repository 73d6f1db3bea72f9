package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mrollo/retailgen/internal/config"
	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/queue"
)

type mockRunRepo struct {
	runs      map[string]*models.GenerationRun
	createErr error
}

func newMockRunRepo() *mockRunRepo {
	return &mockRunRepo{runs: map[string]*models.GenerationRun{}}
}

func (m *mockRunRepo) Create(ctx context.Context, run *models.GenerationRun) error {
	if m.createErr != nil {
		return m.createErr
	}
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
	var runs []*models.GenerationRun
	for _, run := range m.runs {
		if filter.Status != "" && run.Status != filter.Status {
			continue
		}
		runs = append(runs, run)
	}
	return runs, int64(len(runs)), nil
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
	return nil
}

type mockQueueClient struct {
	published  []*models.RunJob
	publishErr error
}

func (m *mockQueueClient) Publish(ctx context.Context, job *models.RunJob) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, job)
	return nil
}

func (m *mockQueueClient) Consume(ctx context.Context, handler queue.RunHandler) error {
	return nil
}

func (m *mockQueueClient) Close() error                     { return nil }
func (m *mockQueueClient) Health(ctx context.Context) error { return nil }

func testDefaults() config.GenerationConfig {
	return config.GenerationConfig{
		NumCustomers:         1000,
		NumOrders:            2000,
		CustomerBatchSize:    100,
		OrderBatchSize:       200,
		TransactionBatchSize: 200,
		DuplicationRate:      0.2,
		ContactMatchRate:     0.8,
		NameTypoRate:         0.5,
		TypoProbability:      0.2,
		CountryFillRate:      0.95,
		DOBFillRate:          0.5,
		EmailFillRate:        0.8,
		PhoneFillRate:        0.75,
	}
}

func TestCreateRunResolvesDefaults(t *testing.T) {
	repo := newMockRunRepo()
	q := &mockQueueClient{}
	svc := NewRunService(repo, q, testDefaults(), slog.New(slog.DiscardHandler))

	// Zero counts and negative rates mean "unset".
	run, err := svc.Create(context.Background(), models.RunParams{
		DuplicationRate:  -1,
		ContactMatchRate: -1,
		NameTypoRate:     -1,
		TypoProbability:  -1,
		CountryFillRate:  -1,
		DOBFillRate:      -1,
		EmailFillRate:    -1,
		PhoneFillRate:    -1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.Status != models.RunStatusPending {
		t.Errorf("expected pending status, got %s", run.Status)
	}
	if run.Params.Customers != 1000 {
		t.Errorf("expected default customer count, got %d", run.Params.Customers)
	}
	if run.Params.DuplicationRate != 0.2 {
		t.Errorf("expected default duplication rate, got %f", run.Params.DuplicationRate)
	}
	if len(q.published) != 1 || q.published[0].RunID != run.ID {
		t.Error("expected run job to be queued")
	}
}

func TestCreateRunKeepsExplicitZeroRate(t *testing.T) {
	repo := newMockRunRepo()
	svc := NewRunService(repo, &mockQueueClient{}, testDefaults(), slog.New(slog.DiscardHandler))

	run, err := svc.Create(context.Background(), models.RunParams{
		DuplicationRate:  0,
		ContactMatchRate: -1,
		NameTypoRate:     -1,
		TypoProbability:  -1,
		CountryFillRate:  -1,
		DOBFillRate:      -1,
		EmailFillRate:    -1,
		PhoneFillRate:    -1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Params.DuplicationRate != 0 {
		t.Errorf("explicit zero duplication rate was overridden to %f", run.Params.DuplicationRate)
	}
}

func TestCreateRunRejectsInvalidRates(t *testing.T) {
	svc := NewRunService(newMockRunRepo(), &mockQueueClient{}, testDefaults(), slog.New(slog.DiscardHandler))

	_, err := svc.Create(context.Background(), models.RunParams{DuplicationRate: 101})
	if err == nil {
		t.Fatal("expected validation error for duplication rate above 100")
	}

	_, err = svc.Create(context.Background(), models.RunParams{ContactMatchRate: 1.5})
	if err == nil {
		t.Fatal("expected validation error for contact match rate above 1")
	}
}

// Duplication rates above 1 are legal: they request more duplicates than
// base customers, which is how a run ends up short on duplication sources.
func TestCreateRunAcceptsDuplicationRateAboveOne(t *testing.T) {
	repo := newMockRunRepo()
	svc := NewRunService(repo, &mockQueueClient{}, testDefaults(), slog.New(slog.DiscardHandler))

	run, err := svc.Create(context.Background(), models.RunParams{
		Customers:       10,
		DuplicationRate: 4.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Params.DuplicationRate != 4.0 {
		t.Errorf("expected duplication rate 4.0, got %f", run.Params.DuplicationRate)
	}
}

func TestCreateRunQueueFailure(t *testing.T) {
	repo := newMockRunRepo()
	q := &mockQueueClient{publishErr: errors.New("redis down")}
	svc := NewRunService(repo, q, testDefaults(), slog.New(slog.DiscardHandler))

	_, err := svc.Create(context.Background(), models.RunParams{
		DuplicationRate:  -1,
		ContactMatchRate: -1,
		NameTypoRate:     -1,
		TypoProbability:  -1,
		CountryFillRate:  -1,
		DOBFillRate:      -1,
		EmailFillRate:    -1,
		PhoneFillRate:    -1,
	})
	if err == nil {
		t.Fatal("expected queue failure to propagate")
	}
}

func TestListRunsRejectsUnknownStatus(t *testing.T) {
	svc := NewRunService(newMockRunRepo(), &mockQueueClient{}, testDefaults(), slog.New(slog.DiscardHandler))

	_, _, err := svc.List(context.Background(), models.RunFilter{Status: "exploded"})
	if err == nil {
		t.Fatal("expected invalid status error")
	}
}
