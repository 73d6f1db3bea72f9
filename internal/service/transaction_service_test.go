package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/synth"
)

type mockTransactionRepo struct {
	batches   [][]*models.Transaction
	failBatch int
}

func (m *mockTransactionRepo) CreateBatch(ctx context.Context, transactions []*models.Transaction) error {
	if m.failBatch > 0 && len(m.batches)+1 == m.failBatch {
		return errors.New("connection reset")
	}
	batch := make([]*models.Transaction, len(transactions))
	for i, tx := range transactions {
		cp := *tx
		batch[i] = &cp
	}
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockTransactionRepo) Count(ctx context.Context) (int64, error) {
	total := 0
	for _, b := range m.batches {
		total += len(b)
	}
	return int64(total), nil
}

func (m *mockTransactionRepo) flushed() []*models.Transaction {
	var all []*models.Transaction
	for _, b := range m.batches {
		all = append(all, b...)
	}
	return all
}

func newTestTransactionService(t *testing.T, repo *mockTransactionRepo) TransactionService {
	t.Helper()
	svc, err := NewTransactionService(rand.New(rand.NewSource(11)), repo, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("transaction service: %v", err)
	}
	return svc
}

func testOrderRefs(n int) []models.OrderRef {
	refs := make([]models.OrderRef, n)
	for i := range refs {
		refs[i] = models.OrderRef{
			OrderID:       "ORD-" + string(rune('A'+i%26)) + "000000000",
			OriginCountry: "Italy",
		}
	}
	return refs
}

func TestGenerateTransactions(t *testing.T) {
	repo := &mockTransactionRepo{}
	svc := newTestTransactionService(t, repo)
	orders := testOrderRefs(26)

	result, err := svc.Generate(context.Background(), orders, GenerateTransactionsParams{BatchSize: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1 to 10 line items per order.
	if result.Count < len(orders) || result.Count > len(orders)*10 {
		t.Errorf("transaction count %d outside [%d, %d]", result.Count, len(orders), len(orders)*10)
	}

	perOrder := map[string]int{}
	for _, tx := range repo.flushed() {
		perOrder[tx.OrderID]++

		if tx.Quantity < 1 || tx.Quantity > 5 {
			t.Errorf("quantity %d outside [1, 5]", tx.Quantity)
		}
		if tx.Product == "" {
			t.Error("empty product name")
		}
		if tx.UnitPrice <= 0 {
			t.Errorf("non-positive unit price %f", tx.UnitPrice)
		}
		wantTotal := math.Round(tx.UnitPrice*float64(tx.Quantity)*100) / 100
		if tx.TotalAmount != wantTotal {
			t.Errorf("total %f does not match price %f x quantity %d", tx.TotalAmount, tx.UnitPrice, tx.Quantity)
		}
	}

	for id, n := range perOrder {
		if n < 1 || n > 10 {
			t.Errorf("order %s has %d line items, outside [1, 10]", id, n)
		}
	}
	if len(perOrder) != len(orders) {
		t.Errorf("expected line items for all %d orders, got %d", len(orders), len(perOrder))
	}
}

func TestGenerateTransactionsPricingRespectsCategoryRange(t *testing.T) {
	repo := &mockTransactionRepo{}
	svc := newTestTransactionService(t, repo)

	productCategory := map[string]string{}
	for category, products := range synth.ProductsByCategory {
		for _, p := range products {
			productCategory[p] = category
		}
	}

	factor := synth.IncomeFactors["Italy"]
	_, err := svc.Generate(context.Background(), testOrderRefs(26), GenerateTransactionsParams{BatchSize: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tx := range repo.flushed() {
		category, ok := productCategory[tx.Product]
		if !ok {
			t.Errorf("product %q belongs to no category", tx.Product)
			continue
		}
		bounds := synth.PriceRanges[category]

		// Cent rounding can nudge the price just past the scaled bounds.
		min := math.Floor(bounds.Min*factor*100) / 100
		max := math.Ceil(bounds.Max*factor*100) / 100
		if tx.UnitPrice < min || tx.UnitPrice > max {
			t.Errorf("unit price %f outside scaled range [%f, %f] for %q", tx.UnitPrice, min, max, tx.Product)
		}
	}
}

func TestGenerateTransactionsBatchesAccumulateAcrossOrders(t *testing.T) {
	repo := &mockTransactionRepo{}
	svc := newTestTransactionService(t, repo)

	result, err := svc.Generate(context.Background(), testOrderRefs(26), GenerateTransactionsParams{BatchSize: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every flush except the last carries exactly one full batch.
	for i, batch := range repo.batches {
		if i < len(repo.batches)-1 && len(batch) != 7 {
			t.Errorf("flush %d: expected full batch of 7, got %d", i, len(batch))
		}
	}

	total := 0
	for _, batch := range repo.batches {
		total += len(batch)
	}
	if total != result.Count {
		t.Errorf("flushed %d transactions, result reports %d", total, result.Count)
	}
}

func TestGenerateTransactionsUnknownCountryUsesUnitFactor(t *testing.T) {
	repo := &mockTransactionRepo{}
	svc := newTestTransactionService(t, repo)

	orders := []models.OrderRef{{OrderID: "ORD-XX00000000", OriginCountry: "Atlantis"}}
	if _, err := svc.Generate(context.Background(), orders, GenerateTransactionsParams{BatchSize: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tx := range repo.flushed() {
		if tx.UnitPrice <= 0 {
			t.Errorf("non-positive unit price %f for unmapped country", tx.UnitPrice)
		}
	}
}

func TestGenerateTransactionsFlushFailureIsFatal(t *testing.T) {
	repo := &mockTransactionRepo{failBatch: 1}
	svc := newTestTransactionService(t, repo)

	_, err := svc.Generate(context.Background(), testOrderRefs(26), GenerateTransactionsParams{BatchSize: 5})
	if err == nil {
		t.Fatal("expected flush failure to propagate")
	}
	if !errors.Is(err, models.ErrSink) {
		t.Errorf("expected sink failure, got %v", err)
	}
}
