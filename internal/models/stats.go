package models

// IntegrityReport summarizes the dataset after a run: table row counts
// plus referential-integrity orphan counts (orders without a customer,
// transactions without an order).
type IntegrityReport struct {
	Customers          int64 `json:"customers"`
	Orders             int64 `json:"orders"`
	Transactions       int64 `json:"transactions"`
	OrphanOrders       int64 `json:"orphan_orders"`
	OrphanTransactions int64 `json:"orphan_transactions"`
}

// Clean reports whether every foreign-key relationship resolved.
func (r *IntegrityReport) Clean() bool {
	return r.OrphanOrders == 0 && r.OrphanTransactions == 0
}

// AvgTransactionsPerOrder returns the mean line-item count per order.
func (r *IntegrityReport) AvgTransactionsPerOrder() float64 {
	if r.Orders == 0 {
		return 0
	}
	return float64(r.Transactions) / float64(r.Orders)
}
