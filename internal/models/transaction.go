package models

// Transaction represents one order line item. Unit price and total amount
// are in monetary units rounded to two decimals.
type Transaction struct {
	OrderID     string  `json:"order_id"`
	Product     string  `json:"product"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalAmount float64 `json:"total_amount"`
}
