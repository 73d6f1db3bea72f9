package models

import "time"

// Order represents one synthesized order header.
type Order struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	SourceID   int       `json:"source_id"`
	Date       time.Time `json:"date"`
}

// OrderRef is the minimal projection handed to transaction generation:
// the order identifier plus the owning customer's origin country, which
// drives purchasing-power price adjustment.
type OrderRef struct {
	OrderID       string `json:"order_id"`
	OriginCountry string `json:"origin_country"`
}
