package synth

import "math/rand"

const (
	customerIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	customerIDLength   = 10
	orderIDPrefix      = "ORD-"
)

// NewCustomerID generates a random 10-character uppercase alphanumeric
// customer identifier. Uniqueness across a run is the orchestrator's job.
func NewCustomerID(r *rand.Rand) string {
	buf := make([]byte, customerIDLength)
	for i := range buf {
		buf[i] = customerIDAlphabet[r.Intn(len(customerIDAlphabet))]
	}
	return string(buf)
}

// NewOrderID generates an "ORD-" prefixed random order identifier.
func NewOrderID(r *rand.Rand) string {
	buf := make([]byte, customerIDLength)
	for i := range buf {
		buf[i] = customerIDAlphabet[r.Intn(len(customerIDAlphabet))]
	}
	return orderIDPrefix + string(buf)
}
