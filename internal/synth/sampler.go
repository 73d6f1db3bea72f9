package synth

import (
	"fmt"
	"math/rand"

	"github.com/mrollo/retailgen/internal/models"
)

// Table is a discrete distribution: label -> non-negative weight. Weights
// do not need to sum to 1; Pick normalizes over the remaining positive
// weights, so filtering labels never biases the others.
type Table[T comparable] map[T]float64

// Validate checks that the table can be sampled from.
func (t Table[T]) Validate() error {
	if len(t) == 0 {
		return models.ErrInvalidDistribution("weight table is empty")
	}
	total := 0.0
	for label, w := range t {
		if w < 0 {
			return models.ErrInvalidDistribution(fmt.Sprintf("negative weight for %v", label))
		}
		total += w
	}
	if total <= 0 {
		return models.ErrInvalidDistribution("all weights are zero")
	}
	return nil
}

// Pick draws one label with probability proportional to its weight.
func (t Table[T]) Pick(r *rand.Rand) (T, error) {
	var zero T
	if err := t.Validate(); err != nil {
		return zero, err
	}

	total := 0.0
	for _, w := range t {
		if w > 0 {
			total += w
		}
	}

	target := r.Float64() * total
	var last T
	for label, w := range t {
		if w <= 0 {
			continue
		}
		last = label
		target -= w
		if target < 0 {
			return label, nil
		}
	}

	// Floating point drift can leave a sliver of target; the last positive
	// label absorbs it.
	return last, nil
}

// Without returns a copy of the table with excluded labels removed. The
// result samples from the re-normalized remainder.
func (t Table[T]) Without(exclude func(T) bool) Table[T] {
	filtered := make(Table[T], len(t))
	for label, w := range t {
		if !exclude(label) {
			filtered[label] = w
		}
	}
	return filtered
}
