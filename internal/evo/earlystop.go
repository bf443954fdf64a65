package evo

import "math"

// EarlyStopper tracks best-fitness stagnation across generations and
// signals when evolution should terminate early.
type EarlyStopper struct {
	delta      float64
	previous   float64
	stagnation int
	patience   int
}

// NewEarlyStopper builds a stopper that fires once the best fitness has
// changed by less than delta for patience consecutive generations.
func NewEarlyStopper(delta float64, patience int) *EarlyStopper {
	return &EarlyStopper{delta: delta, patience: patience}
}

// Update records the best fitness of the current generation and returns
// true exactly when the stagnation streak has reached the configured
// patience.
func (e *EarlyStopper) Update(fitness float64) bool {
	if math.Abs(fitness-e.previous) < e.delta {
		e.stagnation++
	} else {
		e.stagnation = 0
	}
	e.previous = fitness
	return e.stagnation >= e.patience
}
