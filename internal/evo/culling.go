package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"anagen/internal/model"
)

// ErrPopulationInvariant reports that culling left the population at an
// unexpected size, which would mean the walk arithmetic went out of
// sync with the shrinking sequence.
var ErrPopulationInvariant = errors.New("population invariant violated")

// KillOff removes count individuals from the population with a cyclic
// stochastic walk and returns the shrunken population. The spacing
// ratio is fixed from the pre-removal length; the pointer re-wraps
// against the post-removal length after every removal.
func KillOff(rng *rand.Rand, population []model.Individual, count int) ([]model.Individual, error) {
	if count <= 0 || count >= len(population) {
		return population, fmt.Errorf("%w: count=%d, must be greater than zero and less than the population size (%d)",
			ErrInvalidParameter, count, len(population))
	}

	oldLen := len(population)
	ratio := oldLen / count
	i := rng.Intn(oldLen)
	for removed := 0; removed < count; removed++ {
		population = append(population[:i], population[i+1:]...)
		i = cycleStep(i, ratio, len(population))
	}

	if len(population) != oldLen-count {
		return population, fmt.Errorf("%w: expected %d individuals after culling %d, have %d",
			ErrPopulationInvariant, oldLen-count, count, len(population))
	}
	return population, nil
}
