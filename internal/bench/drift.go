package bench

import (
	"math"
	"math/rand"

	"anagen/internal/model"
)

func init() {
	Register("drift", func() Problem { return driftProblem{} })
}

// driftProblem evolves integer states toward zero: fitness is the
// absolute state value, crossover takes the smaller parent state, and
// mutation moves one step toward zero. Under Minimize every selection
// strategy should converge the best state to exactly zero.
type driftProblem struct{}

func (driftProblem) Name() string {
	return "drift"
}

func (driftProblem) Description() string {
	return "integer states drifting toward zero; minimize |state|"
}

func (driftProblem) Direction() model.Direction {
	return model.Minimize
}

func (driftProblem) NewPopulation(_ *rand.Rand, size int) []model.Individual {
	population := make([]model.Individual, 0, size)
	for i := 0; i < size; i++ {
		population = append(population, DriftIndividual{State: i + 10})
	}
	return population
}

// DriftIndividual is the drift problem's solution: a single integer.
type DriftIndividual struct {
	State int
}

func (d DriftIndividual) Fitness() float64 {
	return math.Abs(float64(d.State))
}

func (d DriftIndividual) Crossover(other model.Individual) model.Individual {
	o, ok := other.(DriftIndividual)
	if !ok {
		return d.Clone()
	}
	if o.State < d.State {
		return DriftIndividual{State: o.State}
	}
	return DriftIndividual{State: d.State}
}

// Mutate steps the state toward zero. A zero state steps to -1, so the
// roulette fitness ratio always has a nonzero maximum.
func (d DriftIndividual) Mutate() model.Individual {
	if d.State < 0 {
		return DriftIndividual{State: d.State + 1}
	}
	return DriftIndividual{State: d.State - 1}
}

func (d DriftIndividual) Clone() model.Individual {
	return DriftIndividual{State: d.State}
}
