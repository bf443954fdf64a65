package bench

import (
	"math/rand"

	"anagen/internal/model"
)

const (
	sphereDims   = 8
	sphereSpread = 5.0
	sphereStep   = 0.1
)

func init() {
	Register("sphere", func() Problem { return sphereProblem{} })
}

// sphereProblem minimizes the sum of squares of a real vector.
// Crossover averages the parents, mutation jitters one coordinate.
type sphereProblem struct{}

func (sphereProblem) Name() string {
	return "sphere"
}

func (sphereProblem) Description() string {
	return "minimize sum of squares of an 8-dimensional real vector"
}

func (sphereProblem) Direction() model.Direction {
	return model.Minimize
}

func (sphereProblem) NewPopulation(rng *rand.Rand, size int) []model.Individual {
	population := make([]model.Individual, 0, size)
	for i := 0; i < size; i++ {
		xs := make([]float64, sphereDims)
		for j := range xs {
			xs[j] = (rng.Float64()*2 - 1) * sphereSpread
		}
		population = append(population, &sphereIndividual{xs: xs, rng: rng})
	}
	return population
}

type sphereIndividual struct {
	xs  []float64
	rng *rand.Rand
}

func (s *sphereIndividual) Fitness() float64 {
	sum := 0.0
	for _, x := range s.xs {
		sum += x * x
	}
	return sum
}

func (s *sphereIndividual) Crossover(other model.Individual) model.Individual {
	mate, ok := other.(*sphereIndividual)
	if !ok {
		return s.Clone()
	}
	xs := make([]float64, len(s.xs))
	for i := range xs {
		xs[i] = (s.xs[i] + mate.xs[i]) / 2
	}
	return &sphereIndividual{xs: xs, rng: s.rng}
}

func (s *sphereIndividual) Mutate() model.Individual {
	xs := make([]float64, len(s.xs))
	copy(xs, s.xs)
	i := s.rng.Intn(len(xs))
	xs[i] += s.rng.NormFloat64() * sphereStep
	return &sphereIndividual{xs: xs, rng: s.rng}
}

func (s *sphereIndividual) Clone() model.Individual {
	xs := make([]float64, len(s.xs))
	copy(xs, s.xs)
	return &sphereIndividual{xs: xs, rng: s.rng}
}
