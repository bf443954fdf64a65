package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"anagen/internal/model"
)

// ErrInvalidParameter reports a selection or culling parameter outside
// its documented bound.
var ErrInvalidParameter = errors.New("invalid parameter")

// Strategy chooses parent pairs from the population for breeding. A
// strategy never mutates the population; returned parents are clones.
type Strategy interface {
	Name() string
	Select(rng *rand.Rand, population []model.Individual, direction model.Direction) ([]model.ParentPair, error)
}

// Truncation pairs the best 2*Count individuals in fitness order,
// yielding exactly Count pairs.
type Truncation struct {
	Count int
}

func (Truncation) Name() string {
	return "truncation"
}

func (s Truncation) Select(_ *rand.Rand, population []model.Individual, direction model.Direction) ([]model.ParentPair, error) {
	if s.Count <= 0 || 2*s.Count >= len(population) {
		return nil, fmt.Errorf("%w: count=%d, must be greater than zero and less than half the population size (%d)",
			ErrInvalidParameter, s.Count, len(population))
	}

	sorted := SortedByFitness(population)
	if direction == model.Maximize {
		reverse(sorted)
	}

	pairs := make([]model.ParentPair, 0, s.Count)
	for i := 0; i < 2*s.Count; i += 2 {
		pairs = append(pairs, model.ParentPair{
			A: sorted[i].Clone(),
			B: sorted[i+1].Clone(),
		})
	}
	return pairs, nil
}

// Tournament runs Rounds independent tournaments. Each round samples
// SampleSize individuals uniformly with replacement and pairs the two
// best of the sample per direction, yielding exactly Rounds pairs.
type Tournament struct {
	Rounds     int
	SampleSize int
}

func (Tournament) Name() string {
	return "tournament"
}

func (s Tournament) Select(rng *rand.Rand, population []model.Individual, direction model.Direction) ([]model.ParentPair, error) {
	if s.Rounds <= 0 || 2*s.Rounds >= len(population) {
		return nil, fmt.Errorf("%w: rounds=%d, must be greater than zero and less than half the population size (%d)",
			ErrInvalidParameter, s.Rounds, len(population))
	}
	if s.SampleSize <= 0 || s.SampleSize >= len(population) {
		return nil, fmt.Errorf("%w: sampleSize=%d, must be greater than zero and less than the population size (%d)",
			ErrInvalidParameter, s.SampleSize, len(population))
	}

	pairs := make([]model.ParentPair, 0, s.Rounds)
	for round := 0; round < s.Rounds; round++ {
		sample := make([]model.Individual, 0, s.SampleSize)
		for i := 0; i < s.SampleSize; i++ {
			sample = append(sample, population[rng.Intn(len(population))])
		}
		ordered := SortedByFitness(sample)
		if direction == model.Maximize {
			pairs = append(pairs, model.ParentPair{
				A: ordered[len(ordered)-1].Clone(),
				B: ordered[len(ordered)-2].Clone(),
			})
		} else {
			pairs = append(pairs, model.ParentPair{
				A: ordered[0].Clone(),
				B: ordered[1].Clone(),
			})
		}
	}
	return pairs, nil
}

// StochasticUniversal selects Count individuals with a single cyclic
// pointer walk over the population, pairing each pointer position with
// the next. The even spacing gives lower sampling variance than
// independent draws. Yields ceil(Count/2) pairs.
type StochasticUniversal struct {
	Count int
}

func (StochasticUniversal) Name() string {
	return "stochastic"
}

func (s StochasticUniversal) Select(rng *rand.Rand, population []model.Individual, _ model.Direction) ([]model.ParentPair, error) {
	if s.Count <= 0 || s.Count >= len(population) {
		return nil, fmt.Errorf("%w: count=%d, must be greater than zero and less than the population size (%d)",
			ErrInvalidParameter, s.Count, len(population))
	}

	n := len(population)
	ratio := n / s.Count
	i := rng.Intn(n)

	var pairs []model.ParentPair
	// Counts individuals, two per pair, against the raw count; an odd
	// count therefore rounds up to one extra pair.
	for selected := 0; selected < s.Count; selected += 2 {
		pairs = append(pairs, model.ParentPair{
			A: population[i].Clone(),
			B: population[cycleStep(i, ratio, n)].Clone(),
		})
		i = cycleStep(i, ratio, n)
	}
	return pairs, nil
}

// Roulette accepts uniformly drawn individuals with probability
// fitness/maxFitness until Count are selected, pairing them in
// acceptance order. Assumes non-negative fitness. The acceptance ratio
// is direction-blind: under Minimize it still favors numerically large
// fitness, matching the historical behavior of this sampler.
type Roulette struct {
	Count int
}

func (Roulette) Name() string {
	return "roulette"
}

func (s Roulette) Select(rng *rand.Rand, population []model.Individual, _ model.Direction) ([]model.ParentPair, error) {
	if s.Count <= 0 || s.Count >= len(population) {
		return nil, fmt.Errorf("%w: count=%d, must be greater than zero and less than the population size (%d)",
			ErrInvalidParameter, s.Count, len(population))
	}

	sorted := SortedByFitness(population)
	maxFitness := sorted[len(sorted)-1].Fitness()

	var pairs []model.ParentPair
	for selected := 0; selected < s.Count; selected += 2 {
		accepted := make([]model.Individual, 0, 2)
		for len(accepted) < 2 {
			i := rng.Intn(len(population))
			c := rng.Float64()
			if c <= population[i].Fitness()/maxFitness {
				accepted = append(accepted, population[i].Clone())
			}
		}
		pairs = append(pairs, model.ParentPair{A: accepted[0], B: accepted[1]})
	}
	return pairs, nil
}

// cycleStep advances a stochastic-universal pointer by one spacing step
// around a cyclic sequence of length n. Culling reuses the same walk.
func cycleStep(i, ratio, n int) int {
	return (i + ratio - 1) % n
}

func reverse(individuals []model.Individual) {
	for i, j := 0, len(individuals)-1; i < j; i, j = i+1, j-1 {
		individuals[i], individuals[j] = individuals[j], individuals[i]
	}
}
