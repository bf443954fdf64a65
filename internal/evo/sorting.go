package evo

import (
	"sort"

	"anagen/internal/model"
)

// fitnessLess orders individuals by ascending fitness. NaN compares
// false against everything, so non-orderable scores end up treated as
// equal instead of erroring.
func fitnessLess(a, b model.Individual) bool {
	return a.Fitness() < b.Fitness()
}

// SortedByFitness returns a snapshot of the population ordered by
// ascending fitness. The population itself is left untouched.
func SortedByFitness(population []model.Individual) []model.Individual {
	snapshot := make([]model.Individual, len(population))
	copy(snapshot, population)
	sort.SliceStable(snapshot, func(i, j int) bool {
		return fitnessLess(snapshot[i], snapshot[j])
	})
	return snapshot
}

// Best returns the best individual of the population for the given
// direction: the highest fitness under Maximize, the lowest under
// Minimize. The population must be non-empty.
func Best(population []model.Individual, direction model.Direction) model.Individual {
	snapshot := SortedByFitness(population)
	if direction == model.Maximize {
		return snapshot[len(snapshot)-1]
	}
	return snapshot[0]
}

// BestFitness returns the fitness of the best individual per direction.
func BestFitness(population []model.Individual, direction model.Direction) float64 {
	return Best(population, direction).Fitness()
}
