// Package sim runs single-threaded genetic algorithm simulations over a
// caller-supplied population of individuals.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"anagen/internal/evo"
	"anagen/internal/model"
)

// ErrRunNotCompleted reports that the elapsed duration was requested
// before a run finished.
var ErrRunNotCompleted = errors.New("run has not completed")

// Simulator owns a population and evolves it generation by generation:
// selection, externally-supplied crossover and mutation, culling, and
// an optional early-stop check. It is not safe for concurrent use; a
// run executes to completion within one call.
type Simulator struct {
	population []model.Individual
	strategy   evo.Strategy
	direction  model.Direction
	rng        *rand.Rand

	maxIterations int
	iterations    int

	earlyStop bool
	stopper   *evo.EarlyStopper

	trackHistory bool
	history      []float64

	completed bool
	elapsed   time.Duration
}

// Run evolves the population until maxIterations generations have
// completed or the early stopper fires, and returns a duplicate of the
// best individual. A selection or culling failure aborts the run
// immediately without applying the generation in progress; the elapsed
// duration is recorded only on success.
func (s *Simulator) Run() (model.Individual, error) {
	start := time.Now()
	for s.iterations < s.maxIterations {
		pairs, err := s.strategy.Select(s.rng, s.population, s.direction)
		if err != nil {
			return nil, fmt.Errorf("selection (%s): %w", s.strategy.Name(), err)
		}

		children := make([]model.Individual, 0, len(pairs))
		for _, pair := range pairs {
			children = append(children, pair.A.Crossover(pair.B).Mutate())
		}

		survivors, err := evo.KillOff(s.rng, s.population, len(children))
		if err != nil {
			return nil, fmt.Errorf("culling: %w", err)
		}
		s.population = append(survivors, children...)
		s.iterations++

		if s.earlyStop || s.trackHistory {
			best := evo.BestFitness(s.population, s.direction)
			if s.trackHistory {
				s.history = append(s.history, best)
			}
			if s.earlyStop && s.stopper.Update(best) {
				break
			}
		}
	}
	s.elapsed = time.Since(start)
	s.completed = true
	return evo.Best(s.population, s.direction).Clone(), nil
}

// Iterations returns the number of completed generations, zero before
// the first run.
func (s *Simulator) Iterations() int {
	return s.iterations
}

// Elapsed returns the wall-clock duration of the last completed run.
func (s *Simulator) Elapsed() (time.Duration, error) {
	if !s.completed {
		return 0, ErrRunNotCompleted
	}
	return s.elapsed, nil
}

// History returns the best fitness recorded after each generation.
// Empty unless history tracking was enabled on the builder.
func (s *Simulator) History() []float64 {
	return s.history
}
