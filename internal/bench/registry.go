// Package bench provides built-in benchmark problems for exercising the
// simulation engine from the CLI and tests.
package bench

import (
	"fmt"
	"math/rand"
	"sort"

	"anagen/internal/model"
)

// Problem describes a named benchmark: how fitness is directed and how
// to build an initial population of its individuals.
type Problem interface {
	Name() string
	Description() string
	Direction() model.Direction
	NewPopulation(rng *rand.Rand, size int) []model.Individual
}

var registry = map[string]func() Problem{}

// Register adds a problem constructor to the registry.
func Register(name string, constructor func() Problem) {
	registry[name] = constructor
}

// Get returns a problem by name.
func Get(name string) (Problem, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered problem names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
