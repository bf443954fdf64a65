package sim

import (
	"errors"
	"math/rand"
	"time"

	"anagen/internal/evo"
	"anagen/internal/model"
)

// Builder assembles a Simulator from an initial population and
// configuration options. Zero-value defaults: 100 iterations,
// truncation selection with count 5, maximize, early stopping off.
type Builder struct {
	population    []model.Individual
	strategy      evo.Strategy
	direction     model.Direction
	rng           *rand.Rand
	maxIterations int

	earlyStop         bool
	earlyStopDelta    float64
	earlyStopPatience int

	trackHistory bool
}

// NewBuilder starts a builder over the given initial population. The
// population is owned by the built Simulator afterwards.
func NewBuilder(population []model.Individual) *Builder {
	return &Builder{
		population:    population,
		strategy:      evo.Truncation{Count: 5},
		direction:     model.Maximize,
		maxIterations: 100,
	}
}

// MaxIterations caps the number of generations a run may perform.
func (b *Builder) MaxIterations(n int) *Builder {
	b.maxIterations = n
	return b
}

// Selection sets the parent selection strategy.
func (b *Builder) Selection(strategy evo.Strategy) *Builder {
	b.strategy = strategy
	return b
}

// Direction sets whether fitness is maximized or minimized.
func (b *Builder) Direction(direction model.Direction) *Builder {
	b.direction = direction
	return b
}

// EarlyStop enables early stopping: the run terminates once the best
// fitness has changed by less than delta for patience consecutive
// generations.
func (b *Builder) EarlyStop(delta float64, patience int) *Builder {
	b.earlyStop = true
	b.earlyStopDelta = delta
	b.earlyStopPatience = patience
	return b
}

// Rand injects the random source consumed by selection and culling.
func (b *Builder) Rand(rng *rand.Rand) *Builder {
	b.rng = rng
	return b
}

// Seed is shorthand for injecting a source seeded with the given value.
func (b *Builder) Seed(seed int64) *Builder {
	b.rng = rand.New(rand.NewSource(seed))
	return b
}

// TrackHistory records the best fitness after every generation so it
// can be read back through Simulator.History.
func (b *Builder) TrackHistory() *Builder {
	b.trackHistory = true
	return b
}

// Build transfers ownership of the population into a new Simulator.
func (b *Builder) Build() (*Simulator, error) {
	if len(b.population) == 0 {
		return nil, errors.New("initial population must not be empty")
	}
	if b.maxIterations <= 0 {
		return nil, errors.New("max iterations must be greater than zero")
	}
	if b.strategy == nil {
		return nil, errors.New("selection strategy is required")
	}
	if b.earlyStop && b.earlyStopPatience <= 0 {
		return nil, errors.New("early stop patience must be greater than zero")
	}

	rng := b.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Simulator{
		population:    b.population,
		strategy:      b.strategy,
		direction:     b.direction,
		rng:           rng,
		maxIterations: b.maxIterations,
		trackHistory:  b.trackHistory,
	}
	if b.earlyStop {
		s.earlyStop = true
		s.stopper = evo.NewEarlyStopper(b.earlyStopDelta, b.earlyStopPatience)
	}
	return s, nil
}
