package bench

import (
	"math/rand"

	"anagen/internal/model"
)

const onemaxBits = 64

func init() {
	Register("onemax", func() Problem { return onemaxProblem{} })
}

// onemaxProblem maximizes the number of set bits in a fixed-width
// bitstring. Crossover is single-point, mutation flips one bit.
type onemaxProblem struct{}

func (onemaxProblem) Name() string {
	return "onemax"
}

func (onemaxProblem) Description() string {
	return "maximize set bits in a 64-bit string"
}

func (onemaxProblem) Direction() model.Direction {
	return model.Maximize
}

func (onemaxProblem) NewPopulation(rng *rand.Rand, size int) []model.Individual {
	population := make([]model.Individual, 0, size)
	for i := 0; i < size; i++ {
		bits := make([]byte, onemaxBits)
		for j := range bits {
			bits[j] = byte(rng.Intn(2))
		}
		population = append(population, &onemaxIndividual{bits: bits, rng: rng})
	}
	return population
}

type onemaxIndividual struct {
	bits []byte
	rng  *rand.Rand
}

func (o *onemaxIndividual) Fitness() float64 {
	ones := 0
	for _, b := range o.bits {
		if b != 0 {
			ones++
		}
	}
	return float64(ones)
}

func (o *onemaxIndividual) Crossover(other model.Individual) model.Individual {
	mate, ok := other.(*onemaxIndividual)
	if !ok {
		return o.Clone()
	}
	point := o.rng.Intn(len(o.bits))
	bits := make([]byte, len(o.bits))
	copy(bits, o.bits[:point])
	copy(bits[point:], mate.bits[point:])
	return &onemaxIndividual{bits: bits, rng: o.rng}
}

func (o *onemaxIndividual) Mutate() model.Individual {
	bits := make([]byte, len(o.bits))
	copy(bits, o.bits)
	i := o.rng.Intn(len(bits))
	bits[i] ^= 1
	return &onemaxIndividual{bits: bits, rng: o.rng}
}

func (o *onemaxIndividual) Clone() model.Individual {
	bits := make([]byte, len(o.bits))
	copy(bits, o.bits)
	return &onemaxIndividual{bits: bits, rng: o.rng}
}
