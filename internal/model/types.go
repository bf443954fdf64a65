package model

// Individual is a candidate solution supplied by the caller. The engine
// never inspects its representation; it only scores, recombines, and
// perturbs through this contract. Crossover and Mutate must return new
// individuals and leave their receivers untouched.
type Individual interface {
	// Fitness returns the scalar quality score. NaN is tolerated by the
	// engine and treated as equal to everything during ordering.
	Fitness() float64
	// Crossover combines the receiver with other into one child.
	Crossover(other Individual) Individual
	// Mutate returns a perturbed copy of the receiver.
	Mutate() Individual
	// Clone returns an independent copy.
	Clone() Individual
}

// Direction determines which extremum of fitness counts as best.
type Direction int

const (
	Maximize Direction = iota
	Minimize
)

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	default:
		return "unknown"
	}
}

// ParseDirection maps a config string onto a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "", "maximize", "max":
		return Maximize, true
	case "minimize", "min":
		return Minimize, true
	default:
		return Maximize, false
	}
}

// ParentPair holds two individuals selected for breeding, duplicated
// from the population and independent of it afterwards.
type ParentPair struct {
	A Individual
	B Individual
}

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one completed simulation run for the harness.
type RunRecord struct {
	VersionedRecord
	RunID             string  `json:"run_id"`
	Problem           string  `json:"problem"`
	PopulationSize    int     `json:"population_size"`
	MaxIterations     int     `json:"max_iterations"`
	Iterations        int     `json:"iterations"`
	Seed              int64   `json:"seed"`
	Selection         string  `json:"selection"`
	Direction         string  `json:"direction"`
	EarlyStopDelta    float64 `json:"early_stop_delta,omitempty"`
	EarlyStopPatience int     `json:"early_stop_patience,omitempty"`
	BestFitness       float64 `json:"best_fitness"`
	ElapsedNS         int64   `json:"elapsed_ns"`
	CreatedAtUTC      string  `json:"created_at_utc"`
}
