// Package anagen is the public client surface over the simulation
// engine, the benchmark problem catalog, and run recording.
package anagen

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"anagen/internal/bench"
	"anagen/internal/evo"
	"anagen/internal/model"
	"anagen/internal/sim"
	"anagen/internal/stats"
	"anagen/internal/storage"
)

const (
	defaultBenchmarksDir = "benchmarks"
	defaultDBPath        = "anagen.db"
)

type Options struct {
	StoreKind     string
	DBPath        string
	BenchmarksDir string
}

type Client struct {
	store         storage.Store
	benchmarksDir string

	initOnce sync.Once
	initErr  error
}

func New(opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	benchmarksDir := opts.BenchmarksDir
	if benchmarksDir == "" {
		benchmarksDir = defaultBenchmarksDir
	}

	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store, benchmarksDir: benchmarksDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type RunRequest struct {
	Problem           string
	RunID             string
	Population        int
	Iterations        int
	Seed              int64
	Selection         string
	SelectionCount    int
	TournamentRounds  int
	TournamentSample  int
	Direction         string
	EarlyStopDelta    float64
	EarlyStopPatience int
}

type RunSummary struct {
	RunID            string
	Problem          string
	BestFitness      float64
	Iterations       int
	Elapsed          time.Duration
	ArtifactsDir     string
	BestByGeneration []float64
}

// Run builds a population for the requested problem, evolves it, and
// records artifacts plus a run record before returning the summary.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := c.init(ctx); err != nil {
		return RunSummary{}, err
	}

	problem, err := bench.Get(req.Problem)
	if err != nil {
		return RunSummary{}, err
	}

	if req.Population <= 0 {
		req.Population = 100
	}
	if req.Iterations <= 0 {
		req.Iterations = 100
	}
	if req.Seed == 0 {
		req.Seed = 1
	}
	if req.Selection == "" {
		req.Selection = "truncation"
	}

	strategy, err := buildStrategy(req)
	if err != nil {
		return RunSummary{}, err
	}

	direction := problem.Direction()
	if req.Direction != "" {
		parsed, ok := model.ParseDirection(req.Direction)
		if !ok {
			return RunSummary{}, fmt.Errorf("unknown direction: %s", req.Direction)
		}
		direction = parsed
	}

	rng := rand.New(rand.NewSource(req.Seed))
	population := problem.NewPopulation(rng, req.Population)

	builder := sim.NewBuilder(population).
		MaxIterations(req.Iterations).
		Selection(strategy).
		Direction(direction).
		Rand(rng).
		TrackHistory()
	if req.EarlyStopPatience > 0 {
		builder.EarlyStop(req.EarlyStopDelta, req.EarlyStopPatience)
	}

	simulator, err := builder.Build()
	if err != nil {
		return RunSummary{}, err
	}

	best, err := simulator.Run()
	if err != nil {
		return RunSummary{}, err
	}
	elapsed, err := simulator.Elapsed()
	if err != nil {
		return RunSummary{}, err
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	createdAt := time.Now().UTC().Format(time.RFC3339)
	history := simulator.History()

	artifactsDir, err := stats.WriteRunArtifacts(c.benchmarksDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:             runID,
			Problem:           problem.Name(),
			PopulationSize:    req.Population,
			MaxIterations:     req.Iterations,
			Seed:              req.Seed,
			Selection:         strategy.Name(),
			SelectionCount:    req.SelectionCount,
			TournamentRounds:  req.TournamentRounds,
			TournamentSample:  req.TournamentSample,
			Direction:         direction.String(),
			EarlyStopDelta:    req.EarlyStopDelta,
			EarlyStopPatience: req.EarlyStopPatience,
		},
		BestByGeneration: history,
		FinalBestFitness: best.Fitness(),
		Iterations:       simulator.Iterations(),
		ElapsedNS:        elapsed.Nanoseconds(),
	})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.benchmarksDir, stats.RunIndexEntry{
		RunID:            runID,
		Problem:          problem.Name(),
		PopulationSize:   req.Population,
		MaxIterations:    req.Iterations,
		Iterations:       simulator.Iterations(),
		Seed:             req.Seed,
		Selection:        strategy.Name(),
		FinalBestFitness: best.Fitness(),
		ElapsedNS:        elapsed.Nanoseconds(),
		CreatedAtUTC:     createdAt,
	}); err != nil {
		return RunSummary{}, err
	}

	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:             runID,
		Problem:           problem.Name(),
		PopulationSize:    req.Population,
		MaxIterations:     req.Iterations,
		Iterations:        simulator.Iterations(),
		Seed:              req.Seed,
		Selection:         strategy.Name(),
		Direction:         direction.String(),
		EarlyStopDelta:    req.EarlyStopDelta,
		EarlyStopPatience: req.EarlyStopPatience,
		BestFitness:       best.Fitness(),
		ElapsedNS:         elapsed.Nanoseconds(),
		CreatedAtUTC:      createdAt,
	}
	if err := c.store.SaveRunRecord(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, history); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:            runID,
		Problem:          problem.Name(),
		BestFitness:      best.Fitness(),
		Iterations:       simulator.Iterations(),
		Elapsed:          elapsed,
		ArtifactsDir:     artifactsDir,
		BestByGeneration: history,
	}, nil
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

// FitnessHistory returns the best-by-generation series for a run,
// preferring the store and falling back to the artifact files.
func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}

	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		history, ok, err = stats.ReadFitnessHistory(c.benchmarksDir, runID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no fitness history for run %s", runID)
		}
	}

	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return history, nil
}

// Runs lists recorded runs, most recent first, preferring the store
// and falling back to the artifact index.
func (c *Client) Runs(ctx context.Context, limit int) ([]stats.RunIndexEntry, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}

	records, err := c.store.ListRunRecords(ctx)
	if err != nil {
		return nil, err
	}

	var entries []stats.RunIndexEntry
	if len(records) > 0 {
		entries = make([]stats.RunIndexEntry, 0, len(records))
		for _, record := range records {
			entries = append(entries, indexEntryFromRecord(record))
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].CreatedAtUTC == entries[j].CreatedAtUTC {
				return entries[i].RunID < entries[j].RunID
			}
			return entries[i].CreatedAtUTC > entries[j].CreatedAtUTC
		})
	} else {
		entries, err = stats.ListRunIndex(c.benchmarksDir)
		if err != nil {
			return nil, err
		}
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type RunRecordRequest struct {
	RunID  string
	Latest bool
}

// RunRecord returns the full record of a run, preferring the store and
// falling back to the artifact files.
func (c *Client) RunRecord(ctx context.Context, req RunRecordRequest) (model.RunRecord, error) {
	if err := c.init(ctx); err != nil {
		return model.RunRecord{}, err
	}

	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return model.RunRecord{}, err
	}

	record, ok, err := c.store.GetRunRecord(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if ok {
		return record, nil
	}
	return c.recordFromArtifacts(runID)
}

func (c *Client) recordFromArtifacts(runID string) (model.RunRecord, error) {
	entries, err := stats.ListRunIndex(c.benchmarksDir)
	if err != nil {
		return model.RunRecord{}, err
	}
	for _, entry := range entries {
		if entry.RunID != runID {
			continue
		}
		record := model.RunRecord{
			RunID:          entry.RunID,
			Problem:        entry.Problem,
			PopulationSize: entry.PopulationSize,
			MaxIterations:  entry.MaxIterations,
			Iterations:     entry.Iterations,
			Seed:           entry.Seed,
			Selection:      entry.Selection,
			BestFitness:    entry.FinalBestFitness,
			ElapsedNS:      entry.ElapsedNS,
			CreatedAtUTC:   entry.CreatedAtUTC,
		}
		config, ok, err := stats.ReadRunConfig(c.benchmarksDir, runID)
		if err != nil {
			return model.RunRecord{}, err
		}
		if ok {
			record.Direction = config.Direction
			record.EarlyStopDelta = config.EarlyStopDelta
			record.EarlyStopPatience = config.EarlyStopPatience
		}
		return record, nil
	}
	return model.RunRecord{}, fmt.Errorf("no run record for %s", runID)
}

func indexEntryFromRecord(record model.RunRecord) stats.RunIndexEntry {
	return stats.RunIndexEntry{
		RunID:            record.RunID,
		Problem:          record.Problem,
		PopulationSize:   record.PopulationSize,
		MaxIterations:    record.MaxIterations,
		Iterations:       record.Iterations,
		Seed:             record.Seed,
		Selection:        record.Selection,
		FinalBestFitness: record.BestFitness,
		ElapsedNS:        record.ElapsedNS,
		CreatedAtUTC:     record.CreatedAtUTC,
	}
}

func (c *Client) resolveRunID(runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either a run id or latest, not both")
	}
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("a run id or latest is required")
	}

	entries, err := stats.ListRunIndex(c.benchmarksDir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errors.New("no recorded runs")
	}
	return entries[0].RunID, nil
}

func (c *Client) init(ctx context.Context) error {
	c.initOnce.Do(func() {
		c.initErr = c.store.Init(ctx)
	})
	return c.initErr
}

func buildStrategy(req RunRequest) (evo.Strategy, error) {
	count := req.SelectionCount
	if count <= 0 {
		count = 5
	}
	switch req.Selection {
	case "truncation":
		return evo.Truncation{Count: count}, nil
	case "tournament":
		rounds := req.TournamentRounds
		if rounds <= 0 {
			rounds = 5
		}
		sample := req.TournamentSample
		if sample <= 0 {
			sample = 3
		}
		return evo.Tournament{Rounds: rounds, SampleSize: sample}, nil
	case "stochastic":
		return evo.StochasticUniversal{Count: count}, nil
	case "roulette":
		return evo.Roulette{Count: count}, nil
	default:
		return nil, fmt.Errorf("unknown selection strategy: %s", req.Selection)
	}
}
