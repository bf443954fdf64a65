package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"anagen/internal/bench"
	"anagen/internal/storage"
	api "anagen/pkg/anagen"
)

const benchmarksDir = "benchmarks"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "problems":
		return runProblems(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: anagenctl <run|runs|show|fitness|problems> [flags]", msg)
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	problem := fs.String("problem", "drift", "benchmark problem name (see problems command)")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	population := fs.Int("pop", 100, "population size")
	iterations := fs.Int("iters", 100, "maximum generation count")
	seed := fs.Int64("seed", 1, "rng seed")
	selection := fs.String("selection", "truncation", "parent selection strategy: truncation|tournament|stochastic|roulette")
	count := fs.Int("count", 5, "selection count (truncation/stochastic/roulette)")
	rounds := fs.Int("rounds", 5, "tournament rounds")
	sample := fs.Int("sample", 3, "tournament sample size")
	direction := fs.String("direction", "", "fitness direction override: maximize|minimize (default: problem's own)")
	earlyStopDelta := fs.Float64("early-stop-delta", 0.0, "early-stop fitness delta threshold")
	earlyStopPatience := fs.Int("early-stop-patience", 0, "early-stop stagnation patience in generations (0 disables)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := api.New(api.Options{
		StoreKind:     *storeKind,
		DBPath:        *dbPath,
		BenchmarksDir: benchmarksDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, api.RunRequest{
		Problem:           *problem,
		RunID:             *runID,
		Population:        *population,
		Iterations:        *iterations,
		Seed:              *seed,
		Selection:         *selection,
		SelectionCount:    *count,
		TournamentRounds:  *rounds,
		TournamentSample:  *sample,
		Direction:         *direction,
		EarlyStopDelta:    *earlyStopDelta,
		EarlyStopPatience: *earlyStopPatience,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run completed run_id=%s problem=%s pop=%d iterations=%d seed=%d elapsed=%s\n",
		summary.RunID, summary.Problem, *population, summary.Iterations, *seed, summary.Elapsed)
	for i, best := range summary.BestByGeneration {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	fmt.Printf("final_best_fitness=%.6f\n", summary.BestFitness)
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := api.New(api.Options{
		StoreKind:     *storeKind,
		DBPath:        *dbPath,
		BenchmarksDir: benchmarksDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	entries, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		created := e.CreatedAtUTC
		if t, err := time.Parse(time.RFC3339, e.CreatedAtUTC); err == nil {
			created = humanize.Time(t)
		}
		fmt.Printf("run_id=%s created=%s problem=%s selection=%s seed=%d pop=%s iterations=%s final_best_fitness=%.6f\n",
			e.RunID,
			created,
			e.Problem,
			e.Selection,
			e.Seed,
			humanize.Comma(int64(e.PopulationSize)),
			humanize.Comma(int64(e.Iterations)),
			e.FinalBestFitness,
		)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show the most recent run")
	jsonOut := fs.Bool("json", false, "emit the run record as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := api.New(api.Options{
		StoreKind:     *storeKind,
		DBPath:        *dbPath,
		BenchmarksDir: benchmarksDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.RunRecord(ctx, api.RunRecordRequest{
		RunID:  *runID,
		Latest: *latest,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	fmt.Printf("run_id=%s problem=%s selection=%s direction=%s seed=%d pop=%d max_iterations=%d iterations=%d\n",
		record.RunID, record.Problem, record.Selection, record.Direction,
		record.Seed, record.PopulationSize, record.MaxIterations, record.Iterations)
	fmt.Printf("final_best_fitness=%.6f elapsed=%s created=%s\n",
		record.BestFitness, time.Duration(record.ElapsedNS), record.CreatedAtUTC)
	if record.EarlyStopPatience > 0 {
		fmt.Printf("early_stop_delta=%g early_stop_patience=%d\n",
			record.EarlyStopDelta, record.EarlyStopPatience)
	}
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show fitness history for the most recent run")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit fitness history as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "anagen.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := api.New(api.Options{
		StoreKind:     *storeKind,
		DBPath:        *dbPath,
		BenchmarksDir: benchmarksDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, api.FitnessHistoryRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("no fitness history")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	for i, best := range history {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	return nil
}

func runProblems(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("problems", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, name := range bench.Names() {
		problem, err := bench.Get(name)
		if err != nil {
			return err
		}
		fmt.Printf("problem=%s direction=%s description=%q\n", problem.Name(), problem.Direction(), problem.Description())
	}
	return nil
}
