package anagen

import (
	"context"
	"testing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{
		StoreKind:     "memory",
		BenchmarksDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientRunRecordsArtifacts(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{
		Problem:    "drift",
		RunID:      "test-run",
		Population: 100,
		Iterations: 40,
		Seed:       1,
		Selection:  "truncation",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID != "test-run" {
		t.Fatalf("expected explicit run id, got %s", summary.RunID)
	}
	if summary.Iterations != 40 {
		t.Fatalf("expected 40 iterations, got %d", summary.Iterations)
	}
	if len(summary.BestByGeneration) != 40 {
		t.Fatalf("expected 40 history entries, got %d", len(summary.BestByGeneration))
	}
	if summary.Elapsed < 0 {
		t.Fatalf("expected non-negative elapsed, got %v", summary.Elapsed)
	}

	entries, err := client.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(entries) != 1 || entries[0].RunID != "test-run" {
		t.Fatalf("unexpected run index %+v", entries)
	}

	history, err := client.FitnessHistory(ctx, FitnessHistoryRequest{Latest: true})
	if err != nil {
		t.Fatalf("fitness history: %v", err)
	}
	if len(history) != 40 {
		t.Fatalf("expected 40 history entries, got %d", len(history))
	}
}

func TestClientRunGeneratesRunID(t *testing.T) {
	client := newTestClient(t)

	summary, err := client.Run(context.Background(), RunRequest{
		Problem:    "drift",
		Population: 50,
		Iterations: 5,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected a generated run id")
	}
}

func TestClientRunUnknownProblem(t *testing.T) {
	client := newTestClient(t)

	if _, err := client.Run(context.Background(), RunRequest{Problem: "warp"}); err == nil {
		t.Fatal("expected error for unknown problem")
	}
}

func TestClientRunUnknownSelection(t *testing.T) {
	client := newTestClient(t)

	if _, err := client.Run(context.Background(), RunRequest{
		Problem:   "drift",
		Selection: "rank",
	}); err == nil {
		t.Fatal("expected error for unknown selection strategy")
	}
}

func TestClientFitnessHistoryValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.FitnessHistory(ctx, FitnessHistoryRequest{}); err == nil {
		t.Fatal("expected error without run id or latest")
	}
	if _, err := client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: "x", Latest: true}); err == nil {
		t.Fatal("expected error when both run id and latest are set")
	}
	if _, err := client.FitnessHistory(ctx, FitnessHistoryRequest{Latest: true}); err == nil {
		t.Fatal("expected error when no runs are recorded")
	}
}

func TestClientRunRecordReadsFromStore(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{
		Problem:    "drift",
		RunID:      "stored-run",
		Population: 100,
		Iterations: 10,
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	record, err := client.RunRecord(ctx, RunRecordRequest{RunID: "stored-run"})
	if err != nil {
		t.Fatalf("run record: %v", err)
	}
	if record.RunID != "stored-run" || record.Problem != "drift" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Direction != "minimize" {
		t.Fatalf("expected direction minimize, got %q", record.Direction)
	}
	if record.BestFitness != summary.BestFitness {
		t.Fatalf("expected best fitness %v, got %v", summary.BestFitness, record.BestFitness)
	}

	if _, err := client.RunRecord(ctx, RunRecordRequest{RunID: "no-such-run"}); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestClientReadsFallBackToArtifacts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writer, err := New(Options{StoreKind: "memory", BenchmarksDir: dir})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if _, err := writer.Run(ctx, RunRequest{
		Problem:    "drift",
		RunID:      "artifact-run",
		Population: 100,
		Iterations: 10,
		Seed:       1,
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	// A fresh memory store holds nothing, so reads must come from the
	// artifact files.
	reader, err := New(Options{StoreKind: "memory", BenchmarksDir: dir})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	t.Cleanup(func() {
		_ = reader.Close()
	})

	entries, err := reader.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(entries) != 1 || entries[0].RunID != "artifact-run" {
		t.Fatalf("unexpected run index %+v", entries)
	}

	record, err := reader.RunRecord(ctx, RunRecordRequest{Latest: true})
	if err != nil {
		t.Fatalf("run record: %v", err)
	}
	if record.RunID != "artifact-run" || record.Problem != "drift" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Direction != "minimize" {
		t.Fatalf("expected direction from recorded config, got %q", record.Direction)
	}
	if record.Iterations != 10 || record.Seed != 1 {
		t.Fatalf("unexpected record fields %+v", record)
	}
}

func TestClientRunEarlyStopCutsIterations(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{
		Problem:           "drift",
		Population:        100,
		Iterations:        1000,
		Seed:              7,
		Selection:         "stochastic",
		SelectionCount:    5,
		EarlyStopDelta:    2,
		EarlyStopPatience: 5,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Iterations >= 1000 {
		t.Fatalf("expected early stop before 1000 iterations, got %d", summary.Iterations)
	}
}
