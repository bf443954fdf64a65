package storage

import (
	"context"
	"testing"

	"anagen/internal/model"
)

func newTestRecord(runID string) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion,
		},
		RunID:          runID,
		Problem:        "drift",
		PopulationSize: 100,
		MaxIterations:  50,
		Iterations:     50,
		Seed:           1,
		Selection:      "truncation",
		Direction:      "minimize",
		BestFitness:    0,
		CreatedAtUTC:   "2026-08-30T10:00:00Z",
	}
}

func TestMemoryStoreRunRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveRunRecord(ctx, newTestRecord("run-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	record, ok, err := store.GetRunRecord(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected record to exist")
	}
	if record.Problem != "drift" || record.Iterations != 50 {
		t.Fatalf("unexpected record %+v", record)
	}

	if _, ok, err := store.GetRunRecord(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss without error, got ok=%t err=%v", ok, err)
	}
}

func TestMemoryStoreListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, id := range []string{"first", "second", "third"} {
		if err := store.SaveRunRecord(ctx, newTestRecord(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	// Overwriting must not duplicate the entry.
	if err := store.SaveRunRecord(ctx, newTestRecord("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	records, err := store.ListRunRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"first", "second", "third"} {
		if records[i].RunID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, records[i].RunID)
		}
	}
}

func TestMemoryStoreFitnessHistoryIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	history := []float64{9, 5, 1}
	if err := store.SaveFitnessHistory(ctx, "run-1", history); err != nil {
		t.Fatalf("save history: %v", err)
	}
	history[0] = 999

	stored, ok, err := store.GetFitnessHistory(ctx, "run-1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !ok {
		t.Fatal("expected history to exist")
	}
	if stored[0] != 9 {
		t.Fatalf("stored history must be independent of the caller slice, got %v", stored)
	}
}

func TestFactoryRejectsUnknownBackend(t *testing.T) {
	if _, err := NewStore("postgres", ""); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
	store, err := NewStore("", "")
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if err := CloseIfSupported(store); err != nil {
		t.Fatalf("close: %v", err)
	}
}
