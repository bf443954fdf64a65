package storage

import (
	"context"

	"anagen/internal/model"
)

// Store persists completed run records and their fitness histories.
type Store interface {
	Init(ctx context.Context) error
	SaveRunRecord(ctx context.Context, record model.RunRecord) error
	GetRunRecord(ctx context.Context, runID string) (model.RunRecord, bool, error)
	ListRunRecords(ctx context.Context) ([]model.RunRecord, error)
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
