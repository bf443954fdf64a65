package storage

import (
	"errors"
	"testing"
)

func TestRunRecordCodecRoundTrip(t *testing.T) {
	record := newTestRecord("run-1")

	data, err := EncodeRunRecord(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRunRecord(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != record {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, record)
	}
}

func TestDecodeRunRecordRejectsVersionMismatch(t *testing.T) {
	record := newTestRecord("run-1")
	record.SchemaVersion = CurrentSchemaVersion + 1

	data, err := EncodeRunRecord(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRunRecord(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestFitnessHistoryCodec(t *testing.T) {
	data, err := EncodeFitnessHistory([]float64{3, 2, 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	history, err := DecodeFitnessHistory(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(history) != 3 || history[2] != 1 {
		t.Fatalf("unexpected history %v", history)
	}
}
