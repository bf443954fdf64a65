// Package stats records simulation run artifacts as JSON files under a
// benchmarks directory and maintains an index of recorded runs.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const runIndexFile = "run_index.json"

// RunConfig is the configuration snapshot written alongside a run.
type RunConfig struct {
	RunID             string  `json:"run_id"`
	Problem           string  `json:"problem"`
	PopulationSize    int     `json:"population_size"`
	MaxIterations     int     `json:"max_iterations"`
	Seed              int64   `json:"seed"`
	Selection         string  `json:"selection"`
	SelectionCount    int     `json:"selection_count,omitempty"`
	TournamentRounds  int     `json:"tournament_rounds,omitempty"`
	TournamentSample  int     `json:"tournament_sample,omitempty"`
	Direction         string  `json:"direction"`
	EarlyStopDelta    float64 `json:"early_stop_delta,omitempty"`
	EarlyStopPatience int     `json:"early_stop_patience,omitempty"`
}

// RunArtifacts bundles everything persisted for one completed run.
type RunArtifacts struct {
	Config           RunConfig `json:"config"`
	BestByGeneration []float64 `json:"best_by_generation"`
	FinalBestFitness float64   `json:"final_best_fitness"`
	Iterations       int       `json:"iterations"`
	ElapsedNS        int64     `json:"elapsed_ns"`
}

// RunIndexEntry is one row of the run index.
type RunIndexEntry struct {
	RunID            string  `json:"run_id"`
	Problem          string  `json:"problem"`
	PopulationSize   int     `json:"population_size"`
	MaxIterations    int     `json:"max_iterations"`
	Iterations       int     `json:"iterations"`
	Seed             int64   `json:"seed"`
	Selection        string  `json:"selection"`
	FinalBestFitness float64 `json:"final_best_fitness"`
	ElapsedNS        int64   `json:"elapsed_ns"`
	CreatedAtUTC     string  `json:"created_at_utc"`
}

// WriteRunArtifacts writes the artifact files for one run and returns
// the run directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	history := map[string]any{
		"best_by_generation": artifacts.BestByGeneration,
		"final_best_fitness": artifacts.FinalBestFitness,
		"iterations":         artifacts.Iterations,
		"elapsed_ns":         artifacts.ElapsedNS,
	}
	if err := writeJSON(filepath.Join(runDir, "fitness_history.json"), history); err != nil {
		return "", err
	}
	return runDir, nil
}

// ReadFitnessHistory loads the recorded best-by-generation series for a
// run. The second return is false when the run has no artifacts.
func ReadFitnessHistory(baseDir, runID string) ([]float64, bool, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, runID, "fitness_history.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var payload struct {
		BestByGeneration []float64 `json:"best_by_generation"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false, err
	}
	return payload.BestByGeneration, true, nil
}

// ReadRunConfig loads the configuration snapshot recorded for a run.
// The second return is false when the run has no artifacts.
func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, runID, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return RunConfig{}, false, nil
		}
		return RunConfig{}, false, err
	}

	var config RunConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return RunConfig{}, false, err
	}
	return config, true, nil
}

// AppendRunIndex inserts or replaces the index entry for a run.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns the run index, most recently created first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAtUTC == entries[j].CreatedAtUTC {
			// Run IDs break timestamp ties so the order survives rewrites.
			return entries[i].RunID < entries[j].RunID
		}
		return entries[i].CreatedAtUTC > entries[j].CreatedAtUTC
	})
	return entries, nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
