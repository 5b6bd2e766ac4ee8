// Package snapshot reads and writes the JSON files the mrc CLI exchanges
// with the simulation backend's export: one file per week state, one per
// ledger, one per generated summary.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"merch/internal/game"
)

func LoadState(path string) (*game.GameWeekState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state game.GameWeekState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := game.ValidateWeekNumber(state.WeekNumber); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &state, nil
}

func LoadLedger(path string) ([]game.LedgerEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []game.LedgerEntry{}, nil
	}
	var rows []game.LedgerEntry
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

// LoadHistory reads every *.json file in dir as a week state and returns
// them in week order. Files that are not snapshots are rejected rather
// than skipped, so a stray ledger file in the directory surfaces early.
func LoadHistory(dir string) ([]*game.GameWeekState, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	states := make([]*game.GameWeekState, 0, len(paths))
	for _, path := range paths {
		state, err := LoadState(path)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].WeekNumber < states[j].WeekNumber })
	return states, nil
}

func SaveSummary(path string, summary *game.WeeklySummary) error {
	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
