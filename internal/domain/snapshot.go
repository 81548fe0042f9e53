package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SnapshotKey is the session entry a simulation run is stored under.
const SnapshotKey = "simulation-decisions"

// Snapshot is the record carried from the dashboard to the results view. The
// results view recomputes the outcome from it rather than storing a result.
type Snapshot struct {
	Region    string    `json:"region"`
	Decisions *Decision `json:"decisions"`
}

// NewSnapshot pairs a region with a decision set.
func NewSnapshot(regionID string, d Decision) Snapshot {
	return Snapshot{Region: regionID, Decisions: &d}
}

// EncodeSnapshot serializes a snapshot to JSON text.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses stored text. It reports false for empty input, text
// that is not a JSON object, or a record without decisions.
func DecodeSnapshot(data []byte) (Snapshot, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, false
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, false
	}
	if s.Decisions == nil {
		return Snapshot{}, false
	}
	return s, true
}
