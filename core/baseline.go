package core

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sizegate/sizegate/schema"
)

// BaselineStore loads and persists the per-key size snapshot. Keys must
// exactly match the result keys used during evaluation; a mismatch simply
// reads as an unseen baseline, never an error.
type BaselineStore struct {
	path string
}

// NewBaselineStore creates a store for the given baseline file path.
func NewBaselineStore(path string) *BaselineStore {
	return &BaselineStore{path: path}
}

// Load reads the baseline map. A missing or corrupt file is a normal
// first-run state and yields an empty map, never an error.
func (s *BaselineStore) Load() schema.BaselineMap {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return schema.BaselineMap{}
	}
	baseline := schema.BaselineMap{}
	if err := json.Unmarshal(data, &baseline); err != nil {
		return schema.BaselineMap{}
	}
	return baseline
}

// Persist overwrites the baseline file with the full current map,
// pretty-printed for human diffing. The write goes to a temporary file first
// and is moved into place so a crash never leaves a half-written baseline.
func (s *BaselineStore) Persist(baseline schema.BaselineMap) error {
	data, err := json.MarshalIndent(baseline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode baseline: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace baseline file: %w", err)
	}
	return nil
}
