package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"grove-cli/internal/model"
)

// slotName is the single named slot holding the whole seed collection as JSON
// array text. The store is a display-layer tool, not a system of record: every
// read path degrades to an empty collection instead of failing.
const slotName = "seeds"

type Store struct {
	Dir string
}

func DefaultDir() (string, error) {
	if d := strings.TrimSpace(os.Getenv("GROVE_DIR")); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".grove"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// LoadAll reads the slot and returns the normalized collection, newest first.
// Missing slot, corrupt JSON, and non-array payloads all yield an empty slice.
func (s Store) LoadAll() []model.Seed {
	b, err := s.backend().read()
	if err != nil {
		return []model.Seed{}
	}
	return decodeSeeds(b)
}

// SaveAll serializes and persists the full collection, replacing any prior
// slot content. There is no partial merge.
func (s Store) SaveAll(seeds []model.Seed) error {
	if seeds == nil {
		seeds = []model.Seed{}
	}
	b, err := json.Marshal(seeds)
	if err != nil {
		return err
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.backend().write(b)
}

// UpsertNewest prepends a seed (newest-first display order) and persists.
func (s Store) UpsertNewest(seed model.Seed) error {
	seeds := append([]model.Seed{seed}, s.LoadAll()...)
	return s.SaveAll(seeds)
}

// FindByID looks a seed up by id. Ids from older exports may have been numbers;
// comparison happens on the string form, so "123" finds a seed stored as 123.
func FindByID(seeds []model.Seed, id string) (*model.Seed, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	for i := range seeds {
		if strings.TrimSpace(seeds[i].ID) == id {
			return &seeds[i], true
		}
	}
	return nil, false
}

// DeleteByID removes the matching seed and persists. A missing id is a no-op,
// not an error.
func (s Store) DeleteByID(id string) error {
	id = strings.TrimSpace(id)
	seeds := s.LoadAll()
	out := seeds[:0]
	for _, sd := range seeds {
		if strings.TrimSpace(sd.ID) != id {
			out = append(out, sd)
		}
	}
	if len(out) == len(seeds) {
		return nil
	}
	return s.SaveAll(out)
}

// Count reports the number of persisted seeds, 0 on any load failure.
func (s Store) Count() int {
	return len(s.LoadAll())
}

// RawSlot returns the slot text verbatim for export, "[]" when absent or unreadable.
func (s Store) RawSlot() []byte {
	b, err := s.backend().read()
	if err != nil || len(b) == 0 {
		return []byte("[]")
	}
	return b
}

// ErrNotArray rejects import payloads whose top level is not a JSON array.
// The existing store is left untouched in that case.
type notArrayError struct{}

func (notArrayError) Error() string { return "invalid seeds file: expected a JSON array" }

var ErrNotArray error = notArrayError{}

// Import parses b, requires a JSON array, then replaces the store wholesale
// (replace-all semantics, never a merge).
func (s Store) Import(b []byte) error {
	// json.Unmarshal accepts "null" into a slice; that must not wipe the store.
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ErrNotArray
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return ErrNotArray
	}
	seeds := make([]model.Seed, 0, len(raws))
	for _, r := range raws {
		seeds = append(seeds, NormalizeRaw(r))
	}
	return s.SaveAll(seeds)
}

func decodeSeeds(b []byte) []model.Seed {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return []model.Seed{}
	}
	seeds := make([]model.Seed, 0, len(raws))
	for _, r := range raws {
		seeds = append(seeds, NormalizeRaw(r))
	}
	return seeds
}
