package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	seedsFileName  = "seeds.json"
	sqliteFileName = "grove.sqlite"
)

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// slotBackend is where the single seeds slot lives. Both backends hold the
// same JSON array text; the sqlite one keeps it in a one-row slots table.
type slotBackend interface {
	read() ([]byte, error)
	write(b []byte) error
}

// backendKind autodetects the backend: an explicit env override wins,
// otherwise an existing sqlite file selects sqlite, otherwise the plain JSON
// file is used.
func (s Store) backendKind() Backend {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("GROVE_STORE_BACKEND"))) {
	case "sqlite":
		return BackendSQLite
	case "json":
		return BackendJSON
	}
	if _, err := os.Stat(filepath.Join(s.Dir, sqliteFileName)); err == nil {
		return BackendSQLite
	}
	return BackendJSON
}

func (s Store) backend() slotBackend {
	if s.backendKind() == BackendSQLite {
		return sqliteBackend{store: s}
	}
	return fileBackend{path: filepath.Join(s.Dir, seedsFileName)}
}

type fileBackend struct {
	path string
}

func (f fileBackend) read() ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []byte("[]"), nil
		}
		return nil, err
	}
	return b, nil
}

func (f fileBackend) write(b []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
