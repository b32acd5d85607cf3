// Package jsonstore is the durable key/value store backing every
// collection. One key maps to one pretty-printed JSON file under the
// data directory. Single file per key, human-readable, portable.
// No locking; fine for a local single-user app.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by store operations.
var (
	// ErrNotFound is returned by Get when the key has never been set.
	ErrNotFound = errors.New("key not found")

	// ErrCorrupted is returned by Get when the stored value cannot be
	// decoded. Callers treat it like ErrNotFound after logging.
	ErrCorrupted = errors.New("stored value corrupted")
)

// Store reads and writes JSON snapshots under a base directory.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// Keys may come from config; keep the file name tame.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
}

// Get decodes the snapshot stored under key into target.
func (s *Store) Get(key string, target any) error {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupted, key, err)
	}
	return nil
}

// Set overwrites the snapshot stored under key. The write goes through
// a temp file and rename so a failed write never clobbers the previous
// snapshot.
func (s *Store) Set(key string, value any) error {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal %s: %w", key, err)
	}
	p := s.path(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot stored under key. Missing keys are not
// an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
