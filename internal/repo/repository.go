// Package repo implements the load-or-seed, mutate, persist cycle every
// collection goes through. One generic repository covers the list
// collections (menu, reservations, reviews); the singleton contact
// profile has its own small variant in profile.go.
package repo

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/store/jsonstore"
)

// Record is what a repository can manage: identifiable, validatable,
// and able to produce a copy of itself carrying a fresh id.
type Record[T any] interface {
	model.Record
	WithID(id string) T
	Validate() error
}

// State tracks where a collection's data came from this session.
type State int

const (
	StateUnloaded State = iota
	StateLocal          // non-empty snapshot found in the local store
	StateSeeded         // local store empty, remote seed fetched and persisted
	StateEmpty          // nothing local, no seed (or seed failed)
)

func (s State) String() string {
	switch s {
	case StateLocal:
		return "local"
	case StateSeeded:
		return "seeded"
	case StateEmpty:
		return "empty"
	default:
		return "unloaded"
	}
}

// SeedFunc fetches initial records for a collection that declares a
// remote seed source.
type SeedFunc[T any] func(ctx context.Context) ([]T, error)

// Config selects the per-collection behavior of a repository.
type Config[T Record[T]] struct {
	Key  string      // storage key, e.g. "menu"
	Seed SeedFunc[T] // nil when the collection has no seed source
}

// Repository owns one collection: the in-memory copy is a cache of the
// stored snapshot, refreshed only at Load time, and every mutation is
// written back immediately.
type Repository[T Record[T]] struct {
	cfg    Config[T]
	store  *jsonstore.Store
	log    *zap.Logger
	state  State
	items  []T
	notice string
}

// New returns an unloaded repository over store.
func New[T Record[T]](cfg Config[T], store *jsonstore.Store, log *zap.Logger) *Repository[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository[T]{cfg: cfg, store: store, log: log}
}

// Load reads the collection from the local store, falling back to the
// seed source (when configured) and finally to an empty collection.
// Load never fails: every degradation leaves a usable repository plus a
// notice, and is logged. Returns the resulting state.
func (r *Repository[T]) Load(ctx context.Context) State {
	r.notice = ""

	var stored []T
	err := r.store.Get(r.cfg.Key, &stored)
	switch {
	case err == nil && len(stored) > 0:
		r.items = stored
		r.state = StateLocal
		return r.state
	case err != nil && !errors.Is(err, jsonstore.ErrNotFound):
		// Corrupt or unreadable snapshot: same path as absent.
		r.log.Warn("stored collection unreadable, falling back",
			zap.String("key", r.cfg.Key), zap.Error(err))
	}

	if r.cfg.Seed == nil {
		r.items = nil
		r.state = StateEmpty
		return r.state
	}

	seeded, err := r.cfg.Seed(ctx)
	if err != nil {
		r.log.Warn("seed fetch failed, starting empty",
			zap.String("key", r.cfg.Key), zap.Error(err))
		r.items = nil
		r.state = StateEmpty
		r.notice = fmt.Sprintf("could not load %s data, starting empty", r.cfg.Key)
		return r.state
	}
	r.items = seeded
	r.state = StateSeeded
	r.persist()
	return r.state
}

// Create validates fields, assigns a fresh id, prepends the record and
// persists the collection. On validation failure nothing changes and
// the error names the first unmet condition. A persistence failure does
// not roll back the in-memory mutation; it is logged and surfaced as a
// notice.
func (r *Repository[T]) Create(fields T) (T, error) {
	var zero T
	if err := fields.Validate(); err != nil {
		return zero, err
	}
	rec := fields.WithID(model.NewID())
	r.items = append([]T{rec}, r.items...)
	r.persist()
	return rec, nil
}

// Remove deletes the record with the given id, preserving the order of
// the rest. A missing id is a no-op. Returns how many records were
// removed (0 or 1).
func (r *Repository[T]) Remove(id string) int {
	for i, it := range r.items {
		if it.RecordID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.persist()
			return 1
		}
	}
	return 0
}

// Find returns the record with the given id without mutating anything.
func (r *Repository[T]) Find(id string) (T, bool) {
	for _, it := range r.items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the collection in order.
func (r *Repository[T]) Items() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of records.
func (r *Repository[T]) Len() int { return len(r.items) }

// State reports where the collection came from this session.
func (r *Repository[T]) State() State { return r.state }

// Notice returns the last degradation notice, empty when all is well.
func (r *Repository[T]) Notice() string { return r.notice }

// Key returns the storage key of this collection.
func (r *Repository[T]) Key() string { return r.cfg.Key }

// persist writes the current snapshot. Failures never abort the
// mutation that triggered them; the UI keeps working from memory.
func (r *Repository[T]) persist() {
	// Store an empty array rather than null for an empty collection.
	items := r.items
	if items == nil {
		items = []T{}
	}
	if err := r.store.Set(r.cfg.Key, items); err != nil {
		r.log.Warn("persist failed, changes kept in memory only",
			zap.String("key", r.cfg.Key), zap.Error(err))
		r.notice = fmt.Sprintf("could not save %s changes", r.cfg.Key)
		return
	}
	// A successful write retires any earlier warning.
	r.notice = ""
}
