package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/store/jsonstore"
)

func menuRepo(t *testing.T, seed SeedFunc[model.MenuItem]) (*Repository[model.MenuItem], *jsonstore.Store) {
	t.Helper()
	st, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	r := New(Config[model.MenuItem]{Key: "menu", Seed: seed}, st, nil)
	return r, st
}

func TestLoadPrefersLocalStore(t *testing.T) {
	seedCalled := false
	r, st := menuRepo(t, func(ctx context.Context) ([]model.MenuItem, error) {
		seedCalled = true
		return []model.MenuItem{{ID: "s1", Name: "Seeded", Price: 1, Category: "X"}}, nil
	})
	require.NoError(t, st.Set("menu", []model.MenuItem{{ID: "l1", Name: "Local", Price: 2, Category: "Y"}}))

	state := r.Load(context.Background())

	assert.Equal(t, StateLocal, state)
	assert.False(t, seedCalled, "local data is terminal, no remote fetch")
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "Local", r.Items()[0].Name)
}

func TestLoadFallsBackToSeedAndPersists(t *testing.T) {
	r, st := menuRepo(t, func(ctx context.Context) ([]model.MenuItem, error) {
		return []model.MenuItem{{ID: "s1", Name: "Paella", Price: 12.5, Category: "Arroces"}}, nil
	})

	state := r.Load(context.Background())

	assert.Equal(t, StateSeeded, state)
	assert.Empty(t, r.Notice())

	// The seed result is persisted so the next session loads locally.
	var stored []model.MenuItem
	require.NoError(t, st.Get("menu", &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "Paella", stored[0].Name)
}

func TestLoadSeedFailureStartsEmpty(t *testing.T) {
	r, st := menuRepo(t, func(ctx context.Context) ([]model.MenuItem, error) {
		return nil, errors.New("network down")
	})

	state := r.Load(context.Background())

	assert.Equal(t, StateEmpty, state)
	assert.Zero(t, r.Len())
	assert.NotEmpty(t, r.Notice())

	// Nothing is persisted on a failed seed.
	var stored []model.MenuItem
	err := st.Get("menu", &stored)
	assert.ErrorIs(t, err, jsonstore.ErrNotFound)
}

func TestLoadNoSeedSource(t *testing.T) {
	st, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	r := New(Config[model.Reservation]{Key: "reservations"}, st, nil)

	assert.Equal(t, StateEmpty, r.Load(context.Background()))
	assert.Zero(t, r.Len())
}

func TestLoadCorruptStoreFallsBack(t *testing.T) {
	r, st := menuRepo(t, func(ctx context.Context) ([]model.MenuItem, error) {
		return []model.MenuItem{{ID: "s1", Name: "Seeded", Price: 1, Category: "X"}}, nil
	})
	// A corrupt snapshot takes the same path as an absent one.
	require.NoError(t, st.Set("menu", "this is not a collection"))

	state := r.Load(context.Background())
	assert.Equal(t, StateSeeded, state)
}

func TestCreatePrependsAndPersists(t *testing.T) {
	r, st := menuRepo(t, nil)
	r.Load(context.Background())

	first, err := r.Create(model.MenuItem{Name: "Gazpacho", Price: 6, Category: "Entrantes"})
	require.NoError(t, err)
	second, err := r.Create(model.MenuItem{Name: "Paella", Price: 12.5, Category: "Arroces"})
	require.NoError(t, err)

	items := r.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].RecordID(), "newest first")
	assert.Equal(t, first.ID, items[1].RecordID())

	var stored []model.MenuItem
	require.NoError(t, st.Get("menu", &stored))
	assert.Equal(t, items, stored, "persisted and in-memory shapes identical")
}

func TestCreateValidationFailureMutatesNothing(t *testing.T) {
	r, st := menuRepo(t, nil)
	r.Load(context.Background())

	_, err := r.Create(model.MenuItem{Name: "", Price: 5, Category: "X"})

	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, r.Len())

	var stored []model.MenuItem
	assert.ErrorIs(t, st.Get("menu", &stored), jsonstore.ErrNotFound)
}

func TestCreateRemoveInverse(t *testing.T) {
	r, _ := menuRepo(t, nil)
	r.Load(context.Background())

	_, err := r.Create(model.MenuItem{Name: "Gazpacho", Price: 6, Category: "Entrantes"})
	require.NoError(t, err)
	before := r.Items()

	rec, err := r.Create(model.MenuItem{Name: "Paella", Price: 12.5, Category: "Arroces"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Remove(rec.ID))

	assert.Equal(t, before, r.Items(), "remove(create(x)) restores order and membership")
}

func TestRemoveMissingIsNoop(t *testing.T) {
	r, _ := menuRepo(t, nil)
	r.Load(context.Background())
	_, err := r.Create(model.MenuItem{Name: "Paella", Price: 12.5, Category: "Arroces"})
	require.NoError(t, err)

	assert.Equal(t, 0, r.Remove("no-such-id"))
	assert.Equal(t, 1, r.Len())
}

func TestCreateIDsUnique(t *testing.T) {
	r, _ := menuRepo(t, nil)
	r.Load(context.Background())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec, err := r.Create(model.MenuItem{Name: "Plato", Price: 1, Category: "X"})
		require.NoError(t, err)
		assert.False(t, seen[rec.ID])
		seen[rec.ID] = true
	}
}

func TestFind(t *testing.T) {
	r, _ := menuRepo(t, nil)
	r.Load(context.Background())
	rec, err := r.Create(model.MenuItem{Name: "Paella", Price: 12.5, Category: "Arroces"})
	require.NoError(t, err)

	got, ok := r.Find(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = r.Find("nope")
	assert.False(t, ok)
}

// The Paella scenario end to end: one item, generated id, exact price,
// survives a reload.
func TestPaellaScenario(t *testing.T) {
	st, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)
	r := New(Config[model.MenuItem]{Key: "menu"}, st, nil)
	r.Load(context.Background())

	rec, err := r.Create(model.ParseMenuItem("Paella", "12.5", "Arroces", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, 12.5, rec.Price)
	require.Equal(t, 1, r.Len())

	// Fresh repository over the same store sees the same record.
	r2 := New(Config[model.MenuItem]{Key: "menu"}, st, nil)
	assert.Equal(t, StateLocal, r2.Load(context.Background()))
	require.Equal(t, 1, r2.Len())
	assert.Equal(t, rec, r2.Items()[0])
}

// blockKey occupies the key's snapshot path with a directory so the
// store's rename fails. Works regardless of the user running the tests,
// unlike permission tricks.
func blockKey(t *testing.T, st *jsonstore.Store, key string) string {
	t.Helper()
	p := filepath.Join(st.Dir(), key+".json")
	require.NoError(t, os.Mkdir(p, 0o755))
	return p
}

func TestCreatePersistFailureKeepsMutationAndWarns(t *testing.T) {
	r, st := menuRepo(t, nil)
	blockKey(t, st, "menu")
	r.Load(context.Background())

	rec, err := r.Create(model.ParseMenuItem("Paella", "12.5", "Arroces", ""))

	require.NoError(t, err, "a storage failure must not reject the record")
	require.Equal(t, 1, r.Len())
	assert.Equal(t, rec, r.Items()[0])
	assert.Contains(t, r.Notice(), "could not save")
}

func TestSuccessfulPersistClearsEarlierNotice(t *testing.T) {
	r, st := menuRepo(t, nil)
	p := blockKey(t, st, "menu")
	r.Load(context.Background())

	_, err := r.Create(model.ParseMenuItem("Paella", "12.5", "Arroces", ""))
	require.NoError(t, err)
	require.NotEmpty(t, r.Notice())

	// Disk recovers; the next write must retire the warning.
	require.NoError(t, os.Remove(p))
	_, err = r.Create(model.ParseMenuItem("Gazpacho", "6", "Entrantes", ""))
	require.NoError(t, err)
	assert.Empty(t, r.Notice())
	require.Equal(t, 2, r.Len())
}
