package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoreno/mesa/internal/config"
	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/repo"
)

func testConfig(t *testing.T, seedURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir: dir,
		Seed: config.SeedConfig{
			URL:     seedURL,
			Timeout: 2 * time.Second,
		},
	}
}

func TestLoadAllWithSeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name": "Paella", "price": 12.5, "category": "Arroces"}]`))
	}))
	defer srv.Close()

	a, err := New(testConfig(t, srv.URL), nil)
	require.NoError(t, err)
	a.LoadAll(context.Background())

	assert.Equal(t, repo.StateSeeded, a.Menu.State())
	assert.Equal(t, 1, a.Menu.Len())
	assert.Equal(t, repo.StateEmpty, a.Reservations.State())
	assert.Equal(t, repo.StateEmpty, a.Reviews.State())
	_, ok := a.Contact.Get()
	assert.False(t, ok)
}

func TestLoadAllSeedUnreachable(t *testing.T) {
	a, err := New(testConfig(t, "http://127.0.0.1:1/menu.json"), nil)
	require.NoError(t, err)
	a.LoadAll(context.Background())

	assert.Equal(t, repo.StateEmpty, a.Menu.State())
	assert.NotEmpty(t, a.Menu.Notice())
}

// Collections live under separate keys: mutating one never touches
// another's snapshot.
func TestCollectionsPartitioned(t *testing.T) {
	a, err := New(testConfig(t, "http://127.0.0.1:1/menu.json"), nil)
	require.NoError(t, err)
	a.LoadAll(context.Background())

	_, err = a.Reservations.Create(model.Reservation{Name: "Ana", Date: "2026-09-01", Guests: 2})
	require.NoError(t, err)
	_, err = a.Reviews.Create(model.Review{Name: "Luis", Text: "great"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Reservations.Len())
	assert.Equal(t, 1, a.Reviews.Len())
	assert.Equal(t, 0, a.Menu.Len())
}
