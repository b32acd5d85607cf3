package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNormalizes(t *testing.T) {
	var gotCacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Write([]byte(`[
			{"id": "m1", "name": "Paella", "price": 12.5, "category": "Arroces", "image": "https://img/paella.jpg"},
			{"name": "Gazpacho", "price": 6, "category": "Entrantes"},
			{"name": "Gratis", "price": -1, "category": "Error"}
		]`))
	}))
	defer srv.Close()

	l := New(srv.URL, srv.Client(), RetryPolicy{}, nil)
	items, err := l.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "no-cache", gotCacheControl)
	require.Len(t, items, 2, "entry with unusable price is dropped")

	assert.Equal(t, "m1", items[0].ID)
	assert.Equal(t, "https://img/paella.jpg", items[0].Image)

	assert.NotEmpty(t, items[1].ID, "missing id gets generated")
	assert.Empty(t, items[1].Image, "missing image defaults to empty")
	assert.Equal(t, "Gazpacho", items[1].Name)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := New(srv.URL, srv.Client(), RetryPolicy{}, nil)
	_, err := l.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	l := New(srv.URL, srv.Client(), RetryPolicy{}, nil)
	_, err := l.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchSingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := New(srv.URL, srv.Client(), RetryPolicy{}, nil)
	_, err := l.Fetch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchRetriesPerPolicy(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"name": "Paella", "price": 12.5, "category": "Arroces"}]`))
	}))
	defer srv.Close()

	l := New(srv.URL, srv.Client(), RetryPolicy{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}, nil)

	items, err := l.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(srv.URL, srv.Client(), RetryPolicy{MaxRetries: 5, InitialDelay: time.Second, Multiplier: 2}, nil)
	_, err := l.Fetch(ctx)
	assert.Error(t, err)
}
