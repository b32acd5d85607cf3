// Package seed fetches the static remote menu dataset used to
// initialize an empty local menu. One logical fetch per load; retries
// are a policy knob, off by default.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lmoreno/mesa/internal/model"
)

// RetryPolicy controls re-attempts of a failed fetch. The zero value
// means a single attempt.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Loader fetches and normalizes the remote menu seed.
type Loader struct {
	url    string
	client *http.Client
	retry  RetryPolicy
	log    *zap.Logger
}

// New returns a loader for the given seed URL. A nil client falls back
// to http.DefaultClient.
func New(url string, client *http.Client, retry RetryPolicy, log *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{url: url, client: client, retry: retry, log: log}
}

// rawItem is the wire shape of one seed entry. Id and image are optional.
type rawItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// Fetch retrieves and normalizes the seed dataset. Any failure (network,
// non-2xx status, malformed body) is returned as an error; nothing is
// persisted here, so an abandoned fetch leaves no partial state.
func (l *Loader) Fetch(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	attempt := 0
	for {
		var err error
		items, err = l.fetchOnce(ctx)
		if err == nil {
			return items, nil
		}
		if attempt >= l.retry.MaxRetries {
			return nil, err
		}
		delay := l.backoff(attempt)
		l.log.Warn("seed fetch failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", l.retry.MaxRetries),
			zap.Duration("delay", delay),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		attempt++
	}
}

func (l *Loader) backoff(attempt int) time.Duration {
	d := time.Duration(float64(l.retry.InitialDelay) * math.Pow(l.retry.Multiplier, float64(attempt)))
	if d <= 0 {
		d = time.Second
	}
	if l.retry.MaxDelay > 0 && d > l.retry.MaxDelay {
		d = l.retry.MaxDelay
	}
	return d
}

func (l *Loader) fetchOnce(ctx context.Context) ([]model.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("seed request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("seed fetch: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("seed read: %w", err)
	}
	var raw []rawItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("seed decode: %w", err)
	}
	return normalize(raw), nil
}

// normalize turns raw seed entries into records that satisfy the
// collection invariants: every record gets an id, the image defaults to
// empty, and entries with an unusable price are dropped.
func normalize(raw []rawItem) []model.MenuItem {
	items := make([]model.MenuItem, 0, len(raw))
	for _, r := range raw {
		if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) || r.Price < 0 {
			continue
		}
		id := r.ID
		if id == "" {
			id = model.NewID()
		}
		items = append(items, model.MenuItem{
			ID:       id,
			Name:     r.Name,
			Price:    r.Price,
			Category: r.Category,
			Image:    r.Image,
		})
	}
	return items
}
