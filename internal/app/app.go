// Package app owns the application state: one store, one logger, and
// the four repositories. All reads and writes go through repository
// methods so collection invariants are enforced in one place.
package app

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lmoreno/mesa/internal/config"
	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/repo"
	"github.com/lmoreno/mesa/internal/seed"
	"github.com/lmoreno/mesa/internal/store/jsonstore"
)

// Storage keys, one per collection. Each key holds a complete snapshot
// of its collection; keys never collide, so the repositories need no
// coordination between them.
const (
	KeyMenu         = "menu"
	KeyReservations = "reservations"
	KeyReviews      = "reviews"
	KeyContact      = "contact"
)

// App bundles the repositories behind a single owner.
type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	Store *jsonstore.Store

	Menu         *repo.Repository[model.MenuItem]
	Reservations *repo.Repository[model.Reservation]
	Reviews      *repo.Repository[model.Review]
	Contact      *repo.ProfileRepository
}

// New opens the store and wires the repositories. Only the menu
// declares a seed source; the other collections start empty on a
// fresh install.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	st, err := jsonstore.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	loader := seed.New(cfg.Seed.URL,
		&http.Client{Timeout: cfg.Seed.Timeout},
		seed.RetryPolicy{
			MaxRetries:   cfg.Seed.MaxRetries,
			InitialDelay: cfg.Seed.InitialDelay,
			MaxDelay:     cfg.Seed.MaxDelay,
			Multiplier:   cfg.Seed.Multiplier,
		},
		log)

	return &App{
		Cfg:   cfg,
		Log:   log,
		Store: st,
		Menu: repo.New(repo.Config[model.MenuItem]{
			Key:  KeyMenu,
			Seed: loader.Fetch,
		}, st, log),
		Reservations: repo.New(repo.Config[model.Reservation]{
			Key: KeyReservations,
		}, st, log),
		Reviews: repo.New(repo.Config[model.Review]{
			Key: KeyReviews,
		}, st, log),
		Contact: repo.NewProfile(KeyContact, st, log),
	}, nil
}

// LoadAll loads every collection sequentially. The TUI instead loads
// each collection with its own command so a slow menu seed fetch does
// not hold up the other tabs.
func (a *App) LoadAll(ctx context.Context) {
	a.Menu.Load(ctx)
	a.Reservations.Load(ctx)
	a.Reviews.Load(ctx)
	a.Contact.Load()
	a.Log.Debug("collections loaded",
		zap.Stringer("menu", a.Menu.State()),
		zap.Int("menu_items", a.Menu.Len()),
		zap.Int("reservations", a.Reservations.Len()),
		zap.Int("reviews", a.Reviews.Len()))
}

// Today renders the current date for the footer stamp.
func Today() string {
	return time.Now().Format("Mon 2 Jan 2006")
}
