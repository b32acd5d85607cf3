package repo

import (
	"errors"

	"go.uber.org/zap"

	"github.com/lmoreno/mesa/internal/model"
	"github.com/lmoreno/mesa/internal/store/jsonstore"
)

// ProfileRepository holds the visitor's contact profile. It is the
// singleton counterpart of Repository: saving overwrites the stored
// value wholesale instead of appending to a list.
type ProfileRepository struct {
	key     string
	store   *jsonstore.Store
	log     *zap.Logger
	profile model.ContactProfile
	present bool
	notice  string
}

// NewProfile returns an unloaded profile repository.
func NewProfile(key string, store *jsonstore.Store, log *zap.Logger) *ProfileRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileRepository{key: key, store: store, log: log}
}

// Load reads the stored profile. The profile has no seed source;
// absent or corrupt means no profile, never a failure.
func (p *ProfileRepository) Load() {
	var stored model.ContactProfile
	err := p.store.Get(p.key, &stored)
	switch {
	case err == nil:
		p.profile = stored
		p.present = true
	case errors.Is(err, jsonstore.ErrNotFound):
		p.present = false
	default:
		p.log.Warn("stored profile unreadable, starting blank",
			zap.String("key", p.key), zap.Error(err))
		p.present = false
	}
}

// Save validates and upserts the profile. As with list mutations, a
// persistence failure keeps the in-memory value and surfaces a notice.
func (p *ProfileRepository) Save(profile model.ContactProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	p.profile = profile
	p.present = true
	p.notice = ""
	if err := p.store.Set(p.key, profile); err != nil {
		p.log.Warn("persist failed, profile kept in memory only",
			zap.String("key", p.key), zap.Error(err))
		p.notice = "could not save contact profile"
	}
	return nil
}

// Get returns the current profile and whether one exists.
func (p *ProfileRepository) Get() (model.ContactProfile, bool) {
	return p.profile, p.present
}

// Notice returns the last degradation notice, empty when all is well.
func (p *ProfileRepository) Notice() string { return p.notice }
