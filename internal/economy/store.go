package economy

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Persister is the key-value store the economy blob lives in.
// Load returns nil data and a nil error when the key has never been saved.
type Persister interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// DefaultSaveKey is the save slot used by local play.
const DefaultSaveKey = "dinox_save_v1"

// Options configures a Store.
type Options struct {
	Key              string        // Save slot; defaults to DefaultSaveKey
	Persister        Persister     // nil keeps the economy in memory only
	Catalog          Catalog       // What the shop sells
	AutosaveInterval time.Duration // <= 0 disables Autosave
	Logger           *log.Logger   // nil uses log.Default()
}

// Store owns the economy state and its load/mutate/persist lifecycle.
type Store struct {
	key       string
	persister Persister
	catalog   Catalog
	logger    *log.Logger

	state State
	dirty bool

	autosaveEvery time.Duration
	lastAutosave  time.Time
}

// NewStore creates a store and loads the saved state.
func NewStore(opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultSaveKey
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Store{
		key:           opts.Key,
		persister:     opts.Persister,
		catalog:       opts.Catalog,
		logger:        opts.Logger,
		autosaveEvery: opts.AutosaveInterval,
	}
	s.Load()
	return s
}

// Load replaces the in-memory state with the persisted one. Absent or
// malformed data falls back to defaults; Load never fails.
func (s *Store) Load() State {
	defaultSkin := s.catalog.DefaultSkin()
	s.state = DefaultState(defaultSkin)
	s.dirty = false

	if s.persister == nil {
		return s.State()
	}

	data, err := s.persister.Load(s.key)
	if err != nil {
		s.logger.Warn("save unreadable, using defaults", "key", s.key, "error", fmt.Errorf("%w: %v", ErrPersistenceRead, err))
		return s.State()
	}
	if data == nil {
		s.logger.Debug("no save found, starting fresh", "key", s.key)
		return s.State()
	}

	state, err := Decode(data, defaultSkin)
	if err != nil {
		s.logger.Warn("save recovered with defaults", "key", s.key, "error", err)
	}
	s.state = state
	return s.State()
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Catalog returns the shop catalog.
func (s *Store) Catalog() Catalog {
	return s.catalog
}

// Prices returns the static price tables.
func (s *Store) Prices() Prices {
	return s.catalog.Prices()
}

// PurchaseSkin buys a skin at the flat price and activates it. Buying a
// skin that is already owned only activates it.
func (s *Store) PurchaseSkin(id SkinID) (State, error) {
	if _, ok := s.catalog.Skin(id); !ok {
		return s.State(), fmt.Errorf("%w: %q", ErrUnknownSkin, id)
	}

	if !s.state.Owns(id) {
		price := s.catalog.skinPrice
		if s.state.Coins < price {
			return s.State(), fmt.Errorf("%w: skin %q costs %d, have %d", ErrInsufficientFunds, id, price, s.state.Coins)
		}
		s.state.Coins -= price
		s.state.addSkin(id)
	}
	s.state.ActiveSkin = id
	s.mutated()
	return s.State(), nil
}

// PurchasePerk buys a perk from the price table. Repurchasing an owned perk
// is a successful no-op.
func (s *Store) PurchasePerk(id PerkID) (State, error) {
	perk, ok := s.catalog.Perk(id)
	if !ok {
		return s.State(), fmt.Errorf("%w: %q", ErrUnknownPerk, id)
	}
	if s.state.OwnedPerks.Has(id) {
		return s.State(), nil
	}
	if s.state.Coins < perk.Price {
		return s.State(), fmt.Errorf("%w: perk %q costs %d, have %d", ErrInsufficientFunds, id, perk.Price, s.state.Coins)
	}

	next := s.state.OwnedPerks
	if !next.grant(id) {
		return s.State(), fmt.Errorf("%w: %q", ErrUnknownPerk, id)
	}
	s.state.Coins -= perk.Price
	s.state.OwnedPerks = next
	s.mutated()
	return s.State(), nil
}

// SetActiveSkin switches to an owned skin.
func (s *Store) SetActiveSkin(id SkinID) error {
	if !s.state.Owns(id) {
		return fmt.Errorf("%w: %q", ErrUnknownOrUnownedSkin, id)
	}
	s.state.ActiveSkin = id
	s.mutated()
	return nil
}

// CreditCoins adds collected coins. It does not write; Autosave or the end
// of the run does.
func (s *Store) CreditCoins(n int) {
	if n <= 0 {
		return
	}
	s.state.Coins += n
	s.dirty = true
}

// RecordScore raises the best score if s beats it. It never lowers it.
func (s *Store) RecordScore(score int) {
	if score > s.state.BestScore {
		s.state.BestScore = score
		s.dirty = true
	}
}

// Persist writes the full state. Failures are logged, wrapped in
// ErrPersistenceWrite and leave the state dirty for the next attempt.
func (s *Store) Persist() error {
	if s.persister == nil {
		s.dirty = false
		return nil
	}

	data, err := Encode(s.state)
	if err == nil {
		err = s.persister.Save(s.key, data)
	}
	if err != nil {
		if !errors.Is(err, ErrPersistenceWrite) {
			err = fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
		}
		s.logger.Error("save failed", "key", s.key, "error", err)
		return err
	}

	s.dirty = false
	return nil
}

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Autosave persists unsaved changes once per autosave interval. The
// scheduler calls it with the tick timestamp; the first call only starts
// the clock.
func (s *Store) Autosave(now time.Time) {
	if s.autosaveEvery <= 0 {
		return
	}
	if s.lastAutosave.IsZero() {
		s.lastAutosave = now
		return
	}
	if now.Sub(s.lastAutosave) < s.autosaveEvery {
		return
	}
	s.lastAutosave = now
	if s.dirty {
		//nolint:errcheck // Logged inside Persist; retried next interval
		s.Persist()
	}
}

// mutated persists after a shop mutation.
func (s *Store) mutated() {
	s.dirty = true
	//nolint:errcheck // Best-effort; logged inside Persist
	s.Persist()
}
