package tui

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/economy"
	"github.com/vovakirdan/dinox/internal/runner"
	"github.com/vovakirdan/dinox/internal/storage"
)

func openSessionStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "dinox.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func opener(store *storage.Store, key string) func() *runner.Controller {
	return func() *runner.Controller {
		return NewSession(config.DefaultRunnerConfig(), store, key, 1, log.New(io.Discard))
	}
}

// seedCoins writes a save holding the given coins.
func seedCoins(t *testing.T, store *storage.Store, key string, coins int) {
	t.Helper()
	ctrl := opener(store, key)()
	ctrl.Economy().CreditCoins(coins)
	if err := ctrl.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
}

func TestSecondSessionForSameUserIsRefused(t *testing.T) {
	store := openSessionStore(t)
	key := sessionKey("alice")
	seedCoins(t, store, key, 300)

	reg := newSessionRegistry()
	first, err := reg.acquire(key, opener(store, key))
	if err != nil {
		t.Fatalf("acquire() failed: %v", err)
	}

	opened := false
	second, err := reg.acquire(key, func() *runner.Controller {
		opened = true
		return opener(store, key)()
	})
	if !errors.Is(err, ErrSessionActive) || second != nil {
		t.Fatalf("acquire() = (%v, %v), expected ErrSessionActive", second, err)
	}
	if opened {
		t.Error("a refused session must not load its own economy store")
	}

	// Other users are unaffected
	if _, err := reg.acquire(sessionKey("bob"), opener(store, sessionKey("bob"))); err != nil {
		t.Errorf("acquire(bob) failed: %v", err)
	}
	if reg.count() != 2 {
		t.Errorf("count = %d, expected 2", reg.count())
	}

	if _, err := first.PurchasePerk(economy.PerkShield); err != nil {
		t.Fatalf("PurchasePerk() failed: %v", err)
	}
	if err := reg.release(key); err != nil {
		t.Fatalf("release() failed: %v", err)
	}

	// The purchase survives and the key is free again
	again, err := reg.acquire(key, opener(store, key))
	if err != nil {
		t.Fatalf("acquire() after release failed: %v", err)
	}
	st := again.Economy().State()
	if !st.OwnedPerks.Shield || st.Coins != 100 {
		t.Errorf("reloaded coins=%d shield=%v, expected 100 and true", st.Coins, st.OwnedPerks.Shield)
	}
}

func TestReleaseWritesPendingCoins(t *testing.T) {
	store := openSessionStore(t)
	key := sessionKey("carol")

	reg := newSessionRegistry()
	ctrl, err := reg.acquire(key, opener(store, key))
	if err != nil {
		t.Fatalf("acquire() failed: %v", err)
	}

	// Coin pickups only mark the store dirty
	ctrl.Economy().CreditCoins(7)
	if !ctrl.Economy().Dirty() {
		t.Fatal("credited coins should be pending")
	}

	if err := reg.release(key); err != nil {
		t.Fatalf("release() failed: %v", err)
	}
	if reg.count() != 0 {
		t.Errorf("count = %d, expected 0", reg.count())
	}

	reloaded := opener(store, key)()
	if got := reloaded.Economy().State().Coins; got != 7 {
		t.Errorf("reloaded coins = %d, expected 7", got)
	}

	if err := reg.release(key); err != nil {
		t.Errorf("releasing a free key should be a no-op, got %v", err)
	}
}

func TestControllerLookup(t *testing.T) {
	reg := newSessionRegistry()
	key := sessionKey("dave")
	if _, ok := reg.controller(key); ok {
		t.Error("no controller expected before acquire")
	}

	ctrl, err := reg.acquire(key, opener(nil, key))
	if err != nil {
		t.Fatalf("acquire() failed: %v", err)
	}
	got, ok := reg.controller(key)
	if !ok || got != ctrl {
		t.Error("controller() should return the acquired controller")
	}
}
