package economy

import (
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinox/internal/config"
)

// memPersister is an in-memory Persister with failure injection.
type memPersister struct {
	blobs    map[string][]byte
	saves    int
	failLoad error
	failSave error
}

func newMemPersister() *memPersister {
	return &memPersister{blobs: make(map[string][]byte)}
}

func (m *memPersister) Load(key string) ([]byte, error) {
	if m.failLoad != nil {
		return nil, m.failLoad
	}
	return m.blobs[key], nil
}

func (m *memPersister) Save(key string, data []byte) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.saves++
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func testCatalog() Catalog {
	return NewCatalog(config.DefaultRunnerConfig().Economy)
}

func newTestStore(t *testing.T, p *memPersister) *Store {
	t.Helper()
	return NewStore(Options{
		Key:              "test",
		Persister:        p,
		Catalog:          testCatalog(),
		AutosaveInterval: 2500 * time.Millisecond,
		Logger:           log.New(io.Discard),
	})
}

func seedCoins(t *testing.T, s *Store, coins int) {
	t.Helper()
	s.CreditCoins(coins)
	if err := s.Persist(); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}
}

func TestNewStoreDefaults(t *testing.T) {
	s := newTestStore(t, newMemPersister())
	st := s.State()

	if st.Coins != 0 || st.BestScore != 0 {
		t.Errorf("fresh state coins=%d best=%d, expected zeros", st.Coins, st.BestScore)
	}
	if st.ActiveSkin != "classic" || !st.Owns("classic") {
		t.Errorf("fresh state should own and wear classic, got %+v", st)
	}
}

func TestPurchaseSkin(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	seedCoins(t, s, 100)

	st, err := s.PurchaseSkin("lava")
	if err != nil {
		t.Fatalf("PurchaseSkin() failed: %v", err)
	}
	if st.Coins != 20 {
		t.Errorf("coins = %d, expected 20", st.Coins)
	}
	if !st.Owns("lava") || st.ActiveSkin != "lava" {
		t.Errorf("lava should be owned and active, got %+v", st)
	}

	// Persisted immediately
	saved, err := Decode(p.blobs["test"], "classic")
	if err != nil {
		t.Fatalf("Decode(saved) failed: %v", err)
	}
	if !reflect.DeepEqual(saved, st) {
		t.Errorf("persisted state %+v differs from %+v", saved, st)
	}
	if s.Dirty() {
		t.Error("store should be clean after a successful purchase")
	}
}

func TestPurchaseOwnedSkinOnlyActivates(t *testing.T) {
	s := newTestStore(t, newMemPersister())
	seedCoins(t, s, 100)

	if _, err := s.PurchaseSkin("cyan"); err != nil {
		t.Fatal(err)
	}
	st, err := s.PurchaseSkin("classic")
	if err != nil {
		t.Fatalf("PurchaseSkin(classic) failed: %v", err)
	}
	if st.Coins != 20 || st.ActiveSkin != "classic" {
		t.Errorf("rebuying an owned skin should only activate it, got %+v", st)
	}
}

func TestPurchaseSkinErrors(t *testing.T) {
	s := newTestStore(t, newMemPersister())
	seedCoins(t, s, 10)

	if _, err := s.PurchaseSkin("lava"); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := s.PurchaseSkin("gold"); !errors.Is(err, ErrUnknownSkin) {
		t.Errorf("expected ErrUnknownSkin, got %v", err)
	}

	st := s.State()
	if st.Coins != 10 || st.Owns("lava") || st.ActiveSkin != "classic" {
		t.Errorf("failed purchases must not change state, got %+v", st)
	}
}

func TestPurchasePerkInsufficientFunds(t *testing.T) {
	s := newTestStore(t, newMemPersister())
	seedCoins(t, s, 50)

	_, err := s.PurchasePerk(PerkMagnet) // 120
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	st := s.State()
	if st.Coins != 50 {
		t.Errorf("coins = %d, expected 50", st.Coins)
	}
	if st.OwnedPerks.Magnet {
		t.Error("magnet should not be owned")
	}
}

func TestPurchasePerkIdempotent(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	seedCoins(t, s, 500)

	first, err := s.PurchasePerk(PerkShield)
	if err != nil {
		t.Fatalf("PurchasePerk() failed: %v", err)
	}
	if first.Coins != 300 || !first.OwnedPerks.Shield {
		t.Errorf("after purchase got %+v", first)
	}
	blob := append([]byte(nil), p.blobs["test"]...)

	second, err := s.PurchasePerk(PerkShield)
	if err != nil {
		t.Fatalf("repurchase should succeed, got %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repurchase changed state: %+v -> %+v", first, second)
	}
	if string(p.blobs["test"]) != string(blob) {
		t.Error("repurchase changed the persisted blob")
	}

	if _, err := s.PurchasePerk("teleport"); !errors.Is(err, ErrUnknownPerk) {
		t.Errorf("expected ErrUnknownPerk, got %v", err)
	}
}

func TestSetActiveSkin(t *testing.T) {
	s := newTestStore(t, newMemPersister())

	if err := s.SetActiveSkin("lava"); !errors.Is(err, ErrUnknownOrUnownedSkin) {
		t.Errorf("expected ErrUnknownOrUnownedSkin, got %v", err)
	}
	if s.State().ActiveSkin != "classic" {
		t.Error("failed activation must not change the active skin")
	}

	seedCoins(t, s, 80)
	if _, err := s.PurchaseSkin("lime"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetActiveSkin("classic"); err != nil {
		t.Errorf("SetActiveSkin(classic) failed: %v", err)
	}
	if s.State().ActiveSkin != "classic" {
		t.Error("active skin should be classic")
	}
}

func TestRecordScoreOnlyRaises(t *testing.T) {
	s := newTestStore(t, newMemPersister())

	s.RecordScore(120)
	s.RecordScore(80)
	if got := s.State().BestScore; got != 120 {
		t.Errorf("BestScore = %d, expected 120", got)
	}
	s.RecordScore(121)
	if got := s.State().BestScore; got != 121 {
		t.Errorf("BestScore = %d, expected 121", got)
	}
}

func TestCreditCoinsDoesNotWrite(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)

	s.CreditCoins(3)
	s.CreditCoins(-5) // ignored
	if p.saves != 0 {
		t.Errorf("CreditCoins wrote %d times, expected 0", p.saves)
	}
	if !s.Dirty() || s.State().Coins != 3 {
		t.Errorf("expected dirty store with 3 coins, got %+v", s.State())
	}
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	p.failSave = errors.New("disk full")

	s.CreditCoins(5)
	err := s.Persist()
	if !errors.Is(err, ErrPersistenceWrite) {
		t.Fatalf("expected ErrPersistenceWrite, got %v", err)
	}
	if !s.Dirty() || s.State().Coins != 5 {
		t.Error("in-memory state must stay authoritative after a failed write")
	}

	p.failSave = nil
	if err := s.Persist(); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if s.Dirty() {
		t.Error("store should be clean after retry")
	}
}

func TestAutosave(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	start := time.Unix(1000, 0)

	s.Autosave(start) // starts the clock
	s.CreditCoins(1)
	s.Autosave(start.Add(2 * time.Second))
	if p.saves != 0 {
		t.Fatalf("autosave fired early (%d saves)", p.saves)
	}

	s.Autosave(start.Add(2500 * time.Millisecond))
	if p.saves != 1 {
		t.Fatalf("expected one autosave, got %d", p.saves)
	}

	// Nothing new to write
	s.Autosave(start.Add(6 * time.Second))
	if p.saves != 1 {
		t.Errorf("clean store should not be rewritten, got %d saves", p.saves)
	}
}

func TestLoadRecoversFromBadData(t *testing.T) {
	tests := []struct {
		name  string
		blob  string
		coins int
		skin  SkinID
	}{
		{"malformed", "{coins: [", 0, "classic"},
		{"scalar", "garbage", 0, "classic"},
		{"legacy json", `{"coins":42,"best":7,"ownedSkins":["classic","lava"],"activeSkin":"lava","ownedPerks":{"magnet":true}}`, 42, "lava"},
		{"wrong field type keeps the rest", "coins: 12\nbest: lots\nactiveSkin: classic\n", 12, "classic"},
		{"negative coins", "coins: -9\n", 0, "classic"},
		{"active skin not owned", "ownedSkins: [classic]\nactiveSkin: lava\n", 0, "classic"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newMemPersister()
			p.blobs["test"] = []byte(tc.blob)
			st := newTestStore(t, p).State()

			if st.Coins != tc.coins {
				t.Errorf("coins = %d, expected %d", st.Coins, tc.coins)
			}
			if st.ActiveSkin != tc.skin || !st.Owns(st.ActiveSkin) {
				t.Errorf("active skin = %q, expected owned %q", st.ActiveSkin, tc.skin)
			}
			if !st.Owns("classic") {
				t.Error("default skin must always be owned")
			}
		})
	}
}

func TestLoadReadFailureUsesDefaults(t *testing.T) {
	p := newMemPersister()
	p.failLoad = errors.New("permission denied")

	st := newTestStore(t, p).State()
	if !reflect.DeepEqual(st, DefaultState("classic")) {
		t.Errorf("expected defaults, got %+v", st)
	}
}

func TestStateCopyIsDetached(t *testing.T) {
	s := newTestStore(t, newMemPersister())
	st := s.State()
	st.OwnedSkins[0] = "hacked"

	if s.State().OwnedSkins[0] != "classic" {
		t.Error("State() must return a deep copy")
	}
}
