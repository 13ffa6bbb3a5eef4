package runner

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/economy"
)

type memPersister struct {
	blobs map[string][]byte
	saves int
}

func (m *memPersister) Load(key string) ([]byte, error) {
	return m.blobs[key], nil
}

func (m *memPersister) Save(key string, data []byte) error {
	m.saves++
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func newTestController(t *testing.T, seed int64) (*Controller, *memPersister) {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	p := &memPersister{blobs: make(map[string][]byte)}
	logger := log.New(io.Discard)
	store := economy.NewStore(economy.Options{
		Key:              "test",
		Persister:        p,
		Catalog:          economy.NewCatalog(cfg.Economy),
		AutosaveInterval: cfg.Economy.AutosaveInterval,
		Logger:           logger,
	})
	return NewController(Options{Config: cfg, Economy: store, Seed: seed, Logger: logger}), p
}

func buyPerk(t *testing.T, c *Controller, id economy.PerkID) {
	t.Helper()
	c.Economy().CreditCoins(1000)
	if _, err := c.PurchasePerk(id); err != nil {
		t.Fatalf("PurchasePerk(%s) failed: %v", id, err)
	}
}

var t0 = time.Unix(1_700_000_000, 0)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestControllerStartsIdle(t *testing.T) {
	c, _ := newTestController(t, 1)

	if c.State() != StateIdle {
		t.Fatalf("State = %v, expected Idle", c.State())
	}
	if res := c.Tick(at(0)); res.Stepped {
		t.Error("Idle tick should not step")
	}
	if c.Jump() {
		t.Error("Idle controller should ignore jumps")
	}
}

func TestTickElapsedClamp(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.StartNewRun()

	if res := c.Tick(at(0)); !res.Stepped || res.Elapsed != 0 {
		t.Errorf("first tick: %+v, expected zero elapsed", res)
	}
	if res := c.Tick(at(16)); res.Elapsed != 16*time.Millisecond {
		t.Errorf("Elapsed = %v, expected 16ms", res.Elapsed)
	}
	if res := c.Tick(at(1016)); res.Elapsed != 40*time.Millisecond {
		t.Errorf("Elapsed = %v, expected clamp to 40ms", res.Elapsed)
	}
	if res := c.Tick(at(1000)); res.Elapsed != 0 {
		t.Errorf("Elapsed = %v, expected 0 for a backwards clock", res.Elapsed)
	}
}

func TestPauseHasNoTimeDebt(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.StartNewRun()
	c.Tick(at(0))
	c.Tick(at(16))

	c.TogglePause()
	if c.State() != StatePaused {
		t.Fatalf("State = %v, expected Paused", c.State())
	}
	before := c.Snapshot()
	last := 16
	for ms := 32; ms <= 5000; ms += 16 {
		if res := c.Tick(at(ms)); res.Stepped {
			t.Fatal("paused tick should not step")
		}
		last = ms
	}
	after := c.Snapshot()
	if !reflect.DeepEqual(before.Player, after.Player) || before.Run != after.Run {
		t.Error("simulation advanced while paused")
	}
	if c.Jump() {
		t.Error("jump should be ignored while paused")
	}

	c.TogglePause()
	res := c.Tick(at(last + 16))
	if res.Elapsed != 16*time.Millisecond {
		t.Errorf("Elapsed after resume = %v, expected 16ms", res.Elapsed)
	}
}

func TestShopPausesAndResumes(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.StartNewRun()

	c.OpenShop()
	if c.State() != StatePaused || !c.ShopOpen() {
		t.Fatalf("OpenShop: state=%v shop=%v", c.State(), c.ShopOpen())
	}
	c.CloseShop()
	if c.State() != StateRunning || c.ShopOpen() {
		t.Fatalf("CloseShop: state=%v shop=%v", c.State(), c.ShopOpen())
	}

	// A manual pause survives opening and closing the shop.
	c.TogglePause()
	c.OpenShop()
	c.CloseShop()
	if c.State() != StatePaused {
		t.Errorf("State = %v, expected Paused", c.State())
	}
}

func TestShopAfterDeathKeepsEnded(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.StartNewRun()
	c.world.obstacles = append(c.world.obstacles, Obstacle{X: 100, Y: 400, W: 30, H: 35})
	c.Tick(at(0))

	c.OpenShop()
	if c.State() != StateEnded || !c.ShopOpen() {
		t.Errorf("state=%v shop=%v, expected Ended with shop open", c.State(), c.ShopOpen())
	}
	c.CloseShop()
	if c.State() != StateEnded {
		t.Errorf("State = %v, expected Ended", c.State())
	}
	c.TogglePause()
	if c.State() != StateEnded {
		t.Error("pause must not leave Ended")
	}

	c.StartNewRun()
	if c.State() != StateRunning || c.ShopOpen() {
		t.Errorf("StartNewRun: state=%v shop=%v", c.State(), c.ShopOpen())
	}
}

func TestDeathEndsRunAndPersistsBest(t *testing.T) {
	c, p := newTestController(t, 1)
	c.StartNewRun()
	c.Tick(at(0))
	c.world.run.Score = 42
	c.world.obstacles = append(c.world.obstacles, Obstacle{X: 100, Y: 400, W: 30, H: 35})

	res := c.Tick(at(16))
	if !res.Ended || c.State() != StateEnded {
		t.Fatalf("expected the run to end, got %+v state=%v", res, c.State())
	}
	if c.Snapshot().Player.Alive {
		t.Error("player should be dead")
	}

	saved, err := economy.Decode(p.blobs["test"], "classic")
	if err != nil {
		t.Fatalf("no save written: %v", err)
	}
	if saved.BestScore != res.Score || res.Score < 42 {
		t.Errorf("persisted best = %d, expected final score %d", saved.BestScore, res.Score)
	}

	// Frozen after death
	if c.Tick(at(32)).Stepped {
		t.Error("ended run should not step")
	}
}

func TestLowerScoreKeepsBest(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Economy().RecordScore(500)

	c.StartNewRun()
	c.world.obstacles = append(c.world.obstacles, Obstacle{X: 100, Y: 400, W: 30, H: 35})
	c.Tick(at(0))

	if got := c.Snapshot().BestScore; got != 500 {
		t.Errorf("BestScore = %d, expected 500", got)
	}
}

func TestShieldGrantedAtRunStart(t *testing.T) {
	c, _ := newTestController(t, 1)
	buyPerk(t, c, economy.PerkShield)

	c.StartNewRun()
	if !c.Snapshot().Player.ShieldActive {
		t.Fatal("shield perk should grant a shield at run start")
	}

	c.world.obstacles = append(c.world.obstacles, Obstacle{X: 100, Y: 400, W: 30, H: 35})
	res := c.Tick(at(0))
	if res.Ended || c.State() != StateRunning {
		t.Fatal("shielded hit should not end the run")
	}
	if c.Snapshot().Player.ShieldActive {
		t.Error("shield should be consumed")
	}

	// Renewed by the next run only.
	c.StartNewRun()
	if !c.Snapshot().Player.ShieldActive {
		t.Error("new run should grant a fresh shield")
	}
}

func TestCoinsCreditedToEconomy(t *testing.T) {
	c, p := newTestController(t, 1)
	c.StartNewRun()
	c.world.coins = append(c.world.coins,
		Coin{X: 110, Y: 400, Radius: 10},
		Coin{X: 120, Y: 410, Radius: 10},
	)

	res := c.Tick(at(0))
	if n := len(res.Events); n != 2 {
		t.Fatalf("expected 2 coin events, got %v", res.Events)
	}
	snap := c.Snapshot()
	if snap.Wallet != 2 || snap.Run.CoinsCollected != 2 {
		t.Errorf("wallet=%d run=%d, expected 2", snap.Wallet, snap.Run.CoinsCollected)
	}
	if p.saves != 0 {
		t.Error("coin pickups should wait for autosave")
	}

	// Autosave fires on the tick clock, paused or not.
	c.TogglePause()
	c.Tick(at(2500))
	if p.saves != 1 {
		t.Errorf("expected one autosave, got %d", p.saves)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.StartNewRun()
	c.world.obstacles = append(c.world.obstacles, Obstacle{X: 500, Y: 400, W: 30, H: 35})

	snap := c.Snapshot()
	snap.Obstacles[0].X = 0
	snap.Player.Alive = false

	if c.world.obstacles[0].X != 500 || !c.world.player.Alive {
		t.Error("mutating a snapshot changed the simulation")
	}
}

func TestEconomyInvariantsAcrossTicks(t *testing.T) {
	c, _ := newTestController(t, 99)
	buyPerk(t, c, economy.PerkMagnet)
	buyPerk(t, c, economy.PerkDoubleJump)

	for run := 0; run < 3; run++ {
		c.StartNewRun()
		for i := 0; i < 3000 && c.State() == StateRunning; i++ {
			if i%23 == 0 {
				c.Jump()
			}
			c.Tick(at(run*100000 + i*16))

			st := c.Economy().State()
			if st.Coins < 0 {
				t.Fatalf("coins went negative: %d", st.Coins)
			}
			if !st.Owns(st.ActiveSkin) {
				t.Fatalf("active skin %q not owned", st.ActiveSkin)
			}
			snap := c.Snapshot()
			for _, o := range snap.Obstacles {
				if o.Right() <= -30 {
					t.Fatalf("obstacle left behind GC: %+v", o)
				}
			}
			for _, coin := range snap.Coins {
				if coin.X <= -30 || coin.Collected {
					t.Fatalf("coin left behind GC: %+v", coin)
				}
			}
		}
	}
}

func TestControllerDeterminism(t *testing.T) {
	play := func() Snapshot {
		c, _ := newTestController(t, 2024)
		c.StartNewRun()
		for i := 0; i < 1500 && c.State() == StateRunning; i++ {
			if i%31 == 0 {
				c.Jump()
			}
			c.Tick(at(i * 16))
		}
		return c.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs produced different runs:\n%+v\n%+v", a.Run, b.Run)
	}
}

func TestPurchasesThroughController(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Economy().CreditCoins(100)

	st, err := c.PurchaseSkin("lava")
	if err != nil {
		t.Fatalf("PurchaseSkin failed: %v", err)
	}
	if st.Coins != 20 || c.Snapshot().ActiveSkin != "lava" {
		t.Errorf("unexpected state after purchase: %+v", st)
	}
	if err := c.SetActiveSkin("stealth"); err == nil {
		t.Error("activating an unowned skin should fail")
	}
	if _, err := c.PurchasePerk(economy.PerkMagnet); err == nil {
		t.Error("perk purchase with 20 coins should fail")
	}
}

func TestCloseWritesPendingChanges(t *testing.T) {
	c, p := newTestController(t, 1)
	c.Economy().CreditCoins(3)

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if p.saves != 1 {
		t.Errorf("expected pending changes to be written, got %d saves", p.saves)
	}
	if err := c.Close(); err != nil || p.saves != 1 {
		t.Error("clean Close should not write")
	}
}
