package runner

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/economy"
)

// State is the run lifecycle state.
type State int

const (
	StateIdle    State = iota // Before the first run
	StateRunning              // Ticks advance the simulation
	StatePaused               // Frozen; accepts resume and shop commands
	StateEnded                // Player died; waits for a new run
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// TickResult reports what a single Tick did.
type TickResult struct {
	Stepped bool          // false when the tick was a no-op (not running)
	Elapsed time.Duration // Clamped simulation time consumed
	Events  []Event
	Ended   bool // The run ended during this tick
	Score   int  // Score after the tick
}

// Options configures a Controller.
type Options struct {
	Config  config.RunnerConfig
	Economy *economy.Store // Required
	Seed    int64          // Spawner RNG seed
	Logger  *log.Logger    // nil uses log.Default()
}

// Controller owns one run at a time and drives it through the lifecycle
// Idle -> Running <-> Paused, Running -> Ended -> Running. It is advanced by
// an external scheduler calling Tick once per frame and is not safe for
// concurrent use.
type Controller struct {
	cfg        config.RunnerConfig
	economy    *economy.Store
	difficulty *config.DifficultyManager
	spawner    *Spawner
	world      *world
	logger     *log.Logger

	state        State
	shopOpen     bool
	pausedByShop bool
	lastTick     time.Time
	runs         int
}

// NewController creates a controller in the Idle state.
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	diff := config.NewDifficultyManager(opts.Config.Difficulty, opts.Config.Spawner.Obstacle)
	return &Controller{
		cfg:        opts.Config,
		economy:    opts.Economy,
		difficulty: diff,
		spawner:    NewSpawner(opts.Config, diff, opts.Seed),
		world:      newWorld(opts.Config),
		logger:     opts.Logger,
		state:      StateIdle,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// ShopOpen reports whether the shop surface is open.
func (c *Controller) ShopOpen() bool {
	return c.shopOpen
}

// Economy returns the economy store the controller credits.
func (c *Controller) Economy() *economy.Store {
	return c.economy
}

// StartNewRun resets every run-scoped value and enters Running. Calling it
// mid-run abandons the current run without recording its score.
func (c *Controller) StartNewRun() {
	perks := c.economy.State().OwnedPerks
	c.world.reset(perks)
	c.spawner.Reset()
	c.state = StateRunning
	c.shopOpen = false
	c.pausedByShop = false
	c.lastTick = time.Time{}
	c.runs++

	c.logger.Debug("run started", "run", c.runs, "shield", perks.Shield, "doubleJump", perks.DoubleJump)
}

// Jump makes the player jump. It is ignored unless the run is active.
func (c *Controller) Jump() bool {
	if c.state != StateRunning {
		return false
	}
	return c.world.jump(c.economy.State().OwnedPerks)
}

// TogglePause switches between Running and Paused. Resuming also closes a
// shop that is still open.
func (c *Controller) TogglePause() {
	switch c.state {
	case StateRunning:
		c.state = StatePaused
	case StatePaused:
		c.state = StateRunning
		c.shopOpen = false
		c.pausedByShop = false
	}
}

// OpenShop opens the shop and pauses a running run. An ended run stays
// Ended with the shop on top.
func (c *Controller) OpenShop() {
	c.shopOpen = true
	if c.state == StateRunning {
		c.state = StatePaused
		c.pausedByShop = true
	}
}

// CloseShop closes the shop and resumes the run if opening it paused it.
func (c *Controller) CloseShop() {
	if !c.shopOpen {
		return
	}
	c.shopOpen = false
	if c.pausedByShop && c.state == StatePaused {
		c.state = StateRunning
	}
	c.pausedByShop = false
}

// PurchaseSkin buys and activates a skin.
func (c *Controller) PurchaseSkin(id economy.SkinID) (economy.State, error) {
	st, err := c.economy.PurchaseSkin(id)
	if err != nil {
		c.logger.Warn("skin purchase rejected", "skin", id, "error", err)
		return st, err
	}
	c.logger.Info("skin purchased", "skin", id, "coins", st.Coins)
	return st, nil
}

// PurchasePerk buys a perk. Perks act from the next tick; the shield is
// granted at the start of the next run.
func (c *Controller) PurchasePerk(id economy.PerkID) (economy.State, error) {
	st, err := c.economy.PurchasePerk(id)
	if err != nil {
		c.logger.Warn("perk purchase rejected", "perk", id, "error", err)
		return st, err
	}
	c.logger.Info("perk purchased", "perk", id, "coins", st.Coins)
	return st, nil
}

// SetActiveSkin switches to an owned skin.
func (c *Controller) SetActiveSkin(id economy.SkinID) error {
	if err := c.economy.SetActiveSkin(id); err != nil {
		c.logger.Warn("skin activation rejected", "skin", id, "error", err)
		return err
	}
	return nil
}

// Tick advances the simulation to now. When the run is not active it only
// records now, so resuming never replays the paused time. Elapsed time is
// clamped to the configured maximum frame and the first tick of a run
// advances by zero.
func (c *Controller) Tick(now time.Time) TickResult {
	c.economy.Autosave(now)

	if c.state != StateRunning {
		c.lastTick = now
		return TickResult{Score: c.world.run.Score}
	}

	var elapsed time.Duration
	if !c.lastTick.IsZero() {
		elapsed = min(max(now.Sub(c.lastTick), 0), c.cfg.Physics.MaxFrame)
	}
	c.lastTick = now
	dt := float64(elapsed) / float64(time.Millisecond)

	perks := c.economy.State().OwnedPerks
	o, coin := c.spawner.Update(dt, c.world.run.Score)
	if o != nil {
		c.world.obstacles = append(c.world.obstacles, *o)
	}
	if coin != nil {
		c.world.coins = append(c.world.coins, *coin)
	}

	events := c.world.step(dt, perks)
	res := TickResult{Stepped: true, Elapsed: elapsed, Events: events}

	coins := 0
	for _, ev := range events {
		switch ev {
		case EventCoinCollected:
			coins++
		case EventShieldAbsorbed:
			c.logger.Debug("shield absorbed a hit", "score", c.world.run.Score)
		case EventPlayerDied:
			res.Ended = true
		}
	}
	c.economy.CreditCoins(coins)

	if res.Ended {
		c.endRun()
	}
	res.Score = c.world.run.Score
	return res
}

// endRun freezes the run and persists the best score.
func (c *Controller) endRun() {
	c.state = StateEnded
	score := c.world.run.Score
	c.economy.RecordScore(score)
	//nolint:errcheck // Logged inside Persist
	c.economy.Persist()

	c.logger.Info("run ended",
		"run", c.runs,
		"score", score,
		"coins", c.world.run.CoinsCollected,
		"passed", c.world.run.Passed,
		"best", c.economy.State().BestScore,
	)
}

// Close writes any unsaved economy changes. The controller stays usable.
func (c *Controller) Close() error {
	if !c.economy.Dirty() {
		return nil
	}
	return c.economy.Persist()
}
