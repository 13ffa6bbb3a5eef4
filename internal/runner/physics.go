package runner

import (
	"math"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/core"
	"github.com/vovakirdan/dinox/internal/economy"
)

// Event is something that happened during a tick.
type Event int

const (
	EventCoinCollected  Event = iota + 1 // One coin picked up; worth one currency unit
	EventObstaclePassed                  // Obstacle cleared; pass bonus and speed-up applied
	EventShieldAbsorbed                  // Shield consumed instead of the player
	EventPlayerDied                      // Terminal for the run
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventCoinCollected:
		return "CoinCollected"
	case EventObstaclePassed:
		return "ObstaclePassed"
	case EventShieldAbsorbed:
		return "ShieldAbsorbed"
	case EventPlayerDied:
		return "PlayerDied"
	default:
		return "Unknown"
	}
}

// world holds the run-scoped entities and advances them one tick at a time.
type world struct {
	cfg       config.RunnerConfig
	run       RunState
	player    Player
	obstacles []Obstacle
	coins     []Coin
}

func newWorld(cfg config.RunnerConfig) *world {
	w := &world{
		cfg:       cfg,
		obstacles: make([]Obstacle, 0, 8),
		coins:     make([]Coin, 0, 8),
	}
	w.reset(economy.PerkSet{})
	return w
}

// reset discards every entity and applies the starting bonuses of the perks.
func (w *world) reset(perks economy.PerkSet) {
	w.run = RunState{Speed: w.cfg.Physics.InitialSpeed}
	w.player = newPlayer(w.cfg)
	w.player.ShieldActive = perks.Shield
	w.player.JumpsRemaining = w.airJumps(perks)
	w.obstacles = w.obstacles[:0]
	w.coins = w.coins[:0]
}

// jump starts a jump from the ground, or spends an air jump when airborne.
func (w *world) jump(perks economy.PerkSet) bool {
	p := &w.player
	if !p.Alive {
		return false
	}
	switch {
	case p.OnGround:
	case perks.DoubleJump && p.JumpsRemaining > 0:
		p.JumpsRemaining--
	default:
		return false
	}
	p.VY = w.cfg.Physics.JumpVelocity
	p.OnGround = false
	return true
}

// step runs one simulation tick of dt milliseconds. The order of the phases
// is fixed: later phases read what earlier ones wrote.
func (w *world) step(dt float64, perks economy.PerkSet) []Event {
	var events []Event

	w.progress(dt)
	w.integratePlayer(perks)
	events = w.resolveObstacles(perks, events)
	events = w.resolveCoins(perks, events)
	w.collectGarbage()

	return events
}

// progress adds the distance score for this tick.
func (w *world) progress(dt float64) {
	w.run.Score += int(math.Floor(w.run.Speed * dt / w.cfg.Physics.ScoreDivisor))
	w.run.Score = max(w.run.Score, 0)
}

// integratePlayer applies gravity and resolves landing.
func (w *world) integratePlayer(perks economy.PerkSet) {
	p := &w.player
	gravity := w.cfg.Physics.Gravity
	if perks.Speed {
		gravity *= 1 + w.cfg.Perks.SpeedGravityBonus
	}

	p.VY += gravity
	p.Y += p.VY

	groundY := w.cfg.Field.GroundY()
	if p.Y+p.H >= groundY {
		p.Y = groundY - p.H
		p.VY = 0
		p.OnGround = true
		p.JumpsRemaining = w.airJumps(perks)
	} else {
		p.OnGround = false
	}
}

// resolveObstacles scrolls obstacles, awards passes and handles hits.
func (w *world) resolveObstacles(perks economy.PerkSet, events []Event) []Event {
	scroll := w.scrollSpeed(perks)
	p := &w.player

	for i := range w.obstacles {
		o := &w.obstacles[i]
		o.X -= scroll

		if !o.Passed && o.Right() <= p.X {
			o.Passed = true
			w.run.Score += w.cfg.Physics.PassBonus
			w.run.Passed++
			w.run.Speed = math.Min(w.cfg.Physics.MaxSpeed, w.run.Speed+w.cfg.Physics.SpeedIncrement)
			events = append(events, EventObstaclePassed)
		}

		if o.Absorbed || !p.Alive || !p.Rect().Intersects(o.Rect()) {
			continue
		}
		if p.ShieldActive {
			p.ShieldActive = false
			o.Absorbed = true
			events = append(events, EventShieldAbsorbed)
			continue
		}
		p.Alive = false
		events = append(events, EventPlayerDied)
	}
	return events
}

// resolveCoins applies the magnet, scrolls coins and collects overlaps.
func (w *world) resolveCoins(perks economy.PerkSet, events []Event) []Event {
	scroll := w.scrollSpeed(perks)
	p := &w.player
	cx, cy := p.Center()
	body := p.Rect()

	for i := range w.coins {
		c := &w.coins[i]
		if perks.Magnet {
			w.attract(c, cx, cy)
		}
		c.X -= scroll

		if c.Collected || !p.Alive {
			continue
		}
		if c.Circle().IntersectsRect(body) {
			c.Collected = true
			w.run.CoinsCollected++
			events = append(events, EventCoinCollected)
		}
	}
	return events
}

// attract moves a coin a fixed step toward (x, y) when inside the radius.
func (w *world) attract(c *Coin, x, y float64) {
	dist := core.Distance(c.X, c.Y, x, y)
	if dist == 0 || dist >= w.cfg.Perks.MagnetRadius {
		return
	}
	step := w.cfg.Perks.MagnetStep
	c.X += (x - c.X) / dist * step
	c.Y += (y - c.Y) / dist * step
}

// collectGarbage drops entities past the left margin and collected coins.
func (w *world) collectGarbage() {
	margin := -w.cfg.Field.DespawnMargin

	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		if o.Right() > margin {
			kept = append(kept, o)
		}
	}
	w.obstacles = kept

	keptCoins := w.coins[:0]
	for _, c := range w.coins {
		if c.X > margin && !c.Collected {
			keptCoins = append(keptCoins, c)
		}
	}
	w.coins = keptCoins
}

// scrollSpeed returns the base speed plus the speed perk bonus.
func (w *world) scrollSpeed(perks economy.PerkSet) float64 {
	if perks.Speed {
		return w.run.Speed + w.cfg.Perks.SpeedScrollBonus
	}
	return w.run.Speed
}

func (w *world) airJumps(perks economy.PerkSet) int {
	if perks.DoubleJump {
		return w.cfg.Perks.DoubleJumpCharges
	}
	return 0
}
