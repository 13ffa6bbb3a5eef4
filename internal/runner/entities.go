// Package runner implements the endless-runner simulation: entity spawning,
// physics and collision resolution, and the run lifecycle state machine.
// The player stays at a fixed x while the world scrolls left.
package runner

import (
	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/core"
)

// RunState is the run-scoped progression. It is discarded when the run ends.
type RunState struct {
	Score          int     // Distance score plus pass bonuses
	Speed          float64 // Base scroll speed in world units per tick
	Passed         int     // Obstacles cleared this run
	CoinsCollected int     // Coins picked up this run
}

// Player is the runner. X never changes; Y is the top edge (y grows down).
type Player struct {
	X, Y, W, H     float64
	VY             float64 // Vertical velocity, negative = up
	OnGround       bool
	JumpsRemaining int // Air jumps left until the next landing
	Alive          bool
	ShieldActive   bool
}

// Rect returns the collision box.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Center returns the center of the collision box.
func (p Player) Center() (float64, float64) {
	return p.Rect().Center()
}

// Obstacle is a ground block the player must jump over.
type Obstacle struct {
	X, Y, W, H float64
	Passed     bool // Trailing edge has crossed the player's leading edge
	Absorbed   bool // Hit while the shield was up; harmless from now on
}

// Rect returns the collision box.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// Right returns the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.W
}

// Coin is a collectible disc. X and Y are the center.
type Coin struct {
	X, Y      float64
	Radius    float64
	Collected bool
}

// Circle returns the collision disc.
func (c Coin) Circle() core.Circle {
	return core.Circle{X: c.X, Y: c.Y, R: c.Radius}
}

// newPlayer places a fresh player on the ground.
func newPlayer(cfg config.RunnerConfig) Player {
	return Player{
		X:        cfg.Player.X,
		Y:        cfg.Field.GroundY() - cfg.Player.Height,
		W:        cfg.Player.Width,
		H:        cfg.Player.Height,
		OnGround: true,
		Alive:    true,
	}
}
