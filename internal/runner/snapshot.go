package runner

import (
	"slices"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/economy"
)

// Snapshot is a read-only copy of everything needed to draw a frame.
// Mutating it has no effect on the simulation.
type Snapshot struct {
	State    State
	ShopOpen bool

	Field     config.FieldConfig
	Player    Player
	Obstacles []Obstacle
	Coins     []Coin
	Run       RunState
	Level     float64 // Difficulty progress, 0..1

	Wallet     int // Persistent coins
	BestScore  int
	ActiveSkin economy.SkinID
	Perks      economy.PerkSet
}

// Snapshot returns a copy of the current run and economy state.
func (c *Controller) Snapshot() Snapshot {
	econ := c.economy.State()
	return Snapshot{
		State:      c.state,
		ShopOpen:   c.shopOpen,
		Field:      c.cfg.Field,
		Player:     c.world.player,
		Obstacles:  slices.Clone(c.world.obstacles),
		Coins:      slices.Clone(c.world.coins),
		Run:        c.world.run,
		Level:      c.difficulty.Level(c.world.run.Score),
		Wallet:     econ.Coins,
		BestScore:  econ.BestScore,
		ActiveSkin: econ.ActiveSkin,
		Perks:      econ.OwnedPerks,
	}
}
