// Package config provides YAML-based runner configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all tunables of the run simulation and the economy.
type RunnerConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Perks      PerkEffects      `yaml:"perks"`
	Economy    EconomyConfig    `yaml:"economy"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the play field in world units (y grows downward).
type FieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	GroundHeight  float64 `yaml:"ground_height"`
	SpawnOffset   float64 `yaml:"spawn_offset"`   // Distance past the right edge where entities appear
	DespawnMargin float64 `yaml:"despawn_margin"` // Distance past the left edge where entities are dropped
}

// GroundY returns the y-coordinate of the ground line.
func (f FieldConfig) GroundY() float64 {
	return f.Height - f.GroundHeight
}

// PlayerConfig defines the fixed player box.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines per-tick physics and score progression.
type PhysicsConfig struct {
	Gravity        float64       `yaml:"gravity"`
	JumpVelocity   float64       `yaml:"jump_velocity"` // Negative = up
	InitialSpeed   float64       `yaml:"initial_speed"`
	MaxSpeed       float64       `yaml:"max_speed"`
	SpeedIncrement float64       `yaml:"speed_increment"` // Added per passed obstacle
	ScoreDivisor   float64       `yaml:"score_divisor"`   // score += floor(speed*dt/divisor)
	PassBonus      int           `yaml:"pass_bonus"`
	MaxFrame       time.Duration `yaml:"max_frame"` // Upper bound on a tick's elapsed time
}

// SpawnerConfig defines obstacle and coin generation.
type SpawnerConfig struct {
	Obstacle ObstacleSpawn `yaml:"obstacle"`
	Coin     CoinSpawn     `yaml:"coin"`
}

// ObstacleSpawn defines the obstacle inter-arrival window and sizes.
// Interval values are milliseconds.
type ObstacleSpawn struct {
	IntervalMin  float64 `yaml:"interval_min_ms"`
	IntervalMax  float64 `yaml:"interval_max_ms"`
	InitialDelay float64 `yaml:"initial_delay_ms"`
	MinWidth     float64 `yaml:"min_width"`
	MaxWidth     float64 `yaml:"max_width"`
	MinHeight    float64 `yaml:"min_height"`
	MaxHeight    float64 `yaml:"max_height"`
}

// CoinSpawn defines the coin inter-arrival window and placement band.
type CoinSpawn struct {
	IntervalMin  float64 `yaml:"interval_min_ms"`
	IntervalMax  float64 `yaml:"interval_max_ms"`
	InitialDelay float64 `yaml:"initial_delay_ms"`
	Radius       float64 `yaml:"radius"`
	MinLift      float64 `yaml:"min_lift"` // Lowest coin center above ground
	MaxLift      float64 `yaml:"max_lift"` // Highest coin center above ground
}

// PerkEffects defines how owned perks modify the simulation.
type PerkEffects struct {
	SpeedGravityBonus float64 `yaml:"speed_gravity_bonus"` // Fractional gravity increase
	SpeedScrollBonus  float64 `yaml:"speed_scroll_bonus"`  // Added to scroll speed
	MagnetRadius      float64 `yaml:"magnet_radius"`
	MagnetStep        float64 `yaml:"magnet_step"`
	DoubleJumpCharges int     `yaml:"double_jump_charges"` // Air jumps restored on landing
}

// EconomyConfig defines the shop catalog and persistence cadence.
type EconomyConfig struct {
	SkinPrice        int           `yaml:"skin_price"`
	DefaultSkin      string        `yaml:"default_skin"`
	Skins            []SkinConfig  `yaml:"skins"`
	Perks            []PerkConfig  `yaml:"perks"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
}

// SkinConfig describes a cosmetic skin.
type SkinConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Color  string `yaml:"color"`
	Accent string `yaml:"accent"`
}

// PerkConfig describes a purchasable perk.
type PerkConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int    `yaml:"price"`
}

// Validate reports every setting that would make the simulation unusable.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0, "field: size must be positive")
	check(c.Field.GroundHeight >= 0 && c.Field.GroundHeight < c.Field.Height, "field: ground_height out of range")
	check(c.Player.Width > 0 && c.Player.Height > 0, "player: size must be positive")
	check(c.Player.Height < c.Field.GroundY(), "player: taller than the field")
	check(c.Physics.Gravity > 0, "physics: gravity must be positive")
	check(c.Physics.JumpVelocity < 0, "physics: jump_velocity must be negative (up)")
	check(c.Physics.InitialSpeed > 0 && c.Physics.MaxSpeed >= c.Physics.InitialSpeed, "physics: speed range invalid")
	check(c.Physics.ScoreDivisor > 0, "physics: score_divisor must be positive")
	check(c.Physics.MaxFrame > 0, "physics: max_frame must be positive")

	o := c.Spawner.Obstacle
	check(o.IntervalMin > 0 && o.IntervalMax >= o.IntervalMin, "spawner.obstacle: interval window invalid")
	check(o.MinWidth > 0 && o.MaxWidth >= o.MinWidth, "spawner.obstacle: width range invalid")
	check(o.MinHeight > 0 && o.MaxHeight >= o.MinHeight, "spawner.obstacle: height range invalid")
	co := c.Spawner.Coin
	check(co.IntervalMin > 0 && co.IntervalMax >= co.IntervalMin, "spawner.coin: interval window invalid")
	check(co.Radius > 0, "spawner.coin: radius must be positive")
	check(co.MinLift >= 0 && co.MaxLift >= co.MinLift, "spawner.coin: lift band invalid")

	check(c.Economy.SkinPrice >= 0, "economy: skin_price must not be negative")
	check(c.Economy.AutosaveInterval > 0, "economy: autosave_interval must be positive")
	defaultFound := false
	for _, s := range c.Economy.Skins {
		if s.ID == c.Economy.DefaultSkin {
			defaultFound = true
		}
	}
	check(defaultFound, "economy: default_skin %q missing from skins", c.Economy.DefaultSkin)
	for _, p := range c.Economy.Perks {
		check(p.Price >= 0, "economy: perk %q has negative price", p.ID)
	}

	check(c.Difficulty.WindowScale > 0, "difficulty: window_scale must be positive")
	check(c.Difficulty.IntervalFloor > 0, "difficulty: interval_floor_ms must be positive")

	return errors.Join(errs...)
}
