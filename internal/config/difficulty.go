package config

import (
	"math"

	"github.com/vovakirdan/dinox/internal/core"
)

// DifficultyConfig defines how the obstacle spawn window shrinks with score.
type DifficultyConfig struct {
	Enabled          bool    `yaml:"enabled"`            // false = window never shrinks
	MinShrinkDivisor float64 `yaml:"min_shrink_divisor"` // lower bound -= score/divisor
	MaxShrinkDivisor float64 `yaml:"max_shrink_divisor"` // upper bound -= score/divisor
	IntervalFloor    float64 `yaml:"interval_floor_ms"`  // lower bound never drops below this
	MinWindow        float64 `yaml:"min_window_ms"`      // upper bound stays at least this far above the lower
	WindowScale      float64 `yaml:"window_scale"`       // multiplies both base bounds (presets)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.WindowScale = 1.2
		cfg.Physics.InitialSpeed = 3.5
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.WindowScale = 1.0
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.WindowScale = 0.8
		cfg.Physics.InitialSpeed = 5
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
	if cfg.Physics.MaxSpeed < cfg.Physics.InitialSpeed {
		cfg.Physics.MaxSpeed = cfg.Physics.InitialSpeed
	}
}

// DifficultyManager calculates the obstacle spawn window from the score.
type DifficultyManager struct {
	cfg      DifficultyConfig
	baseLow  float64
	baseHigh float64
}

// NewDifficultyManager creates a manager for the given base obstacle window.
func NewDifficultyManager(cfg DifficultyConfig, obstacle ObstacleSpawn) *DifficultyManager {
	scale := cfg.WindowScale
	if scale <= 0 {
		scale = 1
	}
	return &DifficultyManager{
		cfg:      cfg,
		baseLow:  obstacle.IntervalMin * scale,
		baseHigh: obstacle.IntervalMax * scale,
	}
}

// IsEnabled returns whether the window shrinks with score.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// ObstacleWindow returns the [low, high] inter-arrival bounds in
// milliseconds for the given score. The low bound is clamped to the floor and
// the window never collapses below MinWindow.
func (d *DifficultyManager) ObstacleWindow(score int) (low, high float64) {
	low, high = d.baseLow, d.baseHigh
	if d.cfg.Enabled {
		low -= shrink(score, d.cfg.MinShrinkDivisor)
		high -= shrink(score, d.cfg.MaxShrinkDivisor)
	}

	floor := math.Max(d.cfg.IntervalFloor, 1)
	low = math.Max(low, floor)
	high = math.Max(high, low+math.Max(d.cfg.MinWindow, 0))
	return low, high
}

// Level returns how far the low bound has travelled toward the floor
// (0.0 = base window, 1.0 = fully shrunk). Used by the HUD.
func (d *DifficultyManager) Level(score int) float64 {
	span := d.baseLow - math.Max(d.cfg.IntervalFloor, 1)
	if !d.cfg.Enabled || span <= 0 {
		return 0
	}
	low, _ := d.ObstacleWindow(score)
	return core.ClampF((d.baseLow-low)/span, 0.0, 1.0)
}

func shrink(score int, divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	return float64(score) / divisor
}
