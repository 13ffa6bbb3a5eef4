package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration. It mirrors
// defaults/runner.yaml and is the base every loaded file is overlaid on.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:         900,
			Height:        495,
			GroundHeight:  60,
			SpawnOffset:   20,
			DespawnMargin: 30,
		},
		Player: PlayerConfig{
			X:      80,
			Width:  46,
			Height: 46,
		},
		Physics: PhysicsConfig{
			Gravity:        0.8,
			JumpVelocity:   -12,
			InitialSpeed:   4,
			MaxSpeed:       12,
			SpeedIncrement: 0.02,
			ScoreDivisor:   30,
			PassBonus:      5,
			MaxFrame:       40 * time.Millisecond,
		},
		Spawner: SpawnerConfig{
			Obstacle: ObstacleSpawn{
				IntervalMin:  650,
				IntervalMax:  1400,
				InitialDelay: 900,
				MinWidth:     22,
				MaxWidth:     44,
				MinHeight:    28,
				MaxHeight:    80,
			},
			Coin: CoinSpawn{
				IntervalMin:  700,
				IntervalMax:  1600,
				InitialDelay: 700,
				Radius:       10,
				MinLift:      40,
				MaxLift:      120,
			},
		},
		Perks: PerkEffects{
			SpeedGravityBonus: 0.02,
			SpeedScrollBonus:  2,
			MagnetRadius:      160,
			MagnetStep:        6,
			DoubleJumpCharges: 1,
		},
		Economy: EconomyConfig{
			SkinPrice:        80,
			DefaultSkin:      "classic",
			AutosaveInterval: 2500 * time.Millisecond,
			Skins: []SkinConfig{
				{ID: "classic", Name: "Classic", Color: "white", Accent: "bright_white"},
				{ID: "lava", Name: "Lava", Color: "red", Accent: "orange"},
				{ID: "cyan", Name: "Cyan", Color: "cyan", Accent: "bright_cyan"},
				{ID: "stealth", Name: "Stealth", Color: "blue", Accent: "gray"},
				{ID: "lime", Name: "Neon Lime", Color: "green", Accent: "bright_green"},
			},
			Perks: []PerkConfig{
				{ID: "doubleJump", Name: "Double Jump", Description: "Jump again in mid-air", Price: 150},
				{ID: "shield", Name: "Shield", Description: "Survive one obstacle per run", Price: 200},
				{ID: "magnet", Name: "Magnet", Description: "Pull nearby coins toward you", Price: 120},
				{ID: "speed", Name: "Speed Boost", Description: "Faster scrolling and heavier falls", Price: 180},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:          true,
			MinShrinkDivisor: 6,
			MaxShrinkDivisor: 8,
			IntervalFloor:    250,
			MinWindow:        50,
			WindowScale:      1.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
