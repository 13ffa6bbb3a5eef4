package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinox/internal/config"
	"github.com/vovakirdan/dinox/internal/core"
	"github.com/vovakirdan/dinox/internal/economy"
	"github.com/vovakirdan/dinox/internal/platform/tui"
	"github.com/vovakirdan/dinox/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSaveKey    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a local run",
	Long: `Start the runner in this terminal.

Controls:
  Space/Up   - Start a run / jump (again in the air with Double Jump)
  P          - Pause
  S          - Open the shop (pauses the run)
  R/Enter    - Restart (after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Wider obstacle gaps and a slower start
  normal - Default tuning
  hard   - Tighter gaps and a faster start
  fixed  - Gaps never shrink with score

Examples:
  dinox play
  dinox play --difficulty easy
  dinox play --config ./my-runner.yaml
  dinox play --save second-slot`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSaveKey, "save", economy.DefaultSaveKey, "Save slot for coins, skins and perks")
}

// loadRunnerConfig loads the config file and applies the difficulty flag.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger, logCloser := fileLogger(flagLogFile, "dinox")

	// Open storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - the economy lives for this session only
		store = nil
	}

	opts := tui.Options{
		Controller: tui.NewSession(runnerCfg, store, flagSaveKey, seed, logger),
		Player:     flagSaveKey,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     seed,
		},
		Logger: logger,
	}
	if store != nil {
		opts.Runs = store
	}

	runErr := tui.Run(opts)

	// Close store and log before potential exit
	if store != nil {
		store.Close()
	}
	logCloser.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
