// dinox is an endless runner for the terminal with a persistent coin economy.
//
// Usage:
//
//	dinox play               - Start a local run
//	dinox serve              - Start SSH server for remote play
//	dinox scores             - Show run history and best scores
//	dinox shop list          - Show the shop catalog and your wallet
//	dinox shop buy-skin <id> - Buy or wear a skin
//	dinox shop buy-perk <id> - Buy a perk
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.dinox/dinox.db)
//	--log-file <path>   - Where local play writes its log (default: ~/.dinox/dinox.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinox",
	Short: "DinoX - an endless runner in your terminal",
	Long: `DinoX is a terminal endless runner. Jump over obstacles, collect
coins and spend them on skins and perks that last across runs.

Available commands:
  play     - Start a local run
  serve    - Start SSH server for remote play
  scores   - View run history
  shop     - Inspect and use the shop without playing

Examples:
  dinox play
  dinox play --difficulty hard
  dinox serve --ssh :2222
  dinox scores --limit 20
  dinox shop buy-perk doubleJump`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dinox/dinox.db", "Path to saves and run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.dinox/dinox.log", "Log file for local play (empty disables logging)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shopCmd)
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// fileLogger opens the log file for a terminal session. The TUI owns the
// terminal, so logs cannot go to stderr while it runs. The returned closer
// must be called on exit.
func fileLogger(path, prefix string) (*log.Logger, io.Closer) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}

	path = expandHome(path)
	//nolint:errcheck // OpenFile reports the real failure
	os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, f
}
