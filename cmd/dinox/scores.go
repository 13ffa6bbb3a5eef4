package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinox/internal/platform/tui"
	"github.com/vovakirdan/dinox/internal/storage"
)

var (
	flagLimit       int
	flagPlayer      string
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best recorded runs.

Without --player the leaderboard covers every save slot and SSH user.
With --interactive a browsable history opens instead.

Examples:
  dinox scores
  dinox scores --limit 20
  dinox scores --player ssh:alice
  dinox scores -i`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show runs of this save slot or SSH user (ssh:<name>)")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the history in a TUI")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: --interactive needs a terminal")
			os.Exit(1)
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistoryViewer(store, flagPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(flagPlayer, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "everyone"
	if flagPlayer != "" {
		title = flagPlayer
	}
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dinox play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Coins", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %s\n", "----", "------", "-----", "-----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-8d  %-6d  %s\n", i+1, r.Player, r.Score, r.Coins, dateStr)
	}

	if flagPlayer != "" {
		stats, err := store.Stats(flagPlayer)
		if err == nil {
			fmt.Println()
			fmt.Printf("Best: %s  Runs: %d  Avg: %.0f  Coins earned: %s\n",
				humanize.Comma(int64(stats.HighScore)), stats.RunsCount, stats.AvgScore, humanize.Comma(stats.TotalCoins))
			if !stats.LastPlayed.IsZero() {
				fmt.Printf("Last played: %s\n", humanize.Time(stats.LastPlayed))
			}
		}
	}
}
