package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and run history",
	Long: `Display the top 3 table, the best recorded runs and overall stats.

Examples:
  breakout scores
  breakout scores --limit 20
  breakout scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to list")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	prefs := settings.NewStore(settings.OpenGdata(logger), logger)
	top := breakout.NewHighScores(prefs).Entries()

	fmt.Println("High Scores - Breakout")
	fmt.Println()
	for i, s := range top {
		fmt.Printf("  #%d  %d\n", i+1, s)
	}
	fmt.Println()

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-8s  %s\n", "Rank", "Score", "Level", "Combo", "Blocks", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-8s  %s\n", "----", "-----", "-----", "-----", "------", "----", "----")

	// Print runs
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  x%-4d  %-6d  %-8s  %s\n",
			i+1, r.Score, r.Level, r.MaxCombo, r.Blocks,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show stats
	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Best level: %d  Best combo: x%d\n",
		stats.Runs, stats.HighScore, stats.AvgScore, stats.BestLevel, stats.BestCombo)
	fmt.Printf("Time played: %s  Last played: %s\n",
		stats.TotalTime.Round(time.Second), stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
