package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var flagLevelsCode bool

var levelsCmd = &cobra.Command{
	Use:   "levels [N...]",
	Short: "Print level layouts",
	Long: `Print the block layout of campaign levels as ASCII.

Without arguments every built-in pattern and the first generated level are
shown. Levels past the built-in patterns are generated from the level
number.

Legend: # normal, 1-9 durable hits, X steel, * explosive, . empty

Examples:
  breakout levels
  breakout levels 3 8
  breakout levels 2 --code`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagLevelsCode, "code", false, "Also print each layout's stage code")
}

func runLevels(_ *cobra.Command, args []string) error {
	var levels []int
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid level %q", a)
		}
		levels = append(levels, n)
	}
	if len(levels) == 0 {
		for n := range breakout.PatternCount() + 1 {
			levels = append(levels, n+1)
		}
	}

	for i, n := range levels {
		if i > 0 {
			fmt.Println()
		}
		grid := breakout.GenerateLayout(n)
		fmt.Printf("Level %d: %s (%d blocks)\n", n, breakout.LevelName(n), grid.Count())
		fmt.Println(grid.String())
		if flagLevelsCode {
			fmt.Println(breakout.EncodeStage(grid))
		}
	}
	return nil
}
