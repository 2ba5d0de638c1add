package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var flagMenuSound bool

func init() {
	rootCmd.Flags().BoolVar(&flagMenuSound, "sound", false, "Play sound effects")
}

func runMenu(_ *cobra.Command, _ []string) error {
	svc, cleanup, err := openServices(serviceOptions{LogToFile: true, Sound: flagMenuSound})
	if err != nil {
		return err
	}
	defer cleanup()

	stage := loadDraft(svc)

	// Menu loop
	for {
		best := breakout.NewHighScores(svc.Prefs).Best()
		result, err := tui.RunMenu(svc.Runtime.ScreenW, svc.Runtime.ScreenH, best)
		if err != nil {
			return err
		}

		// Update config with any size changes
		if result.Width > 0 {
			svc.Runtime.ScreenW = result.Width
			svc.Runtime.ScreenH = result.Height
		}

		switch result.Choice {
		case tui.ChoiceQuit, tui.ChoiceNone:
			return nil

		case tui.ChoicePlay:
			svc.Runtime.Seed = time.Now().UnixNano()
			svc.Logger.Info("campaign started", "level", result.StartLevel)
			if err := tui.RunCampaign(svc, result.StartLevel); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

		case tui.ChoiceEditor:
			grid, err := tui.RunEditor(svc, stage)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			stage = grid

		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(svc, svc.Runtime.ScreenW, svc.Runtime.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil // User quit from scoreboard
			}

		case tui.ChoiceSettings:
			quit, err := tui.RunSettings(svc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if quit {
				return nil
			}
		}

		// Loop back to menu
	}
}

// loadDraft returns the editor's saved draft, or an empty grid.
func loadDraft(svc tui.Services) breakout.Grid {
	if svc.Runs == nil {
		return breakout.Grid{}
	}
	code, ok, err := svc.Runs.LoadStage(tui.DraftStage)
	if err != nil || !ok {
		return breakout.Grid{}
	}
	grid, err := breakout.DecodeStage(code)
	if err != nil {
		svc.Logger.Warn("saved draft is unreadable", "err", err)
		return breakout.Grid{}
	}
	return grid
}
