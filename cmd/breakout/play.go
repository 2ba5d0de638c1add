package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var (
	flagLevel      int
	flagStage      string
	flagSaved      string
	flagDifficulty string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play breakout",
	Long: `Start a breakout game.

Without --stage the campaign starts from the breakout menu at --level.
With --stage (a stage code or a URL carrying ?stage=) or --saved (a stage
stored with 'breakout stage encode --save') that single stage is test
played and no score is recorded.

Controls:
  Left/Right, A/D  - Move paddle
  Space/Enter      - Start, confirm
  P                - Pause
  Esc/B            - Back
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Slower ball, wider paddle, more power-ups
  normal  - Config values unchanged
  hard    - Faster ball, narrower paddle, fewer power-ups

Examples:
  breakout play
  breakout play --level 4 --difficulty hard
  breakout play --stage 'https://example.com/breakout?stage=W1sx...'
  breakout play --saved castle --sound`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Campaign start level")
	playCmd.Flags().StringVar(&flagStage, "stage", "", "Stage code or URL to test play")
	playCmd.Flags().StringVar(&flagSaved, "saved", "", "Name of a saved stage to test play")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.MarkFlagsMutuallyExclusive("stage", "saved")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagLevel < 1 {
		return fmt.Errorf("--level must be at least 1, got %d", flagLevel)
	}

	svc, cleanup, err := openServices(serviceOptions{
		LogToFile:  true,
		Sound:      flagSound,
		Difficulty: flagDifficulty,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	grid, ok, err := stageFromFlags(svc)
	if err != nil {
		return err
	}
	if ok {
		if !grid.Clearable() {
			return fmt.Errorf("stage has no breakable blocks")
		}
		svc.Logger.Info("test play started", "blocks", grid.Count())
		return tui.RunTestPlay(svc, grid)
	}

	svc.Logger.Info("game started", "level", flagLevel)
	return tui.Run(svc, flagLevel)
}

// stageFromFlags resolves --stage or --saved. ok is false when neither is
// set.
func stageFromFlags(svc tui.Services) (grid breakout.Grid, ok bool, err error) {
	switch {
	case flagStage != "":
		grid, err = breakout.ParseStageParam(flagStage)
		if err != nil {
			return grid, false, err
		}
		return grid, true, nil

	case flagSaved != "":
		if svc.Runs == nil {
			return grid, false, fmt.Errorf("run history database is unavailable")
		}
		code, found, loadErr := svc.Runs.LoadStage(flagSaved)
		if loadErr != nil {
			return grid, false, loadErr
		}
		if !found {
			return grid, false, fmt.Errorf("no saved stage named %q", flagSaved)
		}
		grid, err = breakout.DecodeStage(code)
		if err != nil {
			return grid, false, err
		}
		return grid, true, nil
	}
	return grid, false, nil
}
