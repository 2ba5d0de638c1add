package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var flagEditorStage string

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Build a stage and test play it",
	Long: `Open the stage editor.

The editor starts from --stage when given, otherwise from the last draft.
The draft is saved when you export a code or leave the editor.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter       - Cycle block type
  # 1 2 3 x *       - Place normal, durable, steel or explosive block
  . / Backspace     - Erase
  C                 - Clear the whole stage
  e                 - Show stage code
  t                 - Test play
  q/Esc             - Quit

Examples:
  breakout editor
  breakout editor --stage 'W1sx...'`,
	Args: cobra.NoArgs,
	RunE: runEditor,
}

func init() {
	editorCmd.Flags().StringVar(&flagEditorStage, "stage", "", "Stage code or URL to start from")
}

func runEditor(_ *cobra.Command, _ []string) error {
	svc, cleanup, err := openServices(serviceOptions{LogToFile: true})
	if err != nil {
		return err
	}
	defer cleanup()

	grid := loadDraft(svc)
	if flagEditorStage != "" {
		grid, err = breakout.ParseStageParam(flagEditorStage)
		if err != nil {
			return err
		}
	}

	final, err := tui.RunEditor(svc, grid)
	if err != nil {
		return err
	}
	if final.Count() > 0 {
		fmt.Println(breakout.EncodeStage(final))
	}
	return nil
}
