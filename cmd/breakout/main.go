// breakout is a terminal Breakout game with a stage editor.
//
// Usage:
//
//	breakout                 - Launcher menu (play, editor, scores, settings)
//	breakout play            - Play the campaign or a stage code
//	breakout editor          - Open the stage editor
//	breakout levels [N...]   - Print level layouts as ASCII
//	breakout stage ...       - Encode, decode and manage stage codes
//	breakout scores          - Show high scores and run history
//	breakout settings        - Show or change volumes
//	breakout serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.breakout/breakout.db)
//	--config <path>     - Custom game config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break blocks in your terminal",
	Long: `Breakout is a terminal block breaker with a campaign, a stage
editor and shareable stage codes.

Run without a command to open the launcher menu.

Available commands:
  play      - Play the campaign or a stage code directly
  editor    - Build a stage and test play it
  levels    - Print level layouts
  stage     - Encode and decode stage codes
  scores    - View high scores and run history
  settings  - Show or change volumes
  serve     - Start SSH server for remote play

Examples:
  breakout
  breakout play --level 3
  breakout play --stage 'W1sxLDEsMSwx...'
  breakout editor
  breakout serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/breakout.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(editorCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
