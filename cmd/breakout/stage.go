package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagStageSave bool
	flagStageBase string
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Encode, decode and manage stage codes",
	Long: `Convert between ASCII layout files and shareable stage codes, and
manage the stages saved in the run history database.

A layout file is either plain ASCII rows or YAML:

  name: castle
  rows:
    - "X########X"
    - "#2#.**.#2#"

Legend: # normal, 1-9 durable hits, X steel, * explosive, . empty`,
}

var stageEncodeCmd = &cobra.Command{
	Use:   "encode <file>",
	Short: "Print the stage code for a layout file",
	Long: `Print the stage code for a layout file.

Examples:
  breakout stage encode castle.txt
  breakout stage encode castle.yaml --save
  breakout stage encode castle.txt --url https://example.com/breakout`,
	Args: cobra.ExactArgs(1),
	RunE: runStageEncode,
}

var stageDecodeCmd = &cobra.Command{
	Use:   "decode <code|url>",
	Short: "Print the layout of a stage code",
	Args:  cobra.ExactArgs(1),
	RunE:  runStageDecode,
}

var stageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved stages",
	Args:  cobra.NoArgs,
	RunE:  runStageList,
}

var stageDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved stage",
	Args:  cobra.ExactArgs(1),
	RunE:  runStageDelete,
}

func init() {
	stageEncodeCmd.Flags().BoolVar(&flagStageSave, "save", false, "Save the stage under its name")
	stageEncodeCmd.Flags().StringVar(&flagStageBase, "url", "", "Print a share URL with this base instead of the bare code")

	stageCmd.AddCommand(stageEncodeCmd)
	stageCmd.AddCommand(stageDecodeCmd)
	stageCmd.AddCommand(stageListCmd)
	stageCmd.AddCommand(stageDeleteCmd)
}

// stageFile is the YAML form of a layout file.
type stageFile struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// parseStageFile reads a layout from YAML (by extension) or ASCII rows.
// The stage name defaults to the file name without extension.
func parseStageFile(path string, data []byte) (string, breakout.Grid, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	sf := stageFile{Name: strings.TrimSuffix(base, ext)}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return "", breakout.Grid{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		sf.Rows = asciiRows(string(data))
	}

	grid, err := breakout.ParseGrid(sf.Rows)
	if err != nil {
		return "", grid, fmt.Errorf("parse %s: %w", path, err)
	}
	return sf.Name, grid, nil
}

// asciiRows splits text into layout rows, dropping trailing blank lines and
// carriage returns.
func asciiRows(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func runStageEncode(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	name, grid, err := parseStageFile(args[0], data)
	if err != nil {
		return err
	}

	code := breakout.EncodeStage(grid)
	if flagStageBase != "" {
		fmt.Println(breakout.StageURL(flagStageBase, grid))
	} else {
		fmt.Println(code)
	}
	if !grid.Clearable() {
		fmt.Fprintln(os.Stderr, "Warning: stage has no breakable blocks and cannot be played")
	}

	if flagStageSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveStage(name, code); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved as %q\n", name)
	}
	return nil
}

func runStageDecode(_ *cobra.Command, args []string) error {
	grid, err := breakout.ParseStageParam(args[0])
	if err != nil {
		return err
	}
	fmt.Println(grid.String())
	fmt.Printf("%d blocks\n", grid.Count())
	return nil
}

func runStageList(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stages, err := store.Stages()
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		fmt.Println("No saved stages.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %s\n", "Name", "Blocks", "Updated")
	fmt.Printf("  %-16s  %-6s  %s\n", "----", "------", "-------")
	for _, st := range stages {
		blocks := "?"
		if grid, err := breakout.DecodeStage(st.Code); err == nil {
			blocks = fmt.Sprintf("%d", grid.Count())
		}
		fmt.Printf("  %-16s  %-6s  %s\n", st.Name, blocks, st.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Run 'breakout play --saved <name>' to play a stage.")
	return nil
}

func runStageDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.DeleteStage(args[0])
}
