package main

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func TestParseStageFileASCII(t *testing.T) {
	data := []byte("X########X\r\n#2#.**.#2#\n\n\n")
	name, grid, err := parseStageFile("stages/castle.txt", data)
	if err != nil {
		t.Fatalf("parseStageFile: %v", err)
	}
	if name != "castle" {
		t.Errorf("name = %q, expected castle", name)
	}
	if grid[0][0] != breakout.Steel() || grid[1][1] != breakout.Durable(2) || grid[1][4] != breakout.Explosive() {
		t.Errorf("unexpected grid:\n%s", grid)
	}
	if grid.Count() != 18 {
		t.Errorf("count = %d, expected 18", grid.Count())
	}
}

func TestParseStageFileYAML(t *testing.T) {
	data := []byte("name: fortress\nrows:\n  - \"..####..\"\n  - \"3\"\n")
	name, grid, err := parseStageFile("f.yaml", data)
	if err != nil {
		t.Fatalf("parseStageFile: %v", err)
	}
	if name != "fortress" {
		t.Errorf("name = %q, expected fortress", name)
	}
	if grid[0][2] != breakout.Normal() || grid[1][0] != breakout.Durable(3) {
		t.Errorf("unexpected grid:\n%s", grid)
	}

	// The file name is used when the YAML has no name.
	name, _, err = parseStageFile("dir/plain.yml", []byte("rows: [\"#\"]\n"))
	if err != nil || name != "plain" {
		t.Errorf("name = %q, err = %v", name, err)
	}
}

func TestParseStageFileErrors(t *testing.T) {
	tests := map[string]string{
		"bad.txt":  "##?##",
		"wide.txt": "###########",
		"tall.txt": "#\n#\n#\n#\n#\n#\n#\n#",
		"bad.yaml": "rows: {",
	}
	for path, data := range tests {
		if _, _, err := parseStageFile(path, []byte(data)); err == nil {
			t.Errorf("parseStageFile(%s) should fail", path)
		}
	}
}

func TestStageFileRoundTrip(t *testing.T) {
	layout := breakout.GenerateLayout(3)
	_, grid, err := parseStageFile("l3.txt", []byte(layout.String()))
	if err != nil {
		t.Fatalf("parseStageFile: %v", err)
	}
	if grid != layout {
		t.Error("ASCII rendering should parse back to the same layout")
	}
}
