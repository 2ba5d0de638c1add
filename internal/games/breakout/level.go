// Package breakout implements the deterministic Breakout simulation: block
// registry, collision resolution, combo scoring, power-up effects, level
// layouts and the game progression state machine.
package breakout

import (
	"fmt"
	"strings"
)

// Grid dimensions shared by built-in levels, generated levels and editor stages.
const (
	GridRows = 7
	GridCols = 10
)

// Grid is a level layout: one optional block per cell, indexed [row][col].
// Row 0 is the top row.
type Grid [GridRows][GridCols]BlockType

// Count returns the number of placed blocks.
func (g Grid) Count() int {
	n := 0
	for row := range GridRows {
		for col := range GridCols {
			if !g[row][col].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Clearable reports whether the layout has at least one non-Steel block.
// Generators do not enforce this; callers such as the editor check it.
func (g Grid) Clearable() bool {
	for row := range GridRows {
		for col := range GridCols {
			if g[row][col].Breakable() {
				return true
			}
		}
	}
	return false
}

// Glyph returns the ASCII layout character for a block type.
//
//	'.' = empty
//	'#' = normal
//	'1'-'9' = durable with that many hits
//	'X' = steel
//	'*' = explosive
func (t BlockType) Glyph() byte {
	switch t.Kind {
	case KindNormal:
		return '#'
	case KindDurable:
		if t.Hits >= 1 && t.Hits <= 9 {
			return byte('0' + t.Hits)
		}
		return '9'
	case KindSteel:
		return 'X'
	case KindExplosive:
		return '*'
	default:
		return '.'
	}
}

// String renders the grid as ASCII rows joined by newlines.
func (g Grid) String() string {
	var sb strings.Builder
	for row := range GridRows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range GridCols {
			sb.WriteByte(g[row][col].Glyph())
		}
	}
	return sb.String()
}

// ParseGrid builds a Grid from ASCII rows (see BlockType.Glyph for the
// alphabet). Missing rows and short lines are padded with empty cells.
func ParseGrid(lines []string) (Grid, error) {
	var g Grid
	if len(lines) > GridRows {
		return g, fmt.Errorf("layout has %d rows, max %d", len(lines), GridRows)
	}
	for row, line := range lines {
		if len(line) > GridCols {
			return g, fmt.Errorf("layout row %d has %d columns, max %d", row, len(line), GridCols)
		}
		for col := range len(line) {
			t, err := parseGlyph(line[col])
			if err != nil {
				return g, fmt.Errorf("layout row %d col %d: %w", row, col, err)
			}
			g[row][col] = t
		}
	}
	return g, nil
}

func parseGlyph(ch byte) (BlockType, error) {
	switch {
	case ch == '.' || ch == ' ':
		return BlockType{}, nil
	case ch == '#':
		return Normal(), nil
	case ch >= '1' && ch <= '9':
		return Durable(int(ch - '0')), nil
	case ch == 'X' || ch == 'x':
		return Steel(), nil
	case ch == '*':
		return Explosive(), nil
	}
	return BlockType{}, fmt.Errorf("unknown block glyph %q", ch)
}

// mustGrid parses a built-in pattern. Patterns are compile-time data, so a
// parse failure is a programming error.
func mustGrid(lines ...string) Grid {
	g, err := ParseGrid(lines)
	if err != nil {
		panic(err)
	}
	return g
}

// Pattern is one hand-authored level.
type Pattern struct {
	Name string
	Grid Grid
}

// patterns holds levels 1 through len(patterns), in order.
var patterns = []Pattern{
	{"Full Wall", mustGrid(
		"##########",
		"##########",
		"##########",
		"##########",
		"##########",
	)},
	{"Diamond", mustGrid(
		"....##....",
		"...#22#...",
		"..##22##..",
		".########.",
		"..######..",
		"...####...",
		"....##....",
	)},
	{"Barrier", mustGrid(
		"##########",
		"#22222222#",
		"##########",
		"##########",
		"X.XX..XX.X",
	)},
	{"Maze", mustGrid(
		"#X##X##X##",
		"#X##X##X##",
		"#X22X22X2#",
		"#X##X##X##",
		"####X##X##",
		"#X######X#",
	)},
	{"Spiral", mustGrid(
		"##########",
		"........##",
		"#2222222.#",
		"#2.333.2.#",
		"#2.....2.#",
		"#22222.22#",
	)},
	{"Checkerboard", mustGrid(
		"#.#.#.#.#.",
		".#.*.#.*.#",
		"#.#.*.#.#.",
		".#.#.#.#.#",
		"#.*.#.#.*.",
		".#.#.#.#.#",
	)},
	{"Fortress", mustGrid(
		"XXXX..XXXX",
		"X########X",
		"X#222222#X",
		"X#23**32#X",
		"X#222222#X",
		"X########X",
		"XXX.XX.XXX",
	)},
	{"Finale", mustGrid(
		"*##3XX3##*",
		"#2#.##.#2#",
		"##**##**##",
		"X2######2X",
		"#3#.**.#3#",
		"##########",
		"..XX..XX..",
	)},
}

// PatternCount returns the number of hand-authored levels.
func PatternCount() int {
	return len(patterns)
}

// LevelName returns a display name for a level number.
func LevelName(level int) string {
	if level >= 1 && level <= len(patterns) {
		return patterns[level-1].Name
	}
	return fmt.Sprintf("Sector %d", level)
}

// GenerateLayout returns the layout for a level number (1-based). Levels
// covered by a pattern use it; later levels come from the procedural
// generator. The result is a pure function of level.
func GenerateLayout(level int) Grid {
	if level < 1 {
		level = 1
	}
	if level <= len(patterns) {
		return patterns[level-1].Grid
	}
	return proceduralLayout(level)
}
