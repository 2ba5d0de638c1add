package core

// Color is a foreground color for a screen cell.
type Color uint8

// Palette. The neon row colors follow the block rows top to bottom.
const (
	ColorDefault Color = iota
	ColorNeonRed
	ColorNeonMagenta
	ColorNeonPurple
	ColorNeonCyan
	ColorNeonGreen
	ColorSteel
	ColorExplosive
	ColorPickup
	ColorWhite
	ColorDim
	ColorGold
)

// ansi256 maps each Color to its 256-color terminal code.
var ansi256 = [...]string{
	ColorDefault:     "",
	ColorNeonRed:     "197",
	ColorNeonMagenta: "199",
	ColorNeonPurple:  "93",
	ColorNeonCyan:    "45",
	ColorNeonGreen:   "48",
	ColorSteel:       "248",
	ColorExplosive:   "208",
	ColorPickup:      "226",
	ColorWhite:       "15",
	ColorDim:         "240",
	ColorGold:        "220",
}

// Code returns the 256-color code for c, or "" for the terminal default.
func (c Color) Code() string {
	if int(c) >= len(ansi256) {
		return ""
	}
	return ansi256[c]
}

// RowColor cycles the neon palette by block row.
func RowColor(row int) Color {
	neon := [...]Color{ColorNeonRed, ColorNeonMagenta, ColorNeonPurple, ColorNeonCyan, ColorNeonGreen}
	if row < 0 {
		row = -row
	}
	return neon[row%len(neon)]
}
