package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar    = '='
	BallChar      = '●'
	BlockChar     = '█'
	SteelChar     = '▓'
	ExplosiveChar = '✸'
)

// Durable blocks fade as they lose hits, indexed by tier - 1.
var durableGlyphs = [...]rune{'░', '▒', '▓'}

// Minimum terminal size for the play field.
const (
	MinScreenW = 30
	MinScreenH = 15
	hudRows    = 2
)

// viewport maps world coordinates onto the cells inside the field border.
type viewport struct {
	x, y, w, h int
	field      Field
}

func (v viewport) col(x float64) int {
	return v.x + int(math.Floor((x+v.field.Width/2)/v.field.Width*float64(v.w)))
}

func (v viewport) row(y float64) int {
	return v.y + int(math.Floor((v.field.Height/2-y)/v.field.Height*float64(v.h)))
}

// span returns the first cell and the cell count covered by a box of the
// given width centered on x. Every visible box covers at least one cell.
func (v viewport) span(x, width float64) (int, int) {
	x0 := v.col(x - width/2)
	x1 := v.col(x + width/2)
	return x0, max(1, x1-x0)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorNeonRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorDim)
		return
	}

	g.renderHUD(dst)

	border := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	dst.DrawBox(border, core.ColorNeonPurple)
	vp := viewport{
		x:     border.X + 1,
		y:     border.Y + 1,
		w:     border.W - 2,
		h:     border.H - 2,
		field: g.World.field,
	}
	if g.World.shake > 0.3 {
		// Jitter one cell while trauma is high.
		if int(g.World.Stats.TimeElapsed*30)%2 == 0 {
			vp.x++
		} else {
			vp.x--
		}
	}

	g.renderBlocks(dst, vp)
	g.renderPickups(dst, vp)
	g.renderPaddle(dst, vp)
	g.renderBalls(dst, vp)
	g.renderOverlay(dst)
}

// renderHUD draws score, level, combo and active effects.
func (g *Game) renderHUD(dst *core.Screen) {
	w := g.World
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", w.Score), core.ColorWhite)

	if w.Combo.Count > 1 {
		dst.DrawTextCentered(0, fmt.Sprintf("Combo x%d", w.Combo.Count), core.ColorGold)
	}

	levelText := fmt.Sprintf("Level %d: %s", w.Level, LevelName(w.Level))
	if g.mode == ModeTestPlay {
		levelText = "Test Play"
	}
	dst.DrawTextColored(dst.Width()-len([]rune(levelText))-1, 0, levelText, core.ColorNeonCyan)

	if effects := g.effectsString(); effects != "" {
		dst.DrawTextColored(1, 1, effects, core.ColorPickup)
	} else {
		dst.DrawTextColored(1, 1, fmt.Sprintf("Best: %d", g.Scores.Best()), core.ColorDim)
	}
}

// effectsString lists active effects with their remaining whole seconds.
func (g *Game) effectsString() string {
	p := g.World.Paddle
	if p == nil || p.Effects == nil {
		return ""
	}
	parts := make([]string, 0, p.Effects.Len())
	for _, e := range p.Effects.Entries {
		parts = append(parts, fmt.Sprintf("%s(%d)", e.Kind, int(math.Ceil(e.Remaining))))
	}
	return strings.Join(parts, " ")
}

func (g *Game) renderBlocks(dst *core.Screen, vp viewport) {
	size := g.World.geo.Size()
	for _, b := range g.World.Blocks {
		glyph, color := BlockLook(b.Type, b.Row)
		x0, n := vp.span(b.Pos.X, size.X)
		y := vp.row(b.Pos.Y)
		// Leave a one-cell gap so neighbours stay distinguishable.
		if n > 2 {
			n--
		}
		for dx := range n {
			dst.SetColored(x0+dx, y, glyph, color)
		}
	}
}

// BlockLook picks the glyph and color of a block type placed in row.
func BlockLook(t BlockType, row int) (rune, core.Color) {
	switch t.Kind {
	case KindSteel:
		return SteelChar, core.ColorSteel
	case KindExplosive:
		return ExplosiveChar, core.ColorExplosive
	case KindDurable:
		return durableGlyphs[t.Tier()-1], core.RowColor(row)
	default:
		return BlockChar, core.RowColor(row)
	}
}

func (g *Game) renderPickups(dst *core.Screen, vp viewport) {
	for _, p := range g.World.Pickups {
		dst.SetColored(vp.col(p.Pos.X), vp.row(p.Pos.Y), p.Kind.Glyph(), core.ColorPickup)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, vp viewport) {
	p := g.World.Paddle
	if p == nil {
		return
	}
	color := core.ColorWhite
	if p.Effects.Has(PowerUpWidePaddle) {
		color = core.ColorNeonGreen
	}
	x0, n := vp.span(p.X, p.Width)
	y := vp.row(g.World.cfg.Paddle.Y)
	for dx := range n {
		dst.SetColored(x0+dx, y, PaddleChar, color)
	}
}

func (g *Game) renderBalls(dst *core.Screen, vp viewport) {
	color := core.ColorWhite
	if g.World.Paddle != nil && g.World.Paddle.Effects.Has(PowerUpFireBall) {
		color = core.ColorExplosive
	}
	for _, b := range g.World.Balls {
		dst.SetColored(vp.col(b.Pos.X), vp.row(b.Pos.Y), BallChar, color)
	}
}

// renderOverlay draws phase messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.phase {
	case PhaseMenu:
		scores := g.Scores.Entries()
		drawCenteredBox(dst, core.ColorNeonMagenta,
			"B R E A K O U T",
			"Press ENTER to start",
			fmt.Sprintf("1. %d   2. %d   3. %d", scores[0], scores[1], scores[2]),
		)

	case PhaseCountdown:
		label := g.CountdownLabel()
		if g.World.Level > 0 && g.mode == ModeCampaign {
			dst.DrawTextCentered(dst.Height()/2-2, LevelName(g.World.Level), core.ColorNeonCyan)
		}
		dst.DrawTextCentered(dst.Height()/2, label, core.ColorGold)

	case PhasePaused:
		drawCenteredBox(dst, core.ColorNeonCyan, "PAUSED", "P to resume  |  ESC to quit")

	case PhaseLevelClear:
		st := g.lastStats
		drawCenteredBox(dst, core.ColorNeonGreen,
			fmt.Sprintf("LEVEL %d CLEAR", g.World.Level),
			fmt.Sprintf("+%d points  |  max combo x%d", g.World.Score-st.ScoreAtLevelStart, st.MaxCombo),
			fmt.Sprintf("%d blocks in %.1fs  |  ENTER to continue", st.BlocksDestroyed, st.TimeElapsed),
		)

	case PhaseGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  ENTER to continue", g.World.Score)
		if rank, ok := g.Rank(); ok {
			drawCenteredBox(dst, core.ColorGold, "GAME OVER", subtitle, fmt.Sprintf("New high score #%d!", rank+1))
			return
		}
		drawCenteredBox(dst, core.ColorNeonRed, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box with a title and lines below.
func drawCenteredBox(dst *core.Screen, color core.Color, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, color)

	dst.DrawTextCentered(boxY+1, title, color)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorWhite)
	}
}
