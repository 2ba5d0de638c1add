package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BlockKind is the variant tag of a BlockType.
type BlockKind int

const (
	KindEmpty     BlockKind = iota // No block in this cell
	KindNormal                     // Destroyed on first hit
	KindDurable                    // Takes Hits hits
	KindSteel                      // Indestructible, reflects like a wall
	KindExplosive                  // Destroyed on hit, blasts neighbours
)

// String returns the name of the kind.
func (k BlockKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindNormal:
		return "Normal"
	case KindDurable:
		return "Durable"
	case KindSteel:
		return "Steel"
	case KindExplosive:
		return "Explosive"
	default:
		return "Unknown"
	}
}

// BlockType is a block variant plus its payload. Hits is only meaningful
// for KindDurable. The zero value is an empty cell.
type BlockType struct {
	Kind BlockKind
	Hits int
}

// Block type constructors.
func Normal() BlockType { return BlockType{Kind: KindNormal} }

func Durable(hits int) BlockType { return BlockType{Kind: KindDurable, Hits: hits} }

func Steel() BlockType { return BlockType{Kind: KindSteel} }

func Explosive() BlockType { return BlockType{Kind: KindExplosive} }

// IsEmpty reports whether the cell holds no block.
func (t BlockType) IsEmpty() bool {
	return t.Kind == KindEmpty
}

// Breakable reports whether the block counts toward level clear.
func (t BlockType) Breakable() bool {
	return t.Kind != KindEmpty && t.Kind != KindSteel
}

// Tier is the visual tier of a durable block, 1 to 3.
func (t BlockType) Tier() int {
	if t.Kind != KindDurable {
		return 0
	}
	return core.Clamp(t.Hits, 1, 3)
}

// String returns a compact description such as "Durable(2)".
func (t BlockType) String() string {
	if t.Kind == KindDurable {
		return fmt.Sprintf("Durable(%d)", t.Hits)
	}
	return t.Kind.String()
}

// Block is one placed block of the registry.
type Block struct {
	ID   int // Entity order; collision scans blocks by ascending ID
	Row  int
	Col  int
	Pos  core.Vec2 // World center
	Type BlockType
}

// HitResult is what a single ball hit did to a block.
type HitResult int

const (
	HitReflected HitResult = iota // Steel: nothing changes
	HitDamaged                    // Durable lost a hit but survives
	HitDestroyed                  // Block is gone
)

// Hit applies one ball hit to the block's state machine.
func (b *Block) Hit() HitResult {
	switch b.Type.Kind {
	case KindSteel:
		return HitReflected
	case KindDurable:
		if b.Type.Hits > 1 {
			b.Type.Hits--
			return HitDamaged
		}
		b.Type.Hits = 0
		return HitDestroyed
	default:
		return HitDestroyed
	}
}

// BlockGeometry converts grid cells to world positions.
type BlockGeometry struct {
	Width  float64
	Height float64
	Gap    float64
	StartY float64 // Center Y of row 0
}

// CellCenter returns the world center of the cell at (row, col) in a grid
// of cols columns centered on x = 0.
func (g BlockGeometry) CellCenter(row, col, cols int) core.Vec2 {
	total := float64(cols)*(g.Width+g.Gap) - g.Gap
	startX := -total/2 + g.Width/2
	return core.V(
		startX+float64(col)*(g.Width+g.Gap),
		g.StartY-float64(row)*(g.Height+g.Gap),
	)
}

// Size returns the collision extent of one block.
func (g BlockGeometry) Size() core.Vec2 {
	return core.V(g.Width, g.Height)
}

// PlaceBlocks turns a grid into registry blocks, in row-major entity order.
func PlaceBlocks(grid Grid, geo BlockGeometry) []*Block {
	var blocks []*Block
	for row := range GridRows {
		for col := range GridCols {
			t := grid[row][col]
			if t.IsEmpty() {
				continue
			}
			blocks = append(blocks, &Block{
				ID:   len(blocks),
				Row:  row,
				Col:  col,
				Pos:  geo.CellCenter(row, col, GridCols),
				Type: t,
			})
		}
	}
	return blocks
}

// countBreakable returns how many non-Steel blocks are left.
func countBreakable(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		if b.Type.Breakable() {
			n++
		}
	}
	return n
}
