package breakout

// Procedural generator tuning. Probabilities grow linearly with the number of
// levels past the hand-authored set, each up to its cap.
const (
	procEmptyChance   = 0.12
	procSteelBase     = 0.0
	procSteelStep     = 0.02
	procSteelCap      = 0.15
	procExplosiveBase = 0.03
	procExplosiveStep = 0.01
	procExplosiveCap  = 0.12
	procDurableBase   = 0.15
	procDurableStep   = 0.04
	procDurableCap    = 0.45
	procThreeHitStep  = 0.1
	procThreeHitCap   = 0.5
	procRows          = GridRows - 1 // Bottom row stays open
	saltKind          = 0
	saltDurability    = 1
)

// CellChances are the per-cell probabilities used at one level.
type CellChances struct {
	Steel     float64
	Explosive float64
	Durable   float64
	ThreeHit  float64 // Share of durable blocks that take 3 hits instead of 2
}

// ChancesFor returns the generator probabilities for a level number.
func ChancesFor(level int) CellChances {
	n := float64(level - len(patterns))
	if n < 1 {
		n = 1
	}
	return CellChances{
		Steel:     min(procSteelBase+procSteelStep*n, procSteelCap),
		Explosive: min(procExplosiveBase+procExplosiveStep*n, procExplosiveCap),
		Durable:   min(procDurableBase+procDurableStep*n, procDurableCap),
		ThreeHit:  min(procThreeHitStep*n, procThreeHitCap),
	}
}

// proceduralLayout fills the grid from per-cell rolls keyed on
// (level, row, col), so regenerating a level reproduces it exactly.
func proceduralLayout(level int) Grid {
	var g Grid
	c := ChancesFor(level)
	for row := range procRows {
		for col := range GridCols {
			g[row][col] = rollCell(level, row, col, c)
		}
	}
	return g
}

func rollCell(level, row, col int, c CellChances) BlockType {
	r := cellRoll(level, row, col, saltKind)
	if r < procEmptyChance {
		return BlockType{}
	}
	r -= procEmptyChance
	if r < c.Steel {
		return Steel()
	}
	r -= c.Steel
	if r < c.Explosive {
		return Explosive()
	}
	r -= c.Explosive
	if r < c.Durable {
		if cellRoll(level, row, col, saltDurability) < c.ThreeHit {
			return Durable(3)
		}
		return Durable(2)
	}
	return Normal()
}
