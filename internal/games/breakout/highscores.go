package breakout

import (
	"cmp"
	"slices"
)

// HighScoreSlots is the size of the high-score table.
const HighScoreSlots = 3

// ScoreStore persists the high-score table. Implementations must tolerate
// failure silently: a failed save never interrupts play.
type ScoreStore interface {
	LoadScores() [HighScoreSlots]int
	SaveScores(scores [HighScoreSlots]int)
}

// HighScores is a fixed-size table kept in descending order. It is only
// mutated through TryInsert.
type HighScores struct {
	entries [HighScoreSlots]int
	store   ScoreStore
}

// NewHighScores loads the table from store, best first whatever order it was
// saved in. A nil store keeps scores in memory only.
func NewHighScores(store ScoreStore) *HighScores {
	h := &HighScores{store: store}
	if store != nil {
		h.entries = store.LoadScores()
		slices.SortFunc(h.entries[:], func(a, b int) int { return cmp.Compare(b, a) })
	}
	return h
}

// Entries returns a copy of the table, best first.
func (h *HighScores) Entries() [HighScoreSlots]int {
	return h.entries
}

// Best returns the top score.
func (h *HighScores) Best() int {
	return h.entries[0]
}

// TryInsert places score in the first slot it strictly beats, shifting the
// lower entries down, and persists the table. It returns the rank index.
// A score of zero, or one that beats no slot, leaves the table unchanged.
func (h *HighScores) TryInsert(score int) (int, bool) {
	if score <= 0 {
		return -1, false
	}
	for i, v := range h.entries {
		if score <= v {
			continue
		}
		copy(h.entries[i+1:], h.entries[i:HighScoreSlots-1])
		h.entries[i] = score
		if h.store != nil {
			h.store.SaveScores(h.entries)
		}
		return i, true
	}
	return -1, false
}
