package overlay

import "github.com/ziadkadry99/dexview/internal/catalog"

// Gate decides which cards of the grid are visible. The first page is shown
// up front; RevealAll shows the rest and cannot be undone.
type Gate struct {
	size     int
	pageSize int
	revealed bool
}

// NewGate creates a gate for size cards with pageSize shown initially.
func NewGate(size, pageSize int) *Gate {
	if pageSize > size {
		pageSize = size
	}
	return &Gate{size: size, pageSize: pageSize}
}

// Size returns the collection size N.
func (g *Gate) Size() int { return g.size }

// Visible reports whether the card for key is currently shown.
func (g *Gate) Visible(key catalog.Key) bool {
	if key < 1 || int(key) > g.size {
		return false
	}
	return g.revealed || int(key) <= g.pageSize
}

// VisibleCount returns how many cards are shown.
func (g *Gate) VisibleCount() int {
	if g.revealed {
		return g.size
	}
	return g.pageSize
}

// RevealAll shows every card. It reports whether anything changed.
func (g *Gate) RevealAll() bool {
	if g.revealed {
		return false
	}
	g.revealed = true
	return true
}

// Revealed reports whether RevealAll has run.
func (g *Gate) Revealed() bool { return g.revealed }

// HasMore reports whether the "show more" affordance should be offered.
func (g *Gate) HasMore() bool {
	return !g.revealed && g.size > g.pageSize
}
