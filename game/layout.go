package game

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// CellKind classifies a board cell.
type CellKind int

const (
	Regular CellKind = iota
	Camp
	Headquarters
)

func (k CellKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Camp:
		return "camp"
	case Headquarters:
		return "headquarters"
	}
	return fmt.Sprintf("CellKind(%d)", int(k))
}

// Layout is the static board graph: cell kinds and adjacency.
// It is never modified once built.
type Layout struct {
	kinds    [Height][Width]CellKind
	adjacent map[Position][]Position // sorted by (row, col)
}

func newLayout() *Layout {
	return &Layout{
		adjacent: make(map[Position][]Position, Width*Height),
	}
}

// addBorder adds a bidirectional edge between two cells.
func (l *Layout) addBorder(a, b Position) {
	if !slices.Contains(l.adjacent[a], b) {
		l.adjacent[a] = append(l.adjacent[a], b)
	}
	if !slices.Contains(l.adjacent[b], a) {
		l.adjacent[b] = append(l.adjacent[b], a)
	}
}

func (l *Layout) sortAdjacency() {
	for _, adj := range l.adjacent {
		slices.SortFunc(adj, Position.Compare)
	}
}

// NewLayout builds the standard board procedurally from the camp and
// headquarters tables.
func NewLayout() *Layout {
	l := newLayout()

	for _, p := range headquartersLocations {
		l.kinds[p.Row][p.Col] = Headquarters
		m := mirrorRow(p)
		l.kinds[m.Row][m.Col] = Headquarters
	}
	for _, p := range campLocations {
		l.kinds[p.Row][p.Col] = Camp
		m := mirrorRow(p)
		l.kinds[m.Row][m.Col] = Camp
	}

	for _, p := range l.Positions() {
		l.adjacent[p] = []Position{}
	}
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			p := Position{Row: row, Col: col}
			right := Position{Row: row, Col: col + 1}
			if right.InBounds() {
				l.addBorder(p, right)
			}
			up := Position{Row: row + 1, Col: col}
			if up.InBounds() && !isForbiddenSeam(p, up) {
				l.addBorder(p, up)
			}
		}
	}

	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			if l.kinds[row][col] != Camp {
				continue
			}
			p := Position{Row: row, Col: col}
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					q := Position{Row: row + dr, Col: col + dc}
					if q != p && q.InBounds() {
						l.addBorder(p, q)
					}
				}
			}
		}
	}

	l.sortAdjacency()
	return l
}

var (
	standardLayout *Layout
	layoutOnce     sync.Once
)

// Standard returns the process-wide board layout, built on first use.
func Standard() *Layout {
	layoutOnce.Do(func() {
		standardLayout = NewLayout()
	})
	return standardLayout
}

func (l *Layout) mustInBounds(p Position) {
	if !p.InBounds() {
		panic(fmt.Sprintf("position %v out of bounds", p))
	}
}

func (l *Layout) CellKind(p Position) CellKind {
	l.mustInBounds(p)
	return l.kinds[p.Row][p.Col]
}

func (l *Layout) IsCamp(p Position) bool {
	return l.CellKind(p) == Camp
}

func (l *Layout) IsHeadquarters(p Position) bool {
	return l.CellKind(p) == Headquarters
}

// Adjacent returns the neighbours of p in (row, col) order. The returned
// slice is a copy.
func (l *Layout) Adjacent(p Position) []Position {
	l.mustInBounds(p)
	return slices.Clone(l.adjacent[p])
}

func (l *Layout) AreAdjacent(a, b Position) bool {
	l.mustInBounds(a)
	return slices.Contains(l.adjacent[a], b)
}

// Positions lists every cell in (row, col) order.
func (l *Layout) Positions() []Position {
	positions := make([]Position, 0, Width*Height)
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	return positions
}

// Equal reports whether both layouts describe the same graph.
func (l *Layout) Equal(o *Layout) bool {
	if l.kinds != o.kinds || len(l.adjacent) != len(o.adjacent) {
		return false
	}
	for p, adj := range l.adjacent {
		if !slices.Equal(adj, o.adjacent[p]) {
			return false
		}
	}
	return true
}

func mirrorRow(p Position) Position {
	return Position{Row: Height - 1 - p.Row, Col: p.Col}
}

// isForbiddenSeam reports the two vertical edges across the front line that
// do not exist.
func isForbiddenSeam(a, b Position) bool {
	if a.Col != b.Col {
		return false
	}
	lo, hi := a, b
	if hi.Row < lo.Row {
		lo, hi = hi, lo
	}
	return lo.Row == Height/2-1 && hi.Row == Height/2 && slices.Contains(seamBlockedColumns, lo.Col)
}

// Player half only; the opponent half is the mirror image.
var headquartersLocations = []Position{{Row: 0, Col: 1}, {Row: 0, Col: 3}}

var campLocations = []Position{
	{Row: 2, Col: 1}, {Row: 2, Col: 3},
	{Row: 3, Col: 2},
	{Row: 4, Col: 1}, {Row: 4, Col: 3},
}

var seamBlockedColumns = []int{1, 3}
