package game

import (
	"fmt"
	"strconv"
)

const (
	Width  = 5
	Height = 12
)

// Position is a cell on the board. Rows count from the player's back row.
type Position struct {
	Row int
	Col int
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Height && p.Col >= 0 && p.Col < Width
}

// Mirror returns the position as seen from the other side of the table.
func (p Position) Mirror() Position {
	return Position{Row: Height - 1 - p.Row, Col: Width - 1 - p.Col}
}

// Compare orders positions by row, then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Row < o.Row:
		return -1
	case p.Row > o.Row:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	}
	return 0
}

func (p Position) Less(o Position) bool {
	return p.Compare(o) < 0
}

// String encodes the position as column letter plus 1-based row, e.g. "B1".
func (p Position) String() string {
	return string(rune('A'+p.Col)) + strconv.Itoa(p.Row+1)
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, error) {
	if len(s) < 2 || s[1] == '0' {
		return Position{}, fmt.Errorf("invalid position %q", s)
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return Position{}, fmt.Errorf("invalid position %q", s)
		}
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	p := Position{Row: row - 1, Col: int(s[0]) - 'A'}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("position %q out of bounds", s)
	}
	return p, nil
}
