package game

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
)

//go:embed template_board
var defaultTemplate []byte

// ParseTemplate reads the player's initial placement: one line per row
// starting at the back row, one character per column, '.' for an empty cell.
func ParseTemplate(r io.Reader) (Board, error) {
	b := NewBoard()
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if row >= Height/2 {
			return Board{}, fmt.Errorf("%w: more than %d rows", ErrInvalidSetup, Height/2)
		}
		if len(line) != Width {
			return Board{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidSetup, row+1, len(line), Width)
		}
		for col := 0; col < Width; col++ {
			if line[col] == '.' {
				continue
			}
			rank, err := ParseRank(line[col])
			if err != nil {
				return Board{}, fmt.Errorf("%w: row %d: %v", ErrInvalidSetup, row+1, err)
			}
			b = b.PlacePiece(NewPiece(Position{Row: row, Col: col}, Player, rank))
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return Board{}, fmt.Errorf("failed to read template: %w", err)
	}
	return b, nil
}

// DefaultTemplate returns the built-in initial placement.
func DefaultTemplate() Board {
	b, err := ParseTemplate(bytes.NewReader(defaultTemplate))
	if err != nil {
		panic(err)
	}
	return b
}

// ValidateSetup checks a player's initial placement against the placement
// rules: the full rank pool, nothing on camps, the flag on a headquarters,
// landmines on the back two rows and no bomb on the front row.
func ValidateSetup(b Board) error {
	layout := b.grid()
	counts := map[Rank]int{}
	seen := map[Position]bool{}
	var errs []error

	for _, p := range b.pieces {
		pos := p.position
		if p.owner != Player {
			errs = append(errs, fmt.Errorf("opponent piece at %v", pos))
			continue
		}
		if !pos.InBounds() || pos.Row >= Height/2 {
			errs = append(errs, fmt.Errorf("%v is outside the player's half", pos))
			continue
		}
		if seen[pos] {
			errs = append(errs, fmt.Errorf("two pieces at %v", pos))
		}
		seen[pos] = true
		rank := p.Rank()
		counts[rank]++

		switch {
		case layout.IsCamp(pos):
			errs = append(errs, fmt.Errorf("%v on camp %v", rank, pos))
		case rank == Flag && !layout.IsHeadquarters(pos):
			errs = append(errs, fmt.Errorf("flag at %v is not on a headquarters", pos))
		case rank == Landmine && pos.Row > 1:
			errs = append(errs, fmt.Errorf("landmine at %v is not on the back two rows", pos))
		case rank == Bomb && pos.Row == Height/2-1:
			errs = append(errs, fmt.Errorf("bomb at %v is on the front row", pos))
		}
	}

	for _, r := range AllRanks {
		if counts[r] != RankPool[r] {
			errs = append(errs, fmt.Errorf("%d pieces of rank %v, want %d", counts[r], r, RankPool[r]))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	return nil
}
