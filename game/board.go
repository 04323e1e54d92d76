package game

import (
	"errors"
	"fmt"
	"strings"

	"junqi/utils"

	"github.com/rs/zerolog/log"
)

// Board is an immutable collection of pieces, at most one per position.
// Every operation that changes the board returns a new Board; the receiver
// stays valid, which lets callers evaluate several candidate moves against
// the same snapshot.
type Board struct {
	layout *Layout
	pieces []Piece // in placement order
}

// NewBoard returns an empty board on the standard layout.
func NewBoard() Board {
	return Board{layout: Standard()}
}

func (b Board) grid() *Layout {
	if b.layout == nil {
		return Standard()
	}
	return b.layout
}

func (b Board) with(pieces []Piece) Board {
	return Board{layout: b.layout, pieces: pieces}
}

func (b Board) Len() int {
	return len(b.pieces)
}

// PlacePiece adds a piece during setup. Placing two pieces on one position is
// a caller error.
func (b Board) PlacePiece(p Piece) Board {
	pieces := make([]Piece, len(b.pieces), len(b.pieces)+1)
	copy(pieces, b.pieces)
	return b.with(append(pieces, p))
}

func (b Board) index(pos Position) int {
	for i, p := range b.pieces {
		if p.position == pos {
			return i
		}
	}
	return -1
}

func (b Board) PieceAt(pos Position) (Piece, bool) {
	i := b.index(pos)
	if i < 0 {
		return Piece{}, false
	}
	return b.pieces[i], true
}

func (b Board) without(i int) []Piece {
	pieces := make([]Piece, 0, len(b.pieces))
	pieces = append(pieces, b.pieces[:i]...)
	return append(pieces, b.pieces[i+1:]...)
}

func (b Board) replace(i int, p Piece) Board {
	pieces := make([]Piece, len(b.pieces))
	copy(pieces, b.pieces)
	pieces[i] = p
	return b.with(pieces)
}

// MovePiece relocates the piece at src to dst, keeping its rank ratios.
func (b Board) MovePiece(src, dst Position) (Board, error) {
	i := b.index(src)
	if i < 0 {
		return b, fmt.Errorf("cannot move from %v: %w", src, ErrPieceNotFound)
	}
	moved := b.pieces[i].Move(dst)
	return b.with(append(b.without(i), moved)), nil
}

func (b Board) RemovePiece(pos Position) (Board, error) {
	i := b.index(pos)
	if i < 0 {
		return b, fmt.Errorf("cannot remove at %v: %w", pos, ErrPieceNotFound)
	}
	return b.with(b.without(i)), nil
}

// IsSpaceBlockedFor reports whether a piece of owner cannot enter pos: the
// cell holds one of owner's own pieces, or an enemy piece sheltering in a
// camp.
func (b Board) IsSpaceBlockedFor(pos Position, owner Owner) bool {
	p, ok := b.PieceAt(pos)
	if !ok {
		return false
	}
	if p.owner == owner {
		return true
	}
	return b.grid().IsCamp(pos)
}

// Pieces returns the pieces of owner in board order.
func (b Board) Pieces(owner Owner) []Piece {
	return utils.Filter(b.pieces, func(p Piece) bool {
		return p.owner == owner
	})
}

// MovesForPiece lists the cells p can legally move to, in adjacency order.
func (b Board) MovesForPiece(p Piece) []Position {
	if p.isStationaryOn(b.grid()) {
		return nil
	}
	var moves []Position
	for _, adj := range b.grid().Adjacent(p.position) {
		if !b.IsSpaceBlockedFor(adj, p.owner) {
			moves = append(moves, adj)
		}
	}
	return moves
}

// AllMoves lists every legal action of owner: pieces in board order, then each
// piece's moves in adjacency order.
func (b Board) AllMoves(owner Owner) []Action {
	var actions []Action
	for _, p := range b.Pieces(owner) {
		for _, to := range b.MovesForPiece(p) {
			actions = append(actions, Action{From: p.position, To: to})
		}
	}
	return actions
}

// Update applies a move or combat reported by the referee. Outcomes are from
// the point of view of the piece at ev.From.
func (b Board) Update(ev Event) (Board, error) {
	switch ev.Outcome {
	case Move:
		i := b.index(ev.From)
		if i < 0 {
			return b, fmt.Errorf("cannot move from %v: %w", ev.From, ErrPieceNotFound)
		}
		// Landmines never move.
		mover, err := b.pieces[i].ExcludeRanks(Landmine)
		if err != nil {
			log.Warn().Err(err).Msgf("ignoring move evidence for %v", b.pieces[i])
		}
		return b.replace(i, mover).MovePiece(ev.From, ev.To)

	case Win:
		nb, err := b.learnFromCombat(ev)
		if err != nil {
			return b, err
		}
		if nb, err = nb.RemovePiece(ev.To); err != nil {
			return b, err
		}
		if nb, err = nb.MovePiece(ev.From, ev.To); err != nil {
			return b, err
		}
		return nb, nil

	case Loss:
		nb, err := b.learnFromCombat(ev)
		if err != nil {
			return b, err
		}
		if nb, err = nb.RemovePiece(ev.From); err != nil {
			return b, err
		}
		return nb, nil

	case Tie:
		nb, err := b.learnFromCombat(ev)
		if err != nil {
			return b, err
		}
		if nb, err = nb.RemovePiece(ev.From); err != nil {
			return b, err
		}
		if nb, err = nb.RemovePiece(ev.To); err != nil {
			return b, err
		}
		return nb, nil
	}
	return b, fmt.Errorf("%w: unknown outcome %v", ErrInvalidEvent, ev.Outcome)
}

// learnFromCombat narrows the opponent piece involved in a combat to the
// ranks consistent with the observed outcome against the player's known
// rank. Other opponent pieces are left untouched even though they share the
// same rank pool.
func (b Board) learnFromCombat(ev Event) (Board, error) {
	attacker, ok := b.PieceAt(ev.From)
	if !ok {
		return b, fmt.Errorf("no attacker at %v: %w", ev.From, ErrPieceNotFound)
	}
	defender, ok := b.PieceAt(ev.To)
	if !ok {
		return b, fmt.Errorf("no defender at %v: %w", ev.To, ErrPieceNotFound)
	}
	if attacker.owner == defender.owner {
		return b, fmt.Errorf("%w: %v attacks own piece at %v", ErrInvalidEvent, ev.From, ev.To)
	}

	opponent, player, observed := attacker, defender, ev.Outcome
	if attacker.owner == Player {
		opponent, player, observed = defender, attacker, ev.Outcome.Invert()
	}
	known := player.Rank()

	var impossible []Rank
	for _, r := range opponent.Ranks() {
		if r.AttackOutcome(known) != observed {
			impossible = append(impossible, r)
		}
	}

	narrowed, err := opponent.ExcludeRanks(impossible...)
	if err != nil {
		log.Warn().Err(err).Msgf("ignoring combat evidence %v against %v", observed, known)
		return b, nil
	}
	return b.replace(b.index(opponent.position), narrowed), nil
}

// SetFlag marks the piece on the headquarters at pos as the flag. It panics
// if pos is not a headquarters.
func (b Board) SetFlag(pos Position) (Board, error) {
	if !b.grid().IsHeadquarters(pos) {
		panic(fmt.Sprintf("%v is not a headquarters", pos))
	}
	i := b.index(pos)
	if i < 0 {
		return b, fmt.Errorf("no flag candidate at %v: %w", pos, ErrPieceNotFound)
	}
	others := make([]Rank, 0, len(AllRanks)-1)
	for _, r := range AllRanks {
		if r != Flag {
			others = append(others, r)
		}
	}
	flag, err := b.pieces[i].ExcludeRanks(others...)
	if err != nil {
		return b, err
	}
	return b.replace(i, flag), nil
}

// Validate checks the probability invariant of every piece.
func (b Board) Validate() error {
	var errs []error
	for _, p := range b.pieces {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Serialize encodes the player's own pieces for the referee, e.g.
// "( ( B1 1 ) )". An empty board is "(  )".
func (b Board) Serialize() string {
	tokens := make([]string, 0, len(b.pieces))
	for _, p := range b.Pieces(Player) {
		tokens = append(tokens, p.Serialize())
	}
	return "( " + strings.Join(tokens, " ") + " )"
}

func (b Board) String() string {
	parts := make([]string, 0, len(b.pieces))
	for _, p := range b.pieces {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " | ")
}
