package gamemaster

import (
	"errors"
	"fmt"

	"junqi/communication"
	"junqi/game"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

type occupant struct {
	side int // 1 or 2
	rank game.Rank
}

// Referee knows the true rank of every piece. Positions are kept in player
// 1's coordinates; player 2 sees the board rotated by 180 degrees.
type Referee struct {
	layout *game.Layout
	cells  map[game.Position]occupant
	turn   int
	winner int
	moves  int
}

// view converts between a side's coordinates and player 1's. The rotation is
// its own inverse.
func view(side int, p game.Position) game.Position {
	if side == 2 {
		return p.Mirror()
	}
	return p
}

// NewReferee validates both setups, each given in its owner's coordinates.
func NewReferee(setup1, setup2 game.Board) (*Referee, error) {
	r := &Referee{
		layout: game.Standard(),
		cells:  make(map[game.Position]occupant, setup1.Len()+setup2.Len()),
		turn:   1,
	}
	for side, setup := range []game.Board{setup1, setup2} {
		if err := game.ValidateSetup(setup); err != nil {
			return nil, fmt.Errorf("player %d: %w", side+1, err)
		}
		for _, p := range setup.Pieces(game.Player) {
			r.cells[view(side+1, p.Position())] = occupant{side: side + 1, rank: p.Rank()}
		}
	}
	return r, nil
}

func (r *Referee) Turn() int {
	return r.turn
}

func (r *Referee) Moves() int {
	return r.moves
}

// Winner returns the winning side once the game is decided.
func (r *Referee) Winner() (int, bool) {
	return r.winner, r.winner != 0
}

func (r *Referee) canMove(from game.Position, o occupant) bool {
	return o.rank != game.Flag && o.rank != game.Landmine && !r.layout.IsHeadquarters(from)
}

func (r *Referee) blocked(to game.Position, side int) bool {
	o, ok := r.cells[to]
	if !ok {
		return false
	}
	return o.side == side || r.layout.IsCamp(to)
}

// LegalActions lists the moves side may make, in its own coordinates.
func (r *Referee) LegalActions(side int) []game.Action {
	var actions []game.Action
	for _, from := range r.layout.Positions() {
		o, ok := r.cells[from]
		if !ok || o.side != side || !r.canMove(from, o) {
			continue
		}
		for _, to := range r.layout.Adjacent(from) {
			if !r.blocked(to, side) {
				actions = append(actions, game.Action{From: view(side, from), To: view(side, to)})
			}
		}
	}
	return actions
}

// Play resolves a move by side, given in side's coordinates. The returned
// message is in player 1's coordinates; use ForPlayer to translate it.
func (r *Referee) Play(side int, a game.Action) (communication.MoveMessage, error) {
	if r.winner != 0 {
		return communication.MoveMessage{}, ErrGameOver
	}
	if side != r.turn {
		return communication.MoveMessage{}, fmt.Errorf("%w: not player %d's turn", ErrIllegalMove, side)
	}

	from, to := view(side, a.From), view(side, a.To)
	if !from.InBounds() || !to.InBounds() {
		return communication.MoveMessage{}, fmt.Errorf("%w: %v is off the board", ErrIllegalMove, a)
	}
	mover, ok := r.cells[from]
	if !ok || mover.side != side {
		return communication.MoveMessage{}, fmt.Errorf("%w: no piece of player %d at %v", ErrIllegalMove, side, a.From)
	}
	if !r.canMove(from, mover) {
		return communication.MoveMessage{}, fmt.Errorf("%w: piece at %v cannot move", ErrIllegalMove, a.From)
	}
	if !r.layout.AreAdjacent(from, to) {
		return communication.MoveMessage{}, fmt.Errorf("%w: %v is not adjacent to %v", ErrIllegalMove, a.To, a.From)
	}
	if r.blocked(to, side) {
		return communication.MoveMessage{}, fmt.Errorf("%w: %v is blocked", ErrIllegalMove, a.To)
	}

	outcome := game.Move
	defender, attacked := r.cells[to]
	if attacked {
		outcome = mover.rank.AttackOutcome(defender.rank)
	}

	delete(r.cells, from)
	switch outcome {
	case game.Move:
		r.cells[to] = mover
	case game.Win:
		r.cells[to] = mover
		if defender.rank == game.Flag {
			r.winner = side
		}
	case game.Loss:
	case game.Tie:
		delete(r.cells, to)
	}

	r.moves++
	r.turn = 3 - side
	if r.winner == 0 && len(r.LegalActions(r.turn)) == 0 {
		r.winner = side
	}

	return communication.MoveMessage{From: from, To: to, Player: side, Outcome: outcome}, nil
}

// ForPlayer translates a message from player 1's coordinates to side's.
func ForPlayer(m communication.MoveMessage, side int) communication.MoveMessage {
	m.From = view(side, m.From)
	m.To = view(side, m.To)
	return m
}
