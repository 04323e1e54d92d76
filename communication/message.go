package communication

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"junqi/game"
)

var ErrBadMessage = errors.New("bad message")

const invalidSetup = "Invalid Board Setup"
const invalidMovePrefix = "Invalid Board Move"

// Message is anything exchanged with the referee. Serialize returns the line
// without its trailing newline.
type Message interface {
	Serialize() string
}

// InitMessage carries the player's initial placement.
type InitMessage struct {
	Board game.Board
}

func (m InitMessage) Serialize() string {
	return m.Board.Serialize()
}

// MoveMessage is a move resolved by the referee. Player is the side that
// moved (1 or 2) and Outcome is from that side's point of view.
type MoveMessage struct {
	From    game.Position
	To      game.Position
	Player  int
	Outcome game.Outcome
}

// Serialize encodes the move as the referee reports it, e.g. "A1 A2 1 move".
func (m MoveMessage) Serialize() string {
	return fmt.Sprintf("%v %v %d %v", m.From, m.To, m.Player, m.Outcome)
}

func (m MoveMessage) String() string {
	return m.Serialize()
}

func (m MoveMessage) Event() game.Event {
	return game.Event{From: m.From, To: m.To, Outcome: m.Outcome}
}

// ActionMessage is a move a player submits.
type ActionMessage game.Action

func (m ActionMessage) Serialize() string {
	return fmt.Sprintf("( %v %v )", m.From, m.To)
}

// ErrorMessage reports a rejected setup or move.
type ErrorMessage struct {
	Reason string
}

func (m ErrorMessage) Serialize() string {
	if m.Reason == invalidSetup {
		return invalidSetup
	}
	return invalidMovePrefix + " " + m.Reason
}

// Parse decodes a line from either side: referee reports and errors, or a
// player's setup and move requests.
func Parse(line string) (Message, error) {
	line = strings.TrimSpace(line)
	if line == invalidSetup {
		return ErrorMessage{Reason: invalidSetup}, nil
	}
	if reason, ok := strings.CutPrefix(line, invalidMovePrefix); ok {
		return ErrorMessage{Reason: strings.TrimSpace(reason)}, nil
	}

	fields := strings.Fields(line)
	if len(fields) > 0 && fields[0] == "(" {
		if len(fields) == 2 || fields[1] == "(" {
			b, err := ParseSetup(line)
			if err != nil {
				return nil, err
			}
			return InitMessage{Board: b}, nil
		}
		a, err := ParseAction(line)
		if err != nil {
			return nil, err
		}
		return ActionMessage(a), nil
	}

	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrBadMessage, line)
	}
	from, err := game.ParsePosition(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	to, err := game.ParsePosition(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	player, err := strconv.Atoi(fields[2])
	if err != nil || (player != 1 && player != 2) {
		return nil, fmt.Errorf("%w: unknown player %q", ErrBadMessage, fields[2])
	}
	outcome, err := game.ParseOutcome(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	return MoveMessage{From: from, To: to, Player: player, Outcome: outcome}, nil
}

// tokens splits "( ... )" into its inner fields.
func tokens(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "(" || fields[len(fields)-1] != ")" {
		return nil, false
	}
	return fields[1 : len(fields)-1], true
}

// ParseAction decodes a move sent by a player, e.g. "( A1 A2 )".
func ParseAction(line string) (game.Action, error) {
	fields, ok := tokens(line)
	if !ok || len(fields) != 2 {
		return game.Action{}, fmt.Errorf("%w: %q", ErrBadMessage, line)
	}
	from, err := game.ParsePosition(fields[0])
	if err != nil {
		return game.Action{}, fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	to, err := game.ParsePosition(fields[1])
	if err != nil {
		return game.Action{}, fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	return game.Action{From: from, To: to}, nil
}

// ParseSetup decodes an initial placement sent by a player, e.g.
// "( ( B1 1 ) ( A1 4 ) )". The result is not validated against the setup
// rules.
func ParseSetup(line string) (game.Board, error) {
	fields, ok := tokens(line)
	if !ok || len(fields)%4 != 0 {
		return game.Board{}, fmt.Errorf("%w: %q", ErrBadMessage, line)
	}
	b := game.NewBoard()
	for i := 0; i < len(fields); i += 4 {
		if fields[i] != "(" || fields[i+3] != ")" || len(fields[i+2]) != 1 {
			return game.Board{}, fmt.Errorf("%w: malformed piece %q", ErrBadMessage, strings.Join(fields[i:i+4], " "))
		}
		pos, err := game.ParsePosition(fields[i+1])
		if err != nil {
			return game.Board{}, fmt.Errorf("%w: %w", ErrBadMessage, err)
		}
		rank, err := game.ParseRank(fields[i+2][0])
		if err != nil {
			return game.Board{}, fmt.Errorf("%w: %w", ErrBadMessage, err)
		}
		if _, taken := b.PieceAt(pos); taken {
			return game.Board{}, fmt.Errorf("%w: two pieces at %v", ErrBadMessage, pos)
		}
		b = b.PlacePiece(game.NewPiece(pos, game.Player, rank))
	}
	return b, nil
}
