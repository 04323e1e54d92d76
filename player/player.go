package player

import (
	"errors"
	"fmt"
	"io"

	"junqi/agent"
	"junqi/communication"
	"junqi/experiments/metrics"
	"junqi/game"
	"junqi/meta"

	"github.com/rs/zerolog/log"
)

// ErrRejected is returned when the referee refuses the setup or a move.
var ErrRejected = errors.New("rejected by referee")

type Option func(p *Player)

// WithMaxTurns stops the loop after the given number of moves by both sides.
func WithMaxTurns(turns int) Option {
	return func(p *Player) {
		if turns > 0 {
			p.maxTurns = turns
		}
	}
}

// Player keeps this side's belief about the board and plays moves chosen by
// its agent.
type Player struct {
	turn     int // 1 moves first
	setup    game.Board
	board    game.Board
	agent    agent.Agent
	comm     communication.Communicator
	maxTurns int
	moves    int
	records  []metrics.DecisionRecord
}

// NewPlayer creates a player from its initial placement. Opponent pieces are
// added with their prior rank distribution.
func NewPlayer(turn int, setup game.Board, a agent.Agent, comm communication.Communicator, options ...Option) *Player {
	if turn != 1 && turn != 2 {
		panic(fmt.Sprintf("invalid turn %d", turn))
	}
	p := &Player{
		turn:     turn,
		setup:    setup,
		board:    setup.InitializeOpponentPieces(),
		agent:    a,
		comm:     comm,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Player) Board() game.Board {
	return p.board
}

func (p *Player) Records() []metrics.DecisionRecord {
	return p.records
}

// Setup sends the initial placement.
func (p *Player) Setup() error {
	log.Info().Msgf("player %d setup: %v", p.turn, p.setup.Serialize())
	return p.comm.Send(communication.InitMessage{Board: p.setup})
}

// Observe applies a move reported by the referee.
func (p *Player) Observe(m communication.MoveMessage) error {
	board, err := p.board.Update(m.Event())
	if err != nil {
		return fmt.Errorf("failed to apply %v: %w", m, err)
	}
	p.board = board
	p.moves++

	if err := board.Validate(); err != nil {
		log.Warn().Err(err).Msg("board failed the probability check")
	}
	log.Debug().Msgf("after %v: %v", m, board)
	return nil
}

// TakeTurn asks the agent for a move and sends it.
func (p *Player) TakeTurn() (game.Action, error) {
	action, metric, err := p.agent.FindMove(p.board)
	if err != nil {
		return game.Action{}, err
	}
	p.records = append(p.records, metrics.DecisionRecord{
		Step:           p.moves + 1,
		Player:         p.turn,
		From:           action.From.String(),
		To:             action.To.String(),
		DecisionMetric: metric,
	})
	log.Info().Msgf("player %d plays %v", p.turn, action)
	if err := p.comm.Send(communication.ActionMessage(action)); err != nil {
		return game.Action{}, err
	}
	return action, nil
}

func (p *Player) takeTurn() error {
	_, err := p.TakeTurn()
	if errors.Is(err, agent.ErrNoMoves) {
		log.Warn().Msgf("player %d has no legal moves", p.turn)
		return nil
	}
	return err
}

// Play runs the game loop: send the setup, then alternate between our moves
// and the referee's reports until the stream ends, the referee rejects
// something, or the turn limit is reached.
func (p *Player) Play() error {
	if err := p.Setup(); err != nil {
		return err
	}
	if p.turn == 1 {
		if err := p.takeTurn(); err != nil {
			return err
		}
	}

	for p.moves < p.maxTurns {
		m, err := p.comm.Receive()
		if errors.Is(err, io.EOF) {
			log.Info().Msgf("player %d: referee closed the stream after %d moves", p.turn, p.moves)
			return nil
		}
		if err != nil {
			return err
		}

		switch m := m.(type) {
		case communication.ErrorMessage:
			return fmt.Errorf("%w: %s", ErrRejected, m.Reason)
		case communication.MoveMessage:
			if err := p.Observe(m); err != nil {
				return err
			}
			if m.Player != p.turn && p.moves < p.maxTurns {
				if err := p.takeTurn(); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: unexpected %T", communication.ErrBadMessage, m)
		}
	}
	log.Info().Msgf("player %d: turn limit of %d reached", p.turn, p.maxTurns)
	return nil
}
