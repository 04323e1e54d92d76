package gamemaster

import (
	"fmt"

	"junqi/communication"
	"junqi/game"

	"github.com/rs/zerolog/log"
)

// GameMaster runs one game between two players connected through
// communicators, relaying every resolved move to both sides.
type GameMaster struct {
	players  [2]communication.Communicator
	referee  *Referee
	maxTurns int
}

func NewGameMaster(comm1, comm2 communication.Communicator, maxTurns int) *GameMaster {
	return &GameMaster{
		players:  [2]communication.Communicator{comm1, comm2},
		maxTurns: maxTurns,
	}
}

func (gm *GameMaster) Referee() *Referee {
	return gm.referee
}

// InitializeGame waits for both initial placements. A player whose setup
// breaks the rules is told so and the game does not start.
func (gm *GameMaster) InitializeGame() error {
	var setups [2]game.Board
	for i, c := range gm.players {
		m, err := c.Receive()
		if err != nil {
			return fmt.Errorf("player %d setup: %w", i+1, err)
		}
		init, ok := m.(communication.InitMessage)
		if !ok {
			return fmt.Errorf("player %d setup: %w: got %T", i+1, communication.ErrBadMessage, m)
		}
		if err := game.ValidateSetup(init.Board); err != nil {
			if sendErr := c.Send(communication.ErrorMessage{Reason: "Invalid Board Setup"}); sendErr != nil {
				log.Warn().Err(sendErr).Msgf("failed to reject player %d setup", i+1)
			}
			return fmt.Errorf("player %d: %w", i+1, err)
		}
		setups[i] = init.Board
	}

	referee, err := NewReferee(setups[0], setups[1])
	if err != nil {
		return err
	}
	gm.referee = referee
	log.Info().Msg("both setups accepted")
	return nil
}

// RunGame relays moves until a side wins or the turn limit is reached. It
// returns the winner, 0 for none. An illegal move loses the game for the
// side that made it.
func (gm *GameMaster) RunGame() (int, error) {
	if gm.referee == nil {
		panic("game not initialized")
	}
	for {
		if winner, ok := gm.referee.Winner(); ok {
			log.Info().Msgf("player %d wins after %d moves", winner, gm.referee.Moves())
			return winner, nil
		}
		if gm.referee.Moves() >= gm.maxTurns {
			log.Info().Msgf("no winner after %d moves", gm.referee.Moves())
			return 0, nil
		}

		side := gm.referee.Turn()
		c := gm.players[side-1]
		m, err := c.Receive()
		if err != nil {
			return 0, fmt.Errorf("player %d: %w", side, err)
		}
		action, ok := m.(communication.ActionMessage)
		if !ok {
			return 0, fmt.Errorf("player %d: %w: got %T", side, communication.ErrBadMessage, m)
		}

		resolved, err := gm.referee.Play(side, game.Action(action))
		if err != nil {
			if sendErr := c.Send(communication.ErrorMessage{Reason: err.Error()}); sendErr != nil {
				log.Warn().Err(sendErr).Msgf("failed to reject player %d move", side)
			}
			return 3 - side, fmt.Errorf("player %d: %w", side, err)
		}
		log.Debug().Msgf("move %d: %v", gm.referee.Moves(), resolved)

		for i, pc := range gm.players {
			if err := pc.Send(ForPlayer(resolved, i+1)); err != nil {
				return 0, fmt.Errorf("player %d: %w", i+1, err)
			}
		}
	}
}
