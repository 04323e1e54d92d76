package engine

import (
	"errors"
	"sync"
	"time"

	"junqi/agent"
	"junqi/communication"
	"junqi/experiments/metrics"
	"junqi/game"
	"junqi/gamemaster"
	"junqi/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Room in each in-process connection for the messages a side may send ahead
// of the other: its setup and one move.
const channelBuffer = 4

type localEngine struct {
	setups   [2]game.Board
	agents   [2]agent.Agent
	maxTurns int
	observer func(side int, b game.Board)
}

type Option func(e *localEngine)

// WithObserver registers a function called with a player's board after
// every move it observes. Calls come from the players' goroutines.
func WithObserver(observer func(side int, b game.Board)) Option {
	return func(e *localEngine) {
		e.observer = observer
	}
}

// LocalEngine plays two agents against each other in one process, each
// behind its own Player and connected to a GameMaster through channels.
func LocalEngine(setups [2]game.Board, agents [2]agent.Agent, maxTurns int, options ...Option) Engine {
	if maxTurns <= 0 {
		panic("need a positive turn limit")
	}
	e := &localEngine{
		setups:   setups,
		agents:   agents,
		maxTurns: maxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

type observingAgent struct {
	agent.Agent
	side     int
	observer func(side int, b game.Board)
}

func (a observingAgent) FindMove(b game.Board) (game.Action, metrics.DecisionMetric, error) {
	a.observer(a.side, b)
	return a.Agent.FindMove(b)
}

func (e *localEngine) Run() (int, metrics.GameMetric, []metrics.DecisionRecord, error) {
	start := time.Now()

	var players [2]*player.Player
	var playerEnds, refereeEnds [2]*communication.LocalCommunicator
	for i := range players {
		playerEnds[i], refereeEnds[i] = communication.NewLocalPair(channelBuffer)
		a := e.agents[i]
		if e.observer != nil {
			a = observingAgent{Agent: a, side: i + 1, observer: e.observer}
		}
		players[i] = player.NewPlayer(i+1, e.setups[i], a, playerEnds[i], player.WithMaxTurns(e.maxTurns))
	}

	playerErrs := make([]error, len(players))
	var wg sync.WaitGroup
	for i, p := range players {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Unblocks the game master if the player stops early.
			defer playerEnds[i].Close()

			playerErrs[i] = p.Play()
		}()
	}

	gm := gamemaster.NewGameMaster(refereeEnds[0], refereeEnds[1], e.maxTurns)
	winner := 0
	err := gm.InitializeGame()
	if err == nil {
		winner, err = gm.RunGame()
	}
	for _, c := range refereeEnds {
		c.Close()
	}
	wg.Wait()

	end := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: 1,
		Winner:         winner,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
	}
	if gm.Referee() != nil {
		gameMetric.TotalMoves = gm.Referee().Moves()
	}

	decisions := append(players[0].Records(), players[1].Records()...)
	slices.SortFunc(decisions, func(a, b metrics.DecisionRecord) int {
		return a.Step - b.Step
	})

	if err := errors.Join(append([]error{err}, playerErrs...)...); err != nil {
		log.Warn().Err(err).Msg("game ended with errors")
		return winner, gameMetric, decisions, err
	}
	return winner, gameMetric, decisions, nil
}
