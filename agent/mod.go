package agent

import (
	"errors"

	"junqi/experiments/metrics"
	"junqi/game"
)

var ErrNoMoves = errors.New("no legal moves")

type Agent interface {
	// FindMove returns the action to play and the metrics collected while
	// choosing it.
	FindMove(b game.Board) (game.Action, metrics.DecisionMetric, error)
}
