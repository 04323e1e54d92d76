package engine

import "junqi/experiments/metrics"

type Engine interface {
	// Run plays one game to the end or to the turn limit. The winner is 0
	// when nobody won.
	Run() (winner int, gameMetric metrics.GameMetric, decisions []metrics.DecisionRecord, err error)
}
