package agent

import (
	"math"
	"sync"
	"time"

	"junqi/experiments/metrics"
	"junqi/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(h *Heuristic)

// Heuristic scores every legal action one ply deep and plays the best one, or
// samples in proportion to the scores when a temperature is set.
type Heuristic struct {
	goroutines  int
	duration    time.Duration
	temperature float64
	rng         *rand.Rand
	metrics     metrics.Collector
}

func WithGoroutines(goroutines int) Option {
	return func(h *Heuristic) {
		if goroutines > 0 {
			h.goroutines = goroutines
		}
	}
}

// WithDuration bounds the time spent scoring. Actions not scored in time are
// not played.
func WithDuration(duration time.Duration) Option {
	return func(h *Heuristic) {
		if duration > 0 {
			h.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(h *Heuristic) {
		h.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTemperature makes the agent sample actions instead of taking the
// maximum. Higher temperatures flatten the distribution.
func WithTemperature(temperature float64) Option {
	return func(h *Heuristic) {
		if temperature > 0 {
			h.temperature = temperature
		}
	}
}

func WithMetrics() Option {
	return func(h *Heuristic) {
		h.metrics = metrics.NewCollector()
	}
}

func NewHeuristic(options ...Option) *Heuristic {
	h := &Heuristic{ // Default values
		goroutines: 1,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *Heuristic) FindMove(b game.Board) (game.Action, metrics.DecisionMetric, error) {
	actions := b.AllMoves(game.Player)
	if len(actions) == 0 {
		return game.Action{}, metrics.DecisionMetric{}, ErrNoMoves
	}

	// Draw the random terms up front so a seeded agent is deterministic
	// whatever the scheduling of the workers.
	noise := make([]float64, len(actions))
	for i := range noise {
		noise[i] = h.rng.Float64()
	}

	h.metrics.Start(h.goroutines)
	values := h.score(b, actions, noise)
	metric := h.metrics.Complete()

	var chosen game.Action
	if h.temperature > 0 {
		chosen = sample(actions, adjustTemperature(values, h.temperature), h.rng.Float64())
	} else {
		chosen = findMax(actions, values)
	}
	log.Debug().Msgf("chose %v out of %d actions", chosen, len(actions))
	return chosen, metric, nil
}

// score evaluates the actions on h.goroutines workers. Unscored actions keep
// a value of -Inf; the first action is always scored.
func (h *Heuristic) score(b game.Board, actions []game.Action, noise []float64) []float64 {
	values := make([]float64, len(actions))
	for i := range values {
		values[i] = math.Inf(-1)
	}
	values[0] = actionValue(b, actions[0], noise[0])
	h.metrics.AddCandidate()

	task := make(chan int, len(actions)-1)
	for i := 1; i < len(actions); i++ {
		task <- i
	}
	close(task)

	done := make(chan struct{})
	if h.duration > 0 {
		timer := time.AfterFunc(h.duration, func() { close(done) })
		defer timer.Stop()
	}

	var wg sync.WaitGroup
	for g := 0; g < h.goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				select {
				case <-done:
					h.metrics.AddSkipped()
					continue
				default:
				}
				values[i] = actionValue(b, actions[i], noise[i])
				h.metrics.AddCandidate()
			}
		}()
	}

	wg.Wait()
	return values
}

// findMax returns the first action with the highest value.
func findMax(actions []game.Action, values []float64) game.Action {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return actions[best]
}

// adjustTemperature turns values into probabilities proportional to
// value^(1/temperature). Unscored actions get probability zero.
func adjustTemperature(values []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(values))
	for i, v := range values {
		if math.IsInf(v, -1) || v <= 0 {
			continue
		}
		policy[i] = math.Pow(v, exponent)
		sum += policy[i]
	}
	if sum == 0 {
		return policy
	}
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

// sample picks the action whose cumulative probability first exceeds u.
func sample(actions []game.Action, policy []float64, u float64) game.Action {
	cumulative := 0.0
	last := 0
	for i, p := range policy {
		if p == 0 {
			continue
		}
		last = i
		cumulative += p
		if u < cumulative {
			return actions[i]
		}
	}
	return actions[last]
}
