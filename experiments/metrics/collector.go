package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionMetric describes how one move was chosen.
type DecisionMetric struct {
	Goroutines int
	Duration   time.Duration
	Candidates int // legal moves scored
	Skipped    int // legal moves left unscored when the time budget ran out
}

type DecisionRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Player int // 1 or 2
	From   string
	To     string
	DecisionMetric
}

// AgentConfig identifies the agent settings a game was played with.
type AgentConfig struct {
	ID          int
	Goroutines  int
	Duration    time.Duration
	Temperature float64
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // 0 when the game hit the turn limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int)
	AddCandidate()
	AddSkipped()
	Complete() DecisionMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	candidates atomic.Int32
	skipped    atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.candidates.Store(0)
	m.skipped.Store(0)
}

func (m *collector) AddCandidate() {
	m.candidates.Add(1)
}

func (m *collector) AddSkipped() {
	m.skipped.Add(1)
}

func (m *collector) Complete() DecisionMetric {
	return DecisionMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Candidates: int(m.candidates.Load()),
		Skipped:    int(m.skipped.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)     {}
func (m *dummyCollector) AddCandidate()            {}
func (m *dummyCollector) AddSkipped()              {}
func (m *dummyCollector) Complete() DecisionMetric { return DecisionMetric{} }
