package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration  time.Duration
	Episodes  int // simulate calls
	Rollouts  int // random playouts started from a freshly expanded leaf
	Steps     int // nodes visited plus rollout sub-steps
	Nodes     int // tree records allocated
	Truncated bool
}

type MoveMetric struct {
	Step   int    // 1-based sub-step number in the game
	Side   string // X or O
	Square int
	SearchMetric
}

type GameMetric struct {
	Starter    string // kind of the AI playing X
	Winner     string // X or O
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalSteps int
}

type Collector interface {
	Start()
	AddEpisode()
	AddRollout()
	AddSteps(n int)
	SetNodes(n int)
	SetTruncated()
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	episodes  atomic.Int32
	rollouts  atomic.Int32
	steps     atomic.Int64
	nodes     atomic.Int32
	truncated atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.rollouts.Store(0)
	m.steps.Store(0)
	m.nodes.Store(0)
	m.truncated.Store(false)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddSteps(n int) {
	m.steps.Add(int64(n))
}

func (m *collector) SetNodes(n int) {
	m.nodes.Store(int32(n))
}

func (m *collector) SetTruncated() {
	m.truncated.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:  time.Since(m.startTime),
		Episodes:  int(m.episodes.Load()),
		Rollouts:  int(m.rollouts.Load()),
		Steps:     int(m.steps.Load()),
		Nodes:     int(m.nodes.Load()),
		Truncated: m.truncated.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddRollout()            {}
func (m *dummyCollector) AddSteps(n int)         {}
func (m *dummyCollector) SetNodes(n int)         {}
func (m *dummyCollector) SetTruncated()          {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
