package searcher

import (
	"errors"
	"fmt"
	"time"
	"viruswar/arena"
	bb "viruswar/bitboard"
	"viruswar/experiments/metrics"
	"viruswar/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS searches a fresh tree on every call to Search. The tree lives in an
// arena that is rewound, not freed, between searches: a capture can revive
// a whole chain, so statistics of an older tree are not reused.
type MCTS struct {
	episodes    int
	exploration float64
	maxBlocks   int
	blockSize   int
	rng         *rand.Rand
	logger      zerolog.Logger
	metrics     metrics.Collector
	trace       func(sq int)

	arena *arena.Allocator
	nodes *arena.Slab[node]
	path  []uint32
	ties  []int
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithMemory bounds the tree to maxBlocks blocks of blockSize bytes.
func WithMemory(maxBlocks, blockSize int) Option {
	return func(m *MCTS) {
		if maxBlocks > 0 && blockSize > 0 && (maxBlocks != m.maxBlocks || blockSize != m.blockSize) {
			m.maxBlocks = maxBlocks
			m.blockSize = blockSize
			m.arena = nil
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(m *MCTS) {
		if r != nil {
			m.rng = r
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

// WithRolloutTrace registers a callback receiving every square played by
// rollouts.
func WithRolloutTrace(trace func(sq int)) Option {
	return func(m *MCTS) {
		m.trace = trace
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		episodes:    DefaultEpisodes,
		exploration: DefaultExploration,
		maxBlocks:   DefaultMaxBlocks,
		blockSize:   DefaultBlockSize,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:      log.Logger,
		metrics:     metrics.NewDummyCollector(),
	}
	m.Apply(options...)
	return m
}

// Apply changes the configuration between searches.
func (m *MCTS) Apply(options ...Option) {
	for _, option := range options {
		option(m)
	}
}

func (m *MCTS) Episodes() int              { return m.episodes }
func (m *MCTS) Exploration() float64       { return m.exploration }
func (m *MCTS) Memory() (blocks, size int) { return m.maxBlocks, m.blockSize }

// Search picks a square for the side to move in state, which is only read.
// The explanation is nil unless explain is set.
func (m *MCTS) Search(state *game.State, explain bool) (int, *Explanation, error) {
	steps := state.Steps()
	if steps.IsZero() {
		return -1, nil, fmt.Errorf("%w: game is decided (%s)", game.ErrNoLegalMove, state.Status())
	}

	start := time.Now()
	m.metrics.Start()

	if bb.PopCount(steps) == 1 {
		sq := bb.FirstOne(steps)
		if !explain {
			return sq, nil, nil
		}
		return sq, &Explanation{
			Stats:  []StepStat{{Square: sq, WinRate: UnknownScore}},
			Time:   time.Since(start),
			Score:  UnknownScore,
			Metric: m.metrics.Complete(),
		}, nil
	}

	if err := m.prepare(); err != nil {
		return -1, nil, err
	}

	rootIndex, err := m.nodes.Alloc()
	if err != nil {
		return -1, nil, fmt.Errorf("failed to allocate root: %w", err)
	}
	m.nodes.Get(rootIndex).square = -1

	g := state.Geometry()
	pos := state.Position()
	truncated := false
	for i := 0; i < m.episodes; i++ {
		err := m.simulate(rootIndex, g, pos)
		if errors.Is(err, arena.ErrOutOfMemory) {
			truncated = true
			m.metrics.SetTruncated()
			m.logger.Warn().
				Int("episodes", i).
				Int("blocks", m.arena.UsedBlocks()).
				Msg("search tree is out of memory, stopping early")
			break
		}
		if err != nil {
			return -1, nil, err
		}
		m.metrics.AddEpisode()
	}
	m.metrics.SetNodes(m.nodes.Len())

	root := m.nodes.Get(rootIndex)
	var sq int
	if root.isLeaf() { // Not even the root could be expanded
		sq = randomSquare(steps, m.rng)
	} else {
		sq = int(m.nodes.Get(root.children + uint32(m.bestChild(root))).square)
	}

	elapsed := time.Since(start)
	metric := m.metrics.Complete()
	m.logger.Debug().
		Str("square", game.SquareName(g.N, sq)).
		Int32("visits", root.visits).
		Int("nodes", m.nodes.Len()).
		Bool("truncated", truncated).
		Dur("elapsed", elapsed).
		Msg("search complete")

	if !explain {
		return sq, nil, nil
	}
	explanation := m.explain(root, sq, elapsed, metric)
	explanation.Truncated = truncated
	return sq, explanation, nil
}

// Release drops the tree memory, the next search allocates it again.
func (m *MCTS) Release() {
	m.arena, m.nodes = nil, nil
}

func (m *MCTS) prepare() error {
	if m.arena != nil {
		m.arena.Reset()
		return nil
	}

	a, err := arena.New(m.maxBlocks, m.blockSize)
	if err != nil {
		return err
	}
	nodes, err := arena.NewSlab[node](a)
	if err != nil {
		return err
	}
	m.arena, m.nodes = a, nodes
	return nil
}

// simulate runs one descent from the root over a scratch copy of pos,
// expands the reached leaf and backs up one result.
func (m *MCTS) simulate(rootIndex uint32, g *game.Geometry, pos game.Position) error {
	startCount := pos.Count()
	startSide := game.SideAt(startCount)

	count, side := startCount, startSide
	index := rootIndex
	m.path = m.path[:0]
	for {
		m.path = append(m.path, index)
		m.metrics.AddSteps(1)

		n := m.nodes.Get(index)
		if n.isLeaf() {
			break
		}
		if n.isTerminal() {
			m.backup(outcome(side), startSide, startCount)
			return nil
		}

		index = n.children + uint32(m.selectChild(n))
		pos.Apply(side, int(m.nodes.Get(index).square))
		count++
		if count%3 == 0 {
			side = side.Opponent()
		}
	}

	leaf := m.nodes.Get(index)
	steps := game.LegalSteps(g, side, pos)
	if steps.IsZero() {
		leaf.qchildren = terminalMark
		m.backup(outcome(side), startSide, startCount)
		return nil
	}

	q := bb.PopCount(steps)
	first, err := m.nodes.AllocN(q)
	if err != nil {
		return err
	}
	for i := 0; i < q; i++ {
		sq := bb.FirstOne(steps)
		steps = steps.Xor(bb.Square(sq))
		m.nodes.Get(first + uint32(i)).square = int16(sq)
	}
	leaf.qchildren = uint16(q)
	leaf.children = first

	result, attempts := rollout(g, pos, m.rng, m.trace)
	m.metrics.AddRollout()
	m.metrics.AddSteps(attempts)
	m.backup(result, startSide, startCount)
	return nil
}

// backup credits result (seen from X) to every node of the last descent.
// The root keeps the raw result, deeper nodes see it from the side that
// moved into them.
func (m *MCTS) backup(result int32, side game.Side, count int) {
	root := m.nodes.Get(m.path[0])
	root.visits++
	root.score += result

	for _, index := range m.path[1:] {
		n := m.nodes.Get(index)
		n.visits++
		if side == game.X {
			n.score += result
		} else {
			n.score -= result
		}

		count++
		if count%3 == 0 {
			side = side.Opponent()
		}
	}
}
