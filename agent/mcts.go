package agent

import (
	"fmt"
	"math"
	"viruswar/game"
	"viruswar/searcher"
)

// MCTS runs a fresh tree search for every Go.
type MCTS struct {
	session
	searcher  *searcher.MCTS
	c         float32
	qgames    uint32
	maxBlocks uint32
	seed      int32
}

func NewMCTS(g *game.Geometry, seed int32, options ...searcher.Option) *MCTS {
	m := &MCTS{
		session:   newSession(g, seed),
		c:         searcher.DefaultExploration,
		qgames:    searcher.DefaultEpisodes,
		maxBlocks: searcher.DefaultMaxBlocks,
		seed:      seed,
	}
	m.searcher = searcher.NewMCTS(append([]searcher.Option{
		searcher.WithRand(m.rng),
		searcher.WithExploration(float64(m.c)),
		searcher.WithEpisodes(int(m.qgames)),
		searcher.WithMemory(int(m.maxBlocks), searcher.DefaultBlockSize),
	}, options...)...)

	m.params.slots = []paramSlot{
		{
			name: "C",
			kind: F32,
			get:  func() any { return m.c },
			set: func(value any) error {
				c := value.(float32)
				if c < 0 || math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
					return fmt.Errorf("%w: exploration constant %v", ErrInvalidArgument, c)
				}
				m.c = c
				m.searcher.Apply(searcher.WithExploration(float64(c)))
				return nil
			},
		},
		{
			name: "qgames",
			kind: U32,
			get:  func() any { return m.qgames },
			set: func(value any) error {
				qgames := value.(uint32)
				if qgames == 0 || qgames > math.MaxInt32 {
					return fmt.Errorf("%w: visit budget %d", ErrInvalidArgument, qgames)
				}
				m.qgames = qgames
				m.searcher.Apply(searcher.WithEpisodes(int(qgames)))
				return nil
			},
		},
		{
			name: "max_blocks",
			kind: U32,
			get:  func() any { return m.maxBlocks },
			set: func(value any) error {
				blocks := value.(uint32)
				if blocks == 0 || blocks > math.MaxInt32 {
					return fmt.Errorf("%w: block ceiling %d", ErrInvalidArgument, blocks)
				}
				m.maxBlocks = blocks
				_, size := m.searcher.Memory()
				m.searcher.Apply(searcher.WithMemory(int(blocks), size))
				return nil
			},
		},
		{
			name: "seed",
			kind: I32,
			get:  func() any { return m.seed },
			set: func(value any) error {
				m.seed = value.(int32)
				m.rng.Seed(uint64(m.seed))
				return nil
			},
		},
	}
	return m
}

func (m *MCTS) Go(explain bool) (int, *Explanation, error) {
	m.lastErr = nil
	sq, explanation, err := m.searcher.Search(m.state, explain)
	if err != nil {
		return -1, nil, m.fail(err)
	}
	return sq, explanation, nil
}

// Close drops the search tree memory. The AI stays usable, the next Go
// allocates a new tree.
func (m *MCTS) Close() error {
	m.searcher.Release()
	return nil
}
