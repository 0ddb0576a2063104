package searcher

import (
	"testing"
	bb "viruswar/bitboard"
	"viruswar/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestBackup(t *testing.T) {
	m := NewMCTS()
	root := newRoot(t, m)
	first, err := m.nodes.AllocN(2)
	require.NoError(t, err)
	m.path = []uint32{root, first, first + 1}

	// X plays the last sub-step of its move, then O starts its move.
	m.backup(XWin, game.X, 2)

	require.Equal(t, int32(1), m.nodes.Get(root).visits)
	require.Equal(t, int32(XWin), m.nodes.Get(root).score, "Root keeps the raw result")
	require.Equal(t, int32(1), m.nodes.Get(first).score, "X moved into the child and won")
	require.Equal(t, int32(-1), m.nodes.Get(first+1).score, "O moved into the grandchild and lost")
	require.Equal(t, int32(1), m.nodes.Get(first+1).visits)
}

func TestSimulate(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	g := newGeometry(t, 4)

	for steps := 0; steps <= 10; steps++ {
		state := playSteps(t, g, r, steps)
		m := NewMCTS(WithRand(r), WithMetrics())
		m.metrics.Start()
		root := newRoot(t, m)

		const runs = 100
		for i := 0; i < runs; i++ {
			before := m.metrics.Complete().Steps
			visits := make([]int32, m.nodes.Len())
			for j := range visits {
				visits[j] = m.nodes.Get(uint32(j)).visits
			}

			require.NoError(t, m.simulate(root, g, state.Position()), "Run %d", i)
			require.Greater(t, m.metrics.Complete().Steps, before, "Run %d should do some work", i)
			for j, v := range visits {
				require.GreaterOrEqual(t, m.nodes.Get(uint32(j)).visits, v, "Node %d lost visits in run %d", j, i)
			}
		}

		n := m.nodes.Get(root)
		require.Equal(t, int32(runs), n.visits)
		require.False(t, n.isTerminal(), "Undecided root cannot be terminal")
		require.Equal(t, bb.PopCount(state.Steps()), int(n.qchildren), "Root children are the legal squares")

		var childVisits int32
		prev := int16(-1)
		for i := 0; i < int(n.qchildren); i++ {
			child := m.nodes.Get(n.children + uint32(i))
			require.True(t, state.Steps().Has(int(child.square)))
			require.Greater(t, child.square, prev, "Children are ordered by square")
			require.LessOrEqual(t, child.score, child.visits)
			require.GreaterOrEqual(t, child.score, -child.visits)
			prev = child.square
			childVisits += child.visits
		}
		require.Equal(t, int32(runs-1), childVisits, "Every run but the expanding one descends into a child")
	}
}

func TestSearch(t *testing.T) {
	quiet := WithLogger(zerolog.Nop())

	t.Run("decided game has no move", func(t *testing.T) {
		r := rand.New(rand.NewSource(5))
		state := decided(t, newGeometry(t, 5), r)
		_, _, err := NewMCTS(quiet, WithRand(r)).Search(state, true)
		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})

	t.Run("forced square is returned without searching", func(t *testing.T) {
		m := NewMCTS(quiet, WithMetrics())
		state := game.NewState(newGeometry(t, 7))
		sq, explanation, err := m.Search(state, true)
		require.NoError(t, err)
		require.Equal(t, 0, sq)
		require.Equal(t, UnknownScore, explanation.Score)
		require.Equal(t, 0, explanation.Metric.Episodes)
		require.Nil(t, m.arena, "No tree is built for a forced square")
	})

	t.Run("searching a midgame position", func(t *testing.T) {
		r := rand.New(rand.NewSource(6))
		state := midgame(t, newGeometry(t, 6), r, 14)
		m := NewMCTS(quiet, WithRand(r), WithMetrics(), WithEpisodes(500))

		sq, explanation, err := m.Search(state, true)
		require.NoError(t, err)
		require.True(t, state.Steps().Has(sq), "Square %d is not legal", sq)

		require.Len(t, explanation.Stats, bb.PopCount(state.Steps()))
		total := 0
		for i, stat := range explanation.Stats {
			total += stat.Visits
			if stat.Square == sq {
				require.Equal(t, explanation.Stats[0].Visits, stat.Visits, "Chosen square is the most visited one")
				require.Equal(t, stat.WinRate, explanation.Score)
			}
			if i > 0 {
				require.LessOrEqual(t, compareStats(explanation.Stats[i-1], stat), 0, "Stats are sorted")
			}
		}
		require.Equal(t, 499, total)
		require.Equal(t, 500, explanation.Metric.Episodes)
		require.Greater(t, explanation.Metric.Rollouts, 0)
		require.False(t, explanation.Truncated)
		require.GreaterOrEqual(t, explanation.Score, 0.0)
		require.LessOrEqual(t, explanation.Score, 1.0)
	})

	t.Run("search leaves the state alone", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		state := midgame(t, newGeometry(t, 8), r, 20)
		before := *state
		_, _, err := NewMCTS(quiet, WithRand(r), WithEpisodes(200)).Search(state, false)
		require.NoError(t, err)
		require.Equal(t, before, *state)
	})

	t.Run("same seed gives the same search", func(t *testing.T) {
		state := midgame(t, newGeometry(t, 7), rand.New(rand.NewSource(8)), 16)
		search := func() (int, *Explanation) {
			m := NewMCTS(quiet, WithRand(rand.New(rand.NewSource(99))), WithEpisodes(300))
			sq, explanation, err := m.Search(state, true)
			require.NoError(t, err)
			return sq, explanation
		}
		sq1, e1 := search()
		sq2, e2 := search()
		require.Equal(t, sq1, sq2)
		require.Equal(t, e1.Stats, e2.Stats)
	})

	t.Run("running out of tree memory stops early", func(t *testing.T) {
		r := rand.New(rand.NewSource(9))
		state := midgame(t, newGeometry(t, 9), r, 20)
		m := NewMCTS(quiet, WithRand(r), WithMetrics(), WithEpisodes(5000), WithMemory(1, 64*16))

		sq, explanation, err := m.Search(state, true)
		require.NoError(t, err)
		require.True(t, state.Steps().Has(sq))
		require.True(t, explanation.Truncated)
		require.Less(t, explanation.Metric.Episodes, 5000)
	})

	t.Run("root that cannot be expanded falls back to a random square", func(t *testing.T) {
		r := rand.New(rand.NewSource(10))
		state := midgame(t, newGeometry(t, 9), r, 20)
		m := NewMCTS(quiet, WithRand(r), WithMemory(1, 16))

		sq, explanation, err := m.Search(state, true)
		require.NoError(t, err)
		require.True(t, state.Steps().Has(sq))
		require.True(t, explanation.Truncated)
		require.Equal(t, UnknownScore, explanation.Score)
	})

	t.Run("arena is reused between searches", func(t *testing.T) {
		r := rand.New(rand.NewSource(12))
		state := midgame(t, newGeometry(t, 6), r, 10)
		m := NewMCTS(quiet, WithRand(r), WithEpisodes(200))

		_, _, err := m.Search(state, false)
		require.NoError(t, err)
		a := m.arena
		_, _, err = m.Search(state, false)
		require.NoError(t, err)
		require.Same(t, a, m.arena)

		m.Apply(WithMemory(2, DefaultBlockSize))
		require.Nil(t, m.arena, "Changing the memory bound drops the arena")
	})
}
