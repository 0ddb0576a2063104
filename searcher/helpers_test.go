package searcher

import (
	"testing"
	bb "viruswar/bitboard"
	"viruswar/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newGeometry(t *testing.T, n int) *game.Geometry {
	g, err := game.NewStdGeometry(n)
	require.NoError(t, err)
	return g
}

// playSteps plays steps random legal sub-steps, starting over whenever the
// game ends too early.
func playSteps(t *testing.T, g *game.Geometry, r *rand.Rand, steps int) *game.State {
	for attempt := 0; attempt < 100; attempt++ {
		state := game.NewState(g)
		for state.StepCount() < steps && state.Status() == game.InProgress {
			require.NoError(t, state.Step(randomSquare(state.Steps(), r)))
		}
		if state.Status() == game.InProgress {
			return state
		}
	}
	require.FailNow(t, "could not reach an undecided position", "%d steps on board %d", steps, g.N)
	return nil
}

// midgame returns an undecided position with a choice of squares.
func midgame(t *testing.T, g *game.Geometry, r *rand.Rand, steps int) *game.State {
	for attempt := 0; attempt < 100; attempt++ {
		state := playSteps(t, g, r, steps)
		if bb.PopCount(state.Steps()) > 1 {
			return state
		}
	}
	require.FailNow(t, "could not reach a position with a choice")
	return nil
}

// decided plays a random game to its end.
func decided(t *testing.T, g *game.Geometry, r *rand.Rand) *game.State {
	state := game.NewState(g)
	for state.Status() == game.InProgress {
		require.NoError(t, state.Step(randomSquare(state.Steps(), r)))
	}
	return state
}

func newRoot(t *testing.T, m *MCTS) uint32 {
	require.NoError(t, m.prepare())
	root, err := m.nodes.Alloc()
	require.NoError(t, err)
	m.nodes.Get(root).square = -1
	return root
}
