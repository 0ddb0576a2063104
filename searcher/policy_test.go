package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestUCT(t *testing.T) {
	logTotal := math.Log(10)

	require.Greater(t, uct(0, 0, DefaultExploration, logTotal), uct(1, 1, DefaultExploration, logTotal),
		"Unvisited child should beat a child that always won")
	require.Equal(t, 2.0, uct(0, 0, 0, logTotal), "Unvisited child scores the placeholder without exploration")
	require.Equal(t, 0.5, uct(2, 4, 0, logTotal), "Exploitation is the average score")
	require.InDelta(t, 0.5+1.4*math.Sqrt(logTotal/4), uct(2, 4, 1.4, logTotal), 1e-12)
}

// withChildren builds a root whose children have the given score/visits.
func withChildren(t *testing.T, m *MCTS, stats [][2]int32) *node {
	root := m.nodes.Get(newRoot(t, m))
	first, err := m.nodes.AllocN(len(stats))
	require.NoError(t, err)
	for i, s := range stats {
		child := m.nodes.Get(first + uint32(i))
		child.square = int16(i)
		child.score, child.visits = s[0], s[1]
		root.visits += s[1]
	}
	root.visits++
	root.qchildren = uint16(len(stats))
	root.children = first
	return root
}

func TestSelectChild(t *testing.T) {
	t.Run("single child is taken without scoring", func(t *testing.T) {
		m := NewMCTS(WithRand(rand.New(rand.NewSource(1))))
		root := withChildren(t, m, [][2]int32{{-5, 5}})
		require.Equal(t, 0, m.selectChild(root))
	})

	t.Run("unvisited children come first", func(t *testing.T) {
		m := NewMCTS(WithRand(rand.New(rand.NewSource(1))))
		root := withChildren(t, m, [][2]int32{{3, 3}, {0, 0}, {2, 2}})
		require.Equal(t, 1, m.selectChild(root))
	})

	t.Run("best average wins without exploration", func(t *testing.T) {
		m := NewMCTS(WithExploration(0), WithRand(rand.New(rand.NewSource(1))))
		root := withChildren(t, m, [][2]int32{{1, 4}, {3, 4}, {-2, 4}})
		require.Equal(t, 1, m.selectChild(root))
	})

	t.Run("exploration favours rarely visited children", func(t *testing.T) {
		m := NewMCTS(WithExploration(10), WithRand(rand.New(rand.NewSource(1))))
		root := withChildren(t, m, [][2]int32{{90, 100}, {0, 1}})
		require.Equal(t, 1, m.selectChild(root))
	})

	t.Run("ties are broken uniformly", func(t *testing.T) {
		m := NewMCTS(WithRand(rand.New(rand.NewSource(1))))
		root := withChildren(t, m, [][2]int32{{0, 0}, {0, 0}, {0, 0}, {0, 0}})
		seen := map[int]int{}
		for i := 0; i < 400; i++ {
			seen[m.selectChild(root)]++
		}
		require.Len(t, seen, 4, "Every tied child should be drawn")
		for child, count := range seen {
			require.Greater(t, count, 50, "Child %d drawn too rarely", child)
		}
	})
}

func TestBestChild(t *testing.T) {
	m := NewMCTS(WithRand(rand.New(rand.NewSource(1))))
	root := withChildren(t, m, [][2]int32{{1, 3}, {-7, 9}, {2, 2}})
	require.Equal(t, 1, m.bestChild(root), "Most visited child wins regardless of score")

	root = withChildren(t, m, [][2]int32{{1, 5}, {0, 2}, {-1, 5}})
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[m.bestChild(root)] = true
	}
	require.Equal(t, map[int]bool{0: true, 2: true}, seen)
}
