package game

import (
	"testing"
	bb "viruswar/bitboard"

	"github.com/stretchr/testify/require"
)

func TestGrow(t *testing.T) {
	g, err := NewStdGeometry(testN)
	require.NoError(t, err)

	t.Run("a lattice of cells covers the board", func(t *testing.T) {
		var lattice bb.Bitboard
		for _, f := range []int{1, 4, 7} {
			for _, r := range []int{1, 4, 7} {
				lattice = lattice.Or(sq9(f, r))
			}
		}
		require.Equal(t, g.All, Grow(g, lattice))
	})

	t.Run("edge cells do not wrap into the next row", func(t *testing.T) {
		cells := sq9(0, 5).Or(sq9(6, 2)).Or(sq9(7, 1)).Or(sq9(8, 0)).Or(sq9(8, 8))

		var expected bb.Bitboard
		for f := 0; f <= 1; f++ {
			for r := 4; r <= 6; r++ {
				expected = expected.Or(sq9(f, r))
			}
		}
		for f := 5; f <= 8; f++ {
			for r := 0; r <= 3; r++ {
				expected = expected.Or(sq9(f, r))
			}
		}
		expected = expected.Or(sq9(8, 8)).Or(sq9(8, 7)).Or(sq9(7, 7)).Or(sq9(7, 8))
		expected = expected.Xor(sq9(5, 0)).Xor(sq9(8, 3))

		require.Equal(t, expected, Grow(g, cells))
	})
}

func TestNextSteps(t *testing.T) {
	g, err := NewStdGeometry(testN)
	require.NoError(t, err)

	t.Run("dead opponent cells extend the live group", func(t *testing.T) {
		my := sq9(8, 0).Or(sq9(8, 1)).Or(sq9(8, 2))
		opp := sq9(7, 1).Or(sq9(7, 3)).Or(sq9(6, 4)).Or(sq9(4, 6)).Or(sq9(7, 6)).Or(sq9(5, 0))
		dead := opp.Or(sq9(8, 1))

		expected := bb.Empty
		for _, fr := range [][2]int{
			{5, 3}, {5, 4}, {5, 5},
			{6, 0}, {6, 1}, {6, 2}, {6, 3}, {6, 5},
			{7, 0}, {7, 2}, {7, 4}, {7, 5},
			{8, 3}, {8, 4},
		} {
			expected = expected.Or(sq9(fr[0], fr[1]))
		}

		require.Equal(t, expected, NextSteps(g, my, opp, dead))
	})

	t.Run("live opponent cells are capturable, own cells are not", func(t *testing.T) {
		my := sq9(4, 4)
		opp := sq9(5, 5)
		steps := NextSteps(g, my, opp, bb.Empty)

		require.True(t, steps.Intersects(opp), "Opponent cell can be killed")
		require.False(t, steps.Intersects(my), "Own cell is not a destination")
		require.Equal(t, 8, bb.PopCount(steps))
	})

	t.Run("own dead cells are inert", func(t *testing.T) {
		my := sq9(4, 4)
		require.True(t, NextSteps(g, my, bb.Empty, my).IsZero(), "A fully captured side has no steps")
	})
}
