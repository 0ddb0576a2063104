package game

import (
	"fmt"

	bb "viruswar/bitboard"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 11
)

// Geometry describes a square board of side N. It is immutable once built
// and may be shared by any number of states and AIs of the same size.
type Geometry struct {
	N        int
	LSide    bb.Bitboard // leftmost column
	RSide    bb.Bitboard // rightmost column
	All      bb.Bitboard
	NotLSide bb.Bitboard
	NotRSide bb.Bitboard
	XFirst   int // opening square of X
	OFirst   int // opening square of O
}

// NewStdGeometry builds the standard geometry with X opening in the a1
// corner and O opening in the opposite one.
func NewStdGeometry(n int) (*Geometry, error) {
	if n < MinBoardSize {
		return nil, fmt.Errorf("%w: board size %d is too small", ErrInvalidArgument, n)
	}
	squares := n * n
	if squares > bb.Width {
		return nil, fmt.Errorf("%w: board size %d does not fit a %d-bit mask", ErrInvalidArgument, n, bb.Width)
	}

	var lside, rside bb.Bitboard
	left, right := bb.Square(0), bb.Square(n-1)
	for i := 0; i < n; i++ {
		lside = lside.Or(left)
		rside = rside.Or(right)
		left = left.Shl(n)
		right = right.Shl(n)
	}

	all := bb.Mask(squares)
	return &Geometry{
		N:        n,
		LSide:    lside,
		RSide:    rside,
		All:      all,
		NotLSide: all.AndNot(lside),
		NotRSide: all.AndNot(rside),
		XFirst:   0,
		OFirst:   squares - 1,
	}, nil
}

func (g *Geometry) Squares() int { return g.N * g.N }

// MaxSteps bounds the number of placements plus kills in one game.
func (g *Geometry) MaxSteps() int { return 2 * g.N * g.N }
