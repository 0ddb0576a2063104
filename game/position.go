package game

import bb "viruswar/bitboard"

type Side uint8

const (
	NoSide Side = 0
	X      Side = 1
	O      Side = 2
)

func (s Side) Opponent() Side { return s ^ 3 }

func (s Side) String() string {
	switch s {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "none"
	}
}

// Position is the raw board: every cell ever placed by each side, with the
// captured ones also marked in Dead.
type Position struct {
	X, O, Dead bb.Bitboard
}

// Count is the number of sub-steps played so far (placements plus kills).
func (p Position) Count() int {
	return bb.PopCount(p.X.Or(p.O)) + bb.PopCount(p.Dead)
}

// SideAt returns the side playing sub-step number count (zero based).
func SideAt(count int) Side {
	if (count/3)%2 == 0 {
		return X
	}
	return O
}

func (p Position) Sides(side Side) (my, opp bb.Bitboard) {
	if side == X {
		return p.X, p.O
	}
	return p.O, p.X
}

// Apply plays square sq for side without any legality check: an opponent
// cell is killed, anything else joins side's cells.
func (p *Position) Apply(side Side, sq int) {
	p.ApplyMask(side, bb.Square(sq))
}

func (p *Position) ApplyMask(side Side, mask bb.Bitboard) {
	my, opp := &p.X, &p.O
	if side == O {
		my, opp = opp, my
	}
	if opp.Intersects(mask) {
		p.Dead = p.Dead.Or(mask)
	} else {
		*my = my.Or(mask)
	}
}
