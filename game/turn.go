package game

import bb "viruswar/bitboard"

// developmentSteps is the number of squares a side must be able to reach
// when it starts a move, otherwise it loses on the spot.
const developmentSteps = 3

// LegalSteps resolves the legal squares for the side to move in pos.
// Openings are fixed; the first sub-step of a move is allowed only when the
// whole three sub-step move can be completed.
func LegalSteps(g *Geometry, side Side, pos Position) bb.Bitboard {
	count := pos.Count()
	switch count {
	case 0:
		return bb.Square(g.XFirst)
	case 3:
		return bb.Square(g.OFirst)
	}

	my, opp := pos.Sides(side)
	steps := NextSteps(g, my, opp, pos.Dead)
	if count%3 != 0 || steps.IsZero() {
		return steps
	}

	reachable := bb.PopCount(steps)
	if reachable >= developmentSteps {
		return steps
	}

	killed2 := steps.And(opp)
	dead2 := pos.Dead.Or(killed2)
	my2 := my.Or(steps.Xor(killed2))
	steps2 := NextSteps(g, my2, opp, dead2)
	if steps2.IsZero() {
		return bb.Empty
	}

	reachable += bb.PopCount(steps2)
	if reachable >= developmentSteps {
		return steps
	}

	killed3 := steps2.And(opp)
	dead3 := dead2.Or(killed3)
	my3 := my2.Or(steps2.Xor(killed3))
	steps3 := NextSteps(g, my3, opp, dead3)

	reachable += bb.PopCount(steps3)
	if reachable >= developmentSteps {
		return steps
	}
	return bb.Empty
}
