package searcher

import (
	bb "viruswar/bitboard"
	"viruswar/game"

	"golang.org/x/exp/rand"
)

// rollout plays uniformly random sub-steps from pos until the side to move
// has no square and returns the result for X together with the number of
// sub-steps attempted, the failing one included. Unlike LegalSteps it does
// not prune first sub-steps that cannot be completed, such a move simply
// fails one or two sub-steps later. trace, when set, sees every played
// square.
func rollout(g *game.Geometry, pos game.Position, r *rand.Rand, trace func(sq int)) (int32, int) {
	count := pos.Count()
	attempts := 0
	for {
		attempts++
		side := game.SideAt(count)

		var steps bb.Bitboard
		switch count {
		case 0:
			steps = bb.Square(g.XFirst)
		case 3:
			steps = bb.Square(g.OFirst)
		default:
			my, opp := pos.Sides(side)
			steps = game.NextSteps(g, my, opp, pos.Dead)
			if steps.IsZero() {
				return outcome(side), attempts
			}
		}

		sq := randomSquare(steps, r)
		pos.Apply(side, sq)
		if trace != nil {
			trace(sq)
		}
		count++
	}
}

// randomSquare draws one square of a non-empty mask.
func randomSquare(steps bb.Bitboard, r *rand.Rand) int {
	q := bb.PopCount(steps)
	if q == 1 {
		return bb.FirstOne(steps)
	}
	return bb.NthOneIndex(steps, r.Intn(q))
}
