package agent

import (
	"fmt"
	"time"
	bb "viruswar/bitboard"
	"viruswar/game"
)

// Random plays a uniformly random legal square.
type Random struct {
	session
	seed int32
}

func NewRandom(g *game.Geometry, seed int32) *Random {
	r := &Random{session: newSession(g, seed), seed: seed}
	r.params.slots = []paramSlot{
		{
			name: "seed",
			kind: I32,
			get:  func() any { return r.seed },
			set: func(value any) error {
				r.seed = value.(int32)
				r.rng.Seed(uint64(r.seed))
				return nil
			},
		},
	}
	return r
}

func (r *Random) Go(explain bool) (int, *Explanation, error) {
	r.lastErr = nil
	start := time.Now()

	steps := r.state.Steps()
	q := bb.PopCount(steps)
	if q == 0 {
		return -1, nil, r.fail(fmt.Errorf("%w: game is decided (%s)", ErrNoLegalMove, r.state.Status()))
	}

	var sq int
	if q == 1 {
		sq = bb.FirstOne(steps)
	} else {
		sq = bb.NthOneIndex(steps, r.rng.Intn(q))
	}

	if !explain {
		return sq, nil, nil
	}
	return sq, &Explanation{Time: time.Since(start), Score: 0.5}, nil
}

func (r *Random) Close() error { return nil }
