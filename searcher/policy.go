package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

// selectChild returns the offset of the child with the best UCT weight,
// drawing uniformly among all maxima.
func (m *MCTS) selectChild(parent *node) int {
	q := int(parent.qchildren)
	if q == 1 {
		return 0
	}

	logTotal := math.Log(float64(parent.visits))
	best := math.Inf(-1)
	m.ties = m.ties[:0]
	for i := 0; i < q; i++ {
		child := m.nodes.Get(parent.children + uint32(i))
		w := uct(child.score, child.visits, m.exploration, logTotal)
		if w > best {
			best = w
			m.ties = m.ties[:0]
		}
		if w == best {
			m.ties = append(m.ties, i)
		}
	}
	return pick(m.ties, m.rng)
}

// bestChild returns the offset of the most visited child of the root, ties
// drawn uniformly.
func (m *MCTS) bestChild(parent *node) int {
	most := int32(-1)
	m.ties = m.ties[:0]
	for i := 0; i < int(parent.qchildren); i++ {
		visits := m.nodes.Get(parent.children + uint32(i)).visits
		if visits > most {
			most = visits
			m.ties = m.ties[:0]
		}
		if visits == most {
			m.ties = append(m.ties, i)
		}
	}
	return pick(m.ties, m.rng)
}

func pick(candidates []int, r *rand.Rand) int {
	if len(candidates) == 1 {
		return candidates[0]
	}
	return candidates[r.Intn(len(candidates))]
}
