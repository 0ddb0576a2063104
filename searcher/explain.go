package searcher

import (
	"time"
	"viruswar/experiments/metrics"

	"golang.org/x/exp/slices"
)

// StepStat describes one candidate square of the root.
type StepStat struct {
	Square  int
	Visits  int
	WinRate float64 // for the side to move, UnknownScore when unvisited
}

type Explanation struct {
	Stats     []StepStat
	Time      time.Duration
	Score     float64 // estimated win probability of the chosen square for the side to move
	Truncated bool
	Metric    metrics.SearchMetric
}

func compareStats(a, b StepStat) int {
	switch {
	case a.Visits != b.Visits:
		if a.Visits > b.Visits {
			return -1
		}
		return 1
	case a.WinRate != b.WinRate:
		if a.WinRate > b.WinRate {
			return -1
		}
		return 1
	default:
		return a.Square - b.Square
	}
}

func (m *MCTS) explain(root *node, chosen int, elapsed time.Duration, metric metrics.SearchMetric) *Explanation {
	stats := make([]StepStat, 0, root.qchildren)
	score := UnknownScore
	for i := 0; i < int(root.qchildren); i++ {
		child := m.nodes.Get(root.children + uint32(i))
		stat := StepStat{
			Square:  int(child.square),
			Visits:  int(child.visits),
			WinRate: child.winRate(),
		}
		if stat.Square == chosen {
			score = stat.WinRate
		}
		stats = append(stats, stat)
	}
	slices.SortFunc(stats, compareStats)

	return &Explanation{
		Stats:     stats,
		Time:      elapsed,
		Score:     score,
		Truncated: metric.Truncated,
		Metric:    metric,
	}
}
