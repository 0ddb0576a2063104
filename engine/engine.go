package engine

import (
	"viruswar/experiments/metrics"
	"viruswar/game"
)

type Engine interface {
	// Run plays a game till one side cannot move
	Run() (winner game.Status, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
