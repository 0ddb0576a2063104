package engine

import (
	"errors"
	"fmt"
	"time"
	"viruswar/agent"
	"viruswar/experiments/metrics"
	"viruswar/game"

	"github.com/rs/zerolog/log"
)

// ErrDesync is returned when an AI refuses a step the referee accepted.
var ErrDesync = errors.New("AI out of sync with the referee")

type Player struct {
	Name string
	AI   agent.AI
}

// LocalEngine referees a game between two in-process AIs. It keeps its own
// state and replays every accepted square into both AIs.
type LocalEngine struct {
	State   *game.State
	Players [2]Player // X, O
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine(g *game.Geometry, x, o Player) (*LocalEngine, error) {
	if x.AI == nil || o.AI == nil {
		return nil, fmt.Errorf("%w: both players need an AI", game.ErrInvalidArgument)
	}
	for _, p := range []Player{x, o} {
		if err := p.AI.Reset(g); err != nil {
			return nil, fmt.Errorf("failed to reset %s: %w", p.Name, err)
		}
	}

	return &LocalEngine{
		State:   game.NewState(g),
		Players: [2]Player{x, o},
	}, nil
}

func (e *LocalEngine) player(side game.Side) Player {
	return e.Players[side-game.X]
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run() (game.Status, metrics.GameMetric, []metrics.MoveMetric, error) {
	g := e.State.Geometry()
	gameMetric := metrics.GameMetric{
		Starter:   e.Players[0].Name,
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s (X) against %s (O) on a %dx%d board", e.Players[0].Name, e.Players[1].Name, g.N, g.N)

	for e.State.Status() == game.InProgress {
		side := e.State.Active()
		current := e.player(side)

		sq, explanation, err := current.AI.Go(true)
		if err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("%s failed to find a step: %w", current.Name, err)
		}
		if err := e.State.Step(sq); err != nil {
			return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("%s played an illegal step: %w", current.Name, err)
		}
		for _, p := range e.Players {
			if err := p.AI.DoStep(sq); err != nil {
				return game.InProgress, gameMetric, moveMetrics, fmt.Errorf("%w: %s rejected %s: %v", ErrDesync, p.Name, game.SquareName(g.N, sq), err)
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.State.StepCount(),
			Side:         side.String(),
			Square:       sq,
			SearchMetric: explanation.Metric,
		})
		log.Debug().
			Str("side", side.String()).
			Str("square", game.SquareName(g.N, sq)).
			Int("move", e.State.MoveNumber()).
			Float64("score", explanation.Score).
			Msg("step played")
	}

	status := e.State.Status()
	gameMetric.Winner = status.String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalSteps = e.State.StepCount()

	log.Info().Msgf("%s wins after %d steps", e.player(winnerSide(status)).Name, gameMetric.TotalSteps)
	return status, gameMetric, moveMetrics, nil
}

func winnerSide(status game.Status) game.Side {
	if status == game.XWins {
		return game.X
	}
	return game.O
}
