package experiments

import (
	"fmt"
	"viruswar/agent"
	"viruswar/engine"
	"viruswar/experiments/metrics"
	"viruswar/game"
	"viruswar/meta"
	"viruswar/searcher"

	"github.com/rs/zerolog/log"
)

// Experiment plays every matchup NumGames times. The first config of a
// matchup plays X in even games and O in odd ones.
type Experiment struct {
	Name      string
	BoardSize int
	NumGames  int
	Configs   []metrics.AgentConfig
	MatchUps  [][2]metrics.AgentConfig
	// ResultsDir receives the CSV records, nothing is written when empty.
	ResultsDir string
}

// Results holds the records of a finished experiment.
type Results struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	// Wins counts won games per AgentConfig.ID.
	Wins map[int]int
}

var explorationConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: agent.KindMCTS, Episodes: meta.EPISODES, Exploration: 0.5},
	{ID: 2, Kind: agent.KindMCTS, Episodes: meta.EPISODES, Exploration: 1.0},
	{ID: 3, Kind: agent.KindMCTS, Episodes: meta.EPISODES, Exploration: 2.0},
	{ID: 4, Kind: agent.KindMCTS, Episodes: meta.EPISODES, Exploration: 3.0},
}

// RunBaselineExperiment pits the default search against the random AI.
func RunBaselineExperiment() (*Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindRandom}
	mcts := metrics.AgentConfig{ID: 1, Kind: agent.KindMCTS, Episodes: meta.EPISODES}

	return Experiment{
		Name:       "baseline",
		BoardSize:  meta.BOARD_SIZE,
		NumGames:   meta.NUM_GAMES,
		Configs:    []metrics.AgentConfig{baseline, mcts},
		MatchUps:   [][2]metrics.AgentConfig{{mcts, baseline}},
		ResultsDir: meta.RESULTS_DIR,
	}.Run()
}

// RunExplorationExperiment pairs the default exploration constant against
// other values.
func RunExplorationExperiment() (*Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindMCTS, Episodes: meta.EPISODES}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range explorationConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:       "exploration",
		BoardSize:  meta.BOARD_SIZE,
		NumGames:   meta.NUM_GAMES,
		Configs:    append(explorationConfigs, baseline),
		MatchUps:   matchUps,
		ResultsDir: meta.RESULTS_DIR,
	}.Run()
}

func (x Experiment) Run() (*Results, error) {
	g, err := game.NewStdGeometry(x.BoardSize)
	if err != nil {
		return nil, err
	}

	count := 0
	results := &Results{Wins: map[int]int{}}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), matchup[0], matchup[1])

		for i := 0; i < x.NumGames; i++ {
			xConfig, oConfig := matchup[0], matchup[1]
			if i%2 == 1 {
				xConfig, oConfig = oConfig, xConfig
			}

			count++
			gameMetric, moveMetrics, err := runGame(g, xConfig, oConfig, int32(count))
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			results.Games = append(results.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     xConfig.ID,
				Agent2:     oConfig.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				results.Moves = append(results.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			winner := oConfig
			if gameMetric.Winner == game.XWins.String() {
				winner = xConfig
			}
			results.Wins[winner.ID]++

			log.Info().Msgf("completed matchup %d of %d game %d with winner: agent %d (%s)", mi+1, len(x.MatchUps), i+1, winner.ID, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(x.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	if x.ResultsDir == "" {
		return results, nil
	}
	if err := x.store(results); err != nil {
		return nil, err
	}
	return results, nil
}

func (x Experiment) store(results *Results) error {
	writer, err := metrics.NewWriter(x.ResultsDir, x.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(x.Configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(results.Games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(results.Moves)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

// runGame plays a single game between two agents.
func runGame(g *game.Geometry, xConfig, oConfig metrics.AgentConfig, gameSeed int32) (metrics.GameMetric, []metrics.MoveMetric, error) {
	x, err := createAgent(g, xConfig, gameSeed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	defer x.Close()
	o, err := createAgent(g, oConfig, -gameSeed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	defer o.Close()

	e, err := engine.NewLocalEngine(g,
		engine.Player{Name: fmt.Sprintf("agent %d", xConfig.ID), AI: x},
		engine.Player{Name: fmt.Sprintf("agent %d", oConfig.ID), AI: o})
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	_, gameMetric, moveMetrics, err := e.Run()
	return gameMetric, moveMetrics, err
}

// createAgent builds an AI for config. A zero config seed is replaced by
// fallbackSeed so that repeated games differ.
func createAgent(g *game.Geometry, config metrics.AgentConfig, fallbackSeed int32) (agent.AI, error) {
	seed := config.Seed
	if seed == 0 {
		seed = fallbackSeed
	}

	switch config.Kind {
	case agent.KindMCTS:
		ai := agent.NewMCTS(g, seed, searcher.WithMetrics())
		params := map[string]any{}
		if config.Episodes > 0 {
			params["qgames"] = uint32(config.Episodes)
		}
		if config.Exploration > 0 {
			params["C"] = float32(config.Exploration)
		}
		if config.MaxBlocks > 0 {
			params["max_blocks"] = uint32(config.MaxBlocks)
		}
		for name, value := range params {
			if err := ai.SetParam(name, value); err != nil {
				return nil, err
			}
		}
		return ai, nil
	default:
		return agent.New(config.Kind, g, seed)
	}
}
