// meta/meta.go
package meta

// BOARD_SIZE defines the board side used by experiments.
const BOARD_SIZE = 9

// EPISODES defines the visit budget of an experiment MCTS agent.
const EPISODES = 2000

// NUM_GAMES defines the number of games per matchup.
const NUM_GAMES = 20

// RESULTS_DIR defines where experiment records are stored.
const RESULTS_DIR = "results"
