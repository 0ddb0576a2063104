package searcher

// Hyperparameters for MCTS

const DefaultExploration = 1.4 // C in the UCT exploration term

const DefaultEpisodes = 10000 // Visit budget of one search

// Tree memory: MaxBlocks blocks of BlockSize bytes shared by all nodes
const (
	DefaultMaxBlocks = 64
	DefaultBlockSize = 1024 * 1024
)

// Rollout results, seen from X
const (
	XWin = +1
	OWin = -1
)

// UnknownScore is reported when no simulation backs the chosen move.
const UnknownScore = -1.0
