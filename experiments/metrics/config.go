package metrics

// AgentConfig identifies one AI setup taking part in an experiment. Zero
// values keep the AI defaults.
type AgentConfig struct {
	ID          int
	Kind        string // random or mcts
	Episodes    int
	Exploration float64
	MaxBlocks   int
	Seed        int32
}
