// Package agent puts the random baseline and the tree search behind one AI
// interface. Every AI keeps its own copy of the game, the caller replays
// each step played elsewhere through DoStep to keep it in sync.
package agent

import (
	"fmt"
	"viruswar/game"
	"viruswar/searcher"

	"golang.org/x/exp/rand"
)

const (
	KindRandom = "random"
	KindMCTS   = "mcts"
)

type Explanation = searcher.Explanation

type AI interface {
	Reset(g *game.Geometry) error
	DoStep(sq int) error
	// DoSteps plays all squares or none of them.
	DoSteps(squares []int) error
	UndoStep() error
	// UndoSteps takes back the last k steps or none of them.
	UndoSteps(k int) error
	// Go picks a square for the side to move without playing it.
	Go(explain bool) (int, *Explanation, error)

	Params() []Param
	Param(name string) (any, error)
	SetParam(name string, value any) error
	SetParamString(name, text string) error

	// State must not be modified by the caller.
	State() *game.State
	History() []int
	// Err returns the error of the last failing call, nil if the last call
	// succeeded.
	Err() error
	Close() error
}

func Kinds() []string {
	return []string{KindRandom, KindMCTS}
}

func New(kind string, g *game.Geometry, seed int32) (AI, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: missing geometry", ErrInvalidArgument)
	}
	switch kind {
	case KindRandom:
		return NewRandom(g, seed), nil
	case KindMCTS:
		return NewMCTS(g, seed), nil
	default:
		return nil, fmt.Errorf("%w: unknown AI kind %q", ErrInvalidArgument, kind)
	}
}

func newRand(seed int32) *rand.Rand {
	return rand.New(rand.NewSource(uint64(seed)))
}
