package agent

import (
	"fmt"
	"viruswar/game"

	"golang.org/x/exp/rand"
)

// session is the bookkeeping shared by every AI kind. It holds the
// position and the replay history used by undo, along with the random
// source, the parameter table and the last error.
type session struct {
	state   *game.State
	history []int
	rng     *rand.Rand
	params  paramTable
	lastErr error
}

func newSession(g *game.Geometry, seed int32) session {
	return session{
		state:   game.NewState(g),
		history: make([]int, 0, g.MaxSteps()),
		rng:     newRand(seed),
	}
}

func (s *session) fail(err error) error {
	s.lastErr = err
	return err
}

func (s *session) Err() error { return s.lastErr }

func (s *session) State() *game.State { return s.state }

func (s *session) History() []int {
	return append([]int(nil), s.history...)
}

func (s *session) Reset(g *game.Geometry) error {
	s.lastErr = nil
	if g == nil {
		return s.fail(fmt.Errorf("%w: missing geometry", ErrInvalidArgument))
	}
	if cap(s.history) != g.MaxSteps() {
		s.history = make([]int, 0, g.MaxSteps())
	}
	s.history = s.history[:0]
	s.state.Reset(g)
	return nil
}

func (s *session) step(sq int) error {
	if len(s.history) == cap(s.history) {
		return fmt.Errorf("%w: history is full after %d steps", ErrOutOfMemory, len(s.history))
	}
	if err := s.state.Step(sq); err != nil {
		return err
	}
	s.history = append(s.history, sq)
	return nil
}

func (s *session) DoStep(sq int) error {
	s.lastErr = nil
	if err := s.step(sq); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *session) DoSteps(squares []int) error {
	s.lastErr = nil
	saved := *s.state
	savedLen := len(s.history)
	for i, sq := range squares {
		if err := s.step(sq); err != nil {
			*s.state = saved
			s.history = s.history[:savedLen]
			return s.fail(fmt.Errorf("step %d of %d: %w", i+1, len(squares), err))
		}
	}
	return nil
}

func (s *session) UndoStep() error {
	s.lastErr = nil
	if len(s.history) == 0 {
		return s.fail(fmt.Errorf("%w: history is empty", ErrInvalidArgument))
	}
	last := len(s.history) - 1
	if err := s.state.Unstep(s.history[last]); err != nil {
		return s.fail(err)
	}
	s.history = s.history[:last]
	return nil
}

func (s *session) UndoSteps(k int) error {
	s.lastErr = nil
	if k < 0 || k > len(s.history) {
		return s.fail(fmt.Errorf("%w: cannot undo %d of %d steps", ErrInvalidArgument, k, len(s.history)))
	}
	saved := *s.state
	for i := 1; i <= k; i++ {
		if err := s.state.Unstep(s.history[len(s.history)-i]); err != nil {
			*s.state = saved
			return s.fail(err)
		}
	}
	s.history = s.history[:len(s.history)-k]
	return nil
}

func (s *session) Params() []Param { return s.params.list() }

func (s *session) Param(name string) (any, error) {
	s.lastErr = nil
	value, err := s.params.get(name)
	if err != nil {
		return nil, s.fail(err)
	}
	return value, nil
}

func (s *session) SetParam(name string, value any) error {
	s.lastErr = nil
	if err := s.params.set(name, value); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *session) SetParamString(name, text string) error {
	s.lastErr = nil
	if err := s.params.setString(name, text); err != nil {
		return s.fail(err)
	}
	return nil
}
