package game

import (
	"fmt"

	bb "viruswar/bitboard"
)

type Status int

const (
	InProgress Status = iota
	XWins
	OWins
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case XWins:
		return "X"
	case OWins:
		return "O"
	default:
		return "???"
	}
}

// State is a mutable game position together with the side to move and the
// cached set of legal squares. An empty legal set means the game is over.
type State struct {
	geometry *Geometry
	active   Side
	pos      Position
	next     bb.Bitboard
}

func NewState(g *Geometry) *State {
	s := &State{}
	s.Reset(g)
	return s
}

func (s *State) Reset(g *Geometry) {
	s.geometry = g
	s.active = X
	s.pos = Position{}
	s.next = bb.Square(g.XFirst)
}

func (s *State) Geometry() *Geometry { return s.geometry }
func (s *State) Active() Side        { return s.active }
func (s *State) Position() Position  { return s.pos }
func (s *State) X() bb.Bitboard      { return s.pos.X }
func (s *State) O() bb.Bitboard      { return s.pos.O }
func (s *State) Dead() bb.Bitboard   { return s.pos.Dead }

// Steps returns the legal squares for the next sub-step.
func (s *State) Steps() bb.Bitboard { return s.next }

func (s *State) StepCount() int { return s.pos.Count() }

// MoveNumber is the 1-based full move number (one X move and one O move).
func (s *State) MoveNumber() int { return s.pos.Count()/6 + 1 }

// SubStep is the 1-based sub-step inside the current move.
func (s *State) SubStep() int { return s.pos.Count()%3 + 1 }

// Status reports the winner once the side to move has no legal square.
func (s *State) Status() Status {
	if !s.next.IsZero() {
		return InProgress
	}
	if s.active == X {
		return OWins
	}
	return XWins
}

func (s *State) Step(sq int) error {
	if sq < 0 || sq >= s.geometry.Squares() || !s.next.Has(sq) {
		return fmt.Errorf("%w: square %d is not a legal step", ErrInvalidMove, sq)
	}

	s.pos.Apply(s.active, sq)
	if s.pos.Count()%3 == 0 {
		s.active = s.active.Opponent()
	}

	s.next = LegalSteps(s.geometry, s.active, s.pos)
	return nil
}

// Unstep takes back the last sub-step, which must have been played on sq.
// Only bit membership is checked, undoing out of order corrupts the state.
func (s *State) Unstep(sq int) error {
	count := s.pos.Count()
	if count == 0 || sq < 0 || sq >= s.geometry.Squares() {
		return fmt.Errorf("%w: square %d cannot be taken back", ErrInvalidMove, sq)
	}

	mover := s.active
	if count%3 == 0 {
		mover = mover.Opponent()
	}

	mask := bb.Square(sq)
	my, opp := &s.pos.X, &s.pos.O
	if mover == O {
		my, opp = opp, my
	}

	switch {
	case s.pos.Dead.Intersects(mask) && opp.Intersects(mask):
		s.pos.Dead = s.pos.Dead.Xor(mask)
	case my.Intersects(mask) && !s.pos.Dead.Intersects(mask):
		*my = my.Xor(mask)
	default:
		return fmt.Errorf("%w: square %d was not played by %s", ErrInvalidMove, sq, mover)
	}

	s.active = mover
	s.next = LegalSteps(s.geometry, s.active, s.pos)
	return nil
}
