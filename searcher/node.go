package searcher

import (
	"math"
	"viruswar/game"
)

const terminalMark = 0xFFFF

// unvisitedScore is outside the [-1, 1] range of a visited child's average,
// so any unvisited child beats every visited sibling with the same visits.
const unvisitedScore = 2

// node is one tree record. Children of a node are contiguous in the slab
// and ordered by ascending square.
type node struct {
	square    int16
	qchildren uint16 // 0 while unexpanded, terminalMark once proven lost
	score     int32  // sum of results seen by the side that moved into the node
	visits    int32
	children  uint32 // slab index of the first child
}

func (n *node) isLeaf() bool     { return n.qchildren == 0 }
func (n *node) isTerminal() bool { return n.qchildren == terminalMark }

// winRate maps the average score to [0, 1].
func (n *node) winRate() float64 {
	if n.visits == 0 {
		return UnknownScore
	}
	return (float64(n.score)/float64(n.visits) + 1) / 2
}

func uct(score, visits int32, c, logTotal float64) float64 {
	s, v := float64(score), float64(visits)
	if visits == 0 {
		s, v = unvisitedScore, 1
	}
	return s/v + c*math.Sqrt(logTotal/v)
}

// outcome is the result when side has to move and cannot.
func outcome(side game.Side) int32 {
	if side == game.X {
		return OWin
	}
	return XWin
}
