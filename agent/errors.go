package agent

import (
	"viruswar/arena"
	"viruswar/game"
)

// Errors returned by AIs. Test them with errors.Is.
var (
	ErrInvalidArgument = game.ErrInvalidArgument
	ErrInvalidMove     = game.ErrInvalidMove
	ErrNoLegalMove     = game.ErrNoLegalMove
	ErrOutOfMemory     = arena.ErrOutOfMemory
)
