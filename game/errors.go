package game

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidMove     = errors.New("invalid move")
	ErrNoLegalMove     = errors.New("no legal move")
)
