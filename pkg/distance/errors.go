package distance

import "errors"

var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrInvalidEdge   = errors.New("edge distance must be positive and finite")
	ErrTooManyNodes  = errors.New("node count exceeds limit")
)
