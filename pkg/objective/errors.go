package objective

import "errors"

var (
	ErrWeightsSum     = errors.New("objective weights must sum to 1.0")
	ErrNegativeCost   = errors.New("unit cost must be non-negative")
	ErrUnknownNode    = errors.New("path references unknown node")
	ErrUnreachableLeg = errors.New("path leg has no route")
	ErrInvalidState   = errors.New("unknown AGV state")
)
