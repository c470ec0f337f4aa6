package warehouse

import "errors"

var (
	ErrDuplicateZoneID     = errors.New("duplicate zone id")
	ErrDuplicateNodeID     = errors.New("duplicate node id")
	ErrDuplicateEdgeID     = errors.New("duplicate edge id")
	ErrUnknownEndpoint     = errors.New("edge endpoint references unknown node")
	ErrInvalidDimension    = errors.New("dimension must be positive")
	ErrNegativeCoordinate  = errors.New("coordinate must be non-negative")
	ErrNonPositiveDistance = errors.New("edge distance must be positive")
	ErrInvalidEnum         = errors.New("unknown enum value")
)
