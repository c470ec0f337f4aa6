package geometry

import "errors"

var (
	ErrInvalidSpeed        = errors.New("speed must be positive")
	ErrInvalidAcceleration = errors.New("acceleration must be positive")
	ErrNegativeDistance    = errors.New("distance must be non-negative")
	ErrNegativeTurns       = errors.New("turn count must be non-negative")
)
