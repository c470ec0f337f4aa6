package navgraph

import "errors"

var (
	ErrInvalidSpacing  = errors.New("grid spacing must be positive")
	ErrInvalidGeometry = errors.New("floor extent must be positive")
	ErrGridTooLarge    = errors.New("grid exceeds node limit")
	ErrInvalidLayout   = errors.New("invalid reference layout")
)
