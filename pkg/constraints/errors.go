package constraints

import "errors"

var (
	ErrNoWarehouse      = errors.New("site has no warehouse")
	ErrInvalidParameter = errors.New("invalid physical parameter")
)
