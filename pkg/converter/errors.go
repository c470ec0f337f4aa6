package converter

import "errors"

var (
	ErrNilWarehouse = errors.New("warehouse is nil")
	ErrEmptyGraph   = errors.New("navigation graph has no nodes")
)
