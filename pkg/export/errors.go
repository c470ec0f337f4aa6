package export

import "errors"

var (
	ErrCorruptBlock  = errors.New("corrupt compressed export block")
	ErrChecksum      = errors.New("compressed export checksum mismatch")
	ErrUnknownFormat = errors.New("unknown distance matrix format")
	ErrNilConversion = errors.New("nothing to export")
)
