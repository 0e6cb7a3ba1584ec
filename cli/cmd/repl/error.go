package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoSignature = errors.New("no signature")
	ErrNoResult    = errors.New("nothing parsed yet")
)
