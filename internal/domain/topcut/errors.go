package topcut

import "errors"

// Sentinel error kinds for cut selection.
var (
	ErrCutTooSmall = errors.New("cut too small")
	ErrCutTooLarge = errors.New("cut larger than table")
)
