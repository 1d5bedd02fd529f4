package validate

import "errors"

// Sentinel error kinds for request validation.
var (
	ErrInvalidOption  = errors.New("invalid option")
	ErrInvalidPairing = errors.New("invalid pairing")
)
