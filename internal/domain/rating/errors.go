package rating

import "errors"

// ErrInvalidResult reports a structurally invalid game result.
var ErrInvalidResult = errors.New("invalid game result")
