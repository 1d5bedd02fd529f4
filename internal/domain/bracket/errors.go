package bracket

import "errors"

// Sentinel error kinds for bracket construction and advancement.
var (
	ErrTooFewEntrants   = errors.New("too few entrants")
	ErrDuplicateEntrant = errors.New("duplicate entrant")
	ErrUnknownMatch     = errors.New("unknown match")
	ErrMatchComplete    = errors.New("match already complete")
	ErrMatchNotReady    = errors.New("match not ready")
	ErrNotInMatch       = errors.New("competitor not in match")
)
