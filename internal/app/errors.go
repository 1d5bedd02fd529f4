package app

import "errors"

// ErrRosterTooSmall reports a roster that cannot host a round.
var ErrRosterTooSmall = errors.New("roster too small")
