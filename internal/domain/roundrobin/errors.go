package roundrobin

import "errors"

// ErrRoundOutOfRange reports a round index outside the schedule.
var ErrRoundOutOfRange = errors.New("round out of schedule range")
