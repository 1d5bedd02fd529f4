package standings

// Default scoring and tie-break configuration.
const (
	defaultWinPoints      = 3
	defaultDrawPoints     = 1
	defaultLossPoints     = 0
	defaultByePoints      = 3
	defaultTieBreakFloor  = 0.33
	defaultVirtualByeRate = 0.5
)

// Option applies a configuration option to the standings computation.
type Option func(*computer)

// WithPoints sets the match point values awarded for a win, draw, loss
// and bye. Negative values are ignored.
func WithPoints(win, draw, loss, bye int) Option {
	return func(c *computer) {
		if win >= 0 {
			c.winPoints = win
		}
		if draw >= 0 {
			c.drawPoints = draw
		}
		if loss >= 0 {
			c.lossPoints = loss
		}
		if bye >= 0 {
			c.byePoints = bye
		}
	}
}

// WithTieBreakFloor sets the minimum an opponent's win rate contributes
// to the opponents'-average tie-breaks. Values outside [0,1] are ignored.
func WithTieBreakFloor(floor float64) Option {
	return func(c *computer) {
		if floor >= 0 && floor <= 1 {
			c.floor = floor
		}
	}
}

// WithVirtualBye enables one synthetic opponent entry per received bye
// inside the OMW%/OGW% averages. The entry never appears in the visible
// opponent list.
func WithVirtualBye(enabled bool) Option {
	return func(c *computer) {
		c.virtualBye = enabled
	}
}

// WithVirtualByeRate sets the match/game win rate a virtual bye entry
// contributes. Values outside [0,1] are ignored.
func WithVirtualByeRate(rate float64) Option {
	return func(c *computer) {
		if rate >= 0 && rate <= 1 {
			c.virtualByeRate = rate
		}
	}
}

// WithHeadToHead enables direct-result resolution between exactly two
// competitors tied on match points.
func WithHeadToHead(enabled bool) Option {
	return func(c *computer) {
		c.headToHead = enabled
	}
}

// WithEventSeed sets the seed for the deterministic hash used as the
// final tie-break. Identical inputs and seed always produce identical
// standings.
func WithEventSeed(seed string) Option {
	return func(c *computer) {
		c.eventSeed = seed
	}
}

// WithRetired marks competitors as withdrawn. Retired competitors are
// still ranked (historical rounds stand) but carry the Retired flag so
// the pairing stage can filter them.
func WithRetired(retired map[string]bool) Option {
	return func(c *computer) {
		c.retired = retired
	}
}
