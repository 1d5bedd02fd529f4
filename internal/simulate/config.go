package simulate

// Default simulation parameters.
const (
	defaultTournaments = 4
	defaultPoolSize    = 16
	defaultRounds      = 5
	defaultWorkers     = 4
)

// Config controls one simulation run.
type Config struct {
	// Tournaments is the number of independent events to simulate.
	Tournaments int
	// PoolSize is the number of competitors per event.
	PoolSize int
	// Rounds is the number of Swiss rounds per event.
	Rounds int
	// Workers bounds how many events run concurrently.
	Workers int
	// Seed keys both the engines' deterministic hash and the random
	// results, so a run is reproducible end to end.
	Seed string
	// RetireEvery retires one competitor after this many rounds; zero
	// disables retirement.
	RetireEvery int
	// Verbose prints the final table of every event.
	Verbose bool
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Tournaments <= 0 {
		c.Tournaments = defaultTournaments
	}
	if c.PoolSize < 2 {
		c.PoolSize = defaultPoolSize
	}
	if c.Rounds <= 0 {
		c.Rounds = defaultRounds
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.Seed == "" {
		c.Seed = "simulate"
	}
	return c
}
