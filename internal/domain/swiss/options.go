package swiss

// defaultStepBudget bounds the backtracking search per score group.
// An aborted group degrades to the greedy leftover pass instead of
// failing the call.
const defaultStepBudget = 2000

// Option applies a configuration option to pairing generation.
type Option func(*generator)

// WithStepBudget sets the backtracking step budget per score group.
// Non-positive values are ignored.
func WithStepBudget(budget int) Option {
	return func(g *generator) {
		if budget > 0 {
			g.budget = budget
		}
	}
}

// WithEventSeed sets the seed for the deterministic hash used in
// candidate ordering and final pairing order. It should match the seed
// given to the standings computation.
func WithEventSeed(seed string) Option {
	return func(g *generator) {
		g.eventSeed = seed
	}
}

// WithPriorDownfloats supplies the downfloat counters accumulated over
// previous rounds, as returned in a prior call's DownfloatCounts.
// Candidate ordering penalizes competitors that have floated before.
func WithPriorDownfloats(counts map[string]int) Option {
	return func(g *generator) {
		for id, n := range counts {
			if n > 0 {
				g.downfloats[id] = n
			}
		}
	}
}
