package outcome

// Option applies a configuration option to the ledger build.
type Option func(*builder)

// WithSingleSided enables lenient ingestion: when exactly one side of a
// pairing/round was reported, the missing mirror record is synthesized
// (opposite result, swapped game tallies). When disabled, a missing
// mirror is a consistency error.
func WithSingleSided(enabled bool) Option {
	return func(b *builder) {
		b.singleSided = enabled
	}
}
