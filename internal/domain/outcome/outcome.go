// Package outcome contains the reported match records and the ledger
// that normalizes them into per-competitor histories. The ledger is the
// shared input of every standings variant and of the Swiss pairing
// generator.
package outcome

import (
	"fmt"
)

// Result is the closed set of reportable match results.
type Result string

// Reportable results. Forfeit variants score like their plain
// counterparts but are kept distinct for audit purposes.
const (
	Win         Result = "WIN"
	Loss        Result = "LOSS"
	Draw        Result = "DRAW"
	Bye         Result = "BYE"
	ForfeitWin  Result = "FORFEIT_WIN"
	ForfeitLoss Result = "FORFEIT_LOSS"
)

// Valid reports whether r is one of the known results.
func (r Result) Valid() bool {
	switch r {
	case Win, Loss, Draw, Bye, ForfeitWin, ForfeitLoss:
		return true
	}
	return false
}

// Mirror returns the result the opposite side of the pairing must
// carry. Bye has no opposite side and maps to itself.
func (r Result) Mirror() Result {
	switch r {
	case Win:
		return Loss
	case Loss:
		return Win
	case Draw:
		return Draw
	case ForfeitWin:
		return ForfeitLoss
	case ForfeitLoss:
		return ForfeitWin
	case Bye:
		return Bye
	}
	return r
}

// MatchOutcome is an immutable record of one competitor's result in one
// round. Outcomes are reported in mirrored pairs (one record per side)
// unless single-sided ingestion is enabled on the ledger.
type MatchOutcome struct {
	Round        int    `json:"round"`
	CompetitorID string `json:"competitor_id"`
	OpponentID   string `json:"opponent_id,omitempty"` // empty iff Result == Bye
	Result       Result `json:"result"`
	GameWins     int    `json:"game_wins,omitempty"`
	GameLosses   int    `json:"game_losses,omitempty"`
	GameDraws    int    `json:"game_draws,omitempty"`
	Penalties    int    `json:"penalties,omitempty"`
}

// Validate checks the structural invariants of a single record.
func (o MatchOutcome) Validate() error {
	if o.CompetitorID == "" {
		return fmt.Errorf("%w: missing competitor id", ErrMalformedOutcome)
	}
	if o.Round < 1 {
		return fmt.Errorf("%w: competitor %s: round %d < 1", ErrMalformedOutcome, o.CompetitorID, o.Round)
	}
	if !o.Result.Valid() {
		return fmt.Errorf("%w: competitor %s round %d: unknown result %q", ErrMalformedOutcome, o.CompetitorID, o.Round, o.Result)
	}
	if o.Result == Bye && o.OpponentID != "" {
		return fmt.Errorf("%w: competitor %s round %d: bye with opponent %s", ErrMalformedOutcome, o.CompetitorID, o.Round, o.OpponentID)
	}
	if o.Result != Bye && o.OpponentID == "" {
		return fmt.Errorf("%w: competitor %s round %d: result %s without opponent", ErrMalformedOutcome, o.CompetitorID, o.Round, o.Result)
	}
	if o.OpponentID == o.CompetitorID {
		return fmt.Errorf("%w: competitor %s round %d: self-pairing", ErrMalformedOutcome, o.CompetitorID, o.Round)
	}
	if o.GameWins < 0 || o.GameLosses < 0 || o.GameDraws < 0 || o.Penalties < 0 {
		return fmt.Errorf("%w: competitor %s round %d: negative tally", ErrMalformedOutcome, o.CompetitorID, o.Round)
	}
	return nil
}

// mirrored returns the synthetic opposite-side record for o: swapped
// ids, mirrored result, swapped game tallies. Penalties never transfer.
func (o MatchOutcome) mirrored() MatchOutcome {
	return MatchOutcome{
		Round:        o.Round,
		CompetitorID: o.OpponentID,
		OpponentID:   o.CompetitorID,
		Result:       o.Result.Mirror(),
		GameWins:     o.GameLosses,
		GameLosses:   o.GameWins,
		GameDraws:    o.GameDraws,
	}
}

// lossKind reports whether r is a loss of either flavor. A pairing
// where both sides report a loss is legitimate (an intentionally
// unresolved final, or a double retirement) and must not be treated as
// a mirror conflict.
func lossKind(r Result) bool {
	return r == Loss || r == ForfeitLoss
}

// consistentWith reports whether m is a plausible mirror of o: the two
// records describe the same pairing from opposite sides with
// complementary results (or a double loss) and swapped game tallies.
func (o MatchOutcome) consistentWith(m MatchOutcome) bool {
	if o.Round != m.Round || o.OpponentID != m.CompetitorID || o.CompetitorID != m.OpponentID {
		return false
	}
	if m.Result != o.Result.Mirror() && !(lossKind(o.Result) && lossKind(m.Result)) {
		return false
	}
	return o.GameWins == m.GameLosses && o.GameLosses == m.GameWins && o.GameDraws == m.GameDraws
}
