// Package roundrobin generates fixed round-robin schedules with the
// circle method: position zero stays put while the rest of the circle
// rotates one slot per round. No search is involved; the schedule is a
// pure function of the entry list.
package roundrobin

import (
	"fmt"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

// ghost marks the empty slot added to odd pools; its partner for the
// round receives the bye.
const ghost = ""

// RoundPairings is the fixed pairing set for one round.
type RoundPairings struct {
	Round    int         `json:"round"`
	Pairings [][2]string `json:"pairings"`
	Bye      string      `json:"bye,omitempty"`
}

// ByeRecord returns the bye as a ledger record, nil when the round has
// none.
func (rp RoundPairings) ByeRecord() *outcome.MatchOutcome {
	if rp.Bye == "" {
		return nil
	}
	return &outcome.MatchOutcome{
		Round:        rp.Round,
		CompetitorID: rp.Bye,
		Result:       outcome.Bye,
	}
}

// Rounds returns the number of rounds a full schedule for n entrants
// takes: n-1 for even pools, n for odd ones.
func Rounds(n int) int {
	if n < 2 {
		return 0
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

// Schedule generates the complete schedule. Every entrant meets every
// other exactly once; odd pools hand out exactly one bye per round.
func Schedule(ids []string) []RoundPairings {
	total := Rounds(len(ids))
	out := make([]RoundPairings, 0, total)
	for r := 1; r <= total; r++ {
		rp, _ := Round(ids, r)
		out = append(out, rp)
	}
	return out
}

// Round generates the pairing set for one 1-based round index.
func Round(ids []string, round int) (RoundPairings, error) {
	total := Rounds(len(ids))
	if round < 1 || round > total {
		return RoundPairings{}, fmt.Errorf("%w: round %d of %d", ErrRoundOutOfRange, round, total)
	}

	circle := append([]string(nil), ids...)
	if len(circle)%2 == 1 {
		circle = append(circle, ghost)
	}
	m := len(circle)

	// Rotate all but the first slot (round-1) steps.
	for i := 0; i < round-1; i++ {
		last := circle[m-1]
		copy(circle[2:], circle[1:m-1])
		circle[1] = last
	}

	rp := RoundPairings{Round: round}
	for i := 0; i < m/2; i++ {
		a, b := circle[i], circle[m-1-i]
		switch {
		case a == ghost:
			rp.Bye = b
		case b == ghost:
			rp.Bye = a
		default:
			rp.Pairings = append(rp.Pairings, [2]string{a, b})
		}
	}
	return rp, nil
}
