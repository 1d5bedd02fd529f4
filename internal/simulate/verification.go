package simulate

import (
	"fmt"

	"github.com/vssouza/rankings-core/internal/domain/standings"
	"github.com/vssouza/rankings-core/internal/domain/swiss"
)

// verifyPairings checks the pairing-completeness properties for one
// round: every active competitor appears exactly once across pairings
// and bye, nobody is double-booked, and no retired competitor shows up.
func verifyPairings(active map[string]bool, res swiss.Result) error {
	seen := make(map[string]bool, len(active))
	book := func(id string) error {
		if !active[id] {
			return fmt.Errorf("inactive competitor %s in pairings", id)
		}
		if seen[id] {
			return fmt.Errorf("competitor %s booked twice", id)
		}
		seen[id] = true
		return nil
	}
	for _, p := range res.Pairings {
		if err := book(p.A); err != nil {
			return err
		}
		if err := book(p.B); err != nil {
			return err
		}
	}
	if res.Bye != "" {
		if err := book(res.Bye); err != nil {
			return err
		}
	}
	if len(seen) != len(active) {
		return fmt.Errorf("%d of %d active competitors covered", len(seen), len(active))
	}
	return nil
}

// verifyRematchAccounting checks that RematchesUsed lists exactly the
// pairings between competitors that had already met: every repeated
// meeting is reported, and no first meeting is.
func verifyRematchAccounting(met map[string]map[string]bool, res swiss.Result) error {
	reported := make(map[string]bool, len(res.RematchesUsed))
	for _, p := range res.RematchesUsed {
		reported[p.A+"|"+p.B] = true
	}
	for _, p := range res.Pairings {
		again := met[p.A][p.B]
		if again && !reported[p.A+"|"+p.B] {
			return fmt.Errorf("rematch %s vs %s not reported", p.A, p.B)
		}
		if !again && reported[p.A+"|"+p.B] {
			return fmt.Errorf("first meeting %s vs %s reported as rematch", p.A, p.B)
		}
	}
	return nil
}

// recordMeeting marks a and b as having met.
func recordMeeting(met map[string]map[string]bool, a, b string) {
	if met[a] == nil {
		met[a] = make(map[string]bool)
	}
	if met[b] == nil {
		met[b] = make(map[string]bool)
	}
	met[a][b] = true
	met[b][a] = true
}

// verifyTable checks that ranks are the strict sequence 1..N and match
// points never increase down the table.
func verifyTable(rows []standings.Row) error {
	for i, row := range rows {
		if row.Rank != i+1 {
			return fmt.Errorf("row %d carries rank %d", i, row.Rank)
		}
		if i > 0 && row.MatchPoints > rows[i-1].MatchPoints {
			return fmt.Errorf("match points increase at rank %d", row.Rank)
		}
	}
	return nil
}
