// Package topcut derives elimination-stage seed lists from a final
// Swiss table and merges the elimination finish back over it. The Swiss
// tie-break order is the stable fallback wherever the cut does not
// decide.
package topcut

import (
	"fmt"
	"sort"

	"github.com/vssouza/rankings-core/internal/domain/standings"
)

// Seeds returns the ids of the top n rows in standings order, best
// first, for seeding a subsequent elimination stage.
func Seeds(rows []standings.Row, n int) ([]string, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: cut of %d", ErrCutTooSmall, n)
	}
	if n > len(rows) {
		return nil, fmt.Errorf("%w: cut of %d from a table of %d", ErrCutTooLarge, n, len(rows))
	}
	seeds := make([]string, 0, n)
	for _, row := range rows[:n] {
		seeds = append(seeds, row.CompetitorID)
	}
	return seeds, nil
}

// Merge re-orders the Swiss table by the elimination finish: inside the
// cut a greater elimination depth wins, equal depths and everyone
// outside the cut keep their Swiss order. Ranks are reassigned 1..N;
// the input rows are not mutated.
func Merge(rows []standings.Row, finishDepth map[string]int) []standings.Row {
	merged := append([]standings.Row(nil), rows...)
	sort.SliceStable(merged, func(i, j int) bool {
		di, iok := finishDepth[merged[i].CompetitorID]
		dj, jok := finishDepth[merged[j].CompetitorID]
		if iok && jok {
			return di > dj
		}
		// A competitor in the cut always finishes ahead of one
		// outside it; among the rest the Swiss order stands.
		return iok && !jok
	})
	for i := range merged {
		merged[i].Rank = i + 1
	}
	return merged
}
