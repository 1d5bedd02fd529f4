// Package swiss generates next-round pairings for Swiss-system events:
// score-group partitioning, backtracking matching with rematch
// avoidance, downfloating of unmatched competitors, and bye assignment.
package swiss

import (
	"sort"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
	"github.com/vssouza/rankings-core/internal/domain/standings"
)

// Pairing is one table of the next round. A is the better-placed side.
type Pairing struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Result is the output of one pairing generation. Every active
// competitor appears exactly once across Pairings and Bye.
type Result struct {
	Pairings []Pairing `json:"pairings"`
	// Bye is the competitor receiving the free round, empty when the
	// active pool is even.
	Bye string `json:"bye,omitempty"`
	// DownfloatCounts carries the accumulated downfloat counters
	// (prior counts plus this call's floats) for resupply next round.
	DownfloatCounts map[string]int `json:"downfloat_counts,omitempty"`
	// RematchesUsed lists every pairing between competitors that had
	// already met. Rematches are a last resort, never an error.
	RematchesUsed []Pairing `json:"rematches_used,omitempty"`
	// SearchSteps is the total backtracking steps spent across groups.
	SearchSteps int `json:"search_steps"`
	// GroupsAborted counts score groups whose search hit the step
	// budget and degraded to the greedy pass.
	GroupsAborted int `json:"groups_aborted,omitempty"`
	// GreedyPairs counts pairs produced by the leftover pass.
	GreedyPairs int `json:"greedy_pairs,omitempty"`
}

// competitor is the generator's working view of one active entrant.
type competitor struct {
	id     string
	pos    int // standings position, 0-based
	points int
	faced  map[string]bool
	hadBye bool
}

type generator struct {
	budget     int
	eventSeed  string
	downfloats map[string]int

	steps   int // accumulated across groups, for telemetry
	aborted int
}

// Generate computes the next round's pairings from the current ranked
// table and the match ledger. Retired competitors are dropped from the
// pool entirely. The call never fails: degenerate groups fall through
// to a greedy leftover pass so every active competitor is either paired
// or given the bye.
func Generate(rows []standings.Row, ledger *outcome.Ledger, opts ...Option) Result {
	g := &generator{
		budget:     defaultStepBudget,
		downfloats: make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}

	pool := g.buildPool(rows, ledger)

	res := Result{DownfloatCounts: g.downfloats}
	if len(pool) == 0 {
		return res
	}
	if len(pool)%2 == 1 {
		byeIdx := g.pickBye(pool)
		res.Bye = pool[byeIdx].id
		pool = append(pool[:byeIdx], pool[byeIdx+1:]...)
	}

	groups := partition(pool)

	var pairs [][2]*competitor
	var leftovers []*competitor
	for gi := 0; gi < len(groups); gi++ {
		members := groups[gi]
		if len(members) == 0 {
			continue
		}
		matched, unmatched, aborted := g.matchGroup(members)
		pairs = append(pairs, matched...)
		if aborted {
			// Budget exhausted: the whole group degrades to the
			// greedy pass rather than cascading downfloats.
			leftovers = append(leftovers, unmatched...)
			continue
		}
		if len(unmatched) == 0 {
			continue
		}
		for _, u := range unmatched {
			g.downfloats[u.id]++
		}
		if gi+1 < len(groups) {
			groups[gi+1] = mergeByPos(groups[gi+1], unmatched)
		} else if len(unmatched) > 1 {
			// Terminal group of floaters with nobody below them.
			groups = append(groups, mergeByPos(nil, unmatched))
		} else {
			leftovers = append(leftovers, unmatched...)
		}
	}

	greedy := g.greedyPair(leftovers)
	pairs = append(pairs, greedy...)

	res.SearchSteps = g.steps
	res.GroupsAborted = g.aborted
	res.GreedyPairs = len(greedy)

	g.orderPairs(pairs)
	for _, p := range pairs {
		pairing := Pairing{A: p[0].id, B: p[1].id}
		res.Pairings = append(res.Pairings, pairing)
		if p[0].faced[p[1].id] {
			res.RematchesUsed = append(res.RematchesUsed, pairing)
		}
	}
	return res
}

// buildPool rebuilds the active pool from the ranked table and the
// ledger, dropping retired competitors.
func (g *generator) buildPool(rows []standings.Row, ledger *outcome.Ledger) []*competitor {
	pool := make([]*competitor, 0, len(rows))
	for i, row := range rows {
		if row.Retired {
			continue
		}
		c := &competitor{
			id:     row.CompetitorID,
			pos:    i,
			points: row.MatchPoints,
			faced:  make(map[string]bool),
		}
		if ledger != nil {
			if h, ok := ledger.History(row.CompetitorID); ok {
				for _, opp := range h.Opponents {
					c.faced[opp] = true
				}
				c.hadBye = h.ReceivedBye
			}
		}
		pool = append(pool, c)
	}
	return pool
}

// pickBye selects the bye recipient from an odd pool: the lowest-ranked
// competitor without a prior bye, else the absolute lowest-ranked.
func (g *generator) pickBye(pool []*competitor) int {
	for i := len(pool) - 1; i >= 0; i-- {
		if !pool[i].hadBye {
			return i
		}
	}
	return len(pool) - 1
}

// partition splits the rank-ordered pool into score groups, highest
// points first. Rank order implies equal points are adjacent.
func partition(pool []*competitor) [][]*competitor {
	var groups [][]*competitor
	for i := 0; i < len(pool); {
		j := i + 1
		for j < len(pool) && pool[j].points == pool[i].points {
			j++
		}
		groups = append(groups, append([]*competitor(nil), pool[i:j]...))
		i = j
	}
	return groups
}

// mergeByPos merges downfloaters into a group keeping standings order.
func mergeByPos(group, floaters []*competitor) []*competitor {
	merged := append(append([]*competitor(nil), group...), floaters...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].pos < merged[j].pos })
	return merged
}

// greedyPair pairs pathological leftovers in deterministic hash order,
// preferring non-rematch partners. Reachable only when groups aborted
// or a sole floater had no group below.
func (g *generator) greedyPair(leftovers []*competitor) [][2]*competitor {
	sort.Slice(leftovers, func(i, j int) bool {
		hi := standings.EventHash(g.eventSeed, leftovers[i].id)
		hj := standings.EventHash(g.eventSeed, leftovers[j].id)
		if hi != hj {
			return hi < hj
		}
		return leftovers[i].id < leftovers[j].id
	})
	var pairs [][2]*competitor
	used := make([]bool, len(leftovers))
	for i := range leftovers {
		if used[i] {
			continue
		}
		partner := -1
		for j := i + 1; j < len(leftovers); j++ {
			if used[j] {
				continue
			}
			if !leftovers[i].faced[leftovers[j].id] {
				partner = j
				break
			}
			if partner < 0 {
				partner = j
			}
		}
		if partner < 0 {
			continue
		}
		used[i], used[partner] = true, true
		pairs = append(pairs, [2]*competitor{leftovers[i], leftovers[partner]})
	}
	return pairs
}

// orderPairs puts each pair better-placed side first, then sorts the
// list by the better side's position, the worse side's, and the pair
// hash.
func (g *generator) orderPairs(pairs [][2]*competitor) {
	for i := range pairs {
		if pairs[i][1].pos < pairs[i][0].pos {
			pairs[i][0], pairs[i][1] = pairs[i][1], pairs[i][0]
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0].pos != pairs[j][0].pos {
			return pairs[i][0].pos < pairs[j][0].pos
		}
		if pairs[i][1].pos != pairs[j][1].pos {
			return pairs[i][1].pos < pairs[j][1].pos
		}
		hi := standings.EventHash(g.eventSeed, pairs[i][0].id, pairs[i][1].id)
		hj := standings.EventHash(g.eventSeed, pairs[j][0].id, pairs[j][1].id)
		return hi < hj
	})
}
