package swiss

import (
	"sort"

	"github.com/vssouza/rankings-core/internal/domain/standings"
)

// matchGroup runs the backtracking search over one score group in two
// passes: the first admits only opponents that have not met, so a
// rematch-free matching is found whenever one exists; only when that
// pass fails is the search repeated with rematches allowed. It returns
// the pairs found, the members left unmatched (one for an odd-sized
// group, everyone when the step budget aborted the search), and
// whether the budget was exhausted.
func (g *generator) matchGroup(members []*competitor) ([][2]*competitor, []*competitor, bool) {
	n := len(members)
	if n < 2 {
		return nil, append([]*competitor(nil), members...), false
	}

	s := &search{
		gen:     g,
		members: members,
		used:    make([]bool, n),
		budget:  g.budget,
	}
	ok := s.run(false)
	if !ok && !s.aborted {
		// A failed pass unwinds every choice, so the same state hosts
		// the retry with rematches allowed. The step budget carries
		// over across the two passes.
		ok = s.run(true)
	}
	g.steps += s.steps
	if s.aborted {
		g.aborted++
	}
	if !ok {
		// Budget exhausted: hand the whole group to the caller.
		return nil, append([]*competitor(nil), members...), s.aborted
	}

	pairs := make([][2]*competitor, 0, len(s.pairs))
	for _, p := range s.pairs {
		pairs = append(pairs, [2]*competitor{members[p[0]], members[p[1]]})
	}
	var unmatched []*competitor
	for i, u := range s.used {
		if !u {
			unmatched = append(unmatched, members[i])
		}
	}
	return pairs, unmatched, false
}

// search owns the mutable state of one group's depth-first matching.
// Candidate sets are rebuilt per node instead of shared across
// branches, so undoing a choice is just flipping the used bits.
type search struct {
	gen     *generator
	members []*competitor
	used    []bool
	pairs   [][2]int
	steps   int
	budget  int
	aborted bool
}

// run recurses until at most one member is unmatched. With rematches
// disallowed it reports whether a rematch-free matching covers the
// group; with them allowed, clean candidates are still exhausted ahead
// of rematches at every node to keep the rematch count low.
func (s *search) run(withRematches bool) bool {
	next := -1
	remaining := 0
	for i, u := range s.used {
		if !u {
			remaining++
			if next < 0 {
				next = i
			}
		}
	}
	if remaining <= 1 {
		return true
	}

	clean, dirty := s.candidates(next)
	pools := [][]int{clean}
	if withRematches {
		pools = append(pools, dirty)
	}
	for _, pool := range pools {
		for _, j := range pool {
			s.steps++
			if s.steps > s.budget {
				s.aborted = true
				return false
			}
			s.used[next], s.used[j] = true, true
			s.pairs = append(s.pairs, [2]int{next, j})
			if s.run(withRematches) {
				return true
			}
			s.pairs = s.pairs[:len(s.pairs)-1]
			s.used[next], s.used[j] = false, false
			if s.aborted {
				return false
			}
		}
	}
	return false
}

// candidates partitions the remaining members into clean and rematch
// pools for member i, each ranked by proximity in the group ordering,
// fewest prior downfloats, and the event hash.
func (s *search) candidates(i int) (clean, dirty []int) {
	me := s.members[i]
	for j, u := range s.used {
		if u || j == i {
			continue
		}
		if me.faced[s.members[j].id] {
			dirty = append(dirty, j)
		} else {
			clean = append(clean, j)
		}
	}
	rank := func(pool []int) {
		sort.Slice(pool, func(a, b int) bool {
			ja, jb := pool[a], pool[b]
			da, db := dist(i, ja), dist(i, jb)
			if da != db {
				return da < db
			}
			fa := s.gen.downfloats[s.members[ja].id]
			fb := s.gen.downfloats[s.members[jb].id]
			if fa != fb {
				return fa < fb
			}
			ha := standings.EventHash(s.gen.eventSeed, s.members[ja].id)
			hb := standings.EventHash(s.gen.eventSeed, s.members[jb].id)
			if ha != hb {
				return ha < hb
			}
			return s.members[ja].id < s.members[jb].id
		})
	}
	rank(clean)
	rank(dirty)
	return clean, dirty
}

func dist(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
