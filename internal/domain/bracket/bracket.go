// Package bracket builds and advances single-elimination trees. The
// tree is static: seeds are placed with the standard fold-and-mirror
// order, winners are routed to a fixed parent slot, and the finish
// order is derived from elimination depth. No search is involved.
package bracket

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

// MatchStatus tracks a single bracket match.
type MatchStatus string

const (
	MatchPending  MatchStatus = "PENDING"
	MatchComplete MatchStatus = "COMPLETE"
)

// Match is one node of the elimination tree. SlotA/SlotB are empty
// until a competitor is seeded or routed in.
type Match struct {
	ID     uuid.UUID
	Round  int // 1-based, 1 is the first round
	Order  int // 1-based within the round
	SlotA  string
	SlotB  string
	Winner string
	Status MatchStatus

	NextMatchID *uuid.UUID
	NextSlot    int // 1 or 2
}

// Finish is one line of the elimination finish order.
type Finish struct {
	Rank         int
	CompetitorID string
	// Depth is the round the competitor was eliminated in; the
	// champion's depth is one past the final round.
	Depth int
}

// Bracket is a seeded single-elimination tournament in progress.
type Bracket struct {
	matches map[uuid.UUID]*Match
	byRound [][]*Match // byRound[r-1], ordered by Order
	rounds  int
	entries []string
}

// nearestBracketSize returns the number of slots: the next power of two
// at or above count.
func nearestBracketSize(count int) int {
	if count <= 0 {
		return 0
	}
	return 1 << int(math.Ceil(math.Log2(float64(count))))
}

// seedOrder produces the slot order for the first round so that seed 1
// meets seed N, and the top seeds cannot meet before the last rounds.
func seedOrder(size int) []int {
	order := []int{0}
	for len(order) < size {
		doubled := len(order) * 2
		next := make([]int, 0, doubled)
		for _, s := range order {
			next = append(next, s, doubled-1-s)
		}
		order = next
	}
	return order
}

// New builds the bracket for the given seed list (best seed first).
// Seats beyond the entry count are byes; their opponents advance past
// round one immediately.
func New(seeds []string) (*Bracket, error) {
	if len(seeds) < 2 {
		return nil, fmt.Errorf("%w: %d entrants", ErrTooFewEntrants, len(seeds))
	}
	seen := make(map[string]bool, len(seeds))
	for _, id := range seeds {
		if id == "" {
			return nil, fmt.Errorf("%w: empty entrant id", ErrTooFewEntrants)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s seeded twice", ErrDuplicateEntrant, id)
		}
		seen[id] = true
	}

	size := nearestBracketSize(len(seeds))
	rounds := int(math.Log2(float64(size)))
	b := &Bracket{
		matches: make(map[uuid.UUID]*Match),
		byRound: make([][]*Match, rounds),
		rounds:  rounds,
		entries: append([]string(nil), seeds...),
	}

	// Build from the final backwards so each match can point at its
	// already-created parent.
	for r := rounds; r >= 1; r-- {
		count := 1 << (rounds - r)
		b.byRound[r-1] = make([]*Match, count)
		for i := 0; i < count; i++ {
			m := &Match{ID: uuid.New(), Round: r, Order: i + 1, Status: MatchPending}
			if r < rounds {
				parent := b.byRound[r][i/2]
				m.NextMatchID = &parent.ID
				m.NextSlot = 1 + i%2
			}
			b.matches[m.ID] = m
			b.byRound[r-1][i] = m
		}
	}

	// Seat the first round and advance past byes.
	order := seedOrder(size)
	for i := 0; i < size; i += 2 {
		m := b.byRound[0][i/2]
		if order[i] < len(seeds) {
			m.SlotA = seeds[order[i]]
		}
		if order[i+1] < len(seeds) {
			m.SlotB = seeds[order[i+1]]
		}
		if m.SlotA != "" && m.SlotB == "" {
			b.advance(m, m.SlotA)
		} else if m.SlotB != "" && m.SlotA == "" {
			b.advance(m, m.SlotB)
		}
	}
	return b, nil
}

// advance marks the match complete and routes the winner to the parent
// slot.
func (b *Bracket) advance(m *Match, winner string) {
	m.Winner = winner
	m.Status = MatchComplete
	if m.NextMatchID == nil {
		return
	}
	parent := b.matches[*m.NextMatchID]
	if m.NextSlot == 1 {
		parent.SlotA = winner
	} else {
		parent.SlotB = winner
	}
}

// Rounds returns the number of rounds in the bracket.
func (b *Bracket) Rounds() int { return b.rounds }

// Match returns the match with the given id.
func (b *Bracket) Match(id uuid.UUID) (Match, bool) {
	m, ok := b.matches[id]
	if !ok {
		return Match{}, false
	}
	return *m, true
}

// RoundMatches returns copies of the matches of a 1-based round, in
// bracket order.
func (b *Bracket) RoundMatches(round int) []Match {
	if round < 1 || round > b.rounds {
		return nil
	}
	out := make([]Match, 0, len(b.byRound[round-1]))
	for _, m := range b.byRound[round-1] {
		out = append(out, *m)
	}
	return out
}

// ReportWinner completes a match and routes the winner forward.
func (b *Bracket) ReportWinner(matchID uuid.UUID, winnerID string) error {
	m, ok := b.matches[matchID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
	}
	if m.Status == MatchComplete {
		return fmt.Errorf("%w: match %s", ErrMatchComplete, matchID)
	}
	if m.SlotA == "" || m.SlotB == "" {
		return fmt.Errorf("%w: match %s is not fully seated", ErrMatchNotReady, matchID)
	}
	if winnerID != m.SlotA && winnerID != m.SlotB {
		return fmt.Errorf("%w: %s is not in match %s", ErrNotInMatch, winnerID, matchID)
	}
	b.advance(m, winnerID)
	return nil
}

// ReportUnresolved completes a match without a winner. Both sides keep
// the depth of the round they reached; nobody advances. Intended for a
// final both sides of which were recorded as losses.
func (b *Bracket) ReportUnresolved(matchID uuid.UUID) error {
	m, ok := b.matches[matchID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
	}
	if m.Status == MatchComplete {
		return fmt.Errorf("%w: match %s", ErrMatchComplete, matchID)
	}
	if m.SlotA == "" || m.SlotB == "" {
		return fmt.Errorf("%w: match %s is not fully seated", ErrMatchNotReady, matchID)
	}
	m.Status = MatchComplete
	return nil
}

// Champion returns the winner of the final, if decided.
func (b *Bracket) Champion() (string, bool) {
	final := b.byRound[b.rounds-1][0]
	if final.Status == MatchComplete && final.Winner != "" {
		return final.Winner, true
	}
	return "", false
}

// depths computes each entrant's elimination depth: the highest round
// it was seated in, plus one for the champion.
func (b *Bracket) depths() map[string]int {
	depth := make(map[string]int, len(b.entries))
	for r := 1; r <= b.rounds; r++ {
		for _, m := range b.byRound[r-1] {
			if m.SlotA != "" {
				depth[m.SlotA] = r
			}
			if m.SlotB != "" {
				depth[m.SlotB] = r
			}
		}
	}
	if champ, ok := b.Champion(); ok {
		depth[champ] = b.rounds + 1
	}
	return depth
}

// Standings ranks entrants by elimination depth, deepest first. Within
// a depth the supplied seeding map (lower is better) breaks the tie,
// then the id. An unresolved final produces two finalists at the final
// depth and no champion.
func (b *Bracket) Standings(seeding map[string]int) []Finish {
	depth := b.depths()
	out := make([]Finish, 0, len(b.entries))
	for _, id := range b.entries {
		out = append(out, Finish{CompetitorID: id, Depth: depth[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth > out[j].Depth
		}
		si, iok := seeding[out[i].CompetitorID]
		sj, jok := seeding[out[j].CompetitorID]
		if iok && jok && si != sj {
			return si < sj
		}
		if iok != jok {
			return iok
		}
		return out[i].CompetitorID < out[j].CompetitorID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Outcomes exports the completed matches as ledger records: a mirrored
// win/loss pair per decided match, a double loss for an unresolved one,
// and a bye record per first-round auto-advance.
func (b *Bracket) Outcomes() []outcome.MatchOutcome {
	var records []outcome.MatchOutcome
	for r := 1; r <= b.rounds; r++ {
		for _, m := range b.byRound[r-1] {
			if m.Status != MatchComplete {
				continue
			}
			if m.SlotA == "" || m.SlotB == "" {
				seated := m.SlotA
				if seated == "" {
					seated = m.SlotB
				}
				records = append(records, outcome.MatchOutcome{
					Round: m.Round, CompetitorID: seated, Result: outcome.Bye,
				})
				continue
			}
			resA, resB := outcome.Loss, outcome.Loss
			switch m.Winner {
			case m.SlotA:
				resA, resB = outcome.Win, outcome.Loss
			case m.SlotB:
				resA, resB = outcome.Loss, outcome.Win
			}
			records = append(records,
				outcome.MatchOutcome{Round: m.Round, CompetitorID: m.SlotA, OpponentID: m.SlotB, Result: resA},
				outcome.MatchOutcome{Round: m.Round, CompetitorID: m.SlotB, OpponentID: m.SlotA, Result: resB},
			)
		}
	}
	return records
}
