package outcome

import (
	"fmt"
	"sort"
)

// History is one competitor's normalized view of the ledger: its
// records in round order, the opponents it faced (byes excluded), and
// whether it has already received a bye.
type History struct {
	CompetitorID string
	Rounds       []MatchOutcome
	Opponents    []string
	ReceivedBye  bool
}

// Faced reports whether the competitor has already played id.
func (h *History) Faced(id string) bool {
	for _, opp := range h.Opponents {
		if opp == id {
			return true
		}
	}
	return false
}

// Ledger holds the normalized per-competitor histories built from a
// flat list of reported outcomes. It is rebuilt from scratch on every
// call; nothing persists between builds.
type Ledger struct {
	histories map[string]*History
	ids       []string
}

type builder struct {
	singleSided bool
}

// pairKey identifies one competitor's slot in one round.
type pairKey struct {
	competitor string
	round      int
}

// Build validates and normalizes reported outcomes into a Ledger.
//
// Structural problems (missing fields, bye/opponent mismatch,
// self-pairing, round < 1) reject the whole batch before any
// aggregation. With single-sided ingestion enabled, a missing mirror
// record is synthesized; with it disabled, both a missing mirror and a
// pair of records that disagree about the same pairing are consistency
// errors.
func Build(outcomes []MatchOutcome, opts ...Option) (*Ledger, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	for i, o := range outcomes {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	// Deduplicate per (competitor, round). A byte-equal re-report is
	// idempotent and dropped; a differing one is a conflict.
	byKey := make(map[pairKey]MatchOutcome, len(outcomes))
	order := make([]pairKey, 0, len(outcomes))
	for i, o := range outcomes {
		key := pairKey{o.CompetitorID, o.Round}
		prev, seen := byKey[key]
		if !seen {
			byKey[key] = o
			order = append(order, key)
			continue
		}
		if prev != o {
			return nil, fmt.Errorf("record %d: %w: competitor %s already has a different record for round %d",
				i, ErrConflictingRecord, o.CompetitorID, o.Round)
		}
	}

	// Cross-check mirrors, synthesizing the missing side in lenient
	// mode. Iteration follows first-report order so synthesized keys
	// land deterministically.
	for _, key := range order {
		o := byKey[key]
		if o.Result == Bye {
			continue
		}
		oppKey := pairKey{o.OpponentID, o.Round}
		mirror, present := byKey[oppKey]
		if !present {
			if !b.singleSided {
				return nil, fmt.Errorf("%w: competitor %s round %d: opponent %s reported no record (enable single-sided ingestion or supply both sides)",
					ErrMissingMirror, o.CompetitorID, o.Round, o.OpponentID)
			}
			m := o.mirrored()
			byKey[oppKey] = m
			order = append(order, oppKey)
			continue
		}
		if mirror.OpponentID != o.CompetitorID {
			return nil, fmt.Errorf("%w: competitor %s round %d: opponent %s reported playing %s that round",
				ErrConflictingRecord, o.CompetitorID, o.Round, o.OpponentID, mirror.OpponentID)
		}
		if !b.singleSided && !o.consistentWith(mirror) {
			return nil, fmt.Errorf("%w: competitors %s and %s disagree about round %d (enable single-sided ingestion or supply both sides)",
				ErrConflictingRecord, o.CompetitorID, o.OpponentID, o.Round)
		}
	}

	l := &Ledger{histories: make(map[string]*History)}
	for _, key := range order {
		o := byKey[key]
		h, ok := l.histories[o.CompetitorID]
		if !ok {
			h = &History{CompetitorID: o.CompetitorID}
			l.histories[o.CompetitorID] = h
			l.ids = append(l.ids, o.CompetitorID)
		}
		h.Rounds = append(h.Rounds, o)
	}
	for _, h := range l.histories {
		sort.SliceStable(h.Rounds, func(i, j int) bool { return h.Rounds[i].Round < h.Rounds[j].Round })
		for _, o := range h.Rounds {
			if o.Result == Bye {
				h.ReceivedBye = true
				continue
			}
			h.Opponents = append(h.Opponents, o.OpponentID)
		}
	}
	sort.Strings(l.ids)
	return l, nil
}

// Competitors returns every competitor id in the ledger, sorted.
func (l *Ledger) Competitors() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// History returns the normalized history for id.
func (l *Ledger) History(id string) (*History, bool) {
	h, ok := l.histories[id]
	return h, ok
}

// Len returns the number of competitors with at least one record.
func (l *Ledger) Len() int {
	return len(l.histories)
}
