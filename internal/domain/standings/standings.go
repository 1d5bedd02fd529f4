// Package standings computes ranked tournament tables from a match
// ledger: match points, the percentage tie-break chain, Sonneborn-Berger
// and a deterministic seeded-hash fallback that guarantees a strict
// total order.
package standings

import (
	"sort"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

// Row is one line of the ranked table. Rows are pure output, rebuilt
// from scratch on every computation.
type Row struct {
	Rank         int     `json:"rank"`
	CompetitorID string  `json:"competitor_id"`
	MatchPoints  int     `json:"match_points"`
	MatchWinRate float64 `json:"match_win_rate"`
	OppMatchWin  float64 `json:"opp_match_win_rate"`
	GameWinRate  float64 `json:"game_win_rate"`
	OppGameWin   float64 `json:"opp_game_win_rate"`
	Sonneborn    float64 `json:"sonneborn_berger"`

	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Draws        int `json:"draws"`
	Byes         int `json:"byes"`
	RoundsPlayed int `json:"rounds_played"`
	GameWins     int `json:"game_wins"`
	GameLosses   int `json:"game_losses"`
	GameDraws    int `json:"game_draws"`
	Penalties    int `json:"penalties"`

	Opponents []string `json:"opponents"`
	Retired   bool     `json:"retired,omitempty"`
}

type computer struct {
	winPoints      int
	drawPoints     int
	lossPoints     int
	byePoints      int
	floor          float64
	virtualBye     bool
	virtualByeRate float64
	headToHead     bool
	eventSeed      string
	retired        map[string]bool

	ledger *outcome.Ledger
}

// Compute builds the ranked table for every competitor in the ledger.
// The result is deterministic given identical inputs and event seed and
// assigns each competitor a unique rank 1..N.
func Compute(ledger *outcome.Ledger, opts ...Option) []Row {
	c := &computer{
		winPoints:      defaultWinPoints,
		drawPoints:     defaultDrawPoints,
		lossPoints:     defaultLossPoints,
		byePoints:      defaultByePoints,
		floor:          defaultTieBreakFloor,
		virtualByeRate: defaultVirtualByeRate,
		ledger:         ledger,
	}
	for _, opt := range opts {
		opt(c)
	}

	ids := ledger.Competitors()
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, c.accumulate(id))
	}
	for i := range rows {
		rows[i].OppMatchWin, rows[i].OppGameWin = c.opponentAverages(&rows[i])
		rows[i].Sonneborn = c.sonnebornBerger(&rows[i])
	}
	c.order(rows)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// points returns the match points r awards. The switch is exhaustive
// over the result enum so a new result kind fails loudly here.
func (c *computer) points(r outcome.Result) int {
	switch r {
	case outcome.Win, outcome.ForfeitWin:
		return c.winPoints
	case outcome.Draw:
		return c.drawPoints
	case outcome.Loss, outcome.ForfeitLoss:
		return c.lossPoints
	case outcome.Bye:
		return c.byePoints
	}
	return 0
}

// accumulate builds the per-competitor counters and point totals.
func (c *computer) accumulate(id string) Row {
	row := Row{CompetitorID: id, Retired: c.retired[id]}
	h, ok := c.ledger.History(id)
	if !ok {
		return row
	}
	for _, o := range h.Rounds {
		row.MatchPoints += c.points(o.Result)
		switch o.Result {
		case outcome.Win, outcome.ForfeitWin:
			row.Wins++
		case outcome.Loss, outcome.ForfeitLoss:
			row.Losses++
		case outcome.Draw:
			row.Draws++
		case outcome.Bye:
			row.Byes++
		}
		row.GameWins += o.GameWins
		row.GameLosses += o.GameLosses
		row.GameDraws += o.GameDraws
		row.Penalties += o.Penalties
	}
	row.RoundsPlayed = len(h.Rounds)
	row.Opponents = append([]string(nil), h.Opponents...)
	row.MatchWinRate = c.matchRate(h, "")
	row.GameWinRate = c.gameRate(h, "")
	return row
}

// matchRate computes a competitor's match-win rate, optionally
// excluding its meetings with exclude. The exclusion is what keeps an
// opponent's tie-break contribution independent of the games it played
// against the very competitor being scored.
func (c *computer) matchRate(h *outcome.History, exclude string) float64 {
	points, rounds := 0, 0
	for _, o := range h.Rounds {
		if exclude != "" && o.OpponentID == exclude {
			continue
		}
		points += c.points(o.Result)
		rounds++
	}
	if rounds == 0 || c.winPoints == 0 {
		return 0
	}
	return float64(points) / float64(c.winPoints*rounds)
}

// gameRate computes a competitor's game-win rate (draws count half),
// optionally excluding its meetings with exclude.
func (c *computer) gameRate(h *outcome.History, exclude string) float64 {
	var won, total float64
	for _, o := range h.Rounds {
		if exclude != "" && o.OpponentID == exclude {
			continue
		}
		won += float64(o.GameWins) + float64(o.GameDraws)/2
		total += float64(o.GameWins + o.GameLosses + o.GameDraws)
	}
	if total == 0 {
		return 0
	}
	return won / total
}

// opponentAverages computes OMW% and OGW%: the mean of each faced
// opponent's own rates, each floored, plus one synthetic entry per
// received bye when the virtual-bye option is on.
func (c *computer) opponentAverages(row *Row) (omw, ogw float64) {
	var matchSum, gameSum float64
	n := 0
	for _, oppID := range row.Opponents {
		oh, ok := c.ledger.History(oppID)
		if !ok {
			continue
		}
		matchSum += clampFloor(c.matchRate(oh, row.CompetitorID), c.floor)
		gameSum += clampFloor(c.gameRate(oh, row.CompetitorID), c.floor)
		n++
	}
	if c.virtualBye {
		rate := clampFloor(c.virtualByeRate, c.floor)
		for i := 0; i < row.Byes; i++ {
			matchSum += rate
			gameSum += rate
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return matchSum / float64(n), gameSum / float64(n)
}

// sonnebornBerger weights the fraction of points earned against each
// distinct opponent by that opponent's total match points.
func (c *computer) sonnebornBerger(row *Row) float64 {
	h, ok := c.ledger.History(row.CompetitorID)
	if !ok || c.winPoints == 0 {
		return 0
	}
	earned := make(map[string]int)
	meetings := make(map[string]int)
	for _, o := range h.Rounds {
		if o.Result == outcome.Bye {
			continue
		}
		earned[o.OpponentID] += c.points(o.Result)
		meetings[o.OpponentID]++
	}
	var sb float64
	for oppID, met := range meetings {
		oh, ok := c.ledger.History(oppID)
		if !ok {
			continue
		}
		oppPoints := 0
		for _, o := range oh.Rounds {
			oppPoints += c.points(o.Result)
		}
		frac := float64(earned[oppID]) / float64(c.winPoints*met)
		sb += frac * float64(oppPoints)
	}
	return sb
}

func clampFloor(rate, floor float64) float64 {
	if rate < floor {
		return floor
	}
	return rate
}

// order sorts rows into their final total order and applies the
// head-to-head override for two-way match point ties when enabled.
func (c *computer) order(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return c.less(&rows[i], &rows[j]) })
	if c.headToHead {
		c.applyHeadToHead(rows)
	}
}

func (c *computer) less(a, b *Row) bool {
	if a.MatchPoints != b.MatchPoints {
		return a.MatchPoints > b.MatchPoints
	}
	if a.OppMatchWin != b.OppMatchWin {
		return a.OppMatchWin > b.OppMatchWin
	}
	if a.GameWinRate != b.GameWinRate {
		return a.GameWinRate > b.GameWinRate
	}
	if a.OppGameWin != b.OppGameWin {
		return a.OppGameWin > b.OppGameWin
	}
	if a.Sonneborn != b.Sonneborn {
		return a.Sonneborn > b.Sonneborn
	}
	ha := EventHash(c.eventSeed, a.CompetitorID)
	hb := EventHash(c.eventSeed, b.CompetitorID)
	if ha != hb {
		return ha > hb
	}
	return a.CompetitorID < b.CompetitorID
}

// applyHeadToHead swaps the members of any exactly-two-competitor match
// point group whose direct result contradicts the computed order. Groups
// of three or more keep the percentage chain untouched.
func (c *computer) applyHeadToHead(rows []Row) {
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].MatchPoints == rows[start].MatchPoints {
			end++
		}
		if end-start == 2 {
			if c.directWinner(rows[start+1].CompetitorID, rows[start].CompetitorID) {
				rows[start], rows[start+1] = rows[start+1], rows[start]
			}
		}
		start = end
	}
}

// directWinner reports whether a beat b more often than b beat a across
// their meetings.
func (c *computer) directWinner(a, b string) bool {
	h, ok := c.ledger.History(a)
	if !ok {
		return false
	}
	net := 0
	for _, o := range h.Rounds {
		if o.OpponentID != b {
			continue
		}
		switch o.Result {
		case outcome.Win, outcome.ForfeitWin:
			net++
		case outcome.Loss, outcome.ForfeitLoss:
			net--
		case outcome.Draw, outcome.Bye:
		}
	}
	return net > 0
}
