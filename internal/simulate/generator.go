package simulate

import (
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
	"github.com/vssouza/rankings-core/internal/domain/standings"
	"github.com/vssouza/rankings-core/internal/domain/swiss"
)

// gamesPerMatch is the best-of length simulated results use.
const gamesPerMatch = 3

// generateRoster creates a pool of unique competitor ids.
func generateRoster(size int) []string {
	roster := make([]string, size)
	for i := range roster {
		roster[i] = uuid.New().String()
	}
	return roster
}

// resultRand builds a deterministic source for one tournament round, so
// re-running a simulation with the same seed replays the same event.
func resultRand(seed, tournamentID string, round int) *rand.Rand {
	h := standings.EventHash(seed, tournamentID, strconv.Itoa(round))
	return rand.New(rand.NewSource(int64(h))) //nolint:gosec // deterministic seed for reproducible simulation
}

// playRound turns a pairing list into mirrored outcome records with
// random winners and game tallies, plus the bye record.
func playRound(rng *rand.Rand, round int, res swiss.Result) []outcome.MatchOutcome {
	var records []outcome.MatchOutcome
	for _, p := range res.Pairings {
		aWins := rng.Intn(gamesPerMatch + 1)
		bWins := gamesPerMatch - aWins
		resA, resB := outcome.Win, outcome.Loss
		if bWins > aWins {
			resA, resB = outcome.Loss, outcome.Win
		}
		records = append(records,
			outcome.MatchOutcome{
				Round: round, CompetitorID: p.A, OpponentID: p.B, Result: resA,
				GameWins: aWins, GameLosses: bWins,
			},
			outcome.MatchOutcome{
				Round: round, CompetitorID: p.B, OpponentID: p.A, Result: resB,
				GameWins: bWins, GameLosses: aWins,
			},
		)
	}
	if res.Bye != "" {
		records = append(records, outcome.MatchOutcome{
			Round: round, CompetitorID: res.Bye, Result: outcome.Bye,
		})
	}
	return records
}
