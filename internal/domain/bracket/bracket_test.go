package bracket_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vssouza/rankings-core/internal/domain/bracket"
	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

func seedNames(n int) []string {
	seeds := make([]string, n)
	for i := range seeds {
		seeds[i] = fmt.Sprintf("seed-%d", i+1)
	}
	return seeds
}

func seeding(seeds []string) map[string]int {
	m := make(map[string]int, len(seeds))
	for i, id := range seeds {
		m[id] = i + 1
	}
	return m
}

func TestNewSeedPlacement(t *testing.T) {
	testCases := []struct {
		name     string
		entries  int
		expected [][2]string
	}{
		{
			name:     "2 entries",
			entries:  2,
			expected: [][2]string{{"seed-1", "seed-2"}},
		},
		{
			name:     "4 entries",
			entries:  4,
			expected: [][2]string{{"seed-1", "seed-4"}, {"seed-2", "seed-3"}},
		},
		{
			name:    "8 entries",
			entries: 8,
			expected: [][2]string{
				{"seed-1", "seed-8"},
				{"seed-4", "seed-5"},
				{"seed-2", "seed-7"},
				{"seed-3", "seed-6"},
			},
		},
		{
			name:    "non-power of two (6 entries)",
			entries: 6,
			expected: [][2]string{
				{"seed-1", ""},
				{"seed-4", "seed-5"},
				{"seed-2", ""},
				{"seed-3", "seed-6"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := bracket.New(seedNames(tc.entries))
			require.NoError(t, err)

			round1 := b.RoundMatches(1)
			require.Len(t, round1, len(tc.expected))
			for i, m := range round1 {
				assert.Equal(t, tc.expected[i][0], m.SlotA, "match %d slot A", i)
				assert.Equal(t, tc.expected[i][1], m.SlotB, "match %d slot B", i)
			}
		})
	}
}

func TestNewByesAdvance(t *testing.T) {
	b, err := bracket.New(seedNames(6))
	require.NoError(t, err)

	// Seeds 1 and 2 sit out round one and must already be seated in the
	// semifinals.
	round2 := b.RoundMatches(2)
	require.Len(t, round2, 2)
	assert.Equal(t, "seed-1", round2[0].SlotA)
	assert.Equal(t, "seed-2", round2[1].SlotA)

	round1 := b.RoundMatches(1)
	assert.Equal(t, bracket.MatchComplete, round1[0].Status)
	assert.Equal(t, "seed-1", round1[0].Winner)
}

func TestNewRejectsBadSeeds(t *testing.T) {
	_, err := bracket.New([]string{"solo"})
	assert.ErrorIs(t, err, bracket.ErrTooFewEntrants)

	_, err = bracket.New([]string{"ada", "ada"})
	assert.ErrorIs(t, err, bracket.ErrDuplicateEntrant)

	_, err = bracket.New([]string{"ada", ""})
	assert.ErrorIs(t, err, bracket.ErrTooFewEntrants)
}

func TestReportWinnerToChampion(t *testing.T) {
	seeds := seedNames(4)
	b, err := bracket.New(seeds)
	require.NoError(t, err)
	require.Equal(t, 2, b.Rounds())

	_, decided := b.Champion()
	assert.False(t, decided)

	// Favorites win the semifinals.
	for _, m := range b.RoundMatches(1) {
		require.NoError(t, b.ReportWinner(m.ID, m.SlotA))
	}

	final := b.RoundMatches(2)[0]
	assert.Equal(t, "seed-1", final.SlotA)
	assert.Equal(t, "seed-2", final.SlotB)

	// Upset in the final.
	require.NoError(t, b.ReportWinner(final.ID, "seed-2"))

	champ, decided := b.Champion()
	assert.True(t, decided)
	assert.Equal(t, "seed-2", champ)

	finish := b.Standings(seeding(seeds))
	require.Len(t, finish, 4)
	assert.Equal(t, "seed-2", finish[0].CompetitorID)
	assert.Equal(t, "seed-1", finish[1].CompetitorID)
	assert.Equal(t, "seed-3", finish[2].CompetitorID)
	assert.Equal(t, "seed-4", finish[3].CompetitorID)
	for i, f := range finish {
		assert.Equal(t, i+1, f.Rank)
	}
}

func TestReportWinnerErrors(t *testing.T) {
	b, err := bracket.New(seedNames(4))
	require.NoError(t, err)

	semis := b.RoundMatches(1)
	final := b.RoundMatches(2)[0]

	assert.ErrorIs(t, b.ReportWinner(final.ID, "seed-1"), bracket.ErrMatchNotReady)
	assert.ErrorIs(t, b.ReportWinner(semis[0].ID, "seed-3"), bracket.ErrNotInMatch)

	require.NoError(t, b.ReportWinner(semis[0].ID, "seed-1"))
	assert.ErrorIs(t, b.ReportWinner(semis[0].ID, "seed-1"), bracket.ErrMatchComplete)

	_, found := b.Match(final.ID)
	assert.True(t, found)
}

func TestReportUnresolvedFinal(t *testing.T) {
	seeds := seedNames(4)
	b, err := bracket.New(seeds)
	require.NoError(t, err)

	for _, m := range b.RoundMatches(1) {
		require.NoError(t, b.ReportWinner(m.ID, m.SlotA))
	}
	final := b.RoundMatches(2)[0]
	require.NoError(t, b.ReportUnresolved(final.ID))

	_, decided := b.Champion()
	assert.False(t, decided)

	finish := b.Standings(seeding(seeds))
	// Both finalists share the final's depth; seeding breaks the tie.
	assert.Equal(t, "seed-1", finish[0].CompetitorID)
	assert.Equal(t, "seed-2", finish[1].CompetitorID)
	assert.Equal(t, finish[0].Depth, finish[1].Depth)
}

func TestOutcomesExport(t *testing.T) {
	b, err := bracket.New(seedNames(6))
	require.NoError(t, err)

	for _, m := range b.RoundMatches(1) {
		if m.Status == bracket.MatchComplete {
			continue
		}
		require.NoError(t, b.ReportWinner(m.ID, m.SlotA))
	}

	records := b.Outcomes()

	byes, decided := 0, 0
	for _, rec := range records {
		switch rec.Result {
		case outcome.Bye:
			byes++
			assert.Empty(t, rec.OpponentID)
		case outcome.Win, outcome.Loss:
			decided++
		default:
			t.Fatalf("unexpected result %s", rec.Result)
		}
		assert.Equal(t, 1, rec.Round)
	}
	// Two byes, two decided matches exported as mirrored pairs.
	assert.Equal(t, 2, byes)
	assert.Equal(t, 4, decided)

	// The export must build into a ledger without errors.
	_, err = outcome.Build(records)
	assert.NoError(t, err)
}
