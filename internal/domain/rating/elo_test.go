package rating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vssouza/rankings-core/internal/domain/rating"
)

func TestUpdateEvenMatch(t *testing.T) {
	base := map[string]float64{"ada": 1500, "bob": 1500}

	table, err := rating.Update(base, []rating.GameResult{
		{A: "ada", B: "bob", Score: rating.AWins},
	})
	require.NoError(t, err)

	// An even match moves exactly half the K factor.
	assert.InDelta(t, 1516, table["ada"], 1e-9)
	assert.InDelta(t, 1484, table["bob"], 1e-9)

	// The base table is never mutated.
	assert.Equal(t, 1500.0, base["ada"])
	assert.Equal(t, 1500.0, base["bob"])
}

func TestUpdateDraw(t *testing.T) {
	table, err := rating.Update(map[string]float64{"ada": 1500, "bob": 1500}, []rating.GameResult{
		{A: "ada", B: "bob", Score: rating.Drawn},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1500, table["ada"], 1e-9)
	assert.InDelta(t, 1500, table["bob"], 1e-9)
}

func TestUpdateFavoriteGainsLess(t *testing.T) {
	table, err := rating.Update(map[string]float64{"ada": 1800, "bob": 1400}, []rating.GameResult{
		{A: "ada", B: "bob", Score: rating.AWins},
	})
	require.NoError(t, err)

	favoriteGain := table["ada"] - 1800
	assert.Greater(t, favoriteGain, 0.0)
	assert.Less(t, favoriteGain, 16.0)

	// An upset moves more than half K.
	upset, err := rating.Update(map[string]float64{"ada": 1800, "bob": 1400}, []rating.GameResult{
		{A: "ada", B: "bob", Score: rating.BWins},
	})
	require.NoError(t, err)
	assert.Greater(t, upset["bob"]-1400, 16.0)
}

func TestUpdateZeroSum(t *testing.T) {
	results := []rating.GameResult{
		{A: "ada", B: "bob", Score: rating.AWins},
		{A: "cyd", B: "ada", Score: rating.Drawn},
		{A: "bob", B: "cyd", Score: rating.BWins},
		{A: "ada", B: "cyd", Score: rating.AWins},
	}
	table, err := rating.Update(nil, results, rating.WithInitialRating(1200))
	require.NoError(t, err)

	total := 0.0
	for _, r := range table {
		total += r
	}
	assert.InDelta(t, 3*1200, total, 1e-9)
}

func TestUpdateUnknownCompetitors(t *testing.T) {
	table, err := rating.Update(map[string]float64{"ada": 1700}, []rating.GameResult{
		{A: "ada", B: "new", Score: rating.AWins},
	})
	require.NoError(t, err)

	// The newcomer entered at the default initial rating and lost points
	// from there.
	assert.Less(t, table["new"], 1500.0)
	assert.Greater(t, table["ada"], 1700.0)
}

func TestUpdateOptions(t *testing.T) {
	table, err := rating.Update(map[string]float64{"ada": 1500, "bob": 1500}, []rating.GameResult{
		{A: "ada", B: "bob", Score: rating.AWins},
	}, rating.WithKFactor(64))
	require.NoError(t, err)
	assert.InDelta(t, 1532, table["ada"], 1e-9)
}

func TestUpdateInvalidResults(t *testing.T) {
	testCases := []struct {
		name   string
		result rating.GameResult
	}{
		{name: "missing side", result: rating.GameResult{A: "ada", Score: rating.AWins}},
		{name: "self match", result: rating.GameResult{A: "ada", B: "ada", Score: rating.AWins}},
		{name: "out of range score", result: rating.GameResult{A: "ada", B: "bob", Score: 0.7}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rating.Update(nil, []rating.GameResult{tc.result})
			assert.ErrorIs(t, err, rating.ErrInvalidResult)
		})
	}
}
