package simulate

import (
	"context"

	"github.com/vssouza/rankings-core/internal/domain/standings"
	"github.com/vssouza/rankings-core/pkg/logger"
)

// printTable logs the final table of one event.
func printTable(ctx context.Context, tournamentID string, rows []standings.Row) {
	log := logger.Get().Named("simulate")
	for _, row := range rows {
		log.Info(ctx, "final standing",
			logger.String("tournament", tournamentID),
			logger.Int("rank", row.Rank),
			logger.String("competitor", row.CompetitorID),
			logger.Int("points", row.MatchPoints),
			logger.Float64("omw", row.OppMatchWin),
			logger.Bool("retired", row.Retired))
	}
}
