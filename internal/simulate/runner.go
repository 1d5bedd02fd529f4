// Package simulate runs full Swiss events through the real engines
// with generated competitors and random results, verifying the pairing
// and standings invariants every round. It exists to exercise the
// engine the way an organizer application would, at volume.
package simulate

import (
	"context"
	"fmt"
	"sync"

	"github.com/vssouza/rankings-core/internal/app"
	"github.com/vssouza/rankings-core/pkg/logger"
)

// Stats aggregates what a run produced.
type Stats struct {
	Tournaments  int
	Rounds       int
	Pairings     int
	Byes         int
	Rematches    int
	Retirements  int
	GreedyPairs  int
	GroupsAborts int
}

// Run simulates cfg.Tournaments independent events over a bounded
// worker pool and returns the aggregated stats. The first invariant
// violation cancels the run.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	cfg = cfg.withDefaults()
	log := logger.Get().Named("simulate")

	type result struct {
		stats Stats
		err   error
	}

	jobs := make(chan int)
	results := make(chan result, cfg.Tournaments)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				stats, err := runTournament(ctx, cfg, fmt.Sprintf("sim-%d", idx))
				results <- result{stats: stats, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Tournaments; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var total Stats
	var firstErr error
	for r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		total.Tournaments++
		total.Rounds += r.stats.Rounds
		total.Pairings += r.stats.Pairings
		total.Byes += r.stats.Byes
		total.Rematches += r.stats.Rematches
		total.Retirements += r.stats.Retirements
		total.GreedyPairs += r.stats.GreedyPairs
		total.GroupsAborts += r.stats.GroupsAborts
	}
	if firstErr != nil {
		return total, firstErr
	}

	log.Info(ctx, "simulation complete",
		logger.Int("tournaments", total.Tournaments),
		logger.Int("rounds", total.Rounds),
		logger.Int("pairings", total.Pairings),
		logger.Int("rematches", total.Rematches),
		logger.Int("byes", total.Byes))
	return total, nil
}

// runTournament plays one full event and verifies the invariants after
// every pairing generation and standings computation.
func runTournament(ctx context.Context, cfg Config, tournamentID string) (Stats, error) {
	svc := app.New(app.WithEventSeed(cfg.Seed + "/" + tournamentID))
	roster := generateRoster(cfg.PoolSize)
	if err := svc.CreateTournament(ctx, tournamentID, roster); err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	retired := make(map[string]bool)
	met := make(map[string]map[string]bool)
	for round := 1; round <= cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		res, got, err := svc.NextRound(ctx, tournamentID)
		if err != nil {
			return stats, fmt.Errorf("%s round %d: %w", tournamentID, round, err)
		}
		if got != round {
			return stats, fmt.Errorf("%s: expected round %d, engine says %d", tournamentID, round, got)
		}

		active := make(map[string]bool, len(roster))
		for _, id := range roster {
			if !retired[id] {
				active[id] = true
			}
		}
		if err := verifyPairings(active, res); err != nil {
			return stats, fmt.Errorf("%s round %d: %w", tournamentID, round, err)
		}
		if err := verifyRematchAccounting(met, res); err != nil {
			return stats, fmt.Errorf("%s round %d: %w", tournamentID, round, err)
		}

		rng := resultRand(cfg.Seed, tournamentID, round)
		if err := svc.Report(ctx, tournamentID, playRound(rng, round, res)); err != nil {
			return stats, fmt.Errorf("%s round %d: %w", tournamentID, round, err)
		}
		for _, p := range res.Pairings {
			recordMeeting(met, p.A, p.B)
		}

		rows, err := svc.Standings(ctx, tournamentID)
		if err != nil {
			return stats, fmt.Errorf("%s round %d: %w", tournamentID, round, err)
		}
		if err := verifyTable(rows); err != nil {
			return stats, fmt.Errorf("%s round %d: %w", tournamentID, round, err)
		}

		stats.Rounds++
		stats.Pairings += len(res.Pairings)
		stats.Rematches += len(res.RematchesUsed)
		stats.GreedyPairs += res.GreedyPairs
		stats.GroupsAborts += res.GroupsAborted
		if res.Bye != "" {
			stats.Byes++
		}

		// Retire the current tail-ender on the configured cadence.
		if cfg.RetireEvery > 0 && round%cfg.RetireEvery == 0 && len(active) > 2 {
			for i := len(rows) - 1; i >= 0; i-- {
				victim := rows[i].CompetitorID
				if retired[victim] {
					continue
				}
				if err := svc.Retire(ctx, tournamentID, victim); err != nil {
					return stats, err
				}
				retired[victim] = true
				stats.Retirements++
				break
			}
		}

		if cfg.Verbose && round == cfg.Rounds {
			printTable(ctx, tournamentID, rows)
		}
	}
	return stats, nil
}
