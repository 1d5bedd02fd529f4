// Package repository defines the tournament state store interface and
// errors. The store only holds what a caller would otherwise retain and
// resupply between engine calls: the roster, the append-only outcome
// ledger, the retired set, and the downfloat counters. Nothing is
// written to disk.
package repository

import (
	"context"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

// Store provides read/write access to per-tournament reported state.
type Store interface {
	// Register creates a tournament with the given roster. Registering
	// an existing tournament is ErrAlreadyRegistered.
	Register(ctx context.Context, tournamentID string, roster []string) error

	// Roster returns the registered competitor ids in registration order.
	Roster(ctx context.Context, tournamentID string) ([]string, error)

	// AppendOutcomes appends reported records to the ledger. Records
	// naming competitors outside the roster are ErrUnknownCompetitor.
	AppendOutcomes(ctx context.Context, tournamentID string, records []outcome.MatchOutcome) error

	// Outcomes returns the full reported ledger in report order.
	Outcomes(ctx context.Context, tournamentID string) ([]outcome.MatchOutcome, error)

	// Retire marks a competitor withdrawn.
	Retire(ctx context.Context, tournamentID, competitorID string) error

	// Retired returns the withdrawn set.
	Retired(ctx context.Context, tournamentID string) (map[string]bool, error)

	// SetDownfloats replaces the stored downfloat counters.
	SetDownfloats(ctx context.Context, tournamentID string, counts map[string]int) error

	// Downfloats returns the stored downfloat counters.
	Downfloats(ctx context.Context, tournamentID string) (map[string]int, error)
}
