// Package validate rejects malformed requests before the engines run:
// unknown enum values, out-of-range options, and structurally invalid
// pairing lists. The engines still defend their own bye/opponent and
// self-pairing invariants.
package validate

import (
	"fmt"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
	"github.com/vssouza/rankings-core/internal/domain/swiss"
)

// Outcomes checks every record structurally, naming the offending index
// and field.
func Outcomes(records []outcome.MatchOutcome) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// ScoringOptions checks the ranges of the standings tie-break options.
func ScoringOptions(tieBreakFloor, virtualByeRate float64) error {
	if tieBreakFloor < 0 || tieBreakFloor > 1 {
		return fmt.Errorf("%w: tie-break floor %v outside [0,1]", ErrInvalidOption, tieBreakFloor)
	}
	if virtualByeRate < 0 || virtualByeRate > 1 {
		return fmt.Errorf("%w: virtual bye rate %v outside [0,1]", ErrInvalidOption, virtualByeRate)
	}
	return nil
}

// PairingOptions checks the ranges of the pairing generator options.
func PairingOptions(stepBudget int) error {
	if stepBudget <= 0 {
		return fmt.Errorf("%w: step budget %d must be positive", ErrInvalidOption, stepBudget)
	}
	return nil
}

// Pairings checks a pairing list for empty ids, self-pairings, and
// competitors booked into more than one pairing.
func Pairings(pairings []swiss.Pairing, bye string) error {
	seen := make(map[string]int, len(pairings)*2)
	book := func(id string, at int) error {
		if id == "" {
			return fmt.Errorf("pairing %d: %w: empty competitor id", at, ErrInvalidPairing)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("pairing %d: %w: %s already booked in pairing %d", at, ErrInvalidPairing, id, prev)
		}
		seen[id] = at
		return nil
	}
	for i, p := range pairings {
		if p.A == p.B {
			return fmt.Errorf("pairing %d: %w: %s paired against itself", i, ErrInvalidPairing, p.A)
		}
		if err := book(p.A, i); err != nil {
			return err
		}
		if err := book(p.B, i); err != nil {
			return err
		}
	}
	if bye != "" {
		if at, dup := seen[bye]; dup {
			return fmt.Errorf("%w: bye recipient %s already booked in pairing %d", ErrInvalidPairing, bye, at)
		}
	}
	return nil
}
