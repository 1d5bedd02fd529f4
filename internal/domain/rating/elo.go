// Package rating applies closed-form Elo updates to a base rating
// table from a list of completed match results. It consumes only
// winner/loser/draw information and never reads standings.
package rating

import (
	"fmt"
	"math"
)

// Default Elo parameters. A 400-point spread means a player rated 400
// above the opponent is expected to win ten times as often.
const (
	defaultInitialRating = 1500.0
	defaultSpread        = 400.0
	defaultKFactor       = 32.0
	defaultBase          = 10.0
)

// Score is the normalized result of a game from side A's perspective.
type Score float64

// Normalized scores for side A.
const (
	AWins Score = 1
	Drawn Score = 0.5
	BWins Score = 0
)

// GameResult is one completed head-to-head result.
type GameResult struct {
	A     string
	B     string
	Score Score
}

// Option applies a configuration option to the updater.
type Option func(*updater)

// WithInitialRating sets the rating assigned to competitors missing
// from the base table.
func WithInitialRating(r float64) Option {
	return func(u *updater) { u.initial = r }
}

// WithSpread sets the rating difference at which the expected win odds
// reach one order of magnitude. Non-positive values are ignored.
func WithSpread(spread float64) Option {
	return func(u *updater) {
		if spread > 0 {
			u.spread = spread
		}
	}
}

// WithKFactor sets the update step. Non-positive values are ignored.
func WithKFactor(k float64) Option {
	return func(u *updater) {
		if k > 0 {
			u.k = k
		}
	}
}

type updater struct {
	initial float64
	spread  float64
	k       float64
}

// Update returns a new rating table with every result applied in order.
// The base table is never mutated. Unknown competitors enter at the
// initial rating.
func Update(base map[string]float64, results []GameResult, opts ...Option) (map[string]float64, error) {
	u := &updater{initial: defaultInitialRating, spread: defaultSpread, k: defaultKFactor}
	for _, opt := range opts {
		opt(u)
	}

	table := make(map[string]float64, len(base))
	for id, r := range base {
		table[id] = r
	}
	for i, res := range results {
		if res.A == "" || res.B == "" || res.A == res.B {
			return nil, fmt.Errorf("result %d: %w: %q vs %q", i, ErrInvalidResult, res.A, res.B)
		}
		if res.Score != AWins && res.Score != Drawn && res.Score != BWins {
			return nil, fmt.Errorf("result %d: %w: score %v", i, ErrInvalidResult, res.Score)
		}
		ra, ok := table[res.A]
		if !ok {
			ra = u.initial
		}
		rb, ok := table[res.B]
		if !ok {
			rb = u.initial
		}
		expected := 1 / (1 + math.Pow(defaultBase, (rb-ra)/u.spread))
		delta := u.k * (float64(res.Score) - expected)
		table[res.A] = ra + delta
		table[res.B] = rb - delta
	}
	return table, nil
}
