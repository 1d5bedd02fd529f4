// Package config defines engine configuration structures and loading.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env
//   vars on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration for the rankings engines.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Match point values.
	WinPoints  int `koanf:"win_points"`
	DrawPoints int `koanf:"draw_points"`
	LossPoints int `koanf:"loss_points"`
	ByePoints  int `koanf:"bye_points"`

	// TieBreakFloor is the minimum an opponent's win rate contributes
	// to the opponents'-average tie-breaks.
	TieBreakFloor float64 `koanf:"tiebreak_floor"`

	// VirtualBye injects one synthetic opponent entry per received bye
	// into the OMW%/OGW% averages, at VirtualByeRate.
	VirtualBye     bool    `koanf:"virtual_bye"`
	VirtualByeRate float64 `koanf:"virtual_bye_rate"`

	// HeadToHead enables direct-result resolution of two-way ties.
	HeadToHead bool `koanf:"head_to_head"`

	// SingleSided enables lenient ingestion of one-sided reports.
	SingleSided bool `koanf:"single_sided"`

	// PairingBudget bounds the backtracking search per score group.
	PairingBudget int `koanf:"pairing_budget"`

	// EventSeed keys the deterministic tie-break hash.
	EventSeed string `koanf:"event_seed"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		WinPoints:      3,
		DrawPoints:     1,
		LossPoints:     0,
		ByePoints:      3,
		TieBreakFloor:  0.33,
		VirtualByeRate: 0.5,
		PairingBudget:  2000,
	}
}
