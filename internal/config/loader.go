package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vssouza/rankings-core/internal/validate"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RANKINGS_CONFIG is set
//  3. env (prefix RANKINGS_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RANKINGS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Map env keys like RANKINGS_PAIRING_BUDGET -> pairing_budget,
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("RANKINGS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "rankings_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects out-of-range values before any engine sees them.
// Option ranges share the request-level checks so the two paths cannot
// drift apart.
func (c *Config) validate() error {
	if c.WinPoints < 0 || c.DrawPoints < 0 || c.LossPoints < 0 || c.ByePoints < 0 {
		return fmt.Errorf("%w: negative match point value", ErrInvalidConfig)
	}
	if err := validate.ScoringOptions(c.TieBreakFloor, c.VirtualByeRate); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validate.PairingOptions(c.PairingBudget); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
