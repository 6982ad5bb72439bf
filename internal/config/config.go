// Package config loads the engine's construction-time configuration from
// environment variables, the way the reference stack's service commands do.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"setengine/internal/domain"
)

// Config holds every value the engine needs at construction time. The sign
// of TurnTimeoutMillis selects the dealer's timer mode: negative disables
// the timer display entirely, zero selects elapsed-time display with
// no-set-on-table reshuffles, positive selects a countdown to reshuffle.
type Config struct {
	Players   int `env:"PLAYERS" envDefault:"4"`
	DeckSize  int `env:"DECK_SIZE" envDefault:"81"`
	TableSize int `env:"TABLE_SIZE" envDefault:"12"`

	// FeatureSize must equal domain.SetSize. It is read from the environment
	// and checked by Validate rather than hardcoded, so a deployment asserts
	// the set size it expects to be running with instead of silently
	// inheriting whatever the binary happens to be compiled for; it does not
	// change the size of a set at runtime. domain.TestSet/FindSets operate on
	// a fixed-length [SetSize]Card array (a compile-time Go array bound), so
	// making SET_SIZE itself runtime-configurable would require rewriting
	// every set-testing call site to take slices — out of proportion to a
	// value that the original game never varies.
	FeatureSize int `env:"FEATURE_SIZE" envDefault:"3"`

	TurnTimeoutMillis        int `env:"TURN_TIMEOUT_MILLIS" envDefault:"60000"`
	TurnTimeoutWarningMillis int `env:"TURN_TIMEOUT_WARNING_MILLIS" envDefault:"5000"`

	PointFreezeMillis   int `env:"POINT_FREEZE_MILLIS" envDefault:"1000"`
	PenaltyFreezeMillis int `env:"PENALTY_FREEZE_MILLIS" envDefault:"3000"`

	TableDelayMillis int `env:"TABLE_DELAY_MILLIS" envDefault:"0"`

	// Hints enables the synthetic-input workers' Hint brain (they play
	// toward a legal set the table already knows about) and periodic hint
	// logging by the dealer. When false, synthetic participants fall back
	// to the Random brain.
	Hints bool `env:"HINTS" envDefault:"false"`
}

// Load parses Config from the process environment, applying the envDefault
// tags above for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports the first configuration error found, if any.
func (c Config) Validate() error {
	if c.Players < 1 {
		return fmt.Errorf("config: players must be >= 1, got %d", c.Players)
	}
	if c.FeatureSize != domain.SetSize {
		return fmt.Errorf("config: feature size %d does not match the compiled-in set size %d", c.FeatureSize, domain.SetSize)
	}
	if c.TableSize < c.FeatureSize {
		return fmt.Errorf("config: table size %d is smaller than the set size %d", c.TableSize, c.FeatureSize)
	}
	if c.DeckSize < c.TableSize {
		return fmt.Errorf("config: deck size %d is smaller than the table size %d", c.DeckSize, c.TableSize)
	}
	return nil
}
