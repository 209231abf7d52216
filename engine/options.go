package engine

import (
	"math/rand/v2"

	"github.com/enomcdcdash/enomdash/logger"
)

// ============================================================================
// ENGINE OPTIONS: Functional options for ComputeOptions / Aggregate / Execute
// ============================================================================

// DefaultReferenceYear is the synthetic year periods are mapped onto.
const DefaultReferenceYear = 2025

// Picker draws a uniformly random index in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	ReferenceYear int
	Search        map[string]string // dimension key → free text
	Picker        Picker
	Log           logger.Logger
}

// WithReferenceYear sets the synthetic year used for period sorting and ticks.
func WithReferenceYear(year int) Option {
	return func(c *config) {
		if year > 0 {
			c.ReferenceYear = year
		}
	}
}

// WithSearch narrows candidate lists by case-insensitive containment.
// Keys are dimension keys; blank values are ignored.
func WithSearch(search map[string]string) Option {
	return func(c *config) {
		c.Search = search
	}
}

// WithPicker sets the random source used by ResetToRandom dimensions.
func WithPicker(p Picker) Option {
	return func(c *config) {
		if p != nil {
			c.Picker = p
		}
	}
}

// WithLogger routes engine diagnostics to l.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Log = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		ReferenceYear: DefaultReferenceYear,
		Picker:        globalPicker{},
		Log:           logger.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
