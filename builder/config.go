// SPDX-License-Identifier: MIT
// Package: harness/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - idFn    = DefaultIDFn   ("C1","C2",...)
//   - rng     = nil           (RandomWires refuses to run without one)
//   - spacing = 200
//   - colors  = ["SW"]

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	// Connector id strategy: placement index -> id.
	idFn IDFn
	// RNG for RandomWires; nil means no randomness.
	rng *rand.Rand
	// Distance between neighbouring connectors.
	spacing float64
	// Wire colours, used round-robin by wire index.
	colors []string
}

const (
	defaultSpacing = 200.0
	defaultColor   = "SW"
)

// newBuilderConfig applies opts over the defaults, last one wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:    DefaultIDFn,
		spacing: defaultSpacing,
		colors:  []string{defaultColor},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// color returns the colour of the i-th wire a constructor emits.
func (c builderConfig) color(i int) string {
	return c.colors[i%len(c.colors)]
}
