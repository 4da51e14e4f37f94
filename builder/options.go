// SPDX-License-Identifier: MIT
// Package: harness/builder
//
// options.go - functional options for the builder package.
//
// Option constructors validate and panic on meaningless input; the
// constructors themselves never panic.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/harness/wire"
)

// BuilderOption customizes the resolved builderConfig.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the connector id generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) {
		c.idFn = fn
	}
}

// WithRand provides an explicit RNG for RandomWires. Panics on nil; prefer
// WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded RNG, so RandomWires is reproducible.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpacing sets the distance between neighbouring connectors.
// Panics if d <= 0.
func WithSpacing(d float64) BuilderOption {
	if d <= 0 {
		panic("builder: WithSpacing(d<=0)")
	}
	return func(c *builderConfig) {
		c.spacing = d
	}
}

// WithColors sets the wire colours used round-robin. Panics on an empty
// list or on a code that is not a DIN 72551 colour.
func WithColors(codes ...string) BuilderOption {
	if len(codes) == 0 {
		panic("builder: WithColors()")
	}
	for _, code := range codes {
		if _, err := wire.ParseColor(code); err != nil {
			panic(fmt.Sprintf("builder: WithColors(%q): %v", code, err))
		}
	}
	cp := append([]string(nil), codes...)
	return func(c *builderConfig) {
		c.colors = cp
	}
}
