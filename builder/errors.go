// SPDX-License-Identifier: MIT
// Package: harness/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers use errors.Is.
//   - Constructors attach context with %w through builderErrorf.
//   - Validation panics are confined to option constructors (WithX).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewConnectors indicates a connector count below the constructor's
// minimum, or a document holding too few connectors to wire.
var ErrTooFewConnectors = errors.New("builder: too few connectors")

// ErrTooFewWires indicates a wire count below one.
var ErrTooFewWires = errors.New("builder: too few wires")

// ErrNeedRandSource indicates a stochastic constructor run without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that a document operation rejected a
// constructor step, or that a nil constructor was passed.
var ErrConstructFailed = errors.New("builder: construction failed")

// Method tokens used as error context.
const (
	methodStar        = "Star"
	methodChain       = "Chain"
	methodHub         = "HubScenario"
	methodBundleChain = "BundleChain"
	methodRandomWires = "RandomWires"
)

// builderErrorf returns "<method>: <message>" wrapping the %w verb in format.
func builderErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: "+format, append([]any{method}, args...)...)
}

// failed wraps a document error as ErrConstructFailed while keeping the
// document's own sentinel reachable through errors.Is.
func failed(method, step string, err error) error {
	return builderErrorf(method, "%s: %w: %w", step, ErrConstructFailed, err)
}
