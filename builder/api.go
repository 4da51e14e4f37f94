// SPDX-License-Identifier: MIT
// Package: harness/builder
//
// api.go - public entry point and the constructor catalogue.
//
// Contract:
//   - One orchestrator: BuildDocument(dopts, bopts, cons...). Creates the
//     document, resolves cfg, runs cons in order.
//   - Factories are declared here and implemented in impl_*.go.
//   - Determinism: same options, seed and constructor order give the same
//     design, ids included.

package builder

import (
	"fmt"

	"github.com/katalvlaran/harness"
)

// Constructor applies a deterministic design step to d using the resolved
// builderConfig. Constructors validate parameters first and return sentinel
// errors; they never panic.
type Constructor func(d *harness.Document, cfg builderConfig) error

// BuildDocument creates a harness.Document with dopts, resolves the builder
// configuration from bopts and applies every constructor in order. The
// first constructor error is returned wrapped as "BuildDocument: %w"; the
// partial document is discarded.
func BuildDocument(dopts []harness.Option, bopts []BuilderOption, cons ...Constructor) (*harness.Document, error) {
	d := harness.New(dopts...)
	if err := Apply(d, bopts, cons...); err != nil {
		return nil, fmt.Errorf("BuildDocument: %w", err)
	}
	return d, nil
}

// Apply runs cons in order against an existing document. Steps already
// applied stay applied when a later one fails; they can be undone through
// the document's history.
func Apply(d *harness.Document, bopts []BuilderOption, cons ...Constructor) error {
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Star places one hub connector and `leaves` leaf connectors, then wires
// the hub to every leaf wiresPerLeaf times. The hub takes the first id of
// the scheme; with three or more leaves it is an auto-router hub.
// Complexity: O(leaves*wiresPerLeaf) document operations.
//func Star(leaves, wiresPerLeaf int) Constructor

// Chain places n connectors in a row and wires each to the next (n ≥ 2).
// Complexity: O(n) document operations.
//func Chain(n int) Constructor

// HubScenario places C1 at the origin, C2 and C3 one spacing away, and the
// wires W1:C1.1-C2.1, W2:C1.2-C3.1, W3:C1.3-C2.2, W4:C1.3-C3.2. The ids are
// fixed and ignore WithIDScheme.
//func HubScenario() Constructor

// BundleChain is Chain(n) plus one bundle from each connector to the next.
// Bundle ends sit on the connector nodes so the bundle router anchors them.
//func BundleChain(n int) Constructor

// RandomWires adds m wires between distinct random connectors already in
// the document, on their first free pins. Requires WithSeed or WithRand.
//func RandomWires(m int) Constructor
