// SPDX-License-Identifier: MIT

// Package builder assembles deterministic harness designs for tests,
// examples and the demo command.
//
// A design is built by BuildDocument from a list of Constructors applied in
// order to one harness.Document:
//
//   - Star:        one hub connector wired to every leaf connector.
//   - Chain:       connectors in a row, each wired to the next.
//   - HubScenario: the three-connector design with a shared pin that
//     exercises the auto-router's branch point synthesis.
//   - BundleChain: a Chain with one bundle laid over every gap.
//   - RandomWires: m wires between random existing connectors (needs a seed).
//
// Knobs are functional options resolved into an immutable builderConfig:
//
//   - WithIDScheme: connector id from placement index (DefaultIDFn gives
//     "C1","C2",...; SymbolIDFn, ExcelColumnIDFn and PrefixIDFn are provided).
//   - WithSeed / WithRand: random source for RandomWires.
//   - WithSpacing: distance between placed connectors.
//   - WithColors: wire colours, used round-robin.
//
// Option constructors panic on meaningless input. Constructors never panic;
// they return errors wrapping the package sentinels (ErrTooFewConnectors,
// ErrTooFewWires, ErrNeedRandSource, ErrConstructFailed) so callers branch
// with errors.Is.
//
// Every constructor mutates the document through its public operations, so
// the result carries a full undo history and can be unwound step by step.
package builder
