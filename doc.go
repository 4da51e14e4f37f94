// SPDX-License-Identifier: MIT

// Package harness is the document-level facade of the engine: it owns the
// placed connectors, the topology with its wires and bundles, the undo
// history and both routers.
//
// Every mutating method records exactly one history entry. Multi-step
// edits (adding a connector, deleting one with everything attached to it,
// routing) are macros, so one Undo reverts them completely.
//
//	doc := harness.New()
//	_ = doc.AddConnector(harness.Connector{ID: "C1"})
//	_ = doc.AddConnector(harness.Connector{ID: "C2", Position: core.Point{X: 100}})
//	_, _ = doc.AddWire(wire.Spec{From: wire.PinRef{Connector: "C1", Pin: "1"}, To: wire.PinRef{Connector: "C2", Pin: "1"}})
//	rep, _ := doc.AutoRoute()
//	fmt.Println(rep.Summary())
//	doc.Undo() // the whole routing run
//
// Documents are flattened to persist.Snapshot with Snapshot and rebuilt
// with FromSnapshot; a rebuilt document starts with an empty, clean
// history.
package harness
