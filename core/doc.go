// SPDX-License-Identifier: MIT

// Package core is the Graph Store of the harness engine: an id-keyed arena of
// topology Nodes, wire-carrying Segments and drawn Bundles.
//
// Entities never hold pointers to each other. A Segment names its two end
// nodes by NodeID, a Node's incident list names Segments by SegmentID, a
// Bundle names its anchor nodes by NodeID. Everything else in the module
// (topology manager, routers, undo commands) refers to entities by id only,
// so removing an entity and later re-inserting it is a pair of map edits.
//
// Invariants kept by the Store:
//
//   - Incident(n) equals the set of segments whose Start or End is n.
//   - Segment.Start != Segment.End.
//   - A node referenced by a segment or by a bundle anchor cannot be removed.
//   - A segment that still carries wires cannot be removed.
//
// Violations found by Validate are reported as ErrCorrupt; violations found
// while mutating (a segment naming a node that vanished) panic, because they
// mean the history that produced the store is already wrong.
//
// Determinism:
//
//	Nodes(), Segments(), Bundles() and Incident() return entities in insertion
//	order. Re-inserting a removed entity restores its original position, so
//	undo/redo never reshuffles discovery order. FindPath breaks ties between
//	equal-length routes by that order, never by id comparison ("SEG_10" sorts
//	before "SEG_2").
//
// Concurrency:
//
//	A Store belongs to one editing session and is not safe for concurrent
//	mutation.
//
// Ids:
//
//	Ids come from an IDSource scoped to the Store. SequentialIDs ("J_1",
//	"SEG_3") is the default; RandomIDs produces uuid-derived ids ("J_1f0ac2e9").
//	Connector nodes always use "CONN_<connector id>" (see ConnectorNodeID).
package core
