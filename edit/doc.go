// SPDX-License-Identifier: MIT

// Package edit provides the reversible primitives every harness edit is
// made of: node, segment, wire and bundle insertion and removal, moves,
// property changes and splits. Each primitive is a command.Command.
//
// Two construction styles exist, and each constructor picks one:
//
//   - Applied: the Editor method performs the change immediately and
//     returns a command whose first Redo is a no-op (AddNode, RemoveSegment,
//     SplitSegment, SetHidden, ...). Routers use these inside a macro.
//   - Deferred: the Editor method only validates and snapshots; pushing the
//     command performs the change (MoveNode, DeleteWire,
//     UpdateWireProperties, SetBundleLength, MoveBundleEnd, AssignWire).
//
// During replay a primitive whose target has vanished logs a warning and
// does nothing. A primitive that finds the store corrupted panics.
package edit
