// SPDX-License-Identifier: MIT

// Package autoroute synthesizes a shared routing topology from a flat list
// of point-to-point wires.
//
// A run works in three phases:
//
//  1. Plan groups the wires by unordered connector pair and counts wire ends
//     per connector. A connector with more than HubThreshold ends is a hub.
//  2. The Router gives every hub one branch point at hub position plus
//     BranchOffset, a trunk hub→branch point and one segment from the branch
//     point to every connector the hub shares a group with. Pairs without a
//     hub get one direct segment. Existing segments are reused.
//  3. Every wire is routed with FindPath over the new graph. Wires with the
//     same node path share one overlay wire "AR_<first wire id>"; the
//     original wires are hidden, never deleted.
//
// The whole run, including the removal of the previous run's overlays and
// synthesized topology, is pushed as one "Create Branches" macro. Undoing it
// restores the graph exactly as it was.
//
// Failures are per item: a connector without a topology node drops its
// contribution, a wire that still has no path is reported as unrouted.
// Store errors the router cannot explain abort the macro.
package autoroute
