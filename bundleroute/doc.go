// SPDX-License-Identifier: MIT

// Package bundleroute routes wires through user-drawn bundles.
//
// A bundle is a geometric channel between two points. Before routing,
// every bundle end is anchored to a topology node: the node named
// explicitly, else the nearest node within SnapRadius, else a new branch
// point. Bundle ends drawn at the same spot therefore share a node, and
// the anchored bundles form an undirected graph of their own.
//
// For each wire the router tries the bundles touching its from-connector
// against the bundles touching its to-connector and walks the bundle
// graph between their far ends with breadth-first search. The first walk
// found wins. Every bundle edge on the walk is mirrored by a segment
// tagged with the bundle, the wire gets one overlay "BR_<wire id>" over
// those segments, and its id is added to every bundle it passes.
//
// A run first retracts the previous one: overlays go away, originals are
// shown again and bundle memberships are cleared. Segments the router
// created are kept while routing and only the ones left without wires are
// removed afterwards, so running twice on the same input yields the same
// segment ids and the same memberships. The run is one undoable macro.
package bundleroute
