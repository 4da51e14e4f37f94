// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over any vertex/arc source,
// returning fewest-hop distances, parent links, parent arcs and visit order.
//
// What
//
//   - Explore vertices in non-decreasing hop count from a start vertex.
//   - The graph is anything that implements Graph: a vertex test plus an
//     ordered list of labelled arcs per vertex. The harness store exposes
//     its nodes and segments this way; the bundle router exposes bundles.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from vertex → distance (arcs) from start
//   - Parent: map from vertex → its predecessor in the BFS tree
//   - Via: map from vertex → label of the arc it was discovered through
//   - Supports hooks at three stages (OnEnqueue, OnDequeue, OnVisit),
//     neighbor filtering, a depth limit and an early stop at a target.
//
// Determinism
//
//	Arcs are expanded in the order the Graph returns them and a vertex keeps
//	the parent it was first discovered from. Ties between equal-length paths
//	are therefore broken by discovery order, never by id comparison.
//
// Complexity (V = |Vertices|, E = |Arcs|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(g, "CONN_C1", bfs.WithStopAt("CONN_C2"))
//	if err != nil {
//	    // ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ErrNeighbors
//	}
//	arcs, err := res.ArcsTo("CONN_C2") // segment ids along the path
//
// Errors
//
//   - ErrGraphNil             if the graph is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNeighbors            if Graph.Arcs fails for any vertex.
//   - ErrUnreachable          from PathTo/ArcsTo when dest was not reached.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
