// SPDX-License-Identifier: MIT

package core

import (
	"github.com/katalvlaran/harness/bfs"
)

// incidence exposes the store as a bfs.Graph: vertices are nodes, arcs are
// segments labelled with their id.
type incidence struct{ s *Store }

func (g incidence) HasVertex(id string) bool { return g.s.HasNode(NodeID(id)) }

func (g incidence) Arcs(id string) ([]bfs.Arc, error) {
	sids := g.s.Incident(NodeID(id))
	arcs := make([]bfs.Arc, 0, len(sids))
	for _, sid := range sids {
		seg := g.s.segments[sid]
		other, _ := seg.Other(NodeID(id))
		arcs = append(arcs, bfs.Arc{Label: string(sid), To: string(other)})
	}
	return arcs, nil
}

// Graph returns a read-only bfs view of the node/segment topology.
func (s *Store) Graph() bfs.Graph { return incidence{s: s} }

// FindSegmentBetween returns the first segment, in insertion order, that
// joins a and b in either direction.
func (s *Store) FindSegmentBetween(a, b NodeID) (SegmentID, bool) {
	for _, sid := range s.Incident(a) {
		if s.segments[sid].Connects(a, b) {
			return sid, true
		}
	}
	return "", false
}

// FindPath returns the segments of a fewest-hop route from a to b.
//
// Behavior:
//   - a == b, an unknown end, or no connection all yield an empty path.
//   - Among equal-length routes the one discovered first wins; discovery
//     follows segment insertion order.
//
// Complexity: O(V + E).
func (s *Store) FindPath(a, b NodeID) []SegmentID {
	if a == b || !s.HasNode(a) || !s.HasNode(b) {
		return []SegmentID{}
	}
	res, err := bfs.BFS(s.Graph(), string(a), bfs.WithStopAt(string(b)))
	if err != nil {
		return []SegmentID{}
	}
	labels, err := res.ArcsTo(string(b))
	if err != nil {
		return []SegmentID{}
	}
	path := make([]SegmentID, len(labels))
	for i, l := range labels {
		path[i] = SegmentID(l)
	}
	return path
}

// WalkNodes returns the node sequence visited when walking path starting
// at from, or false when consecutive segments do not share a node.
func (s *Store) WalkNodes(from NodeID, path []SegmentID) ([]NodeID, bool) {
	nodes := []NodeID{from}
	cur := from
	for _, sid := range path {
		seg, ok := s.segments[sid]
		if !ok {
			return nil, false
		}
		next, ok := seg.Other(cur)
		if !ok {
			return nil, false
		}
		nodes = append(nodes, next)
		cur = next
	}
	return nodes, true
}
