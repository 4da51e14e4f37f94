// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
)

// Store owns every Node, Segment and Bundle of one harness document.
type Store struct {
	nodes    map[NodeID]*Node
	segments map[SegmentID]*Segment
	bundles  map[BundleID]*Bundle

	seq uint64
	ids IDSource
}

// Option configures a Store at construction.
type Option func(*Store)

// WithIDSource replaces the default SequentialIDs source.
// Panics on nil: a store without an id source cannot create entities.
func WithIDSource(src IDSource) Option {
	if src == nil {
		panic("core: WithIDSource(nil)")
	}
	return func(s *Store) { s.ids = src }
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nodes:    make(map[NodeID]*Node),
		segments: make(map[SegmentID]*Segment),
		bundles:  make(map[BundleID]*Bundle),
		ids:      NewSequentialIDs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns an id with the given prefix that no node, segment or
// bundle currently uses.
func (s *Store) NewID(prefix string) string {
	for {
		id := s.ids.Next(prefix)
		if !s.taken(id) {
			return id
		}
	}
}

func (s *Store) taken(id string) bool {
	if _, ok := s.nodes[NodeID(id)]; ok {
		return true
	}
	if _, ok := s.segments[SegmentID(id)]; ok {
		return true
	}
	_, ok := s.bundles[BundleID(id)]
	return ok
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// NodeOption configures a node created by AddNode.
type NodeOption func(*Node)

// WithNodeID fixes the id of the new node instead of generating one.
func WithNodeID(id NodeID) NodeOption {
	return func(n *Node) { n.ID = id }
}

// WithNodeOrigin tags the new node with o.
func WithNodeOrigin(o Origin) NodeOption {
	return func(n *Node) { n.Origin = o }
}

// AddNode creates a node of the given kind at position at.
//
// Connector nodes default to ConnectorNodeID(kind.ConnectorID); other kinds
// get a generated id with the kind's prefix ("J", "BP", "FX").
//
// Errors: ErrNilKind, ErrDuplicateID.
func (s *Store) AddNode(kind Kind, at Point, opts ...NodeOption) (NodeID, error) {
	if kind == nil {
		return "", ErrNilKind
	}
	n := &Node{Position: at, Kind: kind}
	if ck, ok := kind.(ConnectorKind); ok {
		n.ID = ConnectorNodeID(ck.ConnectorID)
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.ID == "" {
		n.ID = NodeID(s.NewID(idPrefix(kind)))
	}
	if s.taken(string(n.ID)) {
		return "", fmt.Errorf("%w: node %q", ErrDuplicateID, n.ID)
	}
	n.seq = s.nextSeq()
	n.incident = make(map[SegmentID]struct{})
	s.nodes[n.ID] = n

	return n.ID, nil
}

// RestoreNode re-inserts a node previously returned by RemoveNode or Node.
// Its insertion position is kept, its incidence starts empty.
func (s *Store) RestoreNode(n Node) error {
	if n.Kind == nil {
		return ErrNilKind
	}
	if s.taken(string(n.ID)) {
		return fmt.Errorf("%w: node %q", ErrDuplicateID, n.ID)
	}
	n = n.Clone()
	if n.seq == 0 {
		n.seq = s.nextSeq()
	}
	n.incident = make(map[SegmentID]struct{})
	s.nodes[n.ID] = &n

	return nil
}

// RemoveNode deletes an unreferenced node and returns a copy of it.
//
// Errors: ErrNodeNotFound, ErrNodeInUse (incident segments or bundle anchors remain).
func (s *Store) RemoveNode(id NodeID) (Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	if len(n.incident) > 0 {
		return Node{}, fmt.Errorf("%w: %q has %d segment(s)", ErrNodeInUse, id, len(n.incident))
	}
	for _, b := range s.bundles {
		if b.Touches(id) {
			return Node{}, fmt.Errorf("%w: %q anchors bundle %q", ErrNodeInUse, id, b.ID)
		}
	}
	delete(s.nodes, id)

	return n.Clone(), nil
}

// MoveNode sets the position of a node and returns the previous one.
func (s *Store) MoveNode(id NodeID, to Point) (Point, error) {
	n, ok := s.nodes[id]
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	from := n.Position
	n.Position = to

	return from, nil
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id NodeID) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.Clone(), true
}

// HasNode reports whether id names a node.
func (s *Store) HasNode(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Nodes returns copies of all nodes in insertion order.
func (s *Store) Nodes() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// Incident returns the ids of segments touching id, in insertion order.
// Unknown ids yield nil.
func (s *Store) Incident(id NodeID) []SegmentID {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	segs := make([]*Segment, 0, len(n.incident))
	for sid := range n.incident {
		seg, ok := s.segments[sid]
		if !ok {
			panic(fmt.Sprintf("core: node %q lists missing segment %q", id, sid))
		}
		segs = append(segs, seg)
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].seq < segs[j].seq })
	out := make([]SegmentID, len(segs))
	for i, seg := range segs {
		out[i] = seg.ID
	}
	return out
}

// NearestNode returns the node closest to p within radius, if any.
// Equal distances resolve to the earlier inserted node.
func (s *Store) NearestNode(p Point, radius float64) (NodeID, bool) {
	var (
		best  NodeID
		bestD float64
		found bool
	)
	for _, n := range s.Nodes() {
		d := n.Position.Dist(p)
		if d > radius {
			continue
		}
		if !found || d < bestD {
			best, bestD, found = n.ID, d, true
		}
	}
	return best, found
}
