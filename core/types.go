// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for store operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrSegmentNotFound indicates an operation referenced a non-existent segment.
	ErrSegmentNotFound = errors.New("core: segment not found")

	// ErrBundleNotFound indicates an operation referenced a non-existent bundle.
	ErrBundleNotFound = errors.New("core: bundle not found")

	// ErrDuplicateID indicates an insert under an id that is already taken.
	ErrDuplicateID = errors.New("core: duplicate id")

	// ErrSelfSegment indicates a segment whose two ends are the same node.
	ErrSelfSegment = errors.New("core: segment start equals end")

	// ErrNilKind indicates a node was created without a kind.
	ErrNilKind = errors.New("core: node kind is nil")

	// ErrNodeInUse indicates removal of a node still referenced by a segment or bundle.
	ErrNodeInUse = errors.New("core: node still referenced")

	// ErrSegmentInUse indicates removal of a segment that still carries wires.
	ErrSegmentInUse = errors.New("core: segment still carries wires")

	// ErrCorrupt is returned by Validate when an invariant does not hold.
	ErrCorrupt = errors.New("core: store invariant violated")
)

type (
	// NodeID identifies a Node within a Store.
	NodeID string
	// SegmentID identifies a Segment within a Store.
	SegmentID string
	// BundleID identifies a Bundle within a Store.
	BundleID string
	// WireID identifies a wire; wires live outside the store but segments carry their ids.
	WireID string
)

// Point is a 2D position in scene units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Origin records which part of the engine created an entity.
// Routers use it to find and retract their own previous output.
type Origin uint8

const (
	// OriginManual marks user-placed or imported entities.
	OriginManual Origin = iota
	// OriginAutoRoute marks entities synthesized by the auto-router.
	OriginAutoRoute
	// OriginBundleRoute marks entities synthesized by the bundle router.
	OriginBundleRoute
)

func (o Origin) String() string {
	switch o {
	case OriginManual:
		return "manual"
	case OriginAutoRoute:
		return "autoroute"
	case OriginBundleRoute:
		return "bundleroute"
	default:
		return fmt.Sprintf("Origin(%d)", uint8(o))
	}
}

// ParseOrigin accepts the strings produced by Origin.String; "" means manual.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "manual", "":
		return OriginManual, nil
	case "autoroute":
		return OriginAutoRoute, nil
	case "bundleroute":
		return OriginBundleRoute, nil
	}
	return 0, fmt.Errorf("core: unknown origin %q", s)
}

// Node is a topology vertex. Its incident segment list is maintained by
// the Store and is only observable through Store.Incident.
type Node struct {
	ID       NodeID
	Position Point
	Kind     Kind
	Origin   Origin

	seq      uint64
	incident map[SegmentID]struct{}
}

// Clone returns a detached copy of n without its incidence set.
func (n Node) Clone() Node {
	n.incident = nil
	return n
}

// Segment is one undirected physical edge between two nodes, carrying an
// ordered set of wire ids. Bundle names the drawn bundle this segment
// mirrors, if any.
type Segment struct {
	ID     SegmentID
	Start  NodeID
	End    NodeID
	Bundle BundleID
	Origin Origin

	wires []WireID
	seq   uint64
}

// Wires returns a copy of the wire ids carried by s, in attach order.
func (s Segment) Wires() []WireID { return append([]WireID(nil), s.wires...) }

// WireCount returns the number of wires carried by s.
func (s Segment) WireCount() int { return len(s.wires) }

// HasWire reports whether s carries w.
func (s Segment) HasWire(w WireID) bool { return indexOf(s.wires, w) >= 0 }

// Touches reports whether n is one of the ends of s.
func (s Segment) Touches(n NodeID) bool { return s.Start == n || s.End == n }

// Other returns the end of s opposite to n.
func (s Segment) Other(n NodeID) (NodeID, bool) {
	switch n {
	case s.Start:
		return s.End, true
	case s.End:
		return s.Start, true
	}
	return "", false
}

// Connects reports whether s joins a and b in either direction.
func (s Segment) Connects(a, b NodeID) bool {
	return (s.Start == a && s.End == b) || (s.Start == b && s.End == a)
}

// WithWires returns a copy of s carrying exactly ids (duplicates dropped).
// Used to rebuild segments from persisted collections.
func (s Segment) WithWires(ids ...WireID) Segment {
	s.wires = nil
	for _, id := range ids {
		if indexOf(s.wires, id) < 0 {
			s.wires = append(s.wires, id)
		}
	}
	return s
}

// Clone returns a detached copy of s.
func (s Segment) Clone() Segment {
	s.wires = append([]WireID(nil), s.wires...)
	return s
}

// Bundle is a user-drawn physical channel between two points. StartNode
// and EndNode are empty until the bundle is anchored to topology nodes.
type Bundle struct {
	ID              BundleID
	Start           Point
	End             Point
	StartNode       NodeID
	EndNode         NodeID
	SpecifiedLength *float64
	WireIDs         []WireID

	seq uint64
}

// Length returns the specified length when set, the drawn length otherwise.
func (b Bundle) Length() float64 {
	if b.SpecifiedLength != nil {
		return *b.SpecifiedLength
	}
	return b.Start.Dist(b.End)
}

// Anchored reports whether both ends are bound to nodes.
func (b Bundle) Anchored() bool { return b.StartNode != "" && b.EndNode != "" }

// Touches reports whether n anchors either end of b.
func (b Bundle) Touches(n NodeID) bool {
	return n != "" && (b.StartNode == n || b.EndNode == n)
}

// Other returns the anchor opposite to n.
func (b Bundle) Other(n NodeID) (NodeID, bool) {
	switch {
	case n == "":
		return "", false
	case b.StartNode == n:
		return b.EndNode, true
	case b.EndNode == n:
		return b.StartNode, true
	}
	return "", false
}

// HasWire reports whether w is assigned to b.
func (b Bundle) HasWire(w WireID) bool { return indexOf(b.WireIDs, w) >= 0 }

// Clone returns a detached copy of b.
func (b Bundle) Clone() Bundle {
	b.WireIDs = append([]WireID(nil), b.WireIDs...)
	if b.SpecifiedLength != nil {
		l := *b.SpecifiedLength
		b.SpecifiedLength = &l
	}
	return b
}

func indexOf[T comparable](s []T, v T) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
