// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
)

// SegmentOption configures a segment created by AddSegment.
type SegmentOption func(*Segment)

// WithSegmentID fixes the id of the new segment instead of generating one.
func WithSegmentID(id SegmentID) SegmentOption {
	return func(s *Segment) { s.ID = id }
}

// WithSegmentOrigin tags the new segment with o.
func WithSegmentOrigin(o Origin) SegmentOption {
	return func(s *Segment) { s.Origin = o }
}

// WithSegmentBundle associates the new segment with bundle b.
func WithSegmentBundle(b BundleID) SegmentOption {
	return func(s *Segment) { s.Bundle = b }
}

// AddSegment creates an empty segment between a and b. It never
// deduplicates: a second call with the same ends creates a parallel segment.
//
// Errors: ErrSelfSegment, ErrNodeNotFound, ErrDuplicateID.
func (s *Store) AddSegment(a, b NodeID, opts ...SegmentOption) (SegmentID, error) {
	seg := &Segment{Start: a, End: b}
	for _, opt := range opts {
		opt(seg)
	}
	if seg.ID == "" {
		seg.ID = SegmentID(s.NewID(PrefixSegment))
	}
	if err := s.insertSegment(seg); err != nil {
		return "", err
	}
	return seg.ID, nil
}

// RestoreSegment re-inserts a segment previously returned by RemoveSegment,
// including the wire ids it carried and its insertion position.
func (s *Store) RestoreSegment(seg Segment) error {
	seg = seg.Clone()
	return s.insertSegment(&seg)
}

func (s *Store) insertSegment(seg *Segment) error {
	if seg.Start == seg.End {
		return fmt.Errorf("%w: %q", ErrSelfSegment, seg.Start)
	}
	start, ok := s.nodes[seg.Start]
	if !ok {
		return fmt.Errorf("%w: segment start %q", ErrNodeNotFound, seg.Start)
	}
	end, ok := s.nodes[seg.End]
	if !ok {
		return fmt.Errorf("%w: segment end %q", ErrNodeNotFound, seg.End)
	}
	if s.taken(string(seg.ID)) {
		return fmt.Errorf("%w: segment %q", ErrDuplicateID, seg.ID)
	}
	if seg.seq == 0 {
		seg.seq = s.nextSeq()
	}
	s.segments[seg.ID] = seg
	start.incident[seg.ID] = struct{}{}
	end.incident[seg.ID] = struct{}{}

	return nil
}

// RemoveSegment deletes a segment that carries no wires, detaching it from
// both ends, and returns a copy of it.
//
// Errors: ErrSegmentNotFound, ErrSegmentInUse.
func (s *Store) RemoveSegment(id SegmentID) (Segment, error) {
	seg, ok := s.segments[id]
	if !ok {
		return Segment{}, fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	if len(seg.wires) > 0 {
		return Segment{}, fmt.Errorf("%w: %q carries %v", ErrSegmentInUse, id, seg.wires)
	}
	for _, end := range [2]NodeID{seg.Start, seg.End} {
		n, ok := s.nodes[end]
		if !ok {
			panic(fmt.Sprintf("core: segment %q references missing node %q", id, end))
		}
		delete(n.incident, id)
	}
	delete(s.segments, id)

	return seg.Clone(), nil
}

// Segment returns a copy of the segment with the given id.
func (s *Store) Segment(id SegmentID) (Segment, bool) {
	seg, ok := s.segments[id]
	if !ok {
		return Segment{}, false
	}
	return seg.Clone(), true
}

// HasSegment reports whether id names a segment.
func (s *Store) HasSegment(id SegmentID) bool {
	_, ok := s.segments[id]
	return ok
}

// Segments returns copies of all segments in insertion order.
func (s *Store) Segments() []Segment {
	out := make([]Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		out = append(out, seg.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// SegmentCount returns the number of segments.
func (s *Store) SegmentCount() int { return len(s.segments) }

// AttachWire registers w on segment id. Attaching twice is a no-op.
func (s *Store) AttachWire(id SegmentID, w WireID) error {
	seg, ok := s.segments[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	if indexOf(seg.wires, w) < 0 {
		seg.wires = append(seg.wires, w)
	}
	return nil
}

// DetachWire unregisters w from segment id. Detaching an absent wire is a no-op.
func (s *Store) DetachWire(id SegmentID, w WireID) error {
	seg, ok := s.segments[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	if i := indexOf(seg.wires, w); i >= 0 {
		seg.wires = append(seg.wires[:i:i], seg.wires[i+1:]...)
	}
	return nil
}

// SetSegmentBundle associates segment id with bundle b (empty clears it)
// and returns the previous association.
func (s *Store) SetSegmentBundle(id SegmentID, b BundleID) (BundleID, error) {
	seg, ok := s.segments[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	prev := seg.Bundle
	seg.Bundle = b

	return prev, nil
}

// SegmentLength returns the physical length of a segment: the specified
// length of its bundle when it mirrors one with an override, the Euclidean
// distance between its ends otherwise.
func (s *Store) SegmentLength(id SegmentID) (float64, error) {
	seg, ok := s.segments[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	if b, ok := s.bundles[seg.Bundle]; ok && b.SpecifiedLength != nil {
		return *b.SpecifiedLength, nil
	}
	return s.nodes[seg.Start].Position.Dist(s.nodes[seg.End].Position), nil
}
