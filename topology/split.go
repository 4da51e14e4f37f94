// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"

	"github.com/katalvlaran/harness/core"
)

// SplitSegment inserts a junction at at into segment seg and returns the
// two halves (start→junction, junction→end). With createJunction false it
// changes nothing and returns (seg, seg).
func (m *Manager) SplitSegment(seg core.SegmentID, at core.Point, createJunction bool) (core.SegmentID, core.SegmentID, error) {
	if !createJunction {
		if !m.store.HasSegment(seg) {
			return "", "", fmt.Errorf("%w: segment %q", ErrStaleReference, seg)
		}
		return seg, seg, nil
	}
	s, err := m.Split(seg, at)
	if err != nil {
		return "", "", err
	}
	return s.First.ID, s.Second.ID, nil
}

// Split performs SplitSegment with a junction and returns everything needed
// to reverse it. Every wire on the old segment is given both halves at the
// position the old segment held in its path, ordered by the direction the
// wire travels; the old segment is then deleted.
func (m *Manager) Split(seg core.SegmentID, at core.Point) (Split, error) {
	old, ok := m.store.Segment(seg)
	if !ok {
		return Split{}, fmt.Errorf("%w: segment %q", ErrStaleReference, seg)
	}
	if old.Start == old.End {
		return Split{}, fmt.Errorf("%w: segment %q is degenerate", ErrInvalidSplit, seg)
	}

	jid, err := m.store.AddNode(core.JunctionKind{}, at, core.WithNodeOrigin(old.Origin))
	if err != nil {
		return Split{}, err
	}
	opts := []core.SegmentOption{core.WithSegmentOrigin(old.Origin), core.WithSegmentBundle(old.Bundle)}
	firstID, err := m.store.AddSegment(old.Start, jid, opts...)
	if err != nil {
		return Split{}, err
	}
	secondID, err := m.store.AddSegment(jid, old.End, opts...)
	if err != nil {
		return Split{}, err
	}
	out := Split{Old: old}
	out.Junction, _ = m.store.Node(jid)
	out.First, _ = m.store.Segment(firstID)
	out.Second, _ = m.store.Segment(secondID)

	for _, wid := range old.Wires() {
		w, ok := m.wires.Get(wid)
		if !ok {
			panic(fmt.Sprintf("topology: segment %q carries unknown wire %q", seg, wid))
		}
		after := splicePath(m.store, w.From.Node(), w.Segments, old, firstID, secondID)
		if _, err := m.SetWirePath(wid, after); err != nil {
			panic(fmt.Sprintf("topology: rewire %q after split: %v", wid, err))
		}
		out.Paths = append(out.Paths, WirePath{Wire: wid, Before: w.Segments, After: after})
	}
	if _, err := m.store.RemoveSegment(seg); err != nil {
		panic(fmt.Sprintf("topology: remove split segment %q: %v", seg, err))
	}
	return out, nil
}

// Unsplit reverses a Split: the old segment comes back with its wires, the
// halves and the junction go away.
func (m *Manager) Unsplit(s Split) error {
	if err := m.store.RestoreSegment(s.Old.WithWires()); err != nil {
		return err
	}
	for _, p := range s.Paths {
		if _, err := m.SetWirePath(p.Wire, p.Before); err != nil {
			return err
		}
	}
	for _, sid := range []core.SegmentID{s.Second.ID, s.First.ID} {
		if _, err := m.store.RemoveSegment(sid); err != nil {
			return err
		}
	}
	_, err := m.store.RemoveNode(s.Junction.ID)
	return err
}

// Resplit re-applies a Split recorded earlier, reusing all of its ids.
func (m *Manager) Resplit(s Split) error {
	if err := m.store.RestoreNode(s.Junction); err != nil {
		return err
	}
	for _, seg := range []core.Segment{s.First, s.Second} {
		if err := m.store.RestoreSegment(seg.WithWires()); err != nil {
			return err
		}
	}
	for _, p := range s.Paths {
		if _, err := m.SetWirePath(p.Wire, p.After); err != nil {
			return err
		}
	}
	_, err := m.store.RemoveSegment(s.Old.ID)
	return err
}

// splicePath replaces every occurrence of old in path by its two halves,
// oriented the way the walk from start enters old.
func splicePath(s *core.Store, start core.NodeID, path []core.SegmentID, old core.Segment, first, second core.SegmentID) []core.SegmentID {
	nodes, walked := s.WalkNodes(start, path)
	out := make([]core.SegmentID, 0, len(path)+1)
	for i, sid := range path {
		if sid != old.ID {
			out = append(out, sid)
			continue
		}
		if walked && nodes[i] == old.End {
			out = append(out, second, first)
		} else {
			out = append(out, first, second)
		}
	}
	return out
}
