// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// AddWire registers w and attaches it to every segment of its path.
// A routed wire must have a contiguous path between its connector nodes;
// an unrouted one only needs an id. The cached length is recomputed.
func (m *Manager) AddWire(w wire.Wire) error {
	if m.wires.Has(w.ID) {
		return fmt.Errorf("%w: %q", wire.ErrDuplicateWire, w.ID)
	}
	if err := m.checkPath(w); err != nil {
		return err
	}
	if err := m.measure(&w); err != nil {
		return err
	}
	if err := m.wires.Add(w); err != nil {
		return err
	}
	m.attach(w.ID, w.Segments)
	return nil
}

// RestoreWire re-registers a wire returned by RemoveWire. It keeps the
// wire's place in insertion order.
func (m *Manager) RestoreWire(w wire.Wire) error { return m.AddWire(w) }

// RemoveWire unregisters a wire, detaches it from its segments and
// returns it. Errors wrap ErrStaleReference.
func (m *Manager) RemoveWire(id core.WireID) (wire.Wire, error) {
	w, err := m.wires.Remove(id)
	if err != nil {
		return wire.Wire{}, fmt.Errorf("%w: %w", ErrStaleReference, err)
	}
	m.detach(id, w.Segments)
	return w, nil
}

// UpdateWire replaces the stored wire with the same id, moving it between
// segments when the path changed, and returns the previous value.
func (m *Manager) UpdateWire(w wire.Wire) (wire.Wire, error) {
	prev, ok := m.wires.Get(w.ID)
	if !ok {
		return wire.Wire{}, fmt.Errorf("%w: wire %q", ErrStaleReference, w.ID)
	}
	if err := m.checkPath(w); err != nil {
		return wire.Wire{}, err
	}
	if err := m.measure(&w); err != nil {
		return wire.Wire{}, err
	}
	if _, err := m.wires.Update(w); err != nil {
		return wire.Wire{}, err
	}
	if !slices.Equal(prev.Segments, w.Segments) {
		m.detach(w.ID, without(prev.Segments, w.Segments))
		m.attach(w.ID, without(w.Segments, prev.Segments))
	}
	return prev, nil
}

// SetWirePath replaces the path of wire id and returns the previous path.
func (m *Manager) SetWirePath(id core.WireID, segs []core.SegmentID) ([]core.SegmentID, error) {
	w, ok := m.wires.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: wire %q", ErrStaleReference, id)
	}
	w.Segments = append([]core.SegmentID(nil), segs...)
	prev, err := m.UpdateWire(w)
	if err != nil {
		return nil, err
	}
	return prev.Segments, nil
}

// SetHidden changes the visibility flag of a wire and returns the old one.
func (m *Manager) SetHidden(id core.WireID, hidden bool) (bool, error) {
	w, ok := m.wires.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: wire %q", ErrStaleReference, id)
	}
	prev := w.Hidden
	w.Hidden = hidden
	if _, err := m.wires.Update(w); err != nil {
		return false, err
	}
	return prev, nil
}

// Wire returns a copy of wire id.
func (m *Manager) Wire(id core.WireID) (wire.Wire, bool) { return m.wires.Get(id) }

// HasWire reports whether id names a registered wire.
func (m *Manager) HasWire(id core.WireID) bool { return m.wires.Has(id) }

// Wires returns all registered wires in insertion order.
func (m *Manager) Wires() []wire.Wire { return m.wires.All() }

// WiresWhere returns the registered wires for which keep is true.
func (m *Manager) WiresWhere(keep func(wire.Wire) bool) []wire.Wire { return m.wires.Filter(keep) }

// PathNodes returns the nodes wire id passes through, in order.
func (m *Manager) PathNodes(id core.WireID) ([]core.NodeID, error) {
	w, ok := m.wires.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: wire %q", ErrStaleReference, id)
	}
	return wire.PathNodes(m.store, w)
}

func (m *Manager) checkPath(w wire.Wire) error {
	for _, sid := range w.Segments {
		if !m.store.HasSegment(sid) {
			return fmt.Errorf("%w: wire %q uses segment %q", ErrStaleReference, w.ID, sid)
		}
	}
	_, err := wire.PathNodes(m.store, w)
	return err
}

func (m *Manager) measure(w *wire.Wire) error {
	l, err := wire.PathLength(m.store, w.Segments)
	if err != nil {
		return err
	}
	w.Length = l
	return nil
}

// attach and detach assume checkPath already passed; a failure here means
// the store and the wire set disagree.
func (m *Manager) attach(id core.WireID, segs []core.SegmentID) {
	for _, sid := range segs {
		if err := m.store.AttachWire(sid, id); err != nil {
			panic(fmt.Sprintf("topology: attach %q: %v", id, err))
		}
	}
}

func (m *Manager) detach(id core.WireID, segs []core.SegmentID) {
	for _, sid := range segs {
		if err := m.store.DetachWire(sid, id); err != nil {
			panic(fmt.Sprintf("topology: detach %q: %v", id, err))
		}
	}
}

// without returns the elements of a that are not in b.
func without(a, b []core.SegmentID) []core.SegmentID {
	var out []core.SegmentID
	for _, x := range a {
		if !slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

// Remeasure recomputes the cached length of every wire running through a
// segment incident to n. Called after n moved.
func (m *Manager) Remeasure(n core.NodeID) {
	seen := make(map[core.WireID]bool)
	for _, sid := range m.store.Incident(n) {
		seg, _ := m.store.Segment(sid)
		for _, wid := range seg.Wires() {
			if seen[wid] {
				continue
			}
			seen[wid] = true
			w, ok := m.wires.Get(wid)
			if !ok {
				continue
			}
			if err := m.measure(&w); err == nil {
				_, _ = m.wires.Update(w)
			}
		}
	}
}

// RemeasureBundle recomputes the cached length of every wire running
// through a segment that mirrors bundle b. Called after b's length changed.
func (m *Manager) RemeasureBundle(b core.BundleID) {
	for _, seg := range m.store.Segments() {
		if seg.Bundle != b {
			continue
		}
		for _, wid := range seg.Wires() {
			w, ok := m.wires.Get(wid)
			if !ok {
				continue
			}
			if err := m.measure(&w); err == nil {
				_, _ = m.wires.Update(w)
			}
		}
	}
}

// OverlaysOf returns the overlay wires that list src among their sources,
// optionally ignoring the overlay named skip.
func (m *Manager) OverlaysOf(src, skip core.WireID) []wire.Wire {
	return m.wires.Filter(func(w wire.Wire) bool {
		return w.ID != skip && w.Origin != core.OriginManual && slices.Contains(w.Sources, src)
	})
}
