// SPDX-License-Identifier: MIT

package wire

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/harness/core"
)

// Set is an id-keyed collection of wires kept in insertion order.
// A wire removed and added back returns to its original position.
type Set struct {
	byID map[core.WireID]*Wire
	seq  uint64
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byID: make(map[core.WireID]*Wire)}
}

// Add inserts w. Errors: ErrDuplicateWire.
func (s *Set) Add(w Wire) error {
	if _, ok := s.byID[w.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateWire, w.ID)
	}
	w = w.Clone()
	if w.seq == 0 {
		s.seq++
		w.seq = s.seq
	}
	s.byID[w.ID] = &w
	return nil
}

// Update replaces the wire with the same id and returns the previous value.
func (s *Set) Update(w Wire) (Wire, error) {
	cur, ok := s.byID[w.ID]
	if !ok {
		return Wire{}, fmt.Errorf("%w: %q", ErrWireNotFound, w.ID)
	}
	prev := cur.Clone()
	next := w.Clone()
	next.seq = cur.seq
	s.byID[w.ID] = &next
	return prev, nil
}

// Remove deletes a wire and returns it.
func (s *Set) Remove(id core.WireID) (Wire, error) {
	w, ok := s.byID[id]
	if !ok {
		return Wire{}, fmt.Errorf("%w: %q", ErrWireNotFound, id)
	}
	delete(s.byID, id)
	return w.Clone(), nil
}

// Get returns a copy of the wire with the given id.
func (s *Set) Get(id core.WireID) (Wire, bool) {
	w, ok := s.byID[id]
	if !ok {
		return Wire{}, false
	}
	return w.Clone(), true
}

// Has reports whether id is in the set.
func (s *Set) Has(id core.WireID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of wires.
func (s *Set) Len() int { return len(s.byID) }

// All returns copies of all wires in insertion order.
func (s *Set) All() []Wire {
	return s.Filter(func(Wire) bool { return true })
}

// Filter returns the wires for which keep returns true, in insertion order.
func (s *Set) Filter(keep func(Wire) bool) []Wire {
	out := make([]Wire, 0, len(s.byID))
	for _, w := range s.byID {
		if keep(*w) {
			out = append(out, w.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
