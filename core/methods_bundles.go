// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
)

// AddBundle inserts b, generating an id when b.ID is empty. A bundle
// returned by RemoveBundle keeps its insertion position when re-added.
//
// Errors: ErrDuplicateID, ErrNodeNotFound (anchor names an unknown node).
func (s *Store) AddBundle(b Bundle) (BundleID, error) {
	b = b.Clone()
	if b.ID == "" {
		b.ID = BundleID(s.NewID(PrefixBundle))
	}
	if s.taken(string(b.ID)) {
		return "", fmt.Errorf("%w: bundle %q", ErrDuplicateID, b.ID)
	}
	if err := s.checkAnchors(b); err != nil {
		return "", err
	}
	if b.seq == 0 {
		b.seq = s.nextSeq()
	}
	s.bundles[b.ID] = &b

	return b.ID, nil
}

// UpdateBundle replaces the stored bundle with the same id and returns the
// previous value. The insertion position is kept.
func (s *Store) UpdateBundle(b Bundle) (Bundle, error) {
	cur, ok := s.bundles[b.ID]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", ErrBundleNotFound, b.ID)
	}
	if err := s.checkAnchors(b); err != nil {
		return Bundle{}, err
	}
	prev := cur.Clone()
	next := b.Clone()
	next.seq = cur.seq
	s.bundles[b.ID] = &next

	return prev, nil
}

func (s *Store) checkAnchors(b Bundle) error {
	for _, n := range [2]NodeID{b.StartNode, b.EndNode} {
		if n != "" && !s.HasNode(n) {
			return fmt.Errorf("%w: bundle %q anchor %q", ErrNodeNotFound, b.ID, n)
		}
	}
	return nil
}

// RemoveBundle deletes a bundle and returns a copy of it. Segments that
// mirrored the bundle keep their (now dangling) association; callers clear
// it through SetSegmentBundle when they need to.
func (s *Store) RemoveBundle(id BundleID) (Bundle, error) {
	b, ok := s.bundles[id]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", ErrBundleNotFound, id)
	}
	delete(s.bundles, id)
	return b.Clone(), nil
}

// Bundle returns a copy of the bundle with the given id.
func (s *Store) Bundle(id BundleID) (Bundle, bool) {
	b, ok := s.bundles[id]
	if !ok {
		return Bundle{}, false
	}
	return b.Clone(), true
}

// HasBundle reports whether id names a bundle.
func (s *Store) HasBundle(id BundleID) bool {
	_, ok := s.bundles[id]
	return ok
}

// Bundles returns copies of all bundles in insertion order.
func (s *Store) Bundles() []Bundle {
	out := make([]Bundle, 0, len(s.bundles))
	for _, b := range s.bundles {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// BundleCount returns the number of bundles.
func (s *Store) BundleCount() int { return len(s.bundles) }
