// SPDX-License-Identifier: MIT

package core

import "fmt"

// Validate checks every store invariant and returns the first violation
// wrapped in ErrCorrupt.
//
// Checks:
//   - every segment has two distinct, existing ends that list it as incident;
//   - every incident entry names an existing segment touching the node;
//   - every bundle anchor names an existing node.
func (s *Store) Validate() error {
	for _, seg := range s.segments {
		if seg.Start == seg.End {
			return fmt.Errorf("%w: segment %q is a self loop", ErrCorrupt, seg.ID)
		}
		for _, end := range [2]NodeID{seg.Start, seg.End} {
			n, ok := s.nodes[end]
			if !ok {
				return fmt.Errorf("%w: segment %q references missing node %q", ErrCorrupt, seg.ID, end)
			}
			if _, ok := n.incident[seg.ID]; !ok {
				return fmt.Errorf("%w: node %q does not list segment %q", ErrCorrupt, end, seg.ID)
			}
		}
	}
	for _, n := range s.nodes {
		for sid := range n.incident {
			seg, ok := s.segments[sid]
			if !ok {
				return fmt.Errorf("%w: node %q lists missing segment %q", ErrCorrupt, n.ID, sid)
			}
			if !seg.Touches(n.ID) {
				return fmt.Errorf("%w: node %q lists foreign segment %q", ErrCorrupt, n.ID, sid)
			}
		}
	}
	for _, b := range s.bundles {
		for _, end := range [2]NodeID{b.StartNode, b.EndNode} {
			if end != "" && !s.HasNode(end) {
				return fmt.Errorf("%w: bundle %q anchors missing node %q", ErrCorrupt, b.ID, end)
			}
		}
	}
	return nil
}
