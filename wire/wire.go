// SPDX-License-Identifier: MIT

package wire

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/harness/core"
)

// DefaultCrossSection is the cross-section, in mm², of wires created without one.
const DefaultCrossSection = 1.0

// PinRef names one pin of one connector.
type PinRef struct {
	Connector string `json:"connector" yaml:"connector" validate:"required"`
	Pin       string `json:"pin" yaml:"pin"`
}

// ParsePinRef parses "C1.3"; without a dot the whole string is the connector.
func ParsePinRef(s string) (PinRef, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		if s == "" {
			return PinRef{}, fmt.Errorf("%w: empty", ErrInvalidPin)
		}
		return PinRef{Connector: s}, nil
	}
	if i == 0 {
		return PinRef{}, fmt.Errorf("%w: %q has no connector", ErrInvalidPin, s)
	}
	return PinRef{Connector: s[:i], Pin: s[i+1:]}, nil
}

func (p PinRef) String() string {
	if p.Pin == "" {
		return p.Connector
	}
	return p.Connector + "." + p.Pin
}

// Node returns the topology node id of the pin's connector.
func (p PinRef) Node() core.NodeID { return core.ConnectorNodeID(p.Connector) }

// Spec is the router-facing description of a wire: identity, ends and
// electrical properties, no path.
type Spec struct {
	ID           core.WireID `json:"id" yaml:"id" validate:"required"`
	From         PinRef      `json:"from" yaml:"from"`
	To           PinRef      `json:"to" yaml:"to"`
	Color        string      `json:"color,omitempty" yaml:"color,omitempty"`
	CrossSection float64     `json:"cross_section,omitempty" yaml:"cross_section,omitempty" validate:"gte=0"`
}

// Wire is an electrical connection between two pins and, once routed, the
// ordered segments it runs through.
type Wire struct {
	ID           core.WireID
	From         PinRef
	To           PinRef
	Segments     []core.SegmentID
	Color        Color
	CrossSection float64
	Length       float64
	Origin       core.Origin
	Hidden       bool
	// Sources lists the user wires an overlay wire was routed for.
	Sources []core.WireID

	seq uint64
}

// FromSpec builds an unrouted wire from spec, applying DefaultColor and
// DefaultCrossSection for missing values.
func FromSpec(spec Spec) (Wire, error) {
	if spec.From.Connector == "" || spec.To.Connector == "" {
		return Wire{}, fmt.Errorf("%w: wire %q needs both ends", ErrInvalidPin, spec.ID)
	}
	color, err := ParseColor(spec.Color)
	if err != nil {
		return Wire{}, fmt.Errorf("wire %q: %w", spec.ID, err)
	}
	cs := spec.CrossSection
	if cs == 0 {
		cs = DefaultCrossSection
	}
	if cs < 0 {
		return Wire{}, fmt.Errorf("%w: wire %q has %g", ErrInvalidCrossSection, spec.ID, cs)
	}
	return Wire{
		ID:           spec.ID,
		From:         spec.From,
		To:           spec.To,
		Color:        color,
		CrossSection: cs,
	}, nil
}

// Spec returns the routing description of w.
func (w Wire) Spec() Spec {
	return Spec{ID: w.ID, From: w.From, To: w.To, Color: w.Color.Code(), CrossSection: w.CrossSection}
}

// Routed reports whether w runs through at least one segment.
func (w Wire) Routed() bool { return len(w.Segments) > 0 }

// Touches reports whether either end of w is on connector cid.
func (w Wire) Touches(cid string) bool { return w.From.Connector == cid || w.To.Connector == cid }

// Clone returns a detached copy of w.
func (w Wire) Clone() Wire {
	w.Segments = append([]core.SegmentID(nil), w.Segments...)
	w.Sources = append([]core.WireID(nil), w.Sources...)
	return w
}

// PathNodes returns the nodes w passes through, from its From connector node
// to its To connector node. An unrouted wire yields an empty path.
func PathNodes(s *core.Store, w Wire) ([]core.NodeID, error) {
	if len(w.Segments) == 0 {
		return []core.NodeID{}, nil
	}
	nodes, ok := s.WalkNodes(w.From.Node(), w.Segments)
	if !ok {
		return nil, fmt.Errorf("%w: wire %q from %q", ErrBrokenPath, w.ID, w.From.Node())
	}
	if last := nodes[len(nodes)-1]; last != w.To.Node() {
		return nil, fmt.Errorf("%w: wire %q ends at %q, want %q", ErrBrokenPath, w.ID, last, w.To.Node())
	}
	return nodes, nil
}

// PathLength sums the physical lengths of segs.
func PathLength(s *core.Store, segs []core.SegmentID) (float64, error) {
	var total float64
	for _, sid := range segs {
		l, err := s.SegmentLength(sid)
		if err != nil {
			return 0, err
		}
		total += l
	}
	return total, nil
}
