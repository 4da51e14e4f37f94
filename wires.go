// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

// checkEnds verifies that both ends of a wire are on placed connectors
// and listed pins.
func (d *Document) checkEnds(from, to wire.PinRef) error {
	for _, end := range []wire.PinRef{from, to} {
		c, ok := d.conns.get(end.Connector)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownConnector, end.Connector)
		}
		if strings.Contains(end.Pin, ".") {
			return fmt.Errorf("%w: pin name %q", wire.ErrInvalidPin, end.Pin)
		}
		if !c.HasPin(end.Pin) {
			return fmt.Errorf("%w: %s", ErrUnknownPin, end)
		}
	}
	return nil
}

// fill applies the document's wire defaults and id generation to spec.
func (d *Document) fill(spec wire.Spec) wire.Spec {
	if spec.ID == "" {
		spec.ID = d.topo.NewWireID()
	}
	if spec.Color == "" {
		spec.Color = d.defaultColor
	}
	if spec.CrossSection == 0 {
		spec.CrossSection = d.defaultCrossSection
	}
	return spec
}

// AddWire adds an unrouted wire between two pins and returns its id. An
// empty spec.ID is generated.
//
// Errors: ErrUnknownConnector, ErrUnknownPin, wire.ErrInvalidPin,
// wire.ErrDuplicateWire and
// the property errors of wire.FromSpec.
func (d *Document) AddWire(spec wire.Spec) (core.WireID, error) {
	if err := d.checkEnds(spec.From, spec.To); err != nil {
		return "", err
	}
	spec = d.fill(spec)
	if d.topo.HasWire(spec.ID) {
		return "", fmt.Errorf("%w: %q", wire.ErrDuplicateWire, spec.ID)
	}
	w, err := wire.FromSpec(spec)
	if err != nil {
		return "", err
	}
	if err := d.push(d.editor.AddWire(w)); err != nil {
		return "", err
	}
	return w.ID, nil
}

// RouteWire adds a wire from one pin to another along the existing
// topology, passing through via in order. Unconnected consecutive nodes
// get a direct segment.
func (d *Document) RouteWire(spec wire.Spec, via ...core.NodeID) (core.WireID, error) {
	if err := d.checkEnds(spec.From, spec.To); err != nil {
		return "", err
	}
	spec = d.fill(spec)
	cmd, r, err := d.editor.RouteWire(topology.Request{
		ID:           spec.ID,
		From:         spec.From,
		To:           spec.To,
		Via:          via,
		Color:        spec.Color,
		CrossSection: spec.CrossSection,
	})
	if err != nil {
		return "", err
	}
	if err := d.stack.Push(cmd); err != nil {
		return "", err
	}
	return r.Wire, nil
}

// DeleteWire removes wire id and drops it from every bundle holding it.
func (d *Document) DeleteWire(id core.WireID) error {
	if !d.topo.HasWire(id) {
		return fmt.Errorf("%w: %q", ErrUnknownWire, id)
	}
	w, _ := d.topo.Wire(id)
	return d.macro("Delete Wire", func() error {
		if err := d.push(d.editor.DeleteWire(id)); err != nil {
			return err
		}
		drop, err := d.settleOverlays([]wire.Wire{w})
		if err != nil {
			return err
		}
		return d.pruneBundles(drop)
	})
}

// settleOverlays keeps router overlays consistent after the wires in
// removed are gone. An overlay loses the removed sources and is removed
// with its last one. A surviving source left hidden without any overlay is
// shown again. It returns the wire ids bundles must drop: every removed
// wire, overlays included, and the sources of removed bundle-route
// overlays.
func (d *Document) settleOverlays(removed []wire.Wire) (map[core.WireID]bool, error) {
	removed = slices.Clone(removed)
	gone := make(map[core.WireID]bool, len(removed))
	for _, w := range removed {
		gone[w.ID] = true
	}
	for i := 0; i < len(removed); i++ {
		for _, ov := range d.topo.OverlaysOf(removed[i].ID, "") {
			kept := make([]core.WireID, 0, len(ov.Sources))
			for _, src := range ov.Sources {
				if !gone[src] {
					kept = append(kept, src)
				}
			}
			if len(kept) > 0 {
				if err := d.push(d.editor.SetSources(ov.ID, kept)); err != nil {
					return nil, err
				}
				continue
			}
			if err := d.push(d.editor.RemoveWire(ov.ID)); err != nil {
				return nil, err
			}
			gone[ov.ID] = true
			removed = append(removed, ov)
		}
	}
	drop := maps.Clone(gone)
	for _, w := range removed {
		if w.Origin == core.OriginManual {
			continue
		}
		for _, src := range w.Sources {
			if w.Origin == core.OriginBundleRoute {
				drop[src] = true
			}
			sw, ok := d.topo.Wire(src)
			if !ok || !sw.Hidden || len(d.topo.OverlaysOf(src, "")) > 0 {
				continue
			}
			if err := d.push(d.editor.SetHidden(src, false)); err != nil {
				return nil, err
			}
		}
	}
	return drop, nil
}

// UpdateWireProperties sets colour and cross-section of wire id. An
// empty color keeps the current one.
func (d *Document) UpdateWireProperties(id core.WireID, color string, crossSection float64) error {
	w, ok := d.topo.Wire(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWire, id)
	}
	p := edit.WireProps{Color: w.Color, CrossSection: crossSection}
	if color != "" {
		c, err := wire.ParseColor(color)
		if err != nil {
			return err
		}
		p.Color = c
	}
	return d.push(d.editor.UpdateWireProperties(id, p))
}

// SetWireHidden shows or hides wire id.
func (d *Document) SetWireHidden(id core.WireID, hidden bool) error {
	if !d.topo.HasWire(id) {
		return fmt.Errorf("%w: %q", ErrUnknownWire, id)
	}
	return d.push(d.editor.SetHidden(id, hidden))
}
