// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/persist"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/wire"
)

// Snapshot flattens the document into its persisted form.
func (d *Document) Snapshot() persist.Snapshot {
	st := d.Store()
	snap := persist.Snapshot{Version: persist.Version}

	for _, c := range d.Connectors() {
		snap.Connectors = append(snap.Connectors, persist.Connector{
			ID:           c.ID,
			Name:         c.Props.Name,
			PartNumber:   c.Props.PartNumber,
			Manufacturer: c.Props.Manufacturer,
			X:            c.Position.X,
			Y:            c.Position.Y,
			Rotation:     c.Rotation,
			Pins:         append([]string(nil), c.Pins...),
		})
	}
	for _, n := range st.Nodes() {
		pn := persist.Node{ID: string(n.ID), Kind: n.Kind.Tag().String(), X: n.Position.X, Y: n.Position.Y, Origin: originText(n.Origin)}
		switch k := n.Kind.(type) {
		case core.ConnectorKind:
			pn.Connector = k.ConnectorID
		case core.BranchPointKind:
			pn.BranchType = k.Type.String()
		case core.FastenerKind:
			pn.FastenerType = k.Type
			pn.PartNumber = k.PartNumber
		}
		snap.Nodes = append(snap.Nodes, pn)
	}
	for _, b := range st.Bundles() {
		snap.Bundles = append(snap.Bundles, persist.Bundle{
			ID:        string(b.ID),
			StartX:    b.Start.X,
			StartY:    b.Start.Y,
			EndX:      b.End.X,
			EndY:      b.End.Y,
			StartNode: string(b.StartNode),
			EndNode:   string(b.EndNode),
			Length:    b.SpecifiedLength,
			Wires:     strs(b.WireIDs),
		})
	}
	for _, seg := range st.Segments() {
		snap.Branches = append(snap.Branches, persist.Branch{
			ID:     string(seg.ID),
			Start:  string(seg.Start),
			End:    string(seg.End),
			Bundle: string(seg.Bundle),
			Origin: originText(seg.Origin),
			Wires:  strs(seg.Wires()),
		})
	}
	for _, w := range d.topo.Wires() {
		snap.Wires = append(snap.Wires, persist.Wire{
			ID:           string(w.ID),
			From:         w.From.String(),
			To:           w.To.String(),
			Color:        w.Color.Code(),
			CrossSection: w.CrossSection,
			Segments:     strs(w.Segments),
			Origin:       originText(w.Origin),
			Hidden:       w.Hidden,
			Sources:      strs(w.Sources),
		})
	}
	return snap
}

// FromSnapshot validates snap and rebuilds a document from it. Connector
// nodes missing from snap.Nodes are placed at their connector's position.
// The history of the new document is empty and clean.
func FromSnapshot(snap persist.Snapshot, opts ...Option) (*Document, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	d := New(opts...)
	st := d.Store()

	for _, pc := range snap.Connectors {
		c := Connector{
			ID:       pc.ID,
			Position: core.Point{X: pc.X, Y: pc.Y},
			Rotation: pc.Rotation,
			Pins:     pc.Pins,
			Props:    Props{Name: pc.Name, PartNumber: pc.PartNumber, Manufacturer: pc.Manufacturer},
		}
		if err := d.conns.add(c); err != nil {
			return nil, err
		}
	}
	for _, pn := range snap.Nodes {
		kind, err := nodeKind(pn)
		if err != nil {
			return nil, fmt.Errorf("harness: node %q: %w", pn.ID, err)
		}
		origin, err := core.ParseOrigin(pn.Origin)
		if err != nil {
			return nil, fmt.Errorf("harness: node %q: %w", pn.ID, err)
		}
		at := core.Point{X: pn.X, Y: pn.Y}
		if _, err := st.AddNode(kind, at, core.WithNodeID(core.NodeID(pn.ID)), core.WithNodeOrigin(origin)); err != nil {
			return nil, fmt.Errorf("harness: node %q: %w", pn.ID, err)
		}
	}
	for _, c := range d.conns.all() {
		if st.HasNode(c.Node()) {
			continue
		}
		if _, err := st.AddNode(core.ConnectorKind{ConnectorID: c.ID}, c.Position); err != nil {
			return nil, fmt.Errorf("harness: connector %q: %w", c.ID, err)
		}
	}
	for _, pb := range snap.Bundles {
		b := core.Bundle{
			ID:              core.BundleID(pb.ID),
			Start:           core.Point{X: pb.StartX, Y: pb.StartY},
			End:             core.Point{X: pb.EndX, Y: pb.EndY},
			StartNode:       core.NodeID(pb.StartNode),
			EndNode:         core.NodeID(pb.EndNode),
			SpecifiedLength: pb.Length,
			WireIDs:         ids[core.WireID](pb.Wires),
		}
		if _, err := st.AddBundle(b); err != nil {
			return nil, fmt.Errorf("harness: bundle %q: %w", pb.ID, err)
		}
	}
	for _, br := range snap.Branches {
		origin, err := core.ParseOrigin(br.Origin)
		if err != nil {
			return nil, fmt.Errorf("harness: branch %q: %w", br.ID, err)
		}
		if _, err := st.AddSegment(core.NodeID(br.Start), core.NodeID(br.End),
			core.WithSegmentID(core.SegmentID(br.ID)),
			core.WithSegmentOrigin(origin),
			core.WithSegmentBundle(core.BundleID(br.Bundle)),
		); err != nil {
			return nil, fmt.Errorf("harness: branch %q: %w", br.ID, err)
		}
	}
	for _, pw := range snap.Wires {
		w, err := restoredWire(pw)
		if err != nil {
			return nil, fmt.Errorf("harness: wire %q: %w", pw.ID, err)
		}
		if err := d.topo.AddWire(w); err != nil {
			return nil, fmt.Errorf("harness: wire %q: %w", pw.ID, err)
		}
	}
	d.showAll()
	return d, nil
}

func nodeKind(pn persist.Node) (core.Kind, error) {
	tag, err := core.ParseKindTag(pn.Kind)
	if err != nil {
		return nil, err
	}
	switch tag {
	case core.TagConnector:
		return core.ConnectorKind{ConnectorID: pn.Connector}, nil
	case core.TagJunction:
		return core.JunctionKind{}, nil
	case core.TagBranchPoint:
		bt, err := core.ParseBranchType(pn.BranchType)
		if err != nil {
			return nil, err
		}
		return core.BranchPointKind{Type: bt}, nil
	default:
		return core.FastenerKind{Type: pn.FastenerType, PartNumber: pn.PartNumber}, nil
	}
}

func restoredWire(pw persist.Wire) (wire.Wire, error) {
	from, err := wire.ParsePinRef(pw.From)
	if err != nil {
		return wire.Wire{}, err
	}
	to, err := wire.ParsePinRef(pw.To)
	if err != nil {
		return wire.Wire{}, err
	}
	w, err := wire.FromSpec(wire.Spec{ID: core.WireID(pw.ID), From: from, To: to, Color: pw.Color, CrossSection: pw.CrossSection})
	if err != nil {
		return wire.Wire{}, err
	}
	if w.Origin, err = core.ParseOrigin(pw.Origin); err != nil {
		return wire.Wire{}, err
	}
	w.Segments = ids[core.SegmentID](pw.Segments)
	w.Hidden = pw.Hidden
	w.Sources = ids[core.WireID](pw.Sources)
	return w, nil
}

// showAll inserts a visual for every entity of a freshly loaded document.
func (d *Document) showAll() {
	for _, c := range d.conns.all() {
		d.scene.InsertVisual(scene.KindConnector, c.ID)
	}
	st := d.Store()
	for _, n := range st.Nodes() {
		d.scene.InsertVisual(scene.KindNode, string(n.ID))
	}
	for _, b := range st.Bundles() {
		d.scene.InsertVisual(scene.KindBundle, string(b.ID))
	}
	for _, seg := range st.Segments() {
		d.scene.InsertVisual(scene.KindSegment, string(seg.ID))
	}
	for _, w := range d.topo.Wires() {
		if !w.Hidden {
			d.scene.InsertVisual(scene.KindWire, string(w.ID))
		}
	}
}

// originText leaves manual origins out of the persisted form.
func originText(o core.Origin) string {
	if o == core.OriginManual {
		return ""
	}
	return o.String()
}

func strs[T ~string](in []T) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func ids[T ~string](in []string) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}
