// SPDX-License-Identifier: MIT

package edit

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

// WireChange registers or unregisters one wire together with its segment
// memberships.
type WireChange struct {
	command.Base
	e       *Editor
	w       wire.Wire
	present bool
}

// Wire returns the snapshot of the wire the command adds or removes.
func (c *WireChange) Wire() wire.Wire { return c.w.Clone() }

// AddWire registers w now and returns the command recording it.
func (e *Editor) AddWire(w wire.Wire) (*WireChange, error) {
	if err := e.topo.AddWire(w); err != nil {
		return nil, err
	}
	stored, _ := e.topo.Wire(w.ID)
	c := &WireChange{Base: command.NewBase("Add Wire", true), e: e, w: stored, present: true}
	c.show()
	return c, nil
}

// RemoveWire unregisters wire id now and returns the command.
func (e *Editor) RemoveWire(id core.WireID) (*WireChange, error) {
	w, err := e.topo.RemoveWire(id)
	if err != nil {
		return nil, err
	}
	c := &WireChange{Base: command.NewBase("Remove Wire", true), e: e, w: w}
	c.hide()
	return c, nil
}

// DeleteWire returns a deferred command removing wire id when pushed.
func (e *Editor) DeleteWire(id core.WireID) (*WireChange, error) {
	w, ok := e.topo.Wire(id)
	if !ok {
		return nil, fmt.Errorf("%w: wire %q", topology.ErrStaleReference, id)
	}
	return &WireChange{Base: command.NewBase("Delete Wire", false), e: e, w: w}, nil
}

func (c *WireChange) Undo() { c.apply(!c.present) }

func (c *WireChange) Redo() {
	if c.SkipRedo() {
		return
	}
	c.apply(c.present)
}

func (c *WireChange) apply(insert bool) {
	if insert {
		if err := c.e.topo.RestoreWire(c.w); err != nil {
			c.e.replayErr(c.Description(), err)
			return
		}
		c.show()
		return
	}
	if _, err := c.e.topo.RemoveWire(c.w.ID); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.hide()
}

func (c *WireChange) show() {
	if !c.w.Hidden {
		c.e.scene.InsertVisual(scene.KindWire, string(c.w.ID))
	}
}

func (c *WireChange) hide() { c.e.scene.RemoveVisual(string(c.w.ID)) }

// WireHidden toggles the visibility of a wire.
type WireHidden struct {
	command.Base
	e             *Editor
	id            core.WireID
	before, after bool
}

// SetHidden changes the visibility of wire id now and returns the command.
func (e *Editor) SetHidden(id core.WireID, hidden bool) (*WireHidden, error) {
	prev, err := e.topo.SetHidden(id, hidden)
	if err != nil {
		return nil, err
	}
	desc := "Show Wire"
	if hidden {
		desc = "Hide Wire"
	}
	c := &WireHidden{Base: command.NewBase(desc, true), e: e, id: id, before: prev, after: hidden}
	c.visual(hidden)
	return c, nil
}

func (c *WireHidden) Undo() { c.set(c.before) }

func (c *WireHidden) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.after)
}

func (c *WireHidden) set(hidden bool) {
	if _, err := c.e.topo.SetHidden(c.id, hidden); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.visual(hidden)
}

func (c *WireHidden) visual(hidden bool) {
	if hidden {
		c.e.scene.RemoveVisual(string(c.id))
	} else {
		c.e.scene.InsertVisual(scene.KindWire, string(c.id))
	}
}

// WireSources replaces the source list of a router overlay.
type WireSources struct {
	command.Base
	e             *Editor
	id            core.WireID
	before, after []core.WireID
}

// SetSources replaces the sources of wire id now and returns the command.
func (e *Editor) SetSources(id core.WireID, sources []core.WireID) (*WireSources, error) {
	w, ok := e.topo.Wire(id)
	if !ok {
		return nil, fmt.Errorf("%w: wire %q", topology.ErrStaleReference, id)
	}
	prev := w.Sources
	w.Sources = slices.Clone(sources)
	if _, err := e.topo.UpdateWire(w); err != nil {
		return nil, err
	}
	return &WireSources{Base: command.NewBase("Update Wire Sources", true), e: e, id: id, before: prev, after: w.Sources}, nil
}

func (c *WireSources) Undo() { c.set(c.before) }

func (c *WireSources) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.after)
}

func (c *WireSources) set(src []core.WireID) {
	w, ok := c.e.topo.Wire(c.id)
	if !ok {
		c.e.stale(c.Description(), fmt.Errorf("%w: wire %q", topology.ErrStaleReference, c.id))
		return
	}
	w.Sources = slices.Clone(src)
	if _, err := c.e.topo.UpdateWire(w); err != nil {
		c.e.replayErr(c.Description(), err)
	}
}

// WireProps are the electrical properties an edit may change.
type WireProps struct {
	Color        wire.Color
	CrossSection float64
}

// WireProperties changes colour and cross-section of a wire.
type WireProperties struct {
	command.Base
	e             *Editor
	id            core.WireID
	before, after WireProps
}

// UpdateWireProperties returns a deferred command applying p to wire id.
func (e *Editor) UpdateWireProperties(id core.WireID, p WireProps) (*WireProperties, error) {
	w, ok := e.topo.Wire(id)
	if !ok {
		return nil, fmt.Errorf("%w: wire %q", topology.ErrStaleReference, id)
	}
	if p.CrossSection <= 0 {
		return nil, fmt.Errorf("%w: %g", wire.ErrInvalidCrossSection, p.CrossSection)
	}
	before := WireProps{Color: w.Color, CrossSection: w.CrossSection}
	return &WireProperties{Base: command.NewBase("Edit Wire Properties", false), e: e, id: id, before: before, after: p}, nil
}

// Before returns the properties the command restores on undo.
func (c *WireProperties) Before() WireProps { return c.before }

func (c *WireProperties) Undo() { c.set(c.before) }

func (c *WireProperties) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.after)
}

func (c *WireProperties) set(p WireProps) {
	w, ok := c.e.topo.Wire(c.id)
	if !ok {
		c.e.stale(c.Description(), fmt.Errorf("%w: wire %q", topology.ErrStaleReference, c.id))
		return
	}
	w.Color = p.Color
	w.CrossSection = p.CrossSection
	if _, err := c.e.topo.UpdateWire(w); err != nil {
		c.e.replayErr(c.Description(), err)
	}
}

// RouteWire routes req now and returns one compound recording every
// segment Route had to create followed by the new wire.
func (e *Editor) RouteWire(req topology.Request) (*command.Compound, topology.Routed, error) {
	r, err := e.topo.Route(req)
	if err != nil {
		return nil, topology.Routed{}, err
	}
	out := command.NewCompound("Route Wire")
	for _, sid := range r.Created {
		out.Add(e.recordSegment(sid))
	}
	w, _ := e.topo.Wire(r.Wire)
	wc := &WireChange{Base: command.NewBase("Add Wire", true), e: e, w: w, present: true}
	wc.show()
	out.Add(wc)
	return out, r, nil
}

// recordSegment builds the command for a segment that already exists.
func (e *Editor) recordSegment(id core.SegmentID) *SegmentChange {
	seg, _ := e.store().Segment(id)
	e.scene.InsertVisual(scene.KindSegment, string(id))
	return &SegmentChange{Base: command.NewBase("Add Segment", true), e: e, seg: seg, present: true}
}
