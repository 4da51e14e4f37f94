// SPDX-License-Identifier: MIT

package edit

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/topology"
)

// SegmentChange inserts or removes one segment. Removal requires the
// segment to carry no wires, so a restored segment is always empty.
type SegmentChange struct {
	command.Base
	e       *Editor
	seg     core.Segment
	present bool
}

// Segment returns the snapshot of the segment the command adds or removes.
func (c *SegmentChange) Segment() core.Segment { return c.seg }

// AddSegment joins a and b now and returns the command recording it.
func (e *Editor) AddSegment(a, b core.NodeID, opts ...core.SegmentOption) (*SegmentChange, error) {
	id, err := e.store().AddSegment(a, b, opts...)
	if err != nil {
		return nil, err
	}
	seg, _ := e.store().Segment(id)
	e.scene.InsertVisual(scene.KindSegment, string(id))
	return &SegmentChange{Base: command.NewBase("Add Segment", true), e: e, seg: seg, present: true}, nil
}

// RemoveSegment removes an empty segment now and returns the command.
func (e *Editor) RemoveSegment(id core.SegmentID) (*SegmentChange, error) {
	seg, err := e.store().RemoveSegment(id)
	if err != nil {
		return nil, err
	}
	e.scene.RemoveVisual(string(id))
	return &SegmentChange{Base: command.NewBase("Remove Segment", true), e: e, seg: seg}, nil
}

func (c *SegmentChange) Undo() { c.apply(!c.present) }

func (c *SegmentChange) Redo() {
	if c.SkipRedo() {
		return
	}
	c.apply(c.present)
}

func (c *SegmentChange) apply(insert bool) {
	st := c.e.store()
	if insert {
		err := st.RestoreSegment(c.seg.WithWires())
		if errors.Is(err, core.ErrNodeNotFound) {
			panic(fmt.Sprintf("edit: %s %q: %v", c.Description(), c.seg.ID, err))
		}
		if err != nil {
			c.e.replayErr(c.Description(), err)
			return
		}
		c.e.scene.InsertVisual(scene.KindSegment, string(c.seg.ID))
		return
	}
	if _, err := st.RemoveSegment(c.seg.ID); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.e.scene.RemoveVisual(string(c.seg.ID))
}

// SegmentSplit records a junction inserted into a segment.
type SegmentSplit struct {
	command.Base
	e     *Editor
	split topology.Split
}

// Result returns the recorded split.
func (c *SegmentSplit) Result() topology.Split { return c.split }

// SplitSegment splits seg at at now and returns the command.
func (e *Editor) SplitSegment(seg core.SegmentID, at core.Point) (*SegmentSplit, error) {
	s, err := e.topo.Split(seg, at)
	if err != nil {
		return nil, err
	}
	c := &SegmentSplit{Base: command.NewBase("Split Segment", true), e: e, split: s}
	c.showSplit()
	return c, nil
}

func (c *SegmentSplit) Undo() {
	if err := c.e.topo.Unsplit(c.split); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	sc := c.e.scene
	sc.RemoveVisual(string(c.split.First.ID))
	sc.RemoveVisual(string(c.split.Second.ID))
	sc.RemoveVisual(string(c.split.Junction.ID))
	sc.InsertVisual(scene.KindSegment, string(c.split.Old.ID))
}

func (c *SegmentSplit) Redo() {
	if c.SkipRedo() {
		return
	}
	if err := c.e.topo.Resplit(c.split); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.showSplit()
}

func (c *SegmentSplit) showSplit() {
	sc := c.e.scene
	sc.RemoveVisual(string(c.split.Old.ID))
	sc.InsertVisual(scene.KindNode, string(c.split.Junction.ID))
	sc.InsertVisual(scene.KindSegment, string(c.split.First.ID))
	sc.InsertVisual(scene.KindSegment, string(c.split.Second.ID))
}

// SegmentBundleSet changes which bundle a segment mirrors.
type SegmentBundleSet struct {
	command.Base
	e             *Editor
	seg           core.SegmentID
	before, after core.BundleID
}

// SetSegmentBundle associates seg with bundle b now and returns the command.
func (e *Editor) SetSegmentBundle(seg core.SegmentID, b core.BundleID) (*SegmentBundleSet, error) {
	prev, err := e.store().SetSegmentBundle(seg, b)
	if err != nil {
		return nil, err
	}
	return &SegmentBundleSet{Base: command.NewBase("Link Segment to Bundle", true), e: e, seg: seg, before: prev, after: b}, nil
}

func (c *SegmentBundleSet) Undo() { c.set(c.before) }

func (c *SegmentBundleSet) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.after)
}

func (c *SegmentBundleSet) set(b core.BundleID) {
	if _, err := c.e.store().SetSegmentBundle(c.seg, b); err != nil {
		c.e.replayErr(c.Description(), err)
	}
}
