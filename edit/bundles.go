// SPDX-License-Identifier: MIT

package edit

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/scene"
)

// BundleChange inserts or removes one bundle.
type BundleChange struct {
	command.Base
	e       *Editor
	b       core.Bundle
	present bool
}

// Bundle returns the snapshot of the bundle the command adds or removes.
func (c *BundleChange) Bundle() core.Bundle { return c.b.Clone() }

// AddBundle inserts b now and returns the command recording it.
func (e *Editor) AddBundle(b core.Bundle) (*BundleChange, error) {
	id, err := e.store().AddBundle(b)
	if err != nil {
		return nil, err
	}
	stored, _ := e.store().Bundle(id)
	e.scene.InsertVisual(scene.KindBundle, string(id))
	return &BundleChange{Base: command.NewBase("Add Bundle", true), e: e, b: stored, present: true}, nil
}

// RemoveBundle removes bundle id now and returns the command.
func (e *Editor) RemoveBundle(id core.BundleID) (*BundleChange, error) {
	b, err := e.store().RemoveBundle(id)
	if err != nil {
		return nil, err
	}
	e.scene.RemoveVisual(string(id))
	return &BundleChange{Base: command.NewBase("Delete Bundle", true), e: e, b: b}, nil
}

func (c *BundleChange) Undo() { c.apply(!c.present) }

func (c *BundleChange) Redo() {
	if c.SkipRedo() {
		return
	}
	c.apply(c.present)
}

func (c *BundleChange) apply(insert bool) {
	st := c.e.store()
	if insert {
		if _, err := st.AddBundle(c.b); err != nil {
			c.e.replayErr(c.Description(), err)
			return
		}
		c.e.scene.InsertVisual(scene.KindBundle, string(c.b.ID))
		return
	}
	if _, err := st.RemoveBundle(c.b.ID); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.e.scene.RemoveVisual(string(c.b.ID))
}

// BundleEnd selects one end of a bundle.
type BundleEnd int

const (
	BundleStart BundleEnd = iota
	BundleFinish
)

// BundleUpdate swaps a bundle between two recorded values. It backs
// anchoring, membership, length and end-point edits.
type BundleUpdate struct {
	command.Base
	e             *Editor
	before, after core.Bundle
	// merge key: only end moves merge, and only on the same end.
	mergeEnd *BundleEnd
}

// Before returns the bundle value restored on undo.
func (c *BundleUpdate) Before() core.Bundle { return c.before.Clone() }

// After returns the bundle value applied on redo.
func (c *BundleUpdate) After() core.Bundle { return c.after.Clone() }

// UpdateBundle replaces the stored bundle with b now and returns the command.
func (e *Editor) UpdateBundle(b core.Bundle) (*BundleUpdate, error) {
	prev, err := e.store().UpdateBundle(b)
	if err != nil {
		return nil, err
	}
	cur, _ := e.store().Bundle(b.ID)
	e.topo.RemeasureBundle(b.ID)
	return &BundleUpdate{Base: command.NewBase("Update Bundle", true), e: e, before: prev, after: cur}, nil
}

// SetBundleLength returns a deferred command setting the specified length
// of bundle id. A nil length restores the drawn length.
func (e *Editor) SetBundleLength(id core.BundleID, length *float64) (*BundleUpdate, error) {
	if length != nil && *length <= 0 {
		return nil, fmt.Errorf("edit: bundle %q length %g must be positive", id, *length)
	}
	return e.deferBundle(id, "Update Bundle Length", func(b *core.Bundle) {
		b.SpecifiedLength = nil
		if length != nil {
			l := *length
			b.SpecifiedLength = &l
		}
	})
}

// MoveBundleEnd returns a deferred command moving one end point of bundle
// id. Anchors are left alone. Consecutive moves of the same end merge.
func (e *Editor) MoveBundleEnd(id core.BundleID, end BundleEnd, to core.Point) (*BundleUpdate, error) {
	c, err := e.deferBundle(id, "Move Bundle End", func(b *core.Bundle) {
		if end == BundleStart {
			b.Start = to
		} else {
			b.End = to
		}
	})
	if err != nil {
		return nil, err
	}
	c.mergeEnd = &end
	return c, nil
}

// AssignWire returns a deferred command appending wire w to bundle id.
// Assigning a wire the bundle already carries changes nothing.
func (e *Editor) AssignWire(id core.BundleID, w core.WireID) (*BundleUpdate, error) {
	return e.deferBundle(id, "Assign Wire to Bundle", func(b *core.Bundle) {
		if !slices.Contains(b.WireIDs, w) {
			b.WireIDs = append(b.WireIDs, w)
		}
	})
}

// SetBundleWires records the bundle router rewriting the membership of
// bundle id to ids. The change is applied now.
func (e *Editor) SetBundleWires(id core.BundleID, ids []core.WireID) (*BundleUpdate, error) {
	b, ok := e.store().Bundle(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrBundleNotFound, id)
	}
	b.WireIDs = append([]core.WireID(nil), ids...)
	return e.UpdateBundle(b)
}

func (e *Editor) deferBundle(id core.BundleID, desc string, change func(*core.Bundle)) (*BundleUpdate, error) {
	b, ok := e.store().Bundle(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrBundleNotFound, id)
	}
	next := b.Clone()
	change(&next)
	return &BundleUpdate{Base: command.NewBase(desc, false), e: e, before: b, after: next}, nil
}

func (c *BundleUpdate) Undo() { c.set(c.before) }

func (c *BundleUpdate) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.after)
}

func (c *BundleUpdate) set(b core.Bundle) {
	if _, err := c.e.store().UpdateBundle(b); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.e.topo.RemeasureBundle(b.ID)
}

// MergeWith folds a following move of the same bundle end into c.
func (c *BundleUpdate) MergeWith(next command.Command) bool {
	o, ok := next.(*BundleUpdate)
	if !ok || c.mergeEnd == nil || o.mergeEnd == nil {
		return false
	}
	if o.after.ID != c.after.ID || *o.mergeEnd != *c.mergeEnd {
		return false
	}
	c.after = o.after.Clone()
	return true
}
