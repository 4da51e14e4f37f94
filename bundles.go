// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
)

// AddBundle draws an unanchored bundle from start to end.
func (d *Document) AddBundle(start, end core.Point) (core.BundleID, error) {
	c, err := d.editor.AddBundle(core.Bundle{Start: start, End: end})
	if err := d.push(c, err); err != nil {
		return "", err
	}
	return c.Bundle().ID, nil
}

// DeleteBundle removes bundle id and clears the bundle tag of the
// segments mirroring it.
func (d *Document) DeleteBundle(id core.BundleID) error {
	if !d.Store().HasBundle(id) {
		return fmt.Errorf("%w: %q", core.ErrBundleNotFound, id)
	}
	return d.macro("Delete Bundle", func() error {
		for _, seg := range d.Store().Segments() {
			if seg.Bundle != id {
				continue
			}
			if err := d.push(d.editor.SetSegmentBundle(seg.ID, "")); err != nil {
				return err
			}
		}
		return d.push(d.editor.RemoveBundle(id))
	})
}

// SetBundleLength overrides the length of bundle id; nil restores the
// drawn length.
func (d *Document) SetBundleLength(id core.BundleID, length *float64) error {
	return d.push(d.editor.SetBundleLength(id, length))
}

// MoveBundleStart moves the start point of bundle id.
func (d *Document) MoveBundleStart(id core.BundleID, to core.Point) error {
	return d.push(d.editor.MoveBundleEnd(id, edit.BundleStart, to))
}

// MoveBundleEnd moves the end point of bundle id.
func (d *Document) MoveBundleEnd(id core.BundleID, to core.Point) error {
	return d.push(d.editor.MoveBundleEnd(id, edit.BundleFinish, to))
}

// AssignWireToBundle adds wire w to the membership of bundle id.
func (d *Document) AssignWireToBundle(id core.BundleID, w core.WireID) error {
	if !d.topo.HasWire(w) {
		return fmt.Errorf("%w: %q", ErrUnknownWire, w)
	}
	return d.push(d.editor.AssignWire(id, w))
}
