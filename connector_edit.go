// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/wire"
)

var (
	_ command.Command = (*connectorChange)(nil)
	_ command.Merger  = (*connectorMoved)(nil)
	_ command.Command = (*connectorEdit)(nil)
)

// connectorChange puts a connector into the set or takes it out. The
// change is applied before the command is built.
type connectorChange struct {
	command.Base
	d       *Document
	c       Connector
	present bool
}

func (d *Document) insertConnector(c Connector) (*connectorChange, error) {
	if err := d.conns.add(c); err != nil {
		return nil, err
	}
	stored, _ := d.conns.get(c.ID)
	d.scene.InsertVisual(scene.KindConnector, c.ID)
	return &connectorChange{Base: command.NewBase("Add Connector", true), d: d, c: stored, present: true}, nil
}

func (d *Document) dropConnector(id string) (*connectorChange, error) {
	c, err := d.conns.remove(id)
	if err != nil {
		return nil, err
	}
	d.scene.RemoveVisual(id)
	return &connectorChange{Base: command.NewBase("Delete Connector", true), d: d, c: c}, nil
}

func (c *connectorChange) Undo() { c.apply(!c.present) }

func (c *connectorChange) Redo() {
	if c.SkipRedo() {
		return
	}
	c.apply(c.present)
}

func (c *connectorChange) apply(insert bool) {
	var err error
	if insert {
		if err = c.d.conns.add(c.c); err == nil {
			c.d.scene.InsertVisual(scene.KindConnector, c.c.ID)
		}
	} else {
		if _, err = c.d.conns.remove(c.c.ID); err == nil {
			c.d.scene.RemoveVisual(c.c.ID)
		}
	}
	if err != nil {
		c.d.stale(c.Description(), err)
	}
}

// connectorMoved moves a connector through its node. Consecutive moves of
// one connector merge into one entry.
type connectorMoved struct {
	command.Base
	id   string
	node *edit.NodeMoved
}

func (c *connectorMoved) Undo() { c.node.Undo() }

func (c *connectorMoved) Redo() { c.node.Redo() }

func (c *connectorMoved) MergeWith(next command.Command) bool {
	o, ok := next.(*connectorMoved)
	return ok && o.id == c.id && c.node.MergeWith(o.node)
}

// connectorEdit swaps one stored connector value for another.
type connectorEdit struct {
	command.Base
	d             *Document
	before, after Connector
}

func (c *connectorEdit) Undo() { c.set(c.before) }

func (c *connectorEdit) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.after)
}

func (c *connectorEdit) set(v Connector) {
	if err := c.d.conns.update(v); err != nil {
		c.d.stale(c.Description(), err)
	}
}

func (d *Document) stale(cmd string, err error) {
	d.log.Warn("stale reference during replay", slog.String("command", cmd), slog.Any("error", err))
}

// AddConnector places c and its topology node as one history entry.
//
// Errors: ErrInvalidConnector, wire.ErrInvalidPin, ErrDuplicateConnector,
// core.ErrDuplicateID (the connector's node id is taken).
func (d *Document) AddConnector(c Connector) error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidConnector)
	}
	if strings.Contains(c.ID, ".") {
		return fmt.Errorf("%w: %q contains '.'", ErrInvalidConnector, c.ID)
	}
	if err := checkPinNames(c.Pins); err != nil {
		return err
	}
	if _, ok := d.conns.get(c.ID); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateConnector, c.ID)
	}
	c.seq = 0
	return d.macro("Add Connector", func() error {
		if err := d.push(d.insertConnector(c)); err != nil {
			return err
		}
		return d.push(d.editor.AddNode(core.ConnectorKind{ConnectorID: c.ID}, c.Position))
	})
}

// DeleteConnector removes connector id together with the wires ending on
// it or running through its node, the segments at its node, and the
// bundle anchors on its node. Bundles lose the deleted wires, and a source
// wire left without any overlay is shown again.
func (d *Document) DeleteConnector(id string) error {
	c, ok := d.conns.get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConnector, id)
	}
	node := c.Node()
	incident := d.Store().Incident(node)
	through := make(map[core.SegmentID]bool, len(incident))
	for _, sid := range incident {
		through[sid] = true
	}
	doomed := d.topo.WiresWhere(func(w wire.Wire) bool {
		if w.Touches(id) {
			return true
		}
		for _, sid := range w.Segments {
			if through[sid] {
				return true
			}
		}
		return false
	})

	return d.macro("Delete Connector", func() error {
		for _, w := range doomed {
			if err := d.push(d.editor.RemoveWire(w.ID)); err != nil {
				return err
			}
		}
		drop, err := d.settleOverlays(doomed)
		if err != nil {
			return err
		}
		if err := d.pruneBundles(drop); err != nil {
			return err
		}
		for _, sid := range incident {
			if err := d.push(d.editor.RemoveSegment(sid)); err != nil {
				return err
			}
		}
		for _, b := range d.Store().Bundles() {
			if !b.Touches(node) {
				continue
			}
			if b.StartNode == node {
				b.StartNode = ""
			}
			if b.EndNode == node {
				b.EndNode = ""
			}
			if err := d.push(d.editor.UpdateBundle(b)); err != nil {
				return err
			}
		}
		if d.Store().HasNode(node) {
			if err := d.push(d.editor.RemoveNode(node)); err != nil {
				return err
			}
		}
		return d.push(d.dropConnector(id))
	})
}

// pruneBundles removes the wires in gone from every bundle holding them.
func (d *Document) pruneBundles(gone map[core.WireID]bool) error {
	if len(gone) == 0 {
		return nil
	}
	for _, b := range d.Store().Bundles() {
		kept := make([]core.WireID, 0, len(b.WireIDs))
		for _, w := range b.WireIDs {
			if !gone[w] {
				kept = append(kept, w)
			}
		}
		if len(kept) == len(b.WireIDs) {
			continue
		}
		if err := d.push(d.editor.SetBundleWires(b.ID, kept)); err != nil {
			return err
		}
	}
	return nil
}

// MoveConnector moves connector id to to. Repeated moves of the same
// connector collapse into one history entry.
func (d *Document) MoveConnector(id string, to core.Point) error {
	c, ok := d.conns.get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConnector, id)
	}
	nm, err := d.editor.MoveNode(c.Node(), to)
	if err != nil {
		return err
	}
	return d.stack.Push(&connectorMoved{Base: command.NewBase("Move Connector", false), id: id, node: nm})
}

// RotateConnector sets the rotation of connector id, in degrees.
func (d *Document) RotateConnector(id string, degrees float64) error {
	return d.editConnector(id, "Rotate Connector", func(c *Connector) { c.Rotation = degrees })
}

// UpdateConnectorProperties replaces the catalogue data of connector id.
func (d *Document) UpdateConnectorProperties(id string, p Props) error {
	return d.editConnector(id, "Edit Connector Properties", func(c *Connector) { c.Props = p })
}

// SetConnectorPins replaces the pin list of connector id. Pins used by
// existing wires must stay listed.
func (d *Document) SetConnectorPins(id string, pins []string) error {
	if err := checkPinNames(pins); err != nil {
		return err
	}
	listed := Connector{Pins: pins}
	for _, w := range d.topo.WiresWhere(func(w wire.Wire) bool { return w.Touches(id) }) {
		for _, end := range []wire.PinRef{w.From, w.To} {
			if end.Connector == id && !listed.HasPin(end.Pin) {
				return fmt.Errorf("%w: wire %q uses %s", ErrUnknownPin, w.ID, end)
			}
		}
	}
	pins = append([]string(nil), pins...)
	return d.editConnector(id, "Edit Connector Pins", func(c *Connector) { c.Pins = pins })
}

// checkPinNames rejects empty pin names and names containing '.', which
// pin references use as the connector separator.
func checkPinNames(pins []string) error {
	for _, p := range pins {
		if p == "" || strings.Contains(p, ".") {
			return fmt.Errorf("%w: pin name %q", wire.ErrInvalidPin, p)
		}
	}
	return nil
}

func (d *Document) editConnector(id, desc string, change func(*Connector)) error {
	before, ok := d.conns.get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConnector, id)
	}
	after := before.Clone()
	change(&after)
	return d.stack.Push(&connectorEdit{Base: command.NewBase(desc, false), d: d, before: before, after: after})
}
