// SPDX-License-Identifier: MIT

package edit

import (
	"fmt"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/scene"
)

// NodeChange inserts or removes one node.
type NodeChange struct {
	command.Base
	e       *Editor
	node    core.Node
	present bool // state after Redo
}

// Node returns the snapshot of the node the command adds or removes.
func (c *NodeChange) Node() core.Node { return c.node }

// AddNode places a node now and returns the command recording it.
func (e *Editor) AddNode(kind core.Kind, at core.Point, opts ...core.NodeOption) (*NodeChange, error) {
	id, err := e.store().AddNode(kind, at, opts...)
	if err != nil {
		return nil, err
	}
	n, _ := e.store().Node(id)
	e.scene.InsertVisual(scene.KindNode, string(id))
	return &NodeChange{Base: command.NewBase("Add "+kindLabel(kind), true), e: e, node: n, present: true}, nil
}

// RemoveNode removes an unreferenced node now and returns the command.
func (e *Editor) RemoveNode(id core.NodeID) (*NodeChange, error) {
	n, err := e.store().RemoveNode(id)
	if err != nil {
		return nil, err
	}
	e.scene.RemoveVisual(string(id))
	return &NodeChange{Base: command.NewBase("Remove "+kindLabel(n.Kind), true), e: e, node: n}, nil
}

func (c *NodeChange) Undo() { c.apply(!c.present) }

func (c *NodeChange) Redo() {
	if c.SkipRedo() {
		return
	}
	c.apply(c.present)
}

func (c *NodeChange) apply(insert bool) {
	st := c.e.store()
	if insert {
		if err := st.RestoreNode(c.node); err != nil {
			c.e.replayErr(c.Description(), err)
			return
		}
		c.e.scene.InsertVisual(scene.KindNode, string(c.node.ID))
		return
	}
	if _, err := st.RemoveNode(c.node.ID); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.e.scene.RemoveVisual(string(c.node.ID))
}

// NodeMoved changes a node's position. Consecutive moves of one node merge.
type NodeMoved struct {
	command.Base
	e        *Editor
	id       core.NodeID
	from, to core.Point
}

// MoveNode returns a deferred command moving node id to to.
func (e *Editor) MoveNode(id core.NodeID, to core.Point) (*NodeMoved, error) {
	n, ok := e.store().Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrNodeNotFound, id)
	}
	return &NodeMoved{Base: command.NewBase("Move "+kindLabel(n.Kind), false), e: e, id: id, from: n.Position, to: to}, nil
}

func (c *NodeMoved) Undo() { c.set(c.from) }

func (c *NodeMoved) Redo() {
	if c.SkipRedo() {
		return
	}
	c.set(c.to)
}

func (c *NodeMoved) set(p core.Point) {
	if _, err := c.e.store().MoveNode(c.id, p); err != nil {
		c.e.replayErr(c.Description(), err)
		return
	}
	c.e.topo.Remeasure(c.id)
}

// MergeWith folds a following move of the same node into c.
func (c *NodeMoved) MergeWith(next command.Command) bool {
	o, ok := next.(*NodeMoved)
	if !ok || o.id != c.id {
		return false
	}
	c.to = o.to
	return true
}

func kindLabel(k core.Kind) string {
	switch k.(type) {
	case core.ConnectorKind:
		return "Connector Node"
	case core.JunctionKind:
		return "Junction"
	case core.BranchPointKind:
		return "Branch Point"
	case core.FastenerKind:
		return "Fastener"
	default:
		return "Node"
	}
}
