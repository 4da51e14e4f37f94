// SPDX-License-Identifier: MIT

package harness

import (
	"github.com/katalvlaran/harness/core"
)

// PlaceBranchPoint places a branch point at at.
func (d *Document) PlaceBranchPoint(at core.Point, bt core.BranchType) (core.NodeID, error) {
	return d.placeNode(core.BranchPointKind{Type: bt}, at)
}

// PlaceJunction places a junction at at.
func (d *Document) PlaceJunction(at core.Point) (core.NodeID, error) {
	return d.placeNode(core.JunctionKind{}, at)
}

// PlaceFastener places a fastener at at; fastenerType defaults to
// "cable_tie".
func (d *Document) PlaceFastener(at core.Point, fastenerType, partNumber string) (core.NodeID, error) {
	if fastenerType == "" {
		fastenerType = "cable_tie"
	}
	return d.placeNode(core.FastenerKind{Type: fastenerType, PartNumber: partNumber}, at)
}

func (d *Document) placeNode(kind core.Kind, at core.Point) (core.NodeID, error) {
	c, err := d.editor.AddNode(kind, at)
	if err := d.push(c, err); err != nil {
		return "", err
	}
	return c.Node().ID, nil
}

// RemoveNode removes a node that no segment or bundle uses.
func (d *Document) RemoveNode(id core.NodeID) error {
	return d.push(d.editor.RemoveNode(id))
}

// ConnectNodes joins a and b with a new segment.
func (d *Document) ConnectNodes(a, b core.NodeID) (core.SegmentID, error) {
	c, err := d.editor.AddSegment(a, b)
	if err := d.push(c, err); err != nil {
		return "", err
	}
	return c.Segment().ID, nil
}

// DeleteSegment removes a segment that carries no wires.
func (d *Document) DeleteSegment(id core.SegmentID) error {
	return d.push(d.editor.RemoveSegment(id))
}

// MoveNode moves any node; repeated moves of one node merge.
func (d *Document) MoveNode(id core.NodeID, to core.Point) error {
	return d.push(d.editor.MoveNode(id, to))
}

// SplitSegment inserts a junction at at into segment id and returns the
// junction. Wires on the segment continue through both halves.
func (d *Document) SplitSegment(id core.SegmentID, at core.Point) (core.NodeID, error) {
	c, err := d.editor.SplitSegment(id, at)
	if err := d.push(c, err); err != nil {
		return "", err
	}
	return c.Result().Junction.ID, nil
}
