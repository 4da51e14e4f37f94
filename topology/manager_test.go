// SPDX-License-Identifier: MIT

package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

func pin(c, p string) wire.PinRef { return wire.PinRef{Connector: c, Pin: p} }

// threeConnectors places C1, C2, C3 on a line.
func threeConnectors(t *testing.T) *topology.Manager {
	t.Helper()
	m := topology.NewManager(nil)
	for i, c := range []string{"C1", "C2", "C3"} {
		_, err := m.CreateConnectorNode(c, core.Point{X: float64(i) * 100})
		require.NoError(t, err)
	}
	return m
}

func TestRouteWire_CreatesDirectSegment(t *testing.T) {
	m := threeConnectors(t)

	wid, err := m.RouteWire(pin("C1", "1"), pin("C2", "1"), nil)
	require.NoError(t, err)
	assert.Equal(t, core.WireID("W_1"), wid)
	require.Equal(t, 1, m.Store().SegmentCount())

	nodes, err := m.PathNodes(wid)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{"CONN_C1", "CONN_C2"}, nodes)

	w, ok := m.Wire(wid)
	require.True(t, ok)
	assert.InDelta(t, 100.0, w.Length, 1e-9)
	assert.Equal(t, "SW", w.Color.Code())

	// a second wire between the same connectors reuses the segment
	wid2, err := m.RouteWire(pin("C2", "2"), pin("C1", "2"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Store().SegmentCount())
	seg := m.Store().Segments()[0]
	assert.Equal(t, []core.WireID{wid, wid2}, seg.Wires())
}

func TestRouteWire_Via(t *testing.T) {
	m := threeConnectors(t)
	bp, err := m.CreateBranchPoint(core.Point{X: 50, Y: 50}, core.BranchSplit)
	require.NoError(t, err)

	r, err := m.Route(topology.Request{From: pin("C1", "1"), To: pin("C3", "1"), Via: []core.NodeID{bp}})
	require.NoError(t, err)
	assert.Len(t, r.Created, 2)
	assert.Equal(t, r.Created, r.Segments)

	nodes, err := m.PathNodes(r.Wire)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{"CONN_C1", bp, "CONN_C3"}, nodes)

	// C1 to C3 now has a path through bp; no new segment appears
	r2, err := m.Route(topology.Request{From: pin("C1", "2"), To: pin("C3", "2")})
	require.NoError(t, err)
	assert.Empty(t, r2.Created)
	assert.Equal(t, r.Segments, r2.Segments)
}

func TestRouteWire_Errors(t *testing.T) {
	m := threeConnectors(t)

	_, err := m.RouteWire(pin("C1", "1"), pin("C9", "1"), nil)
	assert.ErrorIs(t, err, topology.ErrMissingNode)
	_, err = m.RouteWire(pin("C1", "1"), pin("C2", "1"), []core.NodeID{"ghost"})
	assert.ErrorIs(t, err, topology.ErrMissingNode)

	_, err = m.RouteWire(pin("C1", "1"), pin("C1", "2"), nil)
	assert.ErrorIs(t, err, topology.ErrNoPath)

	_, err = m.Route(topology.Request{From: pin("C1", "1"), To: pin("C2", "1"), Color: "nope"})
	assert.ErrorIs(t, err, wire.ErrInvalidColor)
	assert.Equal(t, 0, m.Store().SegmentCount(), "failed route leaves no segment behind")
	assert.Empty(t, m.Wires())
}

func TestFindPath_Manager(t *testing.T) {
	m := threeConnectors(t)
	ab, _ := m.CreateSegment("CONN_C1", "CONN_C2")
	bc, _ := m.CreateSegment("CONN_C2", "CONN_C3")

	assert.Equal(t, []core.SegmentID{ab, bc}, m.FindPath("CONN_C1", "CONN_C3"))
	assert.Empty(t, m.FindPath("CONN_C1", "CONN_C1"))

	got, ok := m.FindSegmentBetween("CONN_C2", "CONN_C1")
	require.True(t, ok)
	assert.Equal(t, ab, got)

	_, err := m.CreateSegment("CONN_C1", "CONN_C1")
	assert.ErrorIs(t, err, core.ErrSelfSegment)
}

func TestSplitSegment(t *testing.T) {
	m := threeConnectors(t)
	w1, err := m.RouteWire(pin("C1", "1"), pin("C2", "1"), nil)
	require.NoError(t, err)
	w2, err := m.RouteWire(pin("C2", "2"), pin("C1", "2"), nil)
	require.NoError(t, err)
	seg := m.Store().Segments()[0].ID
	wiresBefore := len(m.Wires())

	first, second, err := m.SplitSegment(seg, core.Point{X: 50}, true)
	require.NoError(t, err)
	assert.False(t, m.Store().HasSegment(seg), "old segment is gone")
	assert.Len(t, m.Wires(), wiresBefore)

	for _, sid := range []core.SegmentID{first, second} {
		s, ok := m.Store().Segment(sid)
		require.True(t, ok)
		assert.ElementsMatch(t, []core.WireID{w1, w2}, s.Wires())
	}
	for _, wid := range []core.WireID{w1, w2} {
		_, err := m.PathNodes(wid)
		require.NoError(t, err, "paths stay contiguous in both directions")
	}
	w, _ := m.Wire(w2)
	assert.Equal(t, []core.SegmentID{second, first}, w.Segments, "reverse travel gets reversed halves")
	require.NoError(t, m.Store().Validate())

	// without a junction the call is a no-op
	a, b, err := m.SplitSegment(first, core.Point{}, false)
	require.NoError(t, err)
	assert.Equal(t, first, a)
	assert.Equal(t, first, b)

	_, _, err = m.SplitSegment("SEG_404", core.Point{}, true)
	assert.ErrorIs(t, err, topology.ErrStaleReference)
}

func TestSplit_UnsplitResplit(t *testing.T) {
	m := threeConnectors(t)
	w1, err := m.RouteWire(pin("C1", "1"), pin("C2", "1"), nil)
	require.NoError(t, err)
	seg := m.Store().Segments()[0]

	s, err := m.Split(seg.ID, core.Point{X: 40})
	require.NoError(t, err)
	require.Len(t, s.Paths, 1)

	require.NoError(t, m.Unsplit(s))
	restored, ok := m.Store().Segment(seg.ID)
	require.True(t, ok)
	assert.Equal(t, seg.Wires(), restored.Wires())
	assert.False(t, m.Store().HasNode(s.Junction.ID))
	w, _ := m.Wire(w1)
	assert.Equal(t, []core.SegmentID{seg.ID}, w.Segments)

	require.NoError(t, m.Resplit(s))
	w, _ = m.Wire(w1)
	assert.Equal(t, []core.SegmentID{s.First.ID, s.Second.ID}, w.Segments)
	assert.False(t, m.Store().HasSegment(seg.ID))
	require.NoError(t, m.Store().Validate())
}

func TestWireRegistry(t *testing.T) {
	m := threeConnectors(t)
	wid, err := m.RouteWire(pin("C1", "1"), pin("C2", "1"), nil)
	require.NoError(t, err)

	prev, err := m.SetHidden(wid, true)
	require.NoError(t, err)
	assert.False(t, prev)
	w, _ := m.Wire(wid)
	assert.True(t, w.Hidden)

	seg := w.Segments[0]
	removed, err := m.RemoveWire(wid)
	require.NoError(t, err)
	s, _ := m.Store().Segment(seg)
	assert.Zero(t, s.WireCount())

	require.NoError(t, m.AddWire(removed))
	s, _ = m.Store().Segment(seg)
	assert.Equal(t, []core.WireID{wid}, s.Wires())
	assert.ErrorIs(t, m.AddWire(removed), wire.ErrDuplicateWire)

	_, err = m.RemoveWire("ghost")
	assert.ErrorIs(t, err, topology.ErrStaleReference)

	broken := removed
	broken.ID = "W_broken"
	broken.To = pin("C3", "1")
	assert.ErrorIs(t, m.AddWire(broken), wire.ErrBrokenPath)
}

func TestFactories(t *testing.T) {
	m := topology.NewManager(core.NewStore())
	j, err := m.CreateJunction(core.Point{})
	require.NoError(t, err)
	f, err := m.CreateFastener(core.Point{X: 1}, "", "PN-1")
	require.NoError(t, err)
	n, _ := m.Store().Node(f)
	assert.Equal(t, core.FastenerKind{Type: "cable_tie", PartNumber: "PN-1"}, n.Kind)
	n, _ = m.Store().Node(j)
	assert.Equal(t, core.TagJunction, n.Kind.Tag())

	_, ok := m.ConnectorNode("C1")
	assert.False(t, ok)
	id, err := m.CreateNode(core.ConnectorKind{ConnectorID: "C1"}, core.Point{})
	require.NoError(t, err)
	got, ok := m.ConnectorNode("C1")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestRouteReport(t *testing.T) {
	r := topology.NewRouteReport()
	r.Routed = 2
	r.Fail("W3", topology.ErrNoPath)
	assert.Equal(t, 1, r.Unrouted)
	assert.Equal(t, []core.WireID{"W3"}, r.UnroutedWires)
	assert.Equal(t, "routed 2 wire(s), 1 unrouted, 0 node(s) and 0 segment(s) created", r.Summary())
	assert.Contains(t, r.Failures[0].String(), "W3")
}
