// SPDX-License-Identifier: MIT

package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

type fixture struct {
	m     *topology.Manager
	e     *edit.Editor
	rec   *scene.Recorder
	stack *command.Stack
}

// newFixture places C1 at the origin and C2 at (100,0).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := topology.NewManager(nil)
	_, err := m.CreateConnectorNode("C1", core.Point{})
	require.NoError(t, err)
	_, err = m.CreateConnectorNode("C2", core.Point{X: 100})
	require.NoError(t, err)
	rec := scene.NewRecorder()
	return &fixture{m: m, e: edit.New(m, rec, nil), rec: rec, stack: command.NewStack(command.WithReporter(rec))}
}

func (f *fixture) push(t *testing.T, cmd command.Command, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NoError(t, f.stack.Push(cmd))
}

func pin(c, p string) wire.PinRef { return wire.PinRef{Connector: c, Pin: p} }

func TestCompound_NodeThenSegment(t *testing.T) {
	f := newFixture(t)
	st := f.m.Store()

	require.NoError(t, f.stack.BeginMacro("Place Junction"))
	n, err := f.e.AddNode(core.JunctionKind{}, core.Point{X: 50, Y: 50})
	f.push(t, n, err)
	s, err := f.e.AddSegment("CONN_C1", n.Node().ID)
	f.push(t, s, err)
	require.NoError(t, f.stack.EndMacro())

	require.Equal(t, 1, f.stack.Len())
	require.Equal(t, 3, st.NodeCount())
	require.Equal(t, 1, st.SegmentCount())

	mark := len(f.rec.Events)
	require.True(t, f.stack.Undo())
	assert.Equal(t, 2, st.NodeCount())
	assert.Zero(t, st.SegmentCount())
	var removed []string
	for _, ev := range f.rec.Events[mark:] {
		if ev.Op == "remove" {
			removed = append(removed, ev.ID)
		}
	}
	assert.Equal(t, []string{"SEG_1", "J_1"}, removed)

	require.True(t, f.stack.Redo())
	assert.Equal(t, 3, st.NodeCount())
	seg, ok := st.Segment("SEG_1")
	require.True(t, ok)
	assert.True(t, seg.Connects("CONN_C1", "J_1"))
	assert.Equal(t, []core.SegmentID{"SEG_1"}, st.Incident("J_1"))
	require.NoError(t, st.Validate())
}

func TestNodeMoved_MergeAndRestore(t *testing.T) {
	f := newFixture(t)
	r, err := f.m.Route(topology.Request{From: pin("C1", "1"), To: pin("C2", "1")})
	require.NoError(t, err)

	mv, err := f.e.MoveNode("CONN_C2", core.Point{X: 200})
	f.push(t, mv, err)
	mv, err = f.e.MoveNode("CONN_C2", core.Point{X: 300})
	f.push(t, mv, err)
	assert.Equal(t, 1, f.stack.Len(), "consecutive moves of one node merge")

	w, _ := f.m.Wire(r.Wire)
	assert.InDelta(t, 300.0, w.Length, 1e-9)

	require.True(t, f.stack.Undo())
	n, _ := f.m.Store().Node("CONN_C2")
	assert.Equal(t, core.Point{X: 100}, n.Position)
	w, _ = f.m.Wire(r.Wire)
	assert.InDelta(t, 100.0, w.Length, 1e-9)

	require.True(t, f.stack.Redo())
	n, _ = f.m.Store().Node("CONN_C2")
	assert.Equal(t, core.Point{X: 300}, n.Position)

	// a move of another node does not merge
	mv, err = f.e.MoveNode("CONN_C1", core.Point{Y: 10})
	f.push(t, mv, err)
	assert.Equal(t, 2, f.stack.Len())
}

func TestSegmentSplit_UndoRedo(t *testing.T) {
	f := newFixture(t)
	r1, err := f.m.Route(topology.Request{From: pin("C1", "1"), To: pin("C2", "1")})
	require.NoError(t, err)
	r2, err := f.m.Route(topology.Request{From: pin("C2", "2"), To: pin("C1", "2")})
	require.NoError(t, err)
	old := r1.Segments[0]

	sp, err := f.e.SplitSegment(old, core.Point{X: 40})
	f.push(t, sp, err)
	res := sp.Result()
	st := f.m.Store()
	assert.False(t, st.HasSegment(old))
	for _, s := range []core.SegmentID{res.First.ID, res.Second.ID} {
		seg, _ := st.Segment(s)
		assert.ElementsMatch(t, []core.WireID{r1.Wire, r2.Wire}, seg.Wires())
	}
	assert.Len(t, f.m.Wires(), 2)
	w2, _ := f.m.Wire(r2.Wire)
	assert.Equal(t, []core.SegmentID{res.Second.ID, res.First.ID}, w2.Segments, "C2 to C1 enters through the second half")

	require.True(t, f.stack.Undo())
	assert.True(t, st.HasSegment(old))
	assert.False(t, st.HasNode(res.Junction.ID))
	w1, _ := f.m.Wire(r1.Wire)
	assert.Equal(t, []core.SegmentID{old}, w1.Segments)
	seg, _ := st.Segment(old)
	assert.Equal(t, []core.WireID{r1.Wire, r2.Wire}, seg.Wires())
	assert.True(t, f.rec.Visible(string(old)))

	require.True(t, f.stack.Redo())
	assert.False(t, st.HasSegment(old))
	w1, _ = f.m.Wire(r1.Wire)
	assert.Equal(t, []core.SegmentID{res.First.ID, res.Second.ID}, w1.Segments)
	require.NoError(t, st.Validate())
}

func TestWireCommands(t *testing.T) {
	f := newFixture(t)
	cmd, r, err := f.e.RouteWire(topology.Request{From: pin("C1", "1"), To: pin("C2", "1")})
	f.push(t, cmd, err)
	require.Len(t, r.Created, 1)
	assert.True(t, f.rec.Visible(string(r.Wire)))

	props, err := f.e.UpdateWireProperties(r.Wire, edit.WireProps{Color: wire.MustColor("RT/WS"), CrossSection: 2.5})
	f.push(t, props, err)
	w, _ := f.m.Wire(r.Wire)
	assert.Equal(t, "RT/WS", w.Color.Code())
	assert.Equal(t, 2.5, w.CrossSection)

	require.True(t, f.stack.Undo())
	w, _ = f.m.Wire(r.Wire)
	assert.Equal(t, props.Before(), edit.WireProps{Color: w.Color, CrossSection: w.CrossSection})

	del, err := f.e.DeleteWire(r.Wire)
	f.push(t, del, err)
	assert.False(t, f.m.HasWire(r.Wire))
	assert.False(t, f.rec.Visible(string(r.Wire)))
	seg, _ := f.m.Store().Segment(r.Created[0])
	assert.Zero(t, seg.WireCount())

	require.True(t, f.stack.Undo())
	assert.True(t, f.m.HasWire(r.Wire))
	seg, _ = f.m.Store().Segment(r.Created[0])
	assert.Equal(t, []core.WireID{r.Wire}, seg.Wires())

	// undoing the route removes wire then segment
	require.True(t, f.stack.Undo())
	assert.False(t, f.m.HasWire(r.Wire))
	assert.Zero(t, f.m.Store().SegmentCount())
	require.True(t, f.stack.Redo())
	assert.True(t, f.m.HasWire(r.Wire))
	assert.Equal(t, 1, f.m.Store().SegmentCount())

	_, err = f.e.UpdateWireProperties(r.Wire, edit.WireProps{CrossSection: -1})
	assert.ErrorIs(t, err, wire.ErrInvalidCrossSection)
}

func TestWireHidden(t *testing.T) {
	f := newFixture(t)
	cmd, r, err := f.e.RouteWire(topology.Request{From: pin("C1", "1"), To: pin("C2", "1")})
	f.push(t, cmd, err)

	h, err := f.e.SetHidden(r.Wire, true)
	f.push(t, h, err)
	assert.False(t, f.rec.Visible(string(r.Wire)))
	require.True(t, f.stack.Undo())
	assert.True(t, f.rec.Visible(string(r.Wire)))
	w, _ := f.m.Wire(r.Wire)
	assert.False(t, w.Hidden)
}

func TestWireSources(t *testing.T) {
	f := newFixture(t)
	cmd, r, err := f.e.RouteWire(topology.Request{From: pin("C1", "1"), To: pin("C2", "1")})
	f.push(t, cmd, err)
	w, _ := f.m.Wire(r.Wire)
	w.Sources = []core.WireID{"W1", "W2"}
	_, err = f.m.UpdateWire(w)
	require.NoError(t, err)

	s, err := f.e.SetSources(r.Wire, []core.WireID{"W2"})
	f.push(t, s, err)
	w, _ = f.m.Wire(r.Wire)
	assert.Equal(t, []core.WireID{"W2"}, w.Sources)

	require.True(t, f.stack.Undo())
	w, _ = f.m.Wire(r.Wire)
	assert.Equal(t, []core.WireID{"W1", "W2"}, w.Sources)
	require.True(t, f.stack.Redo())
	w, _ = f.m.Wire(r.Wire)
	assert.Equal(t, []core.WireID{"W2"}, w.Sources)

	_, err = f.e.SetSources("W9", nil)
	assert.ErrorIs(t, err, topology.ErrStaleReference)
}

func TestBundleCommands(t *testing.T) {
	f := newFixture(t)
	add, err := f.e.AddBundle(core.Bundle{Start: core.Point{}, End: core.Point{X: 30, Y: 40}})
	f.push(t, add, err)
	id := add.Bundle().ID
	assert.Equal(t, core.BundleID("BND_1"), id)

	l := 120.0
	ln, err := f.e.SetBundleLength(id, &l)
	f.push(t, ln, err)
	b, _ := f.m.Store().Bundle(id)
	assert.InDelta(t, 120.0, b.Length(), 1e-9)
	require.True(t, f.stack.Undo())
	b, _ = f.m.Store().Bundle(id)
	assert.Nil(t, b.SpecifiedLength)
	assert.InDelta(t, 50.0, b.Length(), 1e-9)

	mv, err := f.e.MoveBundleEnd(id, edit.BundleFinish, core.Point{X: 60})
	f.push(t, mv, err)
	mv, err = f.e.MoveBundleEnd(id, edit.BundleFinish, core.Point{X: 90})
	f.push(t, mv, err)
	assert.Equal(t, 2, f.stack.Len(), "moves of the same end merge")
	mv, err = f.e.MoveBundleEnd(id, edit.BundleStart, core.Point{Y: 5})
	f.push(t, mv, err)
	assert.Equal(t, 3, f.stack.Len())

	require.True(t, f.stack.Undo())
	require.True(t, f.stack.Undo())
	b, _ = f.m.Store().Bundle(id)
	assert.Equal(t, core.Point{X: 30, Y: 40}, b.End)

	as, err := f.e.AssignWire(id, "W_9")
	f.push(t, as, err)
	as, err = f.e.AssignWire(id, "W_9")
	f.push(t, as, err)
	b, _ = f.m.Store().Bundle(id)
	assert.Equal(t, []core.WireID{"W_9"}, b.WireIDs)

	_, err = f.e.SetBundleLength(id, new(float64))
	assert.Error(t, err)
	_, err = f.e.AssignWire("BND_404", "W_1")
	assert.ErrorIs(t, err, core.ErrBundleNotFound)
}

func TestStaleReplayIsSkipped(t *testing.T) {
	f := newFixture(t)
	n, err := f.e.AddNode(core.JunctionKind{}, core.Point{X: 1})
	f.push(t, n, err)
	require.True(t, f.stack.Undo())

	// someone else took the id while the command was undone
	_, err = f.m.Store().AddNode(core.JunctionKind{}, core.Point{X: 2}, core.WithNodeID("J_1"))
	require.NoError(t, err)
	assert.NotPanics(t, func() { f.stack.Redo() })
	got, _ := f.m.Store().Node("J_1")
	assert.Equal(t, core.Point{X: 2}, got.Position)
}

func TestSegmentRestoreWithoutEndpointPanics(t *testing.T) {
	f := newFixture(t)
	s, err := f.e.AddSegment("CONN_C1", "CONN_C2")
	require.NoError(t, err)
	s.Redo() // consumes the no-op
	_, err = f.m.Store().RemoveSegment("SEG_1")
	require.NoError(t, err)
	_, err = f.m.Store().RemoveNode("CONN_C2")
	require.NoError(t, err)
	assert.Panics(t, func() { s.Redo() })
}
