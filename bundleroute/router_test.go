// SPDX-License-Identifier: MIT

package bundleroute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/harness/bundleroute"
	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

type RouterSuite struct {
	suite.Suite
	m     *topology.Manager
	rec   *scene.Recorder
	stack *command.Stack
	r     *bundleroute.Router
}

// SetupTest places C1 (0,0), C2 (200,0), C3 (200,100).
func (s *RouterSuite) SetupTest() {
	s.m = topology.NewManager(nil)
	for _, c := range []struct {
		id string
		at core.Point
	}{{"C1", core.Point{}}, {"C2", core.Point{X: 200}}, {"C3", core.Point{X: 200, Y: 100}}} {
		_, err := s.m.CreateConnectorNode(c.id, c.at)
		s.Require().NoError(err)
	}
	s.rec = scene.NewRecorder()
	s.stack = command.NewStack(command.WithReporter(s.rec))
	s.r = bundleroute.New(edit.New(s.m, s.rec, nil), s.stack)
}

// bundles forms a Y: C1 to a fork at (100,0), fork to C2 and fork to C3.
func bundles() []core.Bundle {
	return []core.Bundle{
		{ID: "B1", Start: core.Point{X: 3}, End: core.Point{X: 100}},
		{ID: "B2", Start: core.Point{X: 100}, End: core.Point{X: 200}},
		{ID: "B3", Start: core.Point{X: 100}, End: core.Point{X: 200, Y: 100}},
	}
}

func specs() []wire.Spec {
	mk := func(id, from, to string) wire.Spec {
		f, _ := wire.ParsePinRef(from)
		t, _ := wire.ParsePinRef(to)
		return wire.Spec{ID: core.WireID(id), From: f, To: t}
	}
	return []wire.Spec{
		mk("W1", "C1.1", "C2.1"),
		mk("W2", "C1.2", "C3.1"),
		mk("W3", "C2.2", "C3.2"),
		mk("W4", "C1.3", "C9.1"),
	}
}

func (s *RouterSuite) members() map[core.BundleID][]core.WireID {
	out := make(map[core.BundleID][]core.WireID)
	for _, b := range s.m.Store().Bundles() {
		out[b.ID] = b.WireIDs
	}
	return out
}

func (s *RouterSuite) segmentIDs() []core.SegmentID {
	var out []core.SegmentID
	for _, seg := range s.m.Store().Segments() {
		out = append(out, seg.ID)
	}
	return out
}

func (s *RouterSuite) TestRoute_Y() {
	rep, err := s.r.Route(bundles(), specs())
	s.Require().NoError(err)
	s.Equal(3, rep.Routed)
	s.Equal([]core.WireID{"W4"}, rep.UnroutedWires)
	s.ErrorIs(rep.Failures[0].Err, topology.ErrMissingNode)

	st := s.m.Store()
	s.Len(rep.CreatedNodes, 1, "one fork branch point, the other ends snap")
	fork := rep.CreatedNodes[0]
	b1, _ := st.Bundle("B1")
	s.Equal(core.NodeID("CONN_C1"), b1.StartNode)
	s.Equal(fork, b1.EndNode)

	s.Equal(map[core.BundleID][]core.WireID{
		"B1": {"W1", "W2"},
		"B2": {"W1", "W3"},
		"B3": {"W2", "W3"},
	}, s.members())

	s.Equal(3, st.SegmentCount())
	for _, seg := range st.Segments() {
		s.NotEmpty(seg.Bundle)
		s.Equal(2, seg.WireCount())
	}
	nodes, err := s.m.PathNodes("BR_W3")
	s.Require().NoError(err)
	s.Equal([]core.NodeID{"CONN_C2", fork, "CONN_C3"}, nodes)
	w1, _ := s.m.Wire("W1")
	s.True(w1.Hidden)
	s.Require().NoError(st.Validate())
}

func (s *RouterSuite) TestRoute_Idempotent() {
	rep1, err := s.r.Route(bundles(), specs())
	s.Require().NoError(err)
	segs, members := s.segmentIDs(), s.members()

	rep2, err := s.r.Route(bundles(), specs())
	s.Require().NoError(err)
	s.Equal(segs, s.segmentIDs())
	s.Equal(members, s.members())
	s.Equal(rep1.Overlay, rep2.Overlay)
	s.Empty(rep2.CreatedNodes)
	s.Empty(rep2.CreatedSegments)
	s.Equal(2, s.stack.Len())

	s.Require().True(s.stack.Undo())
	s.Equal(segs, s.segmentIDs())
	s.Equal(members, s.members())
	s.Require().True(s.stack.Undo())
	s.Zero(s.m.Store().BundleCount())
	s.Zero(s.m.Store().SegmentCount())
	s.Equal(3, s.m.Store().NodeCount())
	s.Empty(s.m.Wires())
}

func (s *RouterSuite) TestRoute_UnusedSegmentsCollected() {
	_, err := s.r.Route(bundles(), specs())
	s.Require().NoError(err)

	// without the branch to C3 only W1 survives
	_, err = s.r.Route(bundles()[:2], specs()[:1])
	s.Require().NoError(err)
	st := s.m.Store()
	s.Equal(2, st.SegmentCount())
	s.Equal([]core.WireID{"W1"}, s.members()["B1"])
	s.Empty(s.members()["B3"], "B3 is still stored but carries nothing")
	w2, _ := s.m.Wire("W2")
	s.False(w2.Hidden, "W2 lost its overlay and is shown again")
	s.Require().NoError(st.Validate())
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func TestRoute_NoBundles(t *testing.T) {
	m := topology.NewManager(nil)
	_, err := m.CreateConnectorNode("C1", core.Point{})
	require.NoError(t, err)
	_, err = m.CreateConnectorNode("C2", core.Point{X: 50})
	require.NoError(t, err)
	stack := command.NewStack()
	r := bundleroute.New(edit.New(m, nil, nil), stack, bundleroute.WithSnapRadius(1))
	assert.Equal(t, 1.0, r.SnapRadius())

	f, _ := wire.ParsePinRef("C1.1")
	to, _ := wire.ParsePinRef("C2.1")
	rep, err := r.Route(nil, []wire.Spec{{ID: "W1", From: f, To: to}})
	require.NoError(t, err)
	assert.Zero(t, rep.Routed)
	assert.Equal(t, 1, rep.Unrouted)
	assert.ErrorIs(t, rep.Failures[0].Err, topology.ErrNoPath)
	assert.Panics(t, func() { bundleroute.WithSnapRadius(-1) })
}
