// SPDX-License-Identifier: MIT

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		code    string
		wantErr bool
	}{
		{in: "", code: "SW"},
		{in: "rt", code: "RT"},
		{in: "SW/GE", code: "SW/GE"},
		{in: "XX", wantErr: true},
		{in: "SW/XX", wantErr: true},
	}
	for _, tc := range cases {
		c, err := wire.ParseColor(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, wire.ErrInvalidColor, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.code, c.Code())
	}

	c := wire.MustColor("BL/WS")
	assert.Equal(t, "#0000FF", c.Hex())
	assert.Equal(t, "Blue/White", c.DisplayName("en"))
	assert.Equal(t, "Blau/Weiß", c.DisplayName("de"))
	assert.Equal(t, "SW", wire.Color{}.Code())
	assert.Panics(t, func() { wire.MustColor("nope") })
}

func TestParsePinRef(t *testing.T) {
	p, err := wire.ParsePinRef("X1.3")
	require.NoError(t, err)
	assert.Equal(t, wire.PinRef{Connector: "X1", Pin: "3"}, p)
	assert.Equal(t, "X1.3", p.String())
	assert.Equal(t, core.NodeID("CONN_X1"), p.Node())

	p, err = wire.ParsePinRef("K.2.1")
	require.NoError(t, err)
	assert.Equal(t, "K.2", p.Connector)

	_, err = wire.ParsePinRef("")
	assert.ErrorIs(t, err, wire.ErrInvalidPin)
	_, err = wire.ParsePinRef(".1")
	assert.ErrorIs(t, err, wire.ErrInvalidPin)
}

func TestFromSpec_Defaults(t *testing.T) {
	w, err := wire.FromSpec(wire.Spec{
		ID:   "W1",
		From: wire.PinRef{Connector: "C1", Pin: "1"},
		To:   wire.PinRef{Connector: "C2", Pin: "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SW", w.Color.Code())
	assert.InDelta(t, wire.DefaultCrossSection, w.CrossSection, 0)
	assert.False(t, w.Routed())
	assert.True(t, w.Touches("C2"))

	_, err = wire.FromSpec(wire.Spec{ID: "W2", From: wire.PinRef{Connector: "C1"}})
	assert.ErrorIs(t, err, wire.ErrInvalidPin)
	_, err = wire.FromSpec(wire.Spec{ID: "W3", From: w.From, To: w.To, CrossSection: -1})
	assert.ErrorIs(t, err, wire.ErrInvalidCrossSection)
	_, err = wire.FromSpec(wire.Spec{ID: "W4", From: w.From, To: w.To, Color: "ZZ"})
	assert.ErrorIs(t, err, wire.ErrInvalidColor)
}

func TestPathNodesAndLength(t *testing.T) {
	s := core.NewStore()
	c1, _ := s.AddNode(core.ConnectorKind{ConnectorID: "C1"}, core.Point{})
	j, _ := s.AddNode(core.JunctionKind{}, core.Point{X: 3, Y: 4})
	c2, _ := s.AddNode(core.ConnectorKind{ConnectorID: "C2"}, core.Point{X: 3, Y: 10})
	s1, _ := s.AddSegment(c1, j)
	s2, _ := s.AddSegment(c2, j)

	w := wire.Wire{
		ID:       "W1",
		From:     wire.PinRef{Connector: "C1"},
		To:       wire.PinRef{Connector: "C2"},
		Segments: []core.SegmentID{s1, s2},
	}
	nodes, err := wire.PathNodes(s, w)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{c1, j, c2}, nodes)

	l, err := wire.PathLength(s, w.Segments)
	require.NoError(t, err)
	assert.InDelta(t, 11.0, l, 1e-9)

	w.Segments = []core.SegmentID{s2}
	_, err = wire.PathNodes(s, w)
	assert.ErrorIs(t, err, wire.ErrBrokenPath)

	w.Segments = []core.SegmentID{s1}
	_, err = wire.PathNodes(s, w)
	assert.ErrorIs(t, err, wire.ErrBrokenPath, "path must end at the To connector")

	w.Segments = nil
	nodes, err = wire.PathNodes(s, w)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestSet_Order(t *testing.T) {
	s := wire.NewSet()
	for _, id := range []core.WireID{"W2", "W10", "W1"} {
		require.NoError(t, s.Add(wire.Wire{ID: id}))
	}
	require.ErrorIs(t, s.Add(wire.Wire{ID: "W1"}), wire.ErrDuplicateWire)

	ids := func() []core.WireID {
		var out []core.WireID
		for _, w := range s.All() {
			out = append(out, w.ID)
		}
		return out
	}
	assert.Equal(t, []core.WireID{"W2", "W10", "W1"}, ids())

	removed, err := s.Remove("W2")
	require.NoError(t, err)
	require.NoError(t, s.Add(removed))
	assert.Equal(t, []core.WireID{"W2", "W10", "W1"}, ids(), "re-added wire keeps its place")

	prev, err := s.Update(wire.Wire{ID: "W10", Hidden: true})
	require.NoError(t, err)
	assert.False(t, prev.Hidden)
	got, _ := s.Get("W10")
	assert.True(t, got.Hidden)
	assert.Equal(t, []core.WireID{"W2", "W10", "W1"}, ids())

	_, err = s.Remove("nope")
	assert.ErrorIs(t, err, wire.ErrWireNotFound)
}
