// SPDX-License-Identifier: MIT

package netlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness/netlist"
	"github.com/katalvlaran/harness/wire"
)

func pin(c, p string) wire.PinRef { return wire.PinRef{Connector: c, Pin: p} }

func TestBuild_MergesChains(t *testing.T) {
	nl := netlist.Build([]wire.Wire{
		{ID: "W1", From: pin("C1", "1"), To: pin("C2", "1")},
		{ID: "W2", From: pin("C3", "1"), To: pin("C4", "1")},
		{ID: "W3", From: pin("C2", "1"), To: pin("C3", "1")},
		{ID: "W4", From: pin("C5", "1"), To: pin("C6", "2")},
	})

	nets := nl.Nets()
	require.Len(t, nets, 2)
	assert.Equal(t, "NET_1", nets[0].Name)
	assert.Equal(t, []wire.PinRef{pin("C1", "1"), pin("C2", "1"), pin("C3", "1"), pin("C4", "1")}, nets[0].Pins)
	assert.Equal(t, []wire.PinRef{pin("C5", "1"), pin("C6", "2")}, nets[1].Pins)

	assert.True(t, nl.Same(pin("C1", "1"), pin("C4", "1")))
	assert.False(t, nl.Same(pin("C1", "1"), pin("C6", "2")))
	assert.False(t, nl.Same(pin("C1", "1"), pin("C9", "9")))

	n, ok := nl.NetOf(pin("C6", "2"))
	require.True(t, ok)
	assert.Equal(t, "NET_2", n.Name)
	_, ok = nl.NetOf(pin("C9", "9"))
	assert.False(t, ok)
}
