// SPDX-License-Identifier: MIT

// Package netlist groups pins into electrical nets: two pins are on the same
// net when a chain of wires connects them.
package netlist

import (
	"strconv"

	"github.com/katalvlaran/harness/wire"
)

// Net is a named set of electrically common pins.
type Net struct {
	Name string
	Pins []wire.PinRef
}

// Netlist is a union-find over pins. Nets are named "NET_<n>" in the order
// their first pin was connected; merging keeps the older name.
type Netlist struct {
	parent map[wire.PinRef]wire.PinRef
	order  []wire.PinRef
}

// New returns an empty Netlist.
func New() *Netlist {
	return &Netlist{parent: make(map[wire.PinRef]wire.PinRef)}
}

// Build connects the two ends of every wire, in order.
func Build(wires []wire.Wire) *Netlist {
	nl := New()
	for _, w := range wires {
		nl.Connect(w.From, w.To)
	}
	return nl
}

// Connect joins the nets of a and b.
func (nl *Netlist) Connect(a, b wire.PinRef) {
	ra, rb := nl.root(a), nl.root(b)
	if ra == rb {
		return
	}
	// the pin seen first stays the representative
	if nl.rank(rb) < nl.rank(ra) {
		ra, rb = rb, ra
	}
	nl.parent[rb] = ra
}

// Same reports whether a and b are on one net.
func (nl *Netlist) Same(a, b wire.PinRef) bool {
	if !nl.known(a) || !nl.known(b) {
		return false
	}
	return nl.root(a) == nl.root(b)
}

// Nets returns every net with its pins in first-connected order.
func (nl *Netlist) Nets() []Net {
	index := make(map[wire.PinRef]int)
	var nets []Net
	for _, p := range nl.order {
		r := nl.root(p)
		i, ok := index[r]
		if !ok {
			i = len(nets)
			index[r] = i
			nets = append(nets, Net{Name: "NET_" + strconv.Itoa(i+1)})
		}
		nets[i].Pins = append(nets[i].Pins, p)
	}
	return nets
}

// NetOf returns the net containing p.
func (nl *Netlist) NetOf(p wire.PinRef) (Net, bool) {
	if !nl.known(p) {
		return Net{}, false
	}
	r := nl.root(p)
	for _, n := range nl.Nets() {
		if nl.root(n.Pins[0]) == r {
			return n, true
		}
	}
	return Net{}, false
}

func (nl *Netlist) known(p wire.PinRef) bool {
	_, ok := nl.parent[p]
	return ok
}

func (nl *Netlist) root(p wire.PinRef) wire.PinRef {
	if !nl.known(p) {
		nl.parent[p] = p
		nl.order = append(nl.order, p)
		return p
	}
	for nl.parent[p] != p {
		nl.parent[p] = nl.parent[nl.parent[p]]
		p = nl.parent[p]
	}
	return p
}

func (nl *Netlist) rank(p wire.PinRef) int {
	for i, q := range nl.order {
		if q == p {
			return i
		}
	}
	return len(nl.order)
}
