// SPDX-License-Identifier: MIT

package autoroute

import (
	"github.com/katalvlaran/harness/wire"
)

// Group is every wire between one unordered pair of connectors. From and
// To keep the orientation of the first wire seen.
type Group struct {
	From, To string
	Wires    []wire.Spec
	// Hub is the hub connector the group is wired through, empty for a
	// direct pair.
	Hub string
}

// Other returns the connector of the group that is not c.
func (g Group) Other(c string) string {
	if g.From == c {
		return g.To
	}
	return g.From
}

// Plan is the grouping and hub classification of one wire list.
type Plan struct {
	Groups []Group
	// Ends counts wire ends per connector.
	Ends map[string]int
	// Hubs lists hub connectors in first-seen order.
	Hubs []string
}

type pairKey struct{ a, b string }

func keyOf(x, y string) pairKey {
	if y < x {
		x, y = y, x
	}
	return pairKey{x, y}
}

// NewPlan groups specs and classifies hubs: a connector is a hub when more
// than threshold wire ends touch it. A group whose From is a hub belongs to
// From, otherwise to To when To is a hub.
func NewPlan(specs []wire.Spec, threshold int) Plan {
	p := Plan{Ends: make(map[string]int)}
	index := make(map[pairKey]int)
	var order []string
	for _, s := range specs {
		a, b := s.From.Connector, s.To.Connector
		k := keyOf(a, b)
		i, ok := index[k]
		if !ok {
			i = len(p.Groups)
			index[k] = i
			p.Groups = append(p.Groups, Group{From: a, To: b})
		}
		p.Groups[i].Wires = append(p.Groups[i].Wires, s)
		for _, c := range [2]string{a, b} {
			if p.Ends[c] == 0 {
				order = append(order, c)
			}
			p.Ends[c]++
		}
	}

	hub := make(map[string]bool)
	for _, c := range order {
		if p.Ends[c] > threshold {
			hub[c] = true
			p.Hubs = append(p.Hubs, c)
		}
	}
	for i := range p.Groups {
		g := &p.Groups[i]
		switch {
		case hub[g.From]:
			g.Hub = g.From
		case hub[g.To]:
			g.Hub = g.To
		}
	}
	return p
}

// Spokes returns the connectors sharing a group with hub h, first-seen
// order, h itself excluded.
func (p Plan) Spokes(h string) []string {
	var out []string
	seen := map[string]bool{h: true}
	for _, g := range p.Groups {
		if g.Hub != h {
			continue
		}
		if o := g.Other(h); !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

// Direct returns the groups not wired through a hub.
func (p Plan) Direct() []Group {
	var out []Group
	for _, g := range p.Groups {
		if g.Hub == "" {
			out = append(out, g)
		}
	}
	return out
}
