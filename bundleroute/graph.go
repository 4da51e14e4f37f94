// SPDX-License-Identifier: MIT

package bundleroute

import (
	"github.com/katalvlaran/harness/bfs"
	"github.com/katalvlaran/harness/core"
)

type pairKey struct{ a, b core.NodeID }

func keyOf(x, y core.NodeID) pairKey {
	if y < x {
		x, y = y, x
	}
	return pairKey{x, y}
}

// graph is the adjacency of anchored bundles. Parallel bundles collapse
// into one arc labelled with the first of them.
type graph struct {
	adj  map[core.NodeID][]bfs.Arc
	edge map[pairKey]core.BundleID
}

func newGraph(bundles []core.Bundle) *graph {
	g := &graph{adj: make(map[core.NodeID][]bfs.Arc), edge: make(map[pairKey]core.BundleID)}
	for _, b := range bundles {
		if !b.Anchored() || b.StartNode == b.EndNode {
			continue
		}
		k := keyOf(b.StartNode, b.EndNode)
		if _, dup := g.edge[k]; dup {
			continue
		}
		g.edge[k] = b.ID
		g.adj[b.StartNode] = append(g.adj[b.StartNode], bfs.Arc{Label: string(b.ID), To: string(b.EndNode)})
		g.adj[b.EndNode] = append(g.adj[b.EndNode], bfs.Arc{Label: string(b.ID), To: string(b.StartNode)})
	}
	return g
}

func (g *graph) HasVertex(id string) bool {
	_, ok := g.adj[core.NodeID(id)]
	return ok
}

func (g *graph) Arcs(id string) ([]bfs.Arc, error) { return g.adj[core.NodeID(id)], nil }

// bundle returns the bundle joining a and b.
func (g *graph) bundle(a, b core.NodeID) (core.BundleID, bool) {
	id, ok := g.edge[keyOf(a, b)]
	return id, ok
}

// walk returns the node sequence from s to t over bundles, [s] when they
// coincide, nil when t is unreachable.
func (g *graph) walk(s, t core.NodeID) []core.NodeID {
	if s == t {
		return []core.NodeID{s}
	}
	res, err := bfs.BFS(g, string(s), bfs.WithStopAt(string(t)))
	if err != nil {
		return nil
	}
	p, err := res.PathTo(string(t))
	if err != nil {
		return nil
	}
	out := make([]core.NodeID, len(p))
	for i, n := range p {
		out[i] = core.NodeID(n)
	}
	return out
}

// simplify drops repeated nodes and immediate backtracks (x, y, x → x).
func simplify(walk []core.NodeID) []core.NodeID {
	out := make([]core.NodeID, 0, len(walk))
	for _, n := range walk {
		k := len(out)
		switch {
		case k > 0 && out[k-1] == n:
		case k > 1 && out[k-2] == n:
			out = out[:k-1]
		default:
			out = append(out, n)
		}
	}
	return out
}
