// SPDX-License-Identifier: MIT

package bundleroute

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

// MacroName is the description of the command a run pushes.
const MacroName = "Route Wires Through Bundles"

// OverlayPrefix starts the id of every overlay wire the router creates.
const OverlayPrefix = "BR_"

// DefaultSnapRadius is how far a bundle end may lie from a node and still
// be anchored to it.
const DefaultSnapRadius = 10.0

// Option configures a Router.
type Option func(*Router)

// WithSnapRadius sets the anchoring radius. Panics on r < 0.
func WithSnapRadius(r float64) Option {
	if r < 0 {
		panic(fmt.Sprintf("bundleroute: negative snap radius %g", r))
	}
	return func(rt *Router) { rt.snap = r }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("bundleroute: WithLogger(nil)")
	}
	return func(rt *Router) { rt.log = l }
}

// Router routes wires over the bundles of one editor.
type Router struct {
	e     *edit.Editor
	stack *command.Stack
	snap  float64
	log   *slog.Logger
}

// New returns a Router pushing its work onto stack.
func New(e *edit.Editor, stack *command.Stack, opts ...Option) *Router {
	r := &Router{e: e, stack: stack, snap: DefaultSnapRadius, log: e.Topology().Logger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SnapRadius returns the anchoring radius.
func (r *Router) SnapRadius() float64 { return r.snap }

// Route upserts bundles, anchors every bundle in the store and routes
// specs over the bundle graph, replacing the previous run. Wires unknown
// to the topology are registered first. An error means the run was rolled
// back; per-wire failures are only counted in the report.
func (r *Router) Route(bundles []core.Bundle, specs []wire.Spec) (rep topology.RouteReport, err error) {
	rep = topology.NewRouteReport()
	if err = r.stack.BeginMacro(MacroName); err != nil {
		return rep, err
	}
	defer func() {
		if err != nil {
			if aerr := r.stack.AbortMacro(); aerr != nil {
				err = errors.Join(err, aerr)
			}
			r.log.Error("bundle route aborted", slog.Any("error", err))
			return
		}
		err = r.stack.EndMacro()
	}()

	x := &run{Router: r, m: r.e.Topology(), rep: &rep, members: make(map[core.BundleID][]core.WireID)}
	steps := []func() error{
		x.retract,
		func() error { return x.upsert(bundles) },
		x.anchor,
		func() error { return x.register(specs) },
		x.routeAll,
		x.assign,
		x.collect,
	}
	for _, step := range steps {
		if err = step(); err != nil {
			return rep, err
		}
	}

	r.log.Info("bundle route finished",
		slog.Int("routed", rep.Routed),
		slog.Int("unrouted", rep.Unrouted),
		slog.Int("nodes", len(rep.CreatedNodes)),
		slog.Int("segments", len(rep.CreatedSegments)))
	r.e.Scene().ReportStatus("Bundle route: " + rep.Summary())
	return rep, nil
}

type run struct {
	*Router
	m       *topology.Manager
	rep     *topology.RouteReport
	valid   []wire.Spec
	members map[core.BundleID][]core.WireID
	order   []core.BundleID
}

func (x *run) push(cmd command.Command, err error) error {
	if err != nil {
		return err
	}
	return x.stack.Push(cmd)
}

// retract removes the previous overlays, shows their originals again and
// clears every bundle membership.
func (x *run) retract() error {
	for _, w := range x.m.WiresWhere(func(w wire.Wire) bool { return w.Origin == core.OriginBundleRoute }) {
		c, err := x.e.RemoveWire(w.ID)
		if err := x.push(c, err); err != nil {
			return err
		}
		for _, src := range w.Sources {
			sw, ok := x.m.Wire(src)
			if !ok || !sw.Hidden || len(x.m.OverlaysOf(src, w.ID)) > 0 {
				continue
			}
			h, err := x.e.SetHidden(src, false)
			if err := x.push(h, err); err != nil {
				return err
			}
		}
	}
	for _, b := range x.m.Store().Bundles() {
		if len(b.WireIDs) == 0 {
			continue
		}
		c, err := x.e.SetBundleWires(b.ID, nil)
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	return nil
}

// upsert inserts new bundles and updates known ones. A known bundle keeps
// its anchor on an end whose point did not move. Memberships in the input
// are ignored.
func (x *run) upsert(bundles []core.Bundle) error {
	st := x.m.Store()
	for _, in := range bundles {
		b := in.Clone()
		b.WireIDs = nil
		x.dropDangling(&b)
		cur, known := st.Bundle(b.ID)
		if !known {
			c, err := x.e.AddBundle(b)
			if err := x.push(c, err); err != nil {
				return err
			}
			continue
		}
		if b.StartNode == "" && b.Start == cur.Start {
			b.StartNode = cur.StartNode
		}
		if b.EndNode == "" && b.End == cur.End {
			b.EndNode = cur.EndNode
		}
		if sameBundle(b, cur) {
			continue
		}
		c, err := x.e.UpdateBundle(b)
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	return nil
}

func (x *run) dropDangling(b *core.Bundle) {
	st := x.m.Store()
	for _, n := range []*core.NodeID{&b.StartNode, &b.EndNode} {
		if *n != "" && !st.HasNode(*n) {
			x.log.Warn("bundle anchor names an unknown node", slog.String("bundle", string(b.ID)), slog.String("node", string(*n)))
			*n = ""
		}
	}
}

func sameBundle(a, b core.Bundle) bool {
	if a.Start != b.Start || a.End != b.End || a.StartNode != b.StartNode || a.EndNode != b.EndNode {
		return false
	}
	if (a.SpecifiedLength == nil) != (b.SpecifiedLength == nil) {
		return false
	}
	return a.SpecifiedLength == nil || *a.SpecifiedLength == *b.SpecifiedLength
}

// anchor binds every open bundle end of the store.
func (x *run) anchor() error {
	for _, b := range x.m.Store().Bundles() {
		if b.Anchored() {
			continue
		}
		var err error
		if b.StartNode == "" {
			if b.StartNode, err = x.anchorAt(b.Start, b.EndNode); err != nil {
				return err
			}
		}
		if b.EndNode == "" {
			if b.EndNode, err = x.anchorAt(b.End, b.StartNode); err != nil {
				return err
			}
		}
		c, err := x.e.UpdateBundle(b)
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	return nil
}

// anchorAt returns the node nearest to p within the snap radius, or a new
// branch point at p. avoid keeps both ends of one bundle apart.
func (x *run) anchorAt(p core.Point, avoid core.NodeID) (core.NodeID, error) {
	if n, ok := x.m.Store().NearestNode(p, x.snap); ok && n != avoid {
		return n, nil
	}
	c, err := x.e.AddNode(core.BranchPointKind{Type: core.BranchSplit}, p, core.WithNodeOrigin(core.OriginBundleRoute))
	if err := x.push(c, err); err != nil {
		return "", err
	}
	id := c.Node().ID
	x.rep.CreatedNodes = append(x.rep.CreatedNodes, id)
	return id, nil
}

// register adds the wires of specs the topology does not know yet.
func (x *run) register(specs []wire.Spec) error {
	for _, s := range specs {
		if s.ID == "" {
			s.ID = x.m.NewWireID()
		}
		if !x.m.HasWire(s.ID) {
			w, err := wire.FromSpec(s)
			if err != nil {
				x.rep.Fail(s.ID, err)
				continue
			}
			c, err := x.e.AddWire(w)
			if err := x.push(c, err); err != nil {
				return err
			}
		}
		x.valid = append(x.valid, s)
	}
	return nil
}

func (x *run) routeAll() error {
	bundles := x.m.Store().Bundles()
	g := newGraph(bundles)
	for _, s := range x.valid {
		if err := x.routeOne(g, bundles, s); err != nil {
			return err
		}
	}
	return nil
}

func touching(bundles []core.Bundle, n core.NodeID) []core.Bundle {
	var out []core.Bundle
	for _, b := range bundles {
		if b.Anchored() && b.Touches(n) {
			out = append(out, b)
		}
	}
	return out
}

// findWalk tries every start-bundle and end-bundle combination and
// returns the first simplified node walk from a to b.
func findWalk(g *graph, bundles []core.Bundle, a, b core.NodeID) []core.NodeID {
	ends := touching(bundles, b)
	for _, sb := range touching(bundles, a) {
		s, _ := sb.Other(a)
		for _, eb := range ends {
			t, _ := eb.Other(b)
			mid := g.walk(s, t)
			if mid == nil {
				continue
			}
			full := make([]core.NodeID, 0, len(mid)+2)
			full = append(full, a)
			full = append(full, mid...)
			full = append(full, b)
			return simplify(full)
		}
	}
	return nil
}

func (x *run) routeOne(g *graph, bundles []core.Bundle, s wire.Spec) error {
	st := x.m.Store()
	a, b := s.From.Node(), s.To.Node()
	if !st.HasNode(a) || !st.HasNode(b) {
		x.log.Warn("wire end has no topology node", slog.String("wire", string(s.ID)))
		x.rep.Fail(s.ID, fmt.Errorf("%w: %s to %s", topology.ErrMissingNode, s.From, s.To))
		return nil
	}
	walk := findWalk(g, bundles, a, b)
	if len(walk) < 2 {
		x.log.Warn("no bundle path", slog.String("wire", string(s.ID)))
		x.rep.Fail(s.ID, fmt.Errorf("%w: no bundle path from %s to %s", topology.ErrNoPath, s.From, s.To))
		return nil
	}

	path := make([]core.SegmentID, 0, len(walk)-1)
	var used []core.BundleID
	for i := 0; i+1 < len(walk); i++ {
		bid, _ := g.bundle(walk[i], walk[i+1])
		sid, err := x.segmentFor(walk[i], walk[i+1], bid)
		if err != nil {
			return err
		}
		path = append(path, sid)
		if !slices.Contains(used, bid) {
			used = append(used, bid)
		}
	}

	orig, _ := x.m.Wire(s.ID)
	ov := wire.Wire{
		ID:           core.WireID(OverlayPrefix + string(s.ID)),
		From:         orig.From,
		To:           orig.To,
		Segments:     path,
		Color:        orig.Color,
		CrossSection: orig.CrossSection,
		Origin:       core.OriginBundleRoute,
		Sources:      []core.WireID{s.ID},
	}
	c, err := x.e.AddWire(ov)
	if err := x.push(c, err); err != nil {
		return err
	}
	if !orig.Hidden {
		h, err := x.e.SetHidden(s.ID, true)
		if err := x.push(h, err); err != nil {
			return err
		}
	}
	for _, bid := range used {
		if _, seen := x.members[bid]; !seen {
			x.order = append(x.order, bid)
		}
		x.members[bid] = append(x.members[bid], s.ID)
	}
	x.rep.Routed++
	x.rep.RoutedWires = append(x.rep.RoutedWires, s.ID)
	x.rep.Overlay[s.ID] = ov.ID
	return nil
}

// segmentFor returns the segment mirroring bundle bid between u and v:
// one already tagged with bid, else an untagged one (tagged now), else a
// new one.
func (x *run) segmentFor(u, v core.NodeID, bid core.BundleID) (core.SegmentID, error) {
	st := x.m.Store()
	var untagged core.SegmentID
	for _, sid := range st.Incident(u) {
		seg, _ := st.Segment(sid)
		if !seg.Connects(u, v) {
			continue
		}
		if seg.Bundle == bid {
			return sid, nil
		}
		if seg.Bundle == "" && untagged == "" {
			untagged = sid
		}
	}
	if untagged != "" {
		c, err := x.e.SetSegmentBundle(untagged, bid)
		if err := x.push(c, err); err != nil {
			return "", err
		}
		return untagged, nil
	}
	c, err := x.e.AddSegment(u, v, core.WithSegmentOrigin(core.OriginBundleRoute), core.WithSegmentBundle(bid))
	if err := x.push(c, err); err != nil {
		return "", err
	}
	sid := c.Segment().ID
	x.rep.CreatedSegments = append(x.rep.CreatedSegments, sid)
	return sid, nil
}

// assign writes the recomputed memberships, bundles in first-use order.
func (x *run) assign() error {
	for _, bid := range x.order {
		c, err := x.e.SetBundleWires(bid, x.members[bid])
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	return nil
}

// collect removes router segments left without wires and router branch
// points left unconnected.
func (x *run) collect() error {
	st := x.m.Store()
	for _, seg := range st.Segments() {
		if seg.Origin != core.OriginBundleRoute || seg.WireCount() > 0 {
			continue
		}
		c, err := x.e.RemoveSegment(seg.ID)
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	for _, n := range st.Nodes() {
		if n.Origin != core.OriginBundleRoute {
			continue
		}
		c, err := x.e.RemoveNode(n.ID)
		if errors.Is(err, core.ErrNodeInUse) {
			continue
		}
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	return nil
}
