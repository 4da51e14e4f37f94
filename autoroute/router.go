// SPDX-License-Identifier: MIT

package autoroute

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

// MacroName is the description of the command a run pushes.
const MacroName = "Create Branches"

// OverlayPrefix starts the id of every overlay wire the router creates.
const OverlayPrefix = "AR_"

// Config holds the routing heuristics.
type Config struct {
	// HubThreshold is the number of wire ends a connector must exceed to
	// become a hub.
	HubThreshold int
	// BranchOffset places a hub's branch point relative to the hub.
	BranchOffset core.Point
}

// DefaultConfig returns threshold 2 and offset (80,-20).
func DefaultConfig() Config {
	return Config{HubThreshold: 2, BranchOffset: core.Point{X: 80, Y: -20}}
}

// Option configures a Router.
type Option func(*Router)

// WithConfig replaces the whole configuration. Panics on a negative
// threshold.
func WithConfig(c Config) Option {
	if c.HubThreshold < 0 {
		panic(fmt.Sprintf("autoroute: negative hub threshold %d", c.HubThreshold))
	}
	return func(r *Router) { r.cfg = c }
}

// WithHubThreshold sets Config.HubThreshold. Panics on n < 0.
func WithHubThreshold(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("autoroute: negative hub threshold %d", n))
	}
	return func(r *Router) { r.cfg.HubThreshold = n }
}

// WithBranchOffset sets Config.BranchOffset.
func WithBranchOffset(p core.Point) Option {
	return func(r *Router) { r.cfg.BranchOffset = p }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("autoroute: WithLogger(nil)")
	}
	return func(r *Router) { r.log = l }
}

// Router runs the auto-routing heuristic over one editor and history.
type Router struct {
	e     *edit.Editor
	stack *command.Stack
	cfg   Config
	log   *slog.Logger
}

// New returns a Router pushing its work onto stack.
func New(e *edit.Editor, stack *command.Stack, opts ...Option) *Router {
	r := &Router{e: e, stack: stack, cfg: DefaultConfig(), log: e.Topology().Logger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the active configuration.
func (r *Router) Config() Config { return r.cfg }

// Route replaces the previous auto-route run with one computed from specs.
// Wires not yet known to the topology are registered first. The returned
// report counts per-wire outcomes; an error means the run was rolled back.
func (r *Router) Route(specs []wire.Spec) (rep topology.RouteReport, err error) {
	rep = topology.NewRouteReport()
	if err = r.stack.BeginMacro(MacroName); err != nil {
		return rep, err
	}
	defer func() {
		if err != nil {
			if aerr := r.stack.AbortMacro(); aerr != nil {
				err = errors.Join(err, aerr)
			}
			r.log.Error("auto-route aborted", slog.Any("error", err))
			return
		}
		err = r.stack.EndMacro()
	}()

	x := &run{Router: r, m: r.e.Topology(), rep: &rep, missing: make(map[string]bool)}
	if err = x.retract(); err != nil {
		return rep, err
	}
	valid, err := x.register(specs)
	if err != nil {
		return rep, err
	}
	if err = x.synthesize(NewPlan(valid, r.cfg.HubThreshold)); err != nil {
		return rep, err
	}
	if err = x.materialize(valid); err != nil {
		return rep, err
	}

	r.log.Info("auto-route finished",
		slog.Int("routed", rep.Routed),
		slog.Int("unrouted", rep.Unrouted),
		slog.Int("nodes", len(rep.CreatedNodes)),
		slog.Int("segments", len(rep.CreatedSegments)))
	r.e.Scene().ReportStatus("Auto-route: " + rep.Summary())
	return rep, nil
}

// run is the state of one Route call.
type run struct {
	*Router
	m       *topology.Manager
	rep     *topology.RouteReport
	missing map[string]bool
}

func (x *run) push(cmd command.Command, err error) error {
	if err != nil {
		return err
	}
	return x.stack.Push(cmd)
}

// retract removes the previous run: overlays first, then synthesized
// segments left empty, then synthesized nodes left unconnected.
func (x *run) retract() error {
	for _, w := range x.m.WiresWhere(func(w wire.Wire) bool { return w.Origin == core.OriginAutoRoute }) {
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

	st := x.m.Store()
	for _, seg := range st.Segments() {
		if seg.Origin != core.OriginAutoRoute {
			continue
		}
		if seg.WireCount() > 0 {
			x.log.Warn("keeping synthesized segment still in use", slog.String("segment", string(seg.ID)), slog.Int("wires", seg.WireCount()))
			continue
		}
		c, err := x.e.RemoveSegment(seg.ID)
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	for _, n := range st.Nodes() {
		if n.Origin != core.OriginAutoRoute {
			continue
		}
		c, err := x.e.RemoveNode(n.ID)
		if errors.Is(err, core.ErrNodeInUse) {
			x.log.Warn("keeping synthesized node still in use", slog.String("node", string(n.ID)))
			continue
		}
		if err := x.push(c, err); err != nil {
			return err
		}
	}
	return nil
}

// register adds the wires of specs the topology does not know yet and
// returns the specs that can take part in routing. Specs without an id get
// a fresh one.
func (x *run) register(specs []wire.Spec) ([]wire.Spec, error) {
	valid := make([]wire.Spec, 0, len(specs))
	for _, s := range specs {
		if s.ID == "" {
			s.ID = x.m.NewWireID()
		}
		if x.m.HasWire(s.ID) {
			valid = append(valid, s)
			continue
		}
		w, err := wire.FromSpec(s)
		if err != nil {
			x.rep.Fail(s.ID, err)
			continue
		}
		c, err := x.e.AddWire(w)
		if err := x.push(c, err); err != nil {
			return nil, err
		}
		valid = append(valid, s)
	}
	return valid, nil
}

func (x *run) connector(cid string) (core.NodeID, bool) {
	n, ok := x.m.ConnectorNode(cid)
	if !ok && !x.missing[cid] {
		x.missing[cid] = true
		x.log.Warn("connector has no topology node", slog.String("connector", cid))
		x.rep.Failures = append(x.rep.Failures, topology.Failure{
			Connector: cid,
			Err:       fmt.Errorf("%w: connector %q", topology.ErrMissingNode, cid),
		})
	}
	return n, ok
}

// synthesize builds hub branch points with their trunks and spokes, then
// the direct segments of hub-less pairs.
func (x *run) synthesize(p Plan) error {
	st := x.m.Store()
	for _, h := range p.Hubs {
		hn, ok := x.connector(h)
		if !ok {
			continue
		}
		hub, _ := st.Node(hn)
		c, err := x.e.AddNode(core.BranchPointKind{Type: core.BranchSplit},
			hub.Position.Add(x.cfg.BranchOffset), core.WithNodeOrigin(core.OriginAutoRoute))
		if err := x.push(c, err); err != nil {
			return err
		}
		bp := c.Node().ID
		x.rep.CreatedNodes = append(x.rep.CreatedNodes, bp)
		if _, err := x.link(hn, bp); err != nil {
			return err
		}
		for _, o := range p.Spokes(h) {
			on, ok := x.connector(o)
			if !ok {
				continue
			}
			if _, err := x.link(bp, on); err != nil {
				return err
			}
		}
	}

	for _, g := range p.Direct() {
		a, okA := x.connector(g.From)
		b, okB := x.connector(g.To)
		if !okA || !okB || a == b {
			continue
		}
		if _, err := x.link(a, b); err != nil {
			return err
		}
	}
	return nil
}

// link returns the first segment joining a and b, creating one when none
// exists.
func (x *run) link(a, b core.NodeID) (core.SegmentID, error) {
	if sid, ok := x.m.FindSegmentBetween(a, b); ok {
		return sid, nil
	}
	c, err := x.e.AddSegment(a, b, core.WithSegmentOrigin(core.OriginAutoRoute))
	if err := x.push(c, err); err != nil {
		return "", err
	}
	sid := c.Segment().ID
	x.rep.CreatedSegments = append(x.rep.CreatedSegments, sid)
	return sid, nil
}

// route is one distinct node path and the wires that follow it.
type route struct {
	path  []core.SegmentID
	wires []core.WireID
}

// materialize routes every wire, merges identical node paths into overlay
// wires and hides the originals.
func (x *run) materialize(specs []wire.Spec) error {
	st := x.m.Store()
	var routes []*route
	byKey := make(map[string]*route)
	for _, s := range specs {
		a, b := s.From.Node(), s.To.Node()
		if !st.HasNode(a) || !st.HasNode(b) {
			x.rep.Fail(s.ID, fmt.Errorf("%w: %s to %s", topology.ErrMissingNode, s.From, s.To))
			continue
		}
		if a == b {
			x.rep.Fail(s.ID, fmt.Errorf("%w: %s to %s", topology.ErrNoPath, s.From, s.To))
			continue
		}
		path := x.m.FindPath(a, b)
		if len(path) == 0 {
			sid, err := x.link(a, b)
			if err != nil {
				return err
			}
			path = []core.SegmentID{sid}
		}
		nodes, _ := st.WalkNodes(a, path)
		key := joinNodes(nodes)
		rt, ok := byKey[key]
		if !ok {
			rt = &route{path: path}
			byKey[key] = rt
			routes = append(routes, rt)
		}
		rt.wires = append(rt.wires, s.ID)
	}

	for _, rt := range routes {
		first, _ := x.m.Wire(rt.wires[0])
		ov := wire.Wire{
			ID:           core.WireID(OverlayPrefix + string(first.ID)),
			From:         first.From,
			To:           first.To,
			Segments:     rt.path,
			Color:        first.Color,
			CrossSection: first.CrossSection,
			Origin:       core.OriginAutoRoute,
			Sources:      rt.wires,
		}
		c, err := x.e.AddWire(ov)
		if err := x.push(c, err); err != nil {
			return err
		}
		for _, id := range rt.wires {
			x.rep.Routed++
			x.rep.RoutedWires = append(x.rep.RoutedWires, id)
			x.rep.Overlay[id] = ov.ID
			if w, _ := x.m.Wire(id); w.Hidden {
				continue
			}
			h, err := x.e.SetHidden(id, true)
			if err := x.push(h, err); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinNodes(nodes []core.NodeID) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(n))
	}
	return b.String()
}
