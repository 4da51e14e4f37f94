// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/harness/autoroute"
	"github.com/katalvlaran/harness/bundleroute"
	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/edit"
	"github.com/katalvlaran/harness/netlist"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

// RouteObserver is called after every router run, successful or not.
// router is RouterAuto or RouterBundle.
type RouteObserver func(router string, rep topology.RouteReport, elapsed time.Duration, err error)

// Document is one harness design with its undo history.
type Document struct {
	conns   *connectorSet
	topo    *topology.Manager
	editor  *edit.Editor
	stack   *command.Stack
	auto    *autoroute.Router
	bundles *bundleroute.Router

	scene   scene.Scene
	log     *slog.Logger
	onRoute RouteObserver

	defaultColor        string
	defaultCrossSection float64
}

type settings struct {
	scene   scene.Scene
	log     *slog.Logger
	ids     core.IDSource
	auto    []autoroute.Option
	snap    *float64
	history command.Observer
	route   RouteObserver
	color   string
	cs      float64
}

// Option configures a Document.
type Option func(*settings)

// WithScene sends visuals and status lines to sc.
func WithScene(sc scene.Scene) Option {
	if sc == nil {
		panic("harness: WithScene(nil)")
	}
	return func(s *settings) { s.scene = sc }
}

// WithLogger sets the logger of the document and everything it owns.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("harness: WithLogger(nil)")
	}
	return func(s *settings) { s.log = l }
}

// WithIDSource replaces the sequential id source of the topology store.
func WithIDSource(src core.IDSource) Option {
	if src == nil {
		panic("harness: WithIDSource(nil)")
	}
	return func(s *settings) { s.ids = src }
}

// WithAutoRoute passes options to the auto-router.
func WithAutoRoute(opts ...autoroute.Option) Option {
	return func(s *settings) { s.auto = append(s.auto, opts...) }
}

// WithSnapRadius sets how far the bundle router looks for an existing
// node to anchor a bundle end to.
func WithSnapRadius(r float64) Option {
	if r < 0 {
		panic(fmt.Sprintf("harness: WithSnapRadius(%g): negative radius", r))
	}
	return func(s *settings) { s.snap = &r }
}

// WithHistoryObserver is notified of every history transition.
func WithHistoryObserver(fn command.Observer) Option {
	return func(s *settings) { s.history = fn }
}

// WithRouteObserver is notified after every router run.
func WithRouteObserver(fn RouteObserver) Option {
	return func(s *settings) { s.route = fn }
}

// WithWireDefaults sets colour and cross-section given to wires created
// without them.
func WithWireDefaults(color string, crossSection float64) Option {
	if _, err := wire.ParseColor(color); err != nil {
		panic(fmt.Sprintf("harness: WithWireDefaults: %v", err))
	}
	if crossSection <= 0 {
		panic(fmt.Sprintf("harness: WithWireDefaults: cross-section %g", crossSection))
	}
	return func(s *settings) {
		s.color = color
		s.cs = crossSection
	}
}

// New returns an empty document.
func New(opts ...Option) *Document {
	s := settings{
		scene: scene.Nop{},
		log:   slog.Default(),
		color: wire.DefaultColor,
		cs:    wire.DefaultCrossSection,
	}
	for _, opt := range opts {
		opt(&s)
	}

	var storeOpts []core.Option
	if s.ids != nil {
		storeOpts = append(storeOpts, core.WithIDSource(s.ids))
	}
	topo := topology.NewManager(core.NewStore(storeOpts...), topology.WithLogger(s.log))
	ed := edit.New(topo, s.scene, s.log)

	stackOpts := []command.StackOption{command.WithReporter(s.scene), command.WithLogger(s.log)}
	if s.history != nil {
		stackOpts = append(stackOpts, command.WithObserver(s.history))
	}
	stack := command.NewStack(stackOpts...)

	bundleOpts := []bundleroute.Option{bundleroute.WithLogger(s.log)}
	if s.snap != nil {
		bundleOpts = append(bundleOpts, bundleroute.WithSnapRadius(*s.snap))
	}

	return &Document{
		conns:               newConnectorSet(),
		topo:                topo,
		editor:              ed,
		stack:               stack,
		auto:                autoroute.New(ed, stack, append([]autoroute.Option{autoroute.WithLogger(s.log)}, s.auto...)...),
		bundles:             bundleroute.New(ed, stack, bundleOpts...),
		scene:               s.scene,
		log:                 s.log,
		onRoute:             s.route,
		defaultColor:        s.color,
		defaultCrossSection: s.cs,
	}
}

// Topology returns the topology manager. Mutating it directly bypasses
// the history.
func (d *Document) Topology() *topology.Manager { return d.topo }

// Store returns the topology graph store.
func (d *Document) Store() *core.Store { return d.topo.Store() }

// Connector returns the connector with the given id.
func (d *Document) Connector(id string) (Connector, bool) {
	c, ok := d.conns.get(id)
	if !ok {
		return Connector{}, false
	}
	return d.withPosition(c), true
}

// Connectors returns all connectors in placement order.
func (d *Document) Connectors() []Connector {
	all := d.conns.all()
	for i := range all {
		all[i] = d.withPosition(all[i])
	}
	return all
}

func (d *Document) withPosition(c Connector) Connector {
	if n, ok := d.Store().Node(c.Node()); ok {
		c.Position = n.Position
	}
	return c
}

// Wire returns the wire with the given id.
func (d *Document) Wire(id core.WireID) (wire.Wire, bool) { return d.topo.Wire(id) }

// Wires returns all wires, overlays included, in insertion order.
func (d *Document) Wires() []wire.Wire { return d.topo.Wires() }

// ManualWires returns the user's wires in insertion order.
func (d *Document) ManualWires() []wire.Wire {
	return d.topo.WiresWhere(func(w wire.Wire) bool { return w.Origin == core.OriginManual })
}

// Netlist groups the pins joined by the user's wires into nets.
func (d *Document) Netlist() *netlist.Netlist { return netlist.Build(d.ManualWires()) }

// Undo reverts the most recent history entry.
func (d *Document) Undo() bool { return d.stack.Undo() }

// Redo re-applies the most recently undone entry.
func (d *Document) Redo() bool { return d.stack.Redo() }

// CanUndo reports whether Undo would do something.
func (d *Document) CanUndo() bool { return d.stack.CanUndo() }

// CanRedo reports whether Redo would do something.
func (d *Document) CanRedo() bool { return d.stack.CanRedo() }

// UndoText describes the entry Undo would revert.
func (d *Document) UndoText() string { return d.stack.UndoText() }

// RedoText describes the entry Redo would re-apply.
func (d *Document) RedoText() string { return d.stack.RedoText() }

// History returns the descriptions of all history entries, oldest first.
func (d *Document) History() []string { return d.stack.History() }

// IsDirty reports whether the document changed since MarkSaved.
func (d *Document) IsDirty() bool { return d.stack.IsDirty() }

// MarkSaved marks the current state as saved.
func (d *Document) MarkSaved() { d.stack.SetClean() }

// push records cmd on the history. err is the error of building cmd.
func (d *Document) push(cmd command.Command, err error) error {
	if err != nil {
		return err
	}
	return d.stack.Push(cmd)
}

// macro runs fn inside a macro named desc, committing it when fn
// succeeds and rolling it back otherwise.
func (d *Document) macro(desc string, fn func() error) (err error) {
	if err := d.stack.BeginMacro(desc); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if aerr := d.stack.AbortMacro(); aerr != nil {
				d.log.Error("abort macro", slog.String("macro", desc), slog.Any("error", aerr))
			}
			return
		}
		err = d.stack.EndMacro()
	}()
	return fn()
}
