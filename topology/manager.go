// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// Manager owns a topology graph and the wires routed over it.
type Manager struct {
	store *core.Store
	wires *wire.Set
	log   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger; nil keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager returns a Manager over store; a nil store gets a fresh one.
func NewManager(store *core.Store, opts ...Option) *Manager {
	if store == nil {
		store = core.NewStore()
	}
	m := &Manager{store: store, wires: wire.NewSet(), log: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying graph store.
func (m *Manager) Store() *core.Store { return m.store }

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.log }

// CreateNode places a node of any kind.
func (m *Manager) CreateNode(kind core.Kind, at core.Point, opts ...core.NodeOption) (core.NodeID, error) {
	return m.store.AddNode(kind, at, opts...)
}

// CreateConnectorNode places the topology node of connector cid.
func (m *Manager) CreateConnectorNode(cid string, at core.Point) (core.NodeID, error) {
	return m.store.AddNode(core.ConnectorKind{ConnectorID: cid}, at)
}

// ConnectorNode returns the topology node of connector cid, if placed.
func (m *Manager) ConnectorNode(cid string) (core.NodeID, bool) {
	id := core.ConnectorNodeID(cid)
	return id, m.store.HasNode(id)
}

// CreateJunction places a junction.
func (m *Manager) CreateJunction(at core.Point, opts ...core.NodeOption) (core.NodeID, error) {
	return m.store.AddNode(core.JunctionKind{}, at, opts...)
}

// CreateBranchPoint places a branch point of type bt.
func (m *Manager) CreateBranchPoint(at core.Point, bt core.BranchType, opts ...core.NodeOption) (core.NodeID, error) {
	return m.store.AddNode(core.BranchPointKind{Type: bt}, at, opts...)
}

// CreateFastener places a fastener; fastenerType defaults to "cable_tie".
func (m *Manager) CreateFastener(at core.Point, fastenerType, partNumber string) (core.NodeID, error) {
	if fastenerType == "" {
		fastenerType = "cable_tie"
	}
	return m.store.AddNode(core.FastenerKind{Type: fastenerType, PartNumber: partNumber}, at)
}

// CreateSegment joins a and b with a new, empty segment.
func (m *Manager) CreateSegment(a, b core.NodeID, opts ...core.SegmentOption) (core.SegmentID, error) {
	return m.store.AddSegment(a, b, opts...)
}

// FindSegmentBetween returns the first segment joining a and b.
func (m *Manager) FindSegmentBetween(a, b core.NodeID) (core.SegmentID, bool) {
	return m.store.FindSegmentBetween(a, b)
}

// FindPath returns a fewest-hop segment path from a to b; empty when a == b
// or b is unreachable.
func (m *Manager) FindPath(a, b core.NodeID) []core.SegmentID {
	return m.store.FindPath(a, b)
}

// NewWireID returns an unused wire id.
func (m *Manager) NewWireID() core.WireID {
	for {
		id := core.WireID(m.store.NewID(core.PrefixWire))
		if !m.wires.Has(id) {
			return id
		}
	}
}

// RouteWire routes a wire from one pin to another through via, returning
// the new wire's id. See Route.
func (m *Manager) RouteWire(from, to wire.PinRef, via []core.NodeID) (core.WireID, error) {
	r, err := m.Route(Request{From: from, To: to, Via: via})
	return r.Wire, err
}

// Route builds the node sequence [from node] ++ Via ++ [to node] and, for
// each consecutive pair, uses FindPath or, when the pair is not connected,
// one new direct segment. The concatenated segments become the new wire's
// path; the wire is registered on each of them.
//
// Errors: ErrMissingNode, ErrNoPath, wire property errors, core.ErrDuplicateID.
// Nothing is left behind on error.
func (m *Manager) Route(req Request) (Routed, error) {
	seq := make([]core.NodeID, 0, len(req.Via)+2)
	seq = append(seq, req.From.Node())
	seq = append(seq, req.Via...)
	seq = append(seq, req.To.Node())
	for _, n := range seq {
		if !m.store.HasNode(n) {
			return Routed{}, fmt.Errorf("%w: %q", ErrMissingNode, n)
		}
	}

	var path, created []core.SegmentID
	rollback := func() {
		for i := len(created) - 1; i >= 0; i-- {
			if _, err := m.store.RemoveSegment(created[i]); err != nil {
				panic(fmt.Sprintf("topology: rollback of %q: %v", created[i], err))
			}
		}
	}
	for i := 0; i+1 < len(seq); i++ {
		a, b := seq[i], seq[i+1]
		if a == b {
			continue
		}
		p := m.store.FindPath(a, b)
		if len(p) == 0 {
			sid, err := m.store.AddSegment(a, b, core.WithSegmentOrigin(req.Origin))
			if err != nil {
				rollback()
				return Routed{}, err
			}
			created = append(created, sid)
			p = []core.SegmentID{sid}
		}
		path = append(path, p...)
	}
	if len(path) == 0 {
		return Routed{}, fmt.Errorf("%w: %s to %s", ErrNoPath, req.From, req.To)
	}

	id := req.ID
	if id == "" {
		id = m.NewWireID()
	}
	w, err := wire.FromSpec(wire.Spec{ID: id, From: req.From, To: req.To, Color: req.Color, CrossSection: req.CrossSection})
	if err != nil {
		rollback()
		return Routed{}, err
	}
	w.Segments = path
	w.Origin = req.Origin
	w.Sources = append([]core.WireID(nil), req.Sources...)
	if err := m.AddWire(w); err != nil {
		rollback()
		return Routed{}, err
	}
	return Routed{Wire: id, Segments: path, Created: created}, nil
}
