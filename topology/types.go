// SPDX-License-Identifier: MIT

package topology

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// Sentinel errors for topology operations.
var (
	ErrMissingNode    = errors.New("topology: missing node")
	ErrNoPath         = errors.New("topology: no path")
	ErrInvalidSplit   = errors.New("topology: invalid split")
	ErrStaleReference = errors.New("topology: stale reference")
)

// Request describes a wire to route. ID may be empty to generate one.
type Request struct {
	ID           core.WireID
	From         wire.PinRef
	To           wire.PinRef
	Via          []core.NodeID
	Color        string
	CrossSection float64
	Origin       core.Origin
	Sources      []core.WireID
}

// Routed is the outcome of a successful Route.
type Routed struct {
	Wire     core.WireID
	Segments []core.SegmentID
	// Created lists the direct segments Route had to create, in order.
	Created []core.SegmentID
}

// WirePath records a wire's path before and after an edit.
type WirePath struct {
	Wire   core.WireID
	Before []core.SegmentID
	After  []core.SegmentID
}

// Split is the full record of a segment split, enough to reverse it.
type Split struct {
	Old      core.Segment
	Junction core.Node
	First    core.Segment
	Second   core.Segment
	Paths    []WirePath
}

// Failure is one wire or connector a router could not handle.
type Failure struct {
	Wire      core.WireID
	Connector string
	Err       error
}

func (f Failure) String() string {
	switch {
	case f.Wire != "":
		return fmt.Sprintf("wire %s: %v", f.Wire, f.Err)
	default:
		return fmt.Sprintf("connector %s: %v", f.Connector, f.Err)
	}
}

// RouteReport summarises one router run.
type RouteReport struct {
	Routed          int
	Unrouted        int
	RoutedWires     []core.WireID
	UnroutedWires   []core.WireID
	CreatedNodes    []core.NodeID
	CreatedSegments []core.SegmentID
	// Overlay maps each routed user wire to the overlay wire carrying it.
	Overlay  map[core.WireID]core.WireID
	Failures []Failure
}

// NewRouteReport returns an empty report.
func NewRouteReport() RouteReport {
	return RouteReport{Overlay: make(map[core.WireID]core.WireID)}
}

// Fail records an unrouted wire.
func (r *RouteReport) Fail(w core.WireID, err error) {
	r.Unrouted++
	r.UnroutedWires = append(r.UnroutedWires, w)
	r.Failures = append(r.Failures, Failure{Wire: w, Err: err})
}

// Summary returns a one-line description for status bars and logs.
func (r RouteReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "routed %d wire(s)", r.Routed)
	if r.Unrouted > 0 {
		fmt.Fprintf(&b, ", %d unrouted", r.Unrouted)
	}
	fmt.Fprintf(&b, ", %d node(s) and %d segment(s) created", len(r.CreatedNodes), len(r.CreatedSegments))
	return b.String()
}
