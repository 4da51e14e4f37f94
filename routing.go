// SPDX-License-Identifier: MIT

package harness

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

// Router names reported to a RouteObserver.
const (
	RouterAuto   = "autoroute"
	RouterBundle = "bundleroute"
)

func (d *Document) specs() []wire.Spec {
	manual := d.ManualWires()
	out := make([]wire.Spec, len(manual))
	for i, w := range manual {
		out[i] = w.Spec()
	}
	return out
}

// AutoRoute organizes the user's wires into trunks and branches. The
// whole run is one history entry; a failed run leaves nothing behind.
func (d *Document) AutoRoute() (topology.RouteReport, error) {
	start := time.Now()
	rep, err := d.auto.Route(d.specs())
	d.routed(RouterAuto, rep, time.Since(start), err)
	return rep, err
}

// BundleRoute routes the user's wires through the drawn bundles and
// rewrites bundle memberships. Running it twice changes nothing.
func (d *Document) BundleRoute() (topology.RouteReport, error) {
	start := time.Now()
	rep, err := d.bundles.Route(d.Store().Bundles(), d.specs())
	d.routed(RouterBundle, rep, time.Since(start), err)
	return rep, err
}

func (d *Document) routed(router string, rep topology.RouteReport, elapsed time.Duration, err error) {
	if err != nil {
		d.log.Error("routing failed", slog.String("router", router), slog.Any("error", err))
	}
	if d.onRoute != nil {
		d.onRoute(router, rep, elapsed, err)
	}
}
