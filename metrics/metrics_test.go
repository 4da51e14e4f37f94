// SPDX-License-Identifier: MIT

package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/metrics"
	"github.com/katalvlaran/harness/topology"
	"github.com/katalvlaran/harness/wire"
)

func TestObserveCommand(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	stack := command.NewStack(command.WithObserver(m.ObserveCommand))
	noop := func() {}
	require.NoError(t, stack.Push(command.NewFunc("a", false, noop, noop)))
	require.NoError(t, stack.Push(command.NewFunc("b", false, noop, noop)))
	stack.Undo()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("push")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("undo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryDepth))
}

func TestObserveRoute(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	m.ObserveRoute("autoroute", topology.RouteReport{Routed: 3, Unrouted: 1}, 2*time.Millisecond, nil)
	m.ObserveRoute("autoroute", topology.RouteReport{Routed: 9}, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RouteRunsTotal.WithLabelValues("autoroute", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RouteRunsTotal.WithLabelValues("autoroute", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.WiresRoutedTotal.WithLabelValues("autoroute")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WiresUnroutedTotal.WithLabelValues("autoroute")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RouteDuration))
}

func TestWithDocument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	doc := harness.New(
		harness.WithHistoryObserver(m.ObserveCommand),
		harness.WithRouteObserver(m.ObserveRoute),
	)
	require.NoError(t, doc.AddConnector(harness.Connector{ID: "A"}))
	require.NoError(t, doc.AddConnector(harness.Connector{ID: "B", Position: core.Point{X: 50}}))
	_, err := doc.AddWire(wire.Spec{ID: "W1", From: wire.PinRef{Connector: "A"}, To: wire.PinRef{Connector: "B"}})
	require.NoError(t, err)
	_, err = doc.AutoRoute()
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("push")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.HistoryDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WiresRoutedTotal.WithLabelValues(harness.RouterAuto)))

	n, err := testutil.GatherAndCount(reg, "harness_routing_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
