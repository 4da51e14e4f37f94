// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instruments for the undo history and
// the routers. Its Observe methods plug into harness.WithHistoryObserver
// and harness.WithRouteObserver.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/topology"
)

const namespace = "harness"

// Metrics holds every instrument. Build one per registry with New.
type Metrics struct {
	CommandsTotal      *prometheus.CounterVec
	HistoryDepth       prometheus.Gauge
	RouteRunsTotal     *prometheus.CounterVec
	WiresRoutedTotal   *prometheus.CounterVec
	WiresUnroutedTotal *prometheus.CounterVec
	RouteDuration      *prometheus.HistogramVec
}

// New creates the instruments and registers them with reg. A nil reg
// leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CommandsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "history",
				Name:      "transitions_total",
				Help:      "History transitions by operation (push, merge, undo, redo, abort)",
			},
			[]string{"op"},
		),
		HistoryDepth: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "history",
				Name:      "applied_commands",
				Help:      "Number of applied commands on the undo stack",
			},
		),
		RouteRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "runs_total",
				Help:      "Router runs by router and status",
			},
			[]string{"router", "status"},
		),
		WiresRoutedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "wires_routed_total",
				Help:      "Wires routed by router",
			},
			[]string{"router"},
		),
		WiresUnroutedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "wires_unrouted_total",
				Help:      "Wires a router could not route",
			},
			[]string{"router"},
		),
		RouteDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "duration_seconds",
				Help:      "Router run duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"router"},
		),
	}
}

// ObserveCommand records one history transition. It has the shape of
// command.Observer.
func (m *Metrics) ObserveCommand(op command.Op, _ command.Command, index int) {
	m.CommandsTotal.WithLabelValues(string(op)).Inc()
	m.HistoryDepth.Set(float64(index))
}

// ObserveRoute records one router run.
func (m *Metrics) ObserveRoute(router string, rep topology.RouteReport, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RouteRunsTotal.WithLabelValues(router, status).Inc()
	m.RouteDuration.WithLabelValues(router).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	m.WiresRoutedTotal.WithLabelValues(router).Add(float64(rep.Routed))
	m.WiresUnroutedTotal.WithLabelValues(router).Add(float64(rep.Unrouted))
}
