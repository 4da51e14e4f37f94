// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/metrics"
	"github.com/katalvlaran/harness/topology"
)

func newRouteCmd(a *app) *cobra.Command {
	var (
		out         string
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:       "route auto|bundle <project>",
		Short:     "Route every user wire of a project",
		Long:      `Runs the auto-router (hub branch points) or the bundle router (through drawn bundles) and saves the result, to --out when given, else over the input.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"auto", "bundle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := loadSnapshot(ctx, args[1])
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			m := metrics.New(reg)
			doc, err := harness.FromSnapshot(snap, a.options(
				harness.WithHistoryObserver(m.ObserveCommand),
				harness.WithRouteObserver(m.ObserveRoute),
			)...)
			if err != nil {
				return err
			}

			var rep topology.RouteReport
			switch args[0] {
			case "auto", harness.RouterAuto:
				rep, err = doc.AutoRoute()
			case "bundle", harness.RouterBundle:
				rep, err = doc.BundleRoute()
			default:
				return fmt.Errorf("unknown router %q (want auto or bundle)", args[0])
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, rep.Summary())
			for _, f := range rep.Failures {
				fmt.Fprintf(w, "  unrouted %s\n", f)
			}
			if showMetrics {
				if err := writeMetrics(w, reg); err != nil {
					return err
				}
			}

			if out == "" {
				out = args[1]
			}
			if err := saveSnapshot(ctx, out, doc.Snapshot()); err != nil {
				return err
			}
			a.log.Info("project saved", "path", out, "wires", len(doc.Wires()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output project (default: overwrite input)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print routing metrics")
	return cmd
}

// writeMetrics prints every gathered sample as "name{labels} value".
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)
			suffix := ""
			if len(labels) > 0 {
				suffix = "{" + strings.Join(labels, ",") + "}"
			}
			name := mf.GetName()
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s%s %g\n", name, suffix, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s%s %g\n", name, suffix, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(w, "%s_count%s %d\n", name, suffix, m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}
