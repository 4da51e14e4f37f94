// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/harness"
)

func newCheckCmd(a *app) *cobra.Command {
	var nets bool
	cmd := &cobra.Command{
		Use:   "check <project>",
		Short: "Validate a project and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := harness.FromSnapshot(snap, a.options()...)
			if err != nil {
				return err
			}
			st := doc.Store()
			if err := st.Validate(); err != nil {
				return err
			}

			user := doc.ManualWires()
			unrouted := 0
			for _, w := range user {
				if !w.Routed() && !w.Hidden {
					unrouted++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "connectors: %d\n", len(doc.Connectors()))
			fmt.Fprintf(out, "wires:      %d (%d routed by a router, %d unrouted)\n",
				len(user), len(doc.Wires())-len(user), unrouted)
			fmt.Fprintf(out, "nodes:      %d\n", st.NodeCount())
			fmt.Fprintf(out, "segments:   %d\n", st.SegmentCount())
			fmt.Fprintf(out, "bundles:    %d\n", len(st.Bundles()))

			nl := doc.Netlist()
			fmt.Fprintf(out, "nets:       %d\n", len(nl.Nets()))
			if nets {
				for _, n := range nl.Nets() {
					fmt.Fprintf(out, "  %s:", n.Name)
					for _, p := range n.Pins {
						fmt.Fprintf(out, " %s", p)
					}
					fmt.Fprintln(out)
				}
			}
			a.log.Debug("project checked", "path", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&nets, "nets", false, "list every net with its pins")
	return cmd
}
