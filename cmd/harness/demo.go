// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/harness/builder"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		out     string
		bundles int
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a sample project",
		Long: `Builds the three-connector hub design and auto-routes it. With --bundles N
it builds a chain of N connectors with a bundle over every gap and routes
through the bundles instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cons := builder.HubScenario()
			if bundles > 0 {
				cons = builder.BundleChain(bundles)
			}
			doc, err := builder.BuildDocument(a.options(), nil, cons)
			if err != nil {
				return err
			}
			route := doc.AutoRoute
			if bundles > 0 {
				route = doc.BundleRoute
			}
			rep, err := route()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rep.Summary())
			return saveSnapshot(cmd.Context(), out, doc.Snapshot())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "demo.yml", "output project")
	cmd.Flags().IntVar(&bundles, "bundles", 0, "build a bundle chain of this many connectors")
	return cmd
}
