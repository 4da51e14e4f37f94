// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/harness"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a project between YAML, JSON and SQLite",
		Long:  `The format of each side follows its extension: .json is JSON, .db/.sqlite/.sqlite3 is SQLite, anything else YAML.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := loadSnapshot(ctx, args[0])
			if err != nil {
				return err
			}
			// Round-trip through a document so the output is normalised.
			doc, err := harness.FromSnapshot(snap, a.options()...)
			if err != nil {
				return err
			}
			if err := saveSnapshot(ctx, args[1], doc.Snapshot()); err != nil {
				return err
			}
			a.log.Info("project converted", "from", args[0], "to", args[1])
			return nil
		},
	}
}
