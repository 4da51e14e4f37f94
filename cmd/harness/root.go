// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/config"
)

// app is the state shared by every subcommand once the root has loaded
// the configuration.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

// options returns the document options for the loaded configuration plus
// extra.
func (a *app) options(extra ...harness.Option) []harness.Option {
	opts := append(a.cfg.DocumentOptions(), harness.WithLogger(a.log))
	return append(opts, extra...)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "harness",
		Short: "Wiring harness topology and routing tool",
		Long: `harness loads a harness design (connectors, wires, branches, nodes and
bundles), validates it, routes its wires automatically or through the
drawn bundles, and writes the result back as YAML, JSON or SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Log.Level = "debug"
			}
			a.cfg = cfg
			a.log = cfg.Logger(cmd.ErrOrStderr())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "harness.yml", "config file path")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newRouteCmd(a),
		newCheckCmd(a),
		newConvertCmd(a),
		newDemoCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}
