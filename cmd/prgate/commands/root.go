// SPDX-License-Identifier: AGPL-3.0-or-later

/*
prgate - pull-request gate runner.
It validates pull-request commit messages against a ticket/tag policy and
runs a configurable lint pass over tracked source files, reporting a single
pass/fail exit status for CI.
*/

package commands

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd constructs the prgate root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("PRGATE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var verbose bool

	cmd := &cobra.Command{
		Use:           "prgate",
		Short:         "prgate - pull-request gates for CI",
		Long:          "prgate validates pull-request commit messages and lints source files, exiting non-zero when a gate fails.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of prgate",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "prgate version %s\n", version)
		},
	})

	cmd.AddCommand(newCheckCmd())

	return cmd
}
