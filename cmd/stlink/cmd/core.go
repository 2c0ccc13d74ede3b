// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/juju2013/gostlink/v2/probe"
	"github.com/spf13/cobra"
)

var coreCmd = &cobra.Command{
	Use:   "core",
	Short: "Change the run state of the target core",
}

// coreAction leaves the link without writing DHCSR again, so the new run
// state survives the end of the command.
func coreAction(use, short string, action func(*probe.Probe) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProbeKeepState(cmd, action)
		},
	}
}

func init() {
	coreCmd.AddCommand(
		coreAction("halt", "Halt the core", (*probe.Probe).Halt),
		coreAction("run", "Resume the core, debug stays enabled", (*probe.Probe).Run),
		coreAction("nodebug", "Resume the core and disable debug", (*probe.Probe).NoDebug),
	)
	rootCmd.AddCommand(coreCmd)
}
