// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/juju2013/gostlink/v2"
	"github.com/juju2013/gostlink/v2/chips"
	"github.com/spf13/cobra"
)

var listChips bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attached st-link probes, or the supported chips with --chips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listChips {
			return writeChips(cmd.OutOrStdout(), chips.Cores(), chips.Devices())
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		gostlink.SetLogger(newLogger(cfg.Verbosity))

		probes, err := gostlink.List(cfg)
		if err != nil {
			return err
		}
		if len(probes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no st-link found")
			return nil
		}
		for _, p := range probes {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listChips, "chips", false, "list the supported cores and devices instead")
	rootCmd.AddCommand(listCmd)
}

// writeChips prints the catalogs ordered by id.
func writeChips(w io.Writer, cores []chips.Core, devices []chips.Device) error {
	sort.Slice(cores, func(i, j int) bool { return cores[i].PartNumber < cores[j].PartNumber })
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })

	bw := &errWriter{w: w}
	bw.printf("cores:\n")
	for _, c := range cores {
		bw.printf("  0x%03x  %-10s IDCODE @ %08x\n", c.PartNumber, c.Type, c.IDCodeAddr)
	}
	bw.printf("devices:\n")
	for _, d := range devices {
		bw.printf("  0x%03x  %-22s SRAM %3dKB @ %08x  FLASH @ %08x\n",
			d.ID, d.Type, d.SRAMSize/1024, d.SRAMBase, d.FlashBase)
	}
	return bw.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}
