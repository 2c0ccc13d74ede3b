// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"

	"github.com/juju2013/gostlink/v2/probe"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Identify the connected target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProbe(cmd, func(p *probe.Probe) error {
			s, err := p.Session()
			if err != nil {
				return err
			}
			return writeSession(cmd.OutOrStdout(), s)
		})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func writeSession(w io.Writer, s probe.Session) error {
	supply := "n/a"
	if s.VoltageValid {
		supply = fmt.Sprintf("%.2fV", s.Voltage)
	}
	sramBase, sramSize := s.SRAM()
	flashBase, flashSize := s.Flash()

	_, err := fmt.Fprintf(w, `  STLINK: %s
  SUPPLY: %s
  COREID: %08x
  CPUID:  %08x
  CORE:   %s
  IDCODE: %08x
  CPU:    %s
  SRAM:   %dKB @ %08x
  FLASH:  %dKB @ %08x
`,
		s.Version, supply, s.CoreID, s.CPUID, s.Core.Type, s.IDCode, s.Device.Type,
		sramSize/1024, sramBase, flashSize/1024, flashBase)
	if err != nil || s.Device.FlashPageSize == 0 {
		return err
	}

	_, err = fmt.Fprintf(w, "  PAGE:   %d bytes\n", s.Device.FlashPageSize)
	return err
}
