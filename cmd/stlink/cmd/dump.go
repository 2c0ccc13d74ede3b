// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/juju2013/gostlink/v2/hexdump"
	"github.com/juju2013/gostlink/v2/probe"
	"github.com/spf13/cobra"
)

var regWidth int

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print registers or memory of the target",
}

var dumpRegistersCmd = &cobra.Command{
	Use:   "registers",
	Short: "Halt the core and print R0..PC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProbe(cmd, func(p *probe.Probe) error {
			regs, err := p.DumpRegisters()
			if err != nil {
				return err
			}
			for _, r := range regs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", r)
			}
			return nil
		})
	},
}

var dumpFlashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Hexdump the whole flash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProbe(cmd, func(p *probe.Probe) error {
			return writeMemory(cmd, p.ReadFlash)
		})
	},
}

var dumpSRAMCmd = &cobra.Command{
	Use:   "sram",
	Short: "Hexdump the whole SRAM",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProbe(cmd, func(p *probe.Probe) error {
			return writeMemory(cmd, p.ReadSRAM)
		})
	},
}

var dumpMemCmd = &cobra.Command{
	Use:   "mem ADDR SIZE",
	Short: "Hexdump SIZE bytes starting at ADDR",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := parseUint32(args[0])
		if err != nil {
			return err
		}
		size, err := parseUint32(args[1])
		if err != nil {
			return err
		}

		return withProbe(cmd, func(p *probe.Probe) error {
			return writeMemory(cmd, func() (probe.Memory, error) {
				return p.ReadMem(addr, int(size))
			})
		})
	},
}

var dumpRegCmd = &cobra.Command{
	Use:   "reg ADDR",
	Short: "Read a debug register",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dumpReg(cmd, args[0], regWidth)
	},
}

func regAlias(width int) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("reg%d ADDR", width),
		Short: fmt.Sprintf("Read a %d bit debug register", width),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpReg(cmd, args[0], width)
		},
	}
}

func init() {
	dumpRegCmd.Flags().IntVar(&regWidth, "width", 32, "register width: 32, 16 or 8")

	dumpCmd.AddCommand(dumpRegistersCmd, dumpFlashCmd, dumpSRAMCmd, dumpMemCmd, dumpRegCmd)
	for _, width := range []int{32, 16, 8} {
		dumpCmd.AddCommand(regAlias(width))
	}
	rootCmd.AddCommand(dumpCmd)
}

func dumpReg(cmd *cobra.Command, arg string, width int) error {
	addr, err := parseUint32(arg)
	if err != nil {
		return err
	}
	if width != 32 && width != 16 && width != 8 {
		return fmt.Errorf("unsupported register width %d", width)
	}

	return withProbe(cmd, func(p *probe.Probe) error {
		var value uint32
		switch width {
		case 32:
			value, err = p.ReadDebugReg32(addr)
		case 16:
			var v uint16
			v, err = p.ReadDebugReg16(addr)
			value = uint32(v)
		case 8:
			var v uint8
			v, err = p.ReadDebugReg8(addr)
			value = uint32(v)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), formatReg(addr, value, width))
		return nil
	})
}

func writeMemory(cmd *cobra.Command, read func() (probe.Memory, error)) error {
	mem, err := read()
	if err != nil {
		return err
	}
	return hexdump.Write(cmd.OutOrStdout(), mem.Addr, mem.Data, hexdump.DefaultWidth)
}

// formatReg prints value with as many hex digits as the register is wide.
func formatReg(addr, value uint32, width int) string {
	return fmt.Sprintf("  %08x: %0*x", addr, width/4, value)
}

// parseUint32 accepts decimal, 0x hex, 0o/0 octal and 0b binary.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	return uint32(v), nil
}
