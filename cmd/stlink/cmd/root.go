// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/juju2013/gostlink/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	// Global flags
	verbosity  int
	configPath string
	serial     string
	blockSize  int
)

var rootCmd = &cobra.Command{
	Use:   "stlink",
	Short: "ST-Link V2 debug probe tool for STM32 targets",
	Long: `Connects to an STM32 through an ST-Link V2 or V2-1 adapter over SWD,
identifies the core and device, and dumps registers or memory.

Examples:
  stlink info                          # Identify the connected target
  stlink -v 2 dump registers           # Halt the core and print R0..PC
  stlink dump mem 0x20000000 256       # Hexdump 256 bytes of SRAM
  stlink dump reg16 0x1ffff7cc         # Read a 16 bit register`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "verbosity 0 (warnings) to 3 (usb trace)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&serial, "serial", "", "serial number of the st-link to use")
	rootCmd.PersistentFlags().IntVar(&blockSize, "block-size", gostlink.DefaultBlockSize, "largest memory read per usb transfer")
}

// loadConfig reads --config when given, then applies the flags the user set.
func loadConfig(cmd *cobra.Command) (gostlink.Config, error) {
	cfg := gostlink.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = gostlink.LoadConfig(configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbosity = verbosity
	}
	if flags.Changed("serial") {
		cfg.Serial = serial
	}
	if flags.Changed("block-size") {
		cfg.BlockSize = blockSize
	}

	return cfg, cfg.Validate()
}

func newLogger(verbosity int) *logrus.Logger {
	formatter := &prefixed.TextFormatter{
		DisableColors:   false,
		TimestampFormat: "15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	}

	logger := logrus.New()
	logger.SetFormatter(formatter)
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logLevel(verbosity))

	return logger
}

func logLevel(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.WarnLevel
	case verbosity == 1:
		return logrus.InfoLevel
	case verbosity == 2:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
