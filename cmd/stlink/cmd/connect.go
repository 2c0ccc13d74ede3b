// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/juju2013/gostlink/v2"
	"github.com/juju2013/gostlink/v2/probe"
	"github.com/spf13/cobra"
)

var _ probe.Transport = (*gostlink.StLink)(nil)

// withProbe opens the st-link, detects the target and runs action on it.
// The core is let run free of the debugger afterwards.
func withProbe(cmd *cobra.Command, action func(*probe.Probe) error) error {
	return connect(cmd, action, (*probe.Probe).Disconnect)
}

// withProbeKeepState is withProbe for actions whose run state must outlive
// the command, such as a halt.
func withProbeKeepState(cmd *cobra.Command, action func(*probe.Probe) error) error {
	return connect(cmd, action, (*probe.Probe).Release)
}

// connect releases the target only when detection succeeded.
func connect(cmd *cobra.Command, action, release func(*probe.Probe) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbosity)
	gostlink.SetLogger(logger)

	link, err := gostlink.Open(cfg)
	if err != nil {
		return fmt.Errorf("open st-link: %w", err)
	}
	defer link.Close()

	p := probe.New(link, probe.WithLogger(logger), probe.WithBlockSize(cfg.BlockSize))
	if _, err := p.Detect(); err != nil {
		return err
	}

	err = action(p)
	if !p.Detected() {
		return err
	}
	if rerr := release(p); err == nil {
		err = rerr
	}
	return err
}
