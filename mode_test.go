// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnterDebugSWD(t *testing.T) {
	tl := v2J25()
	tl.usb.reply([]byte{debugErrorOk, 0})

	if err := tl.EnterDebugSWD(); err != nil {
		t.Fatal(err)
	}
	if tl.stMode != StLinkModeDebugSwd {
		t.Errorf("mode = %s", tl.stMode)
	}
	want := [][]byte{cmdBlock(0xf2, 0x30, 0xa3)}
	if diff := cmp.Diff(want, tl.usb.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}
}

func TestLeaveState(t *testing.T) {
	tests := []struct {
		name string
		mode byte
		want [][]byte
	}{
		{"debug", deviceModeDebug, [][]byte{cmdBlock(0xf5), cmdBlock(0xf2, 0x21)}},
		{"dfu", deviceModeDFU, [][]byte{cmdBlock(0xf5), cmdBlock(0xf3, 0x07)}},
		{"swim", deviceModeSwim, [][]byte{cmdBlock(0xf5), cmdBlock(0xf4, 0x01)}},
		{"mass storage", deviceModeMass, [][]byte{cmdBlock(0xf5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := v2J25()
			tl.stMode = StLinkModeDebugSwd
			tl.usb.reply([]byte{tt.mode, 0})

			if err := tl.LeaveState(); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, tl.usb.sent); diff != "" {
				t.Errorf("sent mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaveStateResetsMode(t *testing.T) {
	tl := v2J25()
	tl.stMode = StLinkModeDebugSwd
	tl.usb.reply([]byte{deviceModeDebug, 0})

	if err := tl.LeaveState(); err != nil {
		t.Fatal(err)
	}
	if tl.stMode != StLinkModeUnknown {
		t.Errorf("mode = %s after leaving", tl.stMode)
	}
}
