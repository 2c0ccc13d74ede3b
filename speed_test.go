// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchSpeedMap(t *testing.T) {
	tests := []struct {
		kHz       uint32
		wantSpeed uint32
		wantExact bool
	}{
		{4000, 4000, true},
		{1800, 1800, true},
		{2000, 1800, false},
		{100000, 4000, false},
		{500, 480, false},
		{5, 5, true},
		{1, 5, false},
	}

	for _, tt := range tests {
		i, exact := matchSpeedMap(swdKHzToSpeedMap[:], tt.kHz)
		if got := swdKHzToSpeedMap[i].speed; got != tt.wantSpeed || exact != tt.wantExact {
			t.Errorf("matchSpeedMap(%d) = %d/%v, want %d/%v", tt.kHz, got, exact, tt.wantSpeed, tt.wantExact)
		}
	}

	if i, _ := matchSpeedMap(nil, 1800); i != -1 {
		t.Errorf("empty map gave index %d", i)
	}
}

func TestSetSWDFreq(t *testing.T) {
	tl := v2J25()
	tl.usb.reply([]byte{debugErrorOk, 0})

	if err := tl.SetSWDFreq(1800000); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{cmdBlock(0xf2, 0x43, 0x01, 0x00)}
	if diff := cmp.Diff(want, tl.usb.sent); diff != "" {
		t.Errorf("sent mismatch (-want +got):\n%s", diff)
	}
}

func TestSetSWDFreqOldFirmware(t *testing.T) {
	tl := newTestLink(stLinkV2Pid, 0x2000|21<<6)

	if err := tl.SetSWDFreq(1800000); err != nil {
		t.Errorf("default clock rejected: %v", err)
	}
	if err := tl.SetSWDFreq(100000); err == nil {
		t.Error("slower clock accepted on firmware without SWD_SET_FREQ")
	}
	if len(tl.usb.sent) != 0 {
		t.Errorf("usb used: %v", tl.usb.sent)
	}
}
