// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeVersion(t *testing.T) {
	tests := []struct {
		word uint16
		want Version
	}{
		{0x2640, Version{STLink: 2, JTAG: 25, SWIM: 0, API: 2}},
		{0x22c7, Version{STLink: 2, JTAG: 11, SWIM: 7, API: 1}},
		{0x2307, Version{STLink: 2, JTAG: 12, SWIM: 7, API: 2}},
		{0x1000, Version{STLink: 1, JTAG: 0, SWIM: 0, API: 1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, decodeVersion(tt.word)); diff != "" {
			t.Errorf("decodeVersion(%04x) mismatch (-want +got):\n%s", tt.word, diff)
		}
	}
}

func TestDetect(t *testing.T) {
	ft := newFakeTransport()
	p := New(ft)

	s, err := p.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	wantCalls := []string{
		"Version",
		"SetSWDFreq(1800000)",
		"EnterDebugSWD",
		"CoreID",
		"ReadDebugReg32(e000ed00)",
		"ReadDebugReg32(e0042000)",
		"ReadDebugReg16(1fff7a22)",
		"TargetVoltage",
	}
	if diff := cmp.Diff(wantCalls, ft.calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}

	if s.PartNumber != 0xc24 || s.Core.Type != "CortexM4" {
		t.Errorf("core = 0x%03x %q", s.PartNumber, s.Core.Type)
	}
	if s.DeviceID != 0x419 {
		t.Errorf("DeviceID = 0x%03x, want 0x419", s.DeviceID)
	}
	if s.Device.SRAMSize != 262144 || s.Device.FlashBase != 0x08000000 {
		t.Errorf("device layout = %+v", s.Device)
	}
	if s.FlashSize != 2048*1024 {
		t.Errorf("FlashSize = %d", s.FlashSize)
	}
	if !s.VoltageValid || s.Voltage != 3.25 {
		t.Errorf("voltage = %v valid=%v", s.Voltage, s.VoltageValid)
	}
	if s.Version.API != 2 {
		t.Errorf("API = %d", s.Version.API)
	}

	got, err := p.Session()
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("Session mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectNotConnected(t *testing.T) {
	ft := newFakeTransport()
	ft.coreID = 0
	p := New(ft)

	_, err := p.Detect()
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
	for _, c := range ft.calls {
		if c == "ReadDebugReg32(e000ed00)" {
			t.Error("CPUID read after core id 0")
		}
	}
	if p.Detected() {
		t.Error("probe reports a session after failure")
	}
}

func TestDetectUnsupportedCore(t *testing.T) {
	ft := newFakeTransport()
	ft.regs32[0xE000ED00] = 0x410fc231 // Cortex-M3
	p := New(ft)

	_, err := p.Detect()
	if !errors.Is(err, ErrUnsupportedCore) {
		t.Fatalf("err = %v, want ErrUnsupportedCore", err)
	}
	if err.Error() != "CORE id:0xc23 is not supported" {
		t.Errorf("message = %q", err.Error())
	}
	if last := ft.calls[len(ft.calls)-1]; last != "ReadDebugReg32(e000ed00)" {
		t.Errorf("last call = %s, want CPUID read", last)
	}
}

func TestDetectCortexM0ReachesIDCode(t *testing.T) {
	ft := newFakeTransport()
	ft.regs32[0xE000ED00] = 0x410cc200
	ft.regs32[0x40015800] = 0x20006440
	ft.regs16[0x1ffff7cc] = 64
	p := New(ft)

	s, err := p.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if s.Device.Type != "STM32F05x" || s.Device.FlashPageSize != 1024 {
		t.Errorf("device = %+v", s.Device)
	}
	if s.FlashSize != 64*1024 {
		t.Errorf("FlashSize = %d", s.FlashSize)
	}
}

func TestDetectUnsupportedDevice(t *testing.T) {
	ft := newFakeTransport()
	ft.regs32[0xE0042000] = 0x10006410
	p := New(ft)

	_, err := p.Detect()
	if !errors.Is(err, ErrUnsupportedDevice) {
		t.Fatalf("err = %v, want ErrUnsupportedDevice", err)
	}
	for _, c := range ft.calls {
		if c == "ReadDebugReg16(1fff7a22)" {
			t.Error("flash size read for an unknown device")
		}
	}
}

func TestDetectTransportFailure(t *testing.T) {
	for _, step := range []string{"Version", "EnterDebugSWD", "CoreID", "ReadDebugReg32(e0042000)", "ReadDebugReg16(1fff7a22)"} {
		t.Run(step, func(t *testing.T) {
			ft := newFakeTransport()
			ft.failOn = step
			p := New(ft)

			_, err := p.Detect()
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("err = %v, want ErrTransport", err)
			}
			if !errors.Is(err, errLink) {
				t.Errorf("transport error not wrapped: %v", err)
			}
			if p.Detected() {
				t.Error("session set after failure")
			}
		})
	}
}

func TestDetectVoltageFailureIsInformational(t *testing.T) {
	ft := newFakeTransport()
	ft.failOn = "TargetVoltage"
	p := New(ft)

	s, err := p.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if s.VoltageValid {
		t.Error("VoltageValid set after failed voltage read")
	}
}

func TestFailedRedetectDropsSession(t *testing.T) {
	ft := newFakeTransport()
	p := New(ft)
	if _, err := p.Detect(); err != nil {
		t.Fatalf("Detect: %v", err)
	}

	ft.coreID = 0
	if _, err := p.Detect(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v", err)
	}
	if _, err := p.Session(); !errors.Is(err, ErrDeviceNotSelected) {
		t.Errorf("Session err = %v, want ErrDeviceNotSelected", err)
	}
}

func TestErrorKindsDoNotCrossMatch(t *testing.T) {
	if errors.Is(ErrNotConnected, ErrTransport) {
		t.Error("NotConnected matches Transport")
	}
	if !errors.Is(unsupportedCore(0x123), ErrUnsupportedCore) {
		t.Error("detailed core error does not match its sentinel")
	}
	if errors.Is(invalidArgument("bad size %d", 3), ErrTransport) {
		t.Error("InvalidArgument matches Transport")
	}
}
