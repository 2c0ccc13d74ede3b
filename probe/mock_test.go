// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import (
	"errors"
	"fmt"
)

var errLink = errors.New("usb link lost")

type memRead struct {
	Addr uint32
	N    int
}

type regWrite struct {
	Addr  uint32
	Value uint32
}

// fakeTransport records every call and answers from its fields. Memory reads
// return mem[addr-memBase+i].
type fakeTransport struct {
	calls []string

	version    uint16
	voltage    float32
	voltageErr error
	coreID     uint32
	regs32     map[uint32]uint32
	regs16     map[uint32]uint16
	regs8      map[uint32]uint8
	coreRegs   [16]uint32

	memBase   uint32
	mem       []byte
	memReads  []memRead
	failAtMem int // 1 based index of the ReadMem32 call to fail, 0 never

	writes []regWrite
	failOn string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		version: 0x2640, // V2 J25 S0
		voltage: 3.25,
		coreID:  0x0bb11477,
		regs32: map[uint32]uint32{
			0xE000ED00: 0x410cc241, // Cortex-M4 r0p1
			0xE0042000: 0x10076419, // STM32F42x/43x
		},
		regs16: map[uint32]uint16{
			0x1fff7a22: 2048,
		},
		regs8: map[uint32]uint8{},
	}
}

func (f *fakeTransport) record(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return errLink
	}
	return nil
}

func (f *fakeTransport) Version() (uint16, error) {
	return f.version, f.record("Version")
}

func (f *fakeTransport) TargetVoltage() (float32, error) {
	if err := f.record("TargetVoltage"); err != nil {
		return 0, err
	}
	return f.voltage, f.voltageErr
}

func (f *fakeTransport) CoreID() (uint32, error) {
	return f.coreID, f.record("CoreID")
}

func (f *fakeTransport) ReadDebugReg32(addr uint32) (uint32, error) {
	if err := f.record(fmt.Sprintf("ReadDebugReg32(%08x)", addr)); err != nil {
		return 0, err
	}
	return f.regs32[addr], nil
}

func (f *fakeTransport) ReadDebugReg16(addr uint32) (uint16, error) {
	if err := f.record(fmt.Sprintf("ReadDebugReg16(%08x)", addr)); err != nil {
		return 0, err
	}
	return f.regs16[addr], nil
}

func (f *fakeTransport) ReadDebugReg8(addr uint32) (uint8, error) {
	if err := f.record(fmt.Sprintf("ReadDebugReg8(%08x)", addr)); err != nil {
		return 0, err
	}
	return f.regs8[addr], nil
}

func (f *fakeTransport) WriteDebugReg32(addr uint32, value uint32) error {
	if err := f.record(fmt.Sprintf("WriteDebugReg32(%08x, %08x)", addr, value)); err != nil {
		return err
	}
	f.writes = append(f.writes, regWrite{Addr: addr, Value: value})
	return nil
}

func (f *fakeTransport) ReadMem32(addr uint32, n int) ([]byte, error) {
	f.memReads = append(f.memReads, memRead{Addr: addr, N: n})
	if err := f.record("ReadMem32"); err != nil {
		return nil, err
	}
	if f.failAtMem == len(f.memReads) {
		return nil, errLink
	}
	off := int(addr - f.memBase)
	return append([]byte(nil), f.mem[off:off+n]...), nil
}

func (f *fakeTransport) ReadReg(index int) (uint32, error) {
	if err := f.record(fmt.Sprintf("ReadReg(%d)", index)); err != nil {
		return 0, err
	}
	return f.coreRegs[index], nil
}

func (f *fakeTransport) EnterDebugSWD() error {
	return f.record("EnterDebugSWD")
}

func (f *fakeTransport) SetSWDFreq(hz uint32) error {
	return f.record(fmt.Sprintf("SetSWDFreq(%d)", hz))
}

func (f *fakeTransport) LeaveState() error {
	return f.record("LeaveState")
}

func (f *fakeTransport) reset() {
	f.calls = nil
	f.memReads = nil
	f.writes = nil
}
