// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import "fmt"

// Debug Halting Control and Status Register and its control words
const (
	DHCSR = 0xE000EDF0

	dhcsrHalt    = 0xA05F0003
	dhcsrRun     = 0xA05F0001
	dhcsrNoDebug = 0xA05F0000
)

// RegisterNames lists the core registers in ReadReg index order.
var RegisterNames = [...]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "SP", "LR", "PC",
}

type Register struct {
	Name  string
	Value uint32
}

func (r Register) String() string {
	return fmt.Sprintf("%3s: %08x", r.Name, r.Value)
}

func (p *Probe) requireSession() error {
	if p.session == nil {
		return ErrDeviceNotSelected
	}
	return nil
}

func (p *Probe) ReadDebugReg32(addr uint32) (uint32, error) {
	if err := p.requireSession(); err != nil {
		return 0, err
	}
	v, err := p.transport.ReadDebugReg32(addr)
	if err != nil {
		return 0, transportError(fmt.Sprintf("read register %08x", addr), err)
	}
	return v, nil
}

func (p *Probe) ReadDebugReg16(addr uint32) (uint16, error) {
	if err := p.requireSession(); err != nil {
		return 0, err
	}
	v, err := p.transport.ReadDebugReg16(addr)
	if err != nil {
		return 0, transportError(fmt.Sprintf("read register %08x", addr), err)
	}
	return v, nil
}

func (p *Probe) ReadDebugReg8(addr uint32) (uint8, error) {
	if err := p.requireSession(); err != nil {
		return 0, err
	}
	v, err := p.transport.ReadDebugReg8(addr)
	if err != nil {
		return 0, transportError(fmt.Sprintf("read register %08x", addr), err)
	}
	return v, nil
}

// WriteDebugReg32 writes without reading back.
func (p *Probe) WriteDebugReg32(addr uint32, value uint32) error {
	if err := p.requireSession(); err != nil {
		return err
	}
	if err := p.transport.WriteDebugReg32(addr, value); err != nil {
		return transportError(fmt.Sprintf("write register %08x", addr), err)
	}
	return nil
}

func (p *Probe) Halt() error {
	return p.WriteDebugReg32(DHCSR, dhcsrHalt)
}

func (p *Probe) Run() error {
	return p.WriteDebugReg32(DHCSR, dhcsrRun)
}

// NoDebug lets the core run free of the debugger.
func (p *Probe) NoDebug() error {
	return p.WriteDebugReg32(DHCSR, dhcsrNoDebug)
}

// Disconnect releases the core from debug and only then leaves the debug
// link, so the target is never left halted without a debugger attached.
// The session is dropped either way.
func (p *Probe) Disconnect() error {
	if err := p.requireSession(); err != nil {
		return err
	}
	defer func() { p.session = nil }()

	if err := p.NoDebug(); err != nil {
		return err
	}
	if err := p.transport.LeaveState(); err != nil {
		return transportError("leave debug mode", err)
	}

	p.log.Debug("disconnected")
	return nil
}

// Release leaves the debug link without touching DHCSR, so a halted core
// stays halted. The session is dropped either way.
func (p *Probe) Release() error {
	if err := p.requireSession(); err != nil {
		return err
	}
	defer func() { p.session = nil }()

	if err := p.transport.LeaveState(); err != nil {
		return transportError("leave debug mode", err)
	}
	return nil
}

// DumpRegisters halts the core and reads R0..R12, SP, LR, PC.
func (p *Probe) DumpRegisters() ([]Register, error) {
	if err := p.Halt(); err != nil {
		return nil, err
	}

	regs := make([]Register, 0, len(RegisterNames))
	for i, name := range RegisterNames {
		v, err := p.transport.ReadReg(i)
		if err != nil {
			return nil, transportError("read "+name, err)
		}
		regs = append(regs, Register{Name: name, Value: v})
	}
	return regs, nil
}
