// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package probe identifies the Cortex-M target behind an st-link and gives
// access to its debug registers, core run state and memory.
package probe

import (
	"io"

	"github.com/juju2013/gostlink/v2/chips"
	"github.com/sirupsen/logrus"
)

const (
	// SWDFrequency is the debug link clock requested during Detect.
	SWDFrequency = 1800000

	DefaultBlockSize = 1024

	cpuIDAddr = 0xE000ED00
)

// Probe drives one st-link connection. It must be used from a single
// goroutine; the adapter only serves one session at a time.
type Probe struct {
	transport Transport
	log       logrus.FieldLogger
	blockSize int

	session *Session
}

type Option func(*Probe)

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Probe) {
		if l != nil {
			p.log = l
		}
	}
}

// WithBlockSize sets the largest chunk ReadMem requests at once. Values <= 0
// keep the default.
func WithBlockSize(n int) Option {
	return func(p *Probe) {
		if n > 0 {
			p.blockSize = n
		}
	}
}

func New(t Transport, opts ...Option) *Probe {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	p := &Probe{
		transport: t,
		log:       silent,
		blockSize: DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session returns the detected session, or ErrDeviceNotSelected before a
// successful Detect.
func (p *Probe) Session() (Session, error) {
	if p.session == nil {
		return Session{}, ErrDeviceNotSelected
	}
	return *p.session, nil
}

// Detected reports whether Detect has completed on this probe.
func (p *Probe) Detected() bool {
	return p.session != nil
}

// detector accumulates the identification steps. Each step only reads the
// fields written by the steps before it.
type detector struct {
	t   Transport
	log logrus.FieldLogger
	s   Session
}

// Detect runs the identification sequence: firmware version, SWD link,
// core id, CPUID, IDCODE, flash size and supply voltage, in that order. A
// failure leaves the probe without a session until the next successful Detect.
func (p *Probe) Detect() (Session, error) {
	p.session = nil

	d := &detector{t: p.transport, log: p.log}

	steps := []func() error{
		d.readVersion,
		d.readCoreID,
		d.readCPUID,
		d.readIDCode,
		d.readFlashSize,
		d.readTargetVoltage,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Session{}, err
		}
	}

	s := d.s
	p.session = &s

	return s, nil
}

func (d *detector) readVersion() error {
	word, err := d.t.Version()
	if err != nil {
		return transportError("read version", err)
	}

	d.s.Version = decodeVersion(word)
	d.log.Debugf("STLINK: %s", d.s.Version)

	if err := d.t.SetSWDFreq(SWDFrequency); err != nil {
		return transportError("set swd frequency", err)
	}
	if err := d.t.EnterDebugSWD(); err != nil {
		return transportError("enter swd", err)
	}
	return nil
}

func (d *detector) readCoreID() error {
	id, err := d.t.CoreID()
	if err != nil {
		return transportError("read core id", err)
	}

	d.s.CoreID = id
	d.log.Debugf("COREID: %08x", id)

	if id == 0 {
		return ErrNotConnected
	}
	return nil
}

func (d *detector) readCPUID() error {
	cpuid, err := d.t.ReadDebugReg32(cpuIDAddr)
	if err != nil {
		return transportError("read cpuid", err)
	}

	d.s.CPUID = cpuid
	d.s.PartNumber = uint16((cpuid >> 4) & 0xfff)
	d.log.Debugf("CPUID: %08x", cpuid)

	core, ok := chips.LookupCore(d.s.PartNumber)
	if !ok {
		return unsupportedCore(d.s.PartNumber)
	}

	d.s.Core = core
	d.log.Infof("CORE: %s", core.Type)
	return nil
}

func (d *detector) readIDCode() error {
	idcode, err := d.t.ReadDebugReg32(d.s.Core.IDCodeAddr)
	if err != nil {
		return transportError("read idcode", err)
	}

	d.s.IDCode = idcode
	d.s.DeviceID = uint16(idcode & 0xfff)
	d.log.Debugf("IDCODE: %08x", idcode)

	dev, ok := chips.LookupDevice(d.s.DeviceID)
	if !ok {
		return unsupportedDevice(d.s.DeviceID)
	}

	d.s.Device = dev
	d.log.Infof("CPU: %s", dev.Type)
	d.log.Infof("SRAM: %dKB", dev.SRAMSize/1024)
	return nil
}

func (d *detector) readFlashSize() error {
	kb, err := d.t.ReadDebugReg16(d.s.Device.FlashSizeAddr)
	if err != nil {
		return transportError("read flash size", err)
	}

	d.s.FlashSize = uint32(kb) * 1024
	d.log.Infof("FLASH: %dKB", kb)
	return nil
}

// readTargetVoltage is informational and never fails detection.
func (d *detector) readTargetVoltage() error {
	v, err := d.t.TargetVoltage()
	if err != nil {
		d.log.Warnf("SUPPLY: unavailable: %v", err)
		return nil
	}

	d.s.Voltage = v
	d.s.VoltageValid = true
	d.log.Infof("SUPPLY: %.2fV", v)
	return nil
}
