// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package chips is the static catalog of supported Cortex-M cores and STM32
// devices. The tables are filled once at init and only read afterwards.
package chips

import "fmt"

// Core describes a Cortex core by the part number found in its CPUID register.
type Core struct {
	PartNumber uint16
	Type       string
	// IDCodeAddr is where the DBGMCU_IDCODE register of this core family lives.
	IDCodeAddr uint32
}

// Device describes the memory layout of an STM32 family by its 12 bit device id.
type Device struct {
	ID            uint16
	Type          string
	SRAMBase      uint32
	SRAMSize      uint32
	FlashBase     uint32
	FlashSizeAddr uint32
	// FlashPageSize is 0 when unknown for the family.
	FlashPageSize uint32
}

func (d Device) String() string {
	return fmt.Sprintf("%s (0x%03x)", d.Type, d.ID)
}

var (
	cores   = map[uint16]Core{}
	devices = map[uint16]Device{}
)

func registerCore(c Core) {
	if _, dup := cores[c.PartNumber]; dup {
		panic(fmt.Sprintf("chips: duplicate core part number 0x%03x", c.PartNumber))
	}
	cores[c.PartNumber] = c
}

func registerDevice(d Device) {
	if _, dup := devices[d.ID]; dup {
		panic(fmt.Sprintf("chips: duplicate device id 0x%03x", d.ID))
	}
	devices[d.ID] = d
}

// LookupCore finds the core for a 12 bit CPUID part number.
func LookupCore(partNumber uint16) (Core, bool) {
	c, ok := cores[partNumber]
	return c, ok
}

// LookupDevice finds the device for a 12 bit IDCODE device id.
func LookupDevice(id uint16) (Device, bool) {
	d, ok := devices[id]
	return d, ok
}

// Cores returns the known part numbers, in no particular order.
func Cores() []Core {
	out := make([]Core, 0, len(cores))
	for _, c := range cores {
		out = append(out, c)
	}
	return out
}

// Devices returns the known devices, in no particular order.
func Devices() []Device {
	out := make([]Device, 0, len(devices))
	for _, d := range devices {
		out = append(out, d)
	}
	return out
}
