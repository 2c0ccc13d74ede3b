// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import (
	"fmt"

	"github.com/juju2013/gostlink/v2/chips"
)

// Version is the decoded st-link firmware version.
type Version struct {
	STLink int
	JTAG   int
	SWIM   int
	API    int
}

func decodeVersion(word uint16) Version {
	v := Version{
		STLink: int((word >> 12) & 0xf),
		JTAG:   int((word >> 6) & 0x3f),
		SWIM:   int(word & 0x3f),
		API:    1,
	}
	if v.JTAG > 11 {
		v.API = 2
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("V%d.J%d.S%d (API:v%d)", v.STLink, v.JTAG, v.SWIM, v.API)
}

// Session is the result of a successful Detect. It is a plain value and
// never partially filled.
type Session struct {
	Version Version

	// Voltage is only meaningful when VoltageValid is set.
	Voltage      float32
	VoltageValid bool

	CoreID     uint32
	CPUID      uint32
	PartNumber uint16
	IDCode     uint32
	DeviceID   uint16
	FlashSize  uint32

	Core   chips.Core
	Device chips.Device
}

func (s Session) SRAM() (base uint32, size uint32) {
	return s.Device.SRAMBase, s.Device.SRAMSize
}

func (s Session) Flash() (base uint32, size uint32) {
	return s.Device.FlashBase, s.FlashSize
}
