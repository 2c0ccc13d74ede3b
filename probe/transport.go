// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

// Transport is the set of st-link primitives the probe is built on. Every
// call blocks until the adapter answers; any error is treated as fatal.
// *gostlink.StLink implements it.
type Transport interface {
	Version() (uint16, error)
	TargetVoltage() (float32, error)
	CoreID() (uint32, error)

	ReadDebugReg32(addr uint32) (uint32, error)
	ReadDebugReg16(addr uint32) (uint16, error)
	ReadDebugReg8(addr uint32) (uint8, error)
	WriteDebugReg32(addr uint32, value uint32) error

	// ReadMem32 reads n bytes, n no larger than the adapter's transfer unit.
	ReadMem32(addr uint32, n int) ([]byte, error)
	// ReadReg reads core register index 0..15.
	ReadReg(index int) (uint32, error)

	EnterDebugSWD() error
	SetSWDFreq(hz uint32) error
	LeaveState() error
}
