// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"bytes"
	"fmt"
)

// CoreID reads the debug port id of the attached core, zero when no core answers.
func (h *StLink) CoreID() (uint32, error) {
	ctx := h.initTransfer(transferIncoming)
	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugReadCoreId)

	if err := h.usbTransferNoErrCheck(ctx, 4); err != nil {
		return 0, err
	}

	return ctx.dataBuf.ReadUint32LE(), nil
}

// ReadReg gets one core register content, R0..R12, SP, LR, PC by index
func (h *StLink) ReadReg(index int) (uint32, error) {
	if index < 0 || index > 0xff {
		return 0, newUsbError(fmt.Sprintf("invalid core register index %d", index), usbErrorFail)
	}

	ctx := h.initTransfer(transferIncoming)
	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugApiV2ReadReg)
	ctx.cmdBuf.WriteByte(byte(index))

	if err := h.usbCmdAllowRetry(ctx, 8); err != nil {
		return 0, err
	}

	ctx.dataBuf.ReadUint32LE() // Status
	return ctx.dataBuf.ReadUint32LE(), nil
}

// ReadDebugReg32 reads a 32 bit register in the debug address space.
func (h *StLink) ReadDebugReg32(addr uint32) (uint32, error) {
	ctx := h.initTransfer(transferIncoming)
	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugApiV2ReadDebugReg)
	ctx.cmdBuf.WriteUint32LE(addr)

	if err := h.usbCmdAllowRetry(ctx, 8); err != nil {
		return 0, fmt.Errorf("read debug register 0x%08x: %w", addr, err)
	}

	ctx.dataBuf.ReadUint32LE() // Status
	return ctx.dataBuf.ReadUint32LE(), nil
}

// ReadDebugReg16 reads a 16 bit register, through 16 bit memory access when
// the firmware has it.
func (h *StLink) ReadDebugReg16(addr uint32) (uint16, error) {
	var buffer usbBuffer
	var err error

	if h.version.has(flagHasMem16Bit) && addr%2 == 0 {
		err = h.usbReadMem16(addr, 2, &buffer.Buffer)
	} else {
		err = h.usbReadMem8(addr, 2, &buffer.Buffer)
	}
	if err != nil {
		return 0, err
	}

	return buffer.ReadUint16LE(), nil
}

// ReadDebugReg8 reads an 8 bit register.
func (h *StLink) ReadDebugReg8(addr uint32) (uint8, error) {
	var buffer bytes.Buffer

	if err := h.usbReadMem8(addr, 1, &buffer); err != nil {
		return 0, err
	}

	return buffer.Bytes()[0], nil
}

// WriteDebugReg32 writes a 32 bit register in the debug address space.
func (h *StLink) WriteDebugReg32(addr uint32, value uint32) error {
	ctx := h.initTransfer(transferIncoming)
	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugApiV2WriteDebugReg)
	ctx.cmdBuf.WriteUint32LE(addr)
	ctx.cmdBuf.WriteUint32LE(value)

	if err := h.usbCmdAllowRetry(ctx, 2); err != nil {
		return fmt.Errorf("write debug register 0x%08x: %w", addr, err)
	}
	return nil
}
