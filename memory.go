// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"bytes"
	"fmt"
)

// Read len bytes from Target's memory, one byte at a time on the wire
func (h *StLink) usbReadMem8(addr uint32, len uint16, buffer *bytes.Buffer) error {
	readLen := uint32(len)

	if readLen > maxReadWrite8 {
		return newUsbError(fmt.Sprintf("max buffer (%d) length exceeded", maxReadWrite8), usbErrorFail)
	}

	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugReadMem8Bit)
	ctx.cmdBuf.WriteUint32LE(addr)
	ctx.cmdBuf.WriteUint16LE(len)

	// we need to fix read length for single bytes
	if readLen == 1 {
		readLen++
	}

	if err := h.usbTransferNoErrCheck(ctx, readLen); err != nil {
		return fmt.Errorf("ReadMem8 at 0x%08x: %w", addr, err)
	}

	buffer.Write(ctx.DataBytes()[:len])

	return h.usbGetReadWriteStatus()
}

// Read len bytes from Target's memory, addr and len must be 16bit aligned
func (h *StLink) usbReadMem16(addr uint32, len uint16, buffer *bytes.Buffer) error {
	if !h.version.has(flagHasMem16Bit) {
		return newUsbError("ReadMem16 command not supported by device", usbErrorCommandNotFound)
	}

	if len%2 > 0 || addr%2 > 0 {
		return newUsbError("ReadMem16 invalid data alignment", usbErrorTargetUnalignedAccess)
	}

	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugApiV2ReadMem16Bit)
	ctx.cmdBuf.WriteUint32LE(addr)
	ctx.cmdBuf.WriteUint16LE(len)

	if err := h.usbTransferNoErrCheck(ctx, uint32(len)); err != nil {
		return fmt.Errorf("ReadMem16 at 0x%08x: %w", addr, err)
	}

	buffer.Write(ctx.DataBytes())

	return h.usbGetReadWriteStatus()
}

// Read len bytes from Target's memory, addr and len must be 32bit aligned
func (h *StLink) usbReadMem32(addr uint32, len uint16, buffer *bytes.Buffer) error {
	if len%4 > 0 || addr%4 > 0 {
		return newUsbError("ReadMem32 invalid data alignment", usbErrorTargetUnalignedAccess)
	}

	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugReadMem32Bit)
	ctx.cmdBuf.WriteUint32LE(addr)
	ctx.cmdBuf.WriteUint16LE(len)

	if err := h.usbTransferNoErrCheck(ctx, uint32(len)); err != nil {
		return fmt.Errorf("ReadMem32 at 0x%08x: %w", addr, err)
	}

	buffer.Write(ctx.DataBytes())

	return h.usbGetReadWriteStatus()
}

// ReadMem32 reads n bytes of target memory. Word aligned requests go out as
// a single 32 bit transfer; otherwise the unaligned head and tail are read
// with 8 bit transfers around the aligned middle.
func (h *StLink) ReadMem32(addr uint32, n int) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	if n > dataBufferSize {
		return nil, newUsbError(fmt.Sprintf("max transfer (%d) length exceeded", dataBufferSize), usbErrorFail)
	}

	var buffer bytes.Buffer
	len := uint16(n)

	// Read 8 bits until we get a 32bit aligned addr
	prelen := uint16(addr % 4)
	if prelen > 0 {
		prelen = 4 - prelen
		if prelen > len {
			prelen = len
		}
		if err := h.usbReadMem8(addr, prelen, &buffer); err != nil {
			return nil, err
		}
	}

	// Read as many 32bit as needed
	w32len := (len - prelen) / 4 * 4
	if w32len > 0 {
		if err := h.usbReadMem32(addr+uint32(prelen), w32len, &buffer); err != nil {
			return nil, err
		}
	}

	// Read remaining bytes by 8bit's Read
	postlen := len - w32len - prelen
	if postlen > 0 {
		if err := h.usbReadMem8(addr+uint32(prelen+w32len), postlen, &buffer); err != nil {
			return nil, err
		}
	}

	return buffer.Bytes(), nil
}
