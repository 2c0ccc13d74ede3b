// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"fmt"
	"time"
)

type transferCtx struct {
	cmdBuf  usbBuffer
	dataBuf usbBuffer

	direction usbTransferEndpoint
}

func (ctx *transferCtx) DataBytes() []byte {
	return ctx.dataBuf.Bytes()
}

func (h *StLink) initTransfer(direction usbTransferEndpoint) *transferCtx {
	ctx := &transferCtx{direction: direction}

	ctx.cmdBuf.Grow(cmdSizeV2)

	return ctx
}

// usbTransferNoErrCheck sends the command block and moves dataLength bytes
// in the direction of the transfer. The stlink status byte is not inspected.
func (h *StLink) usbTransferNoErrCheck(ctx *transferCtx, dataLength uint32) error {
	cmd := make([]byte, cmdSizeV2)
	copy(cmd, ctx.cmdBuf.Bytes())

	logger.Tracef("usb cmd [% x], data length %d", cmd, dataLength)

	if err := usbWrite(h.txEndpoint, cmd); err != nil {
		return err
	}

	if dataLength == 0 {
		return nil
	}

	switch ctx.direction {
	case transferOutgoing:
		data := ctx.dataBuf.Bytes()
		if uint32(len(data)) < dataLength {
			return newUsbError(fmt.Sprintf("outgoing data too short (%d < %d)", len(data), dataLength), usbErrorFail)
		}
		return usbWrite(h.txEndpoint, data[:dataLength])

	default:
		readBuffer := make([]byte, dataLength)

		if err := usbRead(h.rxEndpoint, readBuffer); err != nil {
			return err
		}

		ctx.dataBuf.Reset()
		ctx.dataBuf.Write(readBuffer)
	}

	return nil
}

func (h *StLink) usbTransferErrCheck(ctx *transferCtx, dataLength uint32) error {
	if err := h.usbTransferNoErrCheck(ctx, dataLength); err != nil {
		return err
	}

	return h.usbErrorCheck(ctx)
}

// usbCmdAllowRetry issues an stlink command, retrying on wait status responses.
// Works for commands where the STLINK_DEBUG status is returned in the first
// byte of the response packet.
func (h *StLink) usbCmdAllowRetry(ctx *transferCtx, size uint32) error {
	retries := 0

	for {
		err := h.usbTransferErrCheck(ctx, size)

		if isWait(err) && retries < maximumWaitRetries {
			delay := time.Duration(1<<uint(retries)) * time.Millisecond

			retries++
			logger.Debugf("cmdAllowRetry ERROR_WAIT, retry %d, delaying %v", retries, delay)
			h.sleep(delay)

			continue
		}

		return err
	}
}

// usbGetReadWriteStatus fetches the status of the last memory read/write
func (h *StLink) usbGetReadWriteStatus() error {
	if h.version.jtagApi == jTagApiV1 {
		return nil
	}

	ctx := h.initTransfer(transferIncoming)
	ctx.cmdBuf.WriteByte(cmdDebug)

	if h.version.has(flagHasGetLastRwStatus2) {
		ctx.cmdBuf.WriteByte(debugApiV2GetLastRWStatus2)

		return h.usbTransferErrCheck(ctx, 12)
	}

	ctx.cmdBuf.WriteByte(debugApiV2GetLastRWStatus)

	return h.usbTransferErrCheck(ctx, 2)
}
