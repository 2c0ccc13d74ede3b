// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"fmt"
)

func (h *StLink) usbCurrentMode() (byte, error) {
	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdGetCurrentMode)

	if err := h.usbTransferNoErrCheck(ctx, 2); err != nil {
		return 0, err
	}

	return ctx.DataBytes()[0], nil
}

func deviceModeToStLinkMode(mode byte) StLinkMode {
	switch mode {
	case deviceModeDFU:
		return StLinkModeDfu
	case deviceModeDebug:
		return StLinkModeDebugSwd
	case deviceModeSwim:
		return StLinkModeDebugSwim
	case deviceModeMass, deviceModeBootloader:
		return StLinkModeUnknown
	default:
		return StLinkModeUnknown
	}
}

func (h *StLink) usbModeEnter(stMode StLinkMode) error {
	var rxSize uint32

	// on api V2 we are able the read the latest command status
	if h.version.jtagApi != jTagApiV1 {
		rxSize = 2
	}

	enter := byte(debugApiV2Enter)
	if h.version.jtagApi == jTagApiV1 {
		enter = debugApiV1Enter
	}

	ctx := h.initTransfer(transferIncoming)

	switch stMode {
	case StLinkModeDebugJtag:
		ctx.cmdBuf.WriteByte(cmdDebug)
		ctx.cmdBuf.WriteByte(enter)
		ctx.cmdBuf.WriteByte(debugEnterJTagNoReset)

	case StLinkModeDebugSwd:
		ctx.cmdBuf.WriteByte(cmdDebug)
		ctx.cmdBuf.WriteByte(enter)
		ctx.cmdBuf.WriteByte(debugEnterSwdNoReset)

	default:
		return newUsbError(fmt.Sprintf("cannot enter %s mode", stMode), usbErrorCommandNotFound)
	}

	if rxSize == 0 {
		if err := h.usbTransferNoErrCheck(ctx, 0); err != nil {
			return err
		}
	} else if err := h.usbCmdAllowRetry(ctx, rxSize); err != nil {
		return err
	}

	h.stMode = stMode

	return nil
}

func (h *StLink) usbLeaveMode(mode StLinkMode) error {
	ctx := h.initTransfer(transferIncoming)

	switch mode {
	case StLinkModeDebugJtag, StLinkModeDebugSwd:
		ctx.cmdBuf.WriteByte(cmdDebug)
		ctx.cmdBuf.WriteByte(debugExit)

	case StLinkModeDebugSwim:
		ctx.cmdBuf.WriteByte(cmdSwim)
		ctx.cmdBuf.WriteByte(swimExit)

	case StLinkModeDfu:
		ctx.cmdBuf.WriteByte(cmdDfu)
		ctx.cmdBuf.WriteByte(dfuExit)

	default:
		return newUsbError(fmt.Sprintf("unknown stlink mode %s", mode), usbErrorFail)
	}

	if err := h.usbTransferNoErrCheck(ctx, 0); err != nil {
		return err
	}

	h.stMode = StLinkModeUnknown

	return nil
}

// EnterDebugSWD switches the link to SWD.
func (h *StLink) EnterDebugSWD() error {
	if err := h.usbModeEnter(StLinkModeDebugSwd); err != nil {
		return err
	}

	logger.Debugf("entered %s mode", h.stMode)

	return nil
}

// LeaveState drops the probe out of its current mode, if any.
func (h *StLink) LeaveState() error {
	mode, err := h.usbCurrentMode()
	if err != nil {
		return err
	}

	logger.Tracef("current device mode: 0x%02x", mode)

	stMode := deviceModeToStLinkMode(mode)
	if stMode == StLinkModeUnknown {
		return nil
	}

	return h.usbLeaveMode(stMode)
}
