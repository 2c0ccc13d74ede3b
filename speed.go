// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"fmt"
)

const defaultSwdKHz = 1800

/* SWD clock speed */
type speedMap struct {
	speed        uint32
	speedDivisor uint32
}

var swdKHzToSpeedMap = [...]speedMap{
	{4000, 0},
	{1800, 1}, /* default */
	{1200, 2},
	{950, 3},
	{480, 7},
	{240, 15},
	{125, 31},
	{100, 40},
	{50, 79},
	{25, 158},
	{15, 265},
	{5, 798},
}

// matchSpeedMap returns the index of the fastest speed not above kHz. When
// kHz is below every entry the slowest speed is used and exact is false.
func matchSpeedMap(smap []speedMap, kHz uint32) (index int, exact bool) {
	index = -1
	slowest := -1

	for i, s := range smap {
		if s.speed == 0 {
			continue
		}
		if slowest == -1 || s.speed < smap[slowest].speed {
			slowest = i
		}
		if s.speed <= kHz && (index == -1 || s.speed > smap[index].speed) {
			index = i
		}
	}

	if index == -1 {
		return slowest, false
	}

	return index, smap[index].speed == kHz
}

// SetSWDFreq sets the SWD clock to the closest supported speed not above hz.
func (h *StLink) SetSWDFreq(hz uint32) error {
	kHz := hz / 1000

	if !h.version.has(flagHasSwdSetFreq) {
		// old firmware runs at the default clock and cannot change it
		if kHz >= defaultSwdKHz {
			logger.Debugf("st-link %s keeps its default %d kHz swd clock", h.version, defaultSwdKHz)
			return nil
		}
		return newUsbError("st-link firmware cannot change swd clock", usbErrorCommandNotFound)
	}

	index, exact := matchSpeedMap(swdKHzToSpeedMap[:], kHz)
	if index < 0 {
		return newUsbError(fmt.Sprintf("no swd speed for %d kHz", kHz), usbErrorFail)
	}

	speed := swdKHzToSpeedMap[index]
	if !exact {
		logger.Infof("unable to match requested speed %d kHz, using %d kHz", kHz, speed.speed)
	}

	if err := h.usbSetSwdClk(uint16(speed.speedDivisor)); err != nil {
		return err
	}

	logger.Debugf("swd clock set to %d kHz", speed.speed)

	return nil
}

func (h *StLink) usbSetSwdClk(clkDivisor uint16) error {
	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdDebug)
	ctx.cmdBuf.WriteByte(debugApiV2SwdSetFreq)
	ctx.cmdBuf.WriteUint16LE(clkDivisor)

	return h.usbCmdAllowRetry(ctx, 2)
}
