// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"fmt"

	"github.com/boljen/go-bitmap"
	"github.com/google/gousb"
)

type stLinkVersion struct {
	stlink int
	jtag   int
	swim   int
	msd    int

	jtagApi stLinkApiVersion

	flags bitmap.Bitmap
}

func (v stLinkVersion) has(flag int) bool {
	return len(v.flags) > 0 && v.flags.Get(flag)
}

func (v stLinkVersion) String() string {
	s := fmt.Sprintf("V%d", v.stlink)

	if v.jtag > 0 || v.msd > 0 {
		s += fmt.Sprintf("J%d", v.jtag)
	}
	if v.msd > 0 {
		s += fmt.Sprintf("M%d", v.msd)
	}
	if v.swim > 0 {
		s += fmt.Sprintf("S%d", v.swim)
	}
	return s
}

// decodeVersion splits the GET_VERSION word and derives the api level and
// the firmware feature flags.
func decodeVersion(word uint16, pid gousb.ID) stLinkVersion {
	v := int((word >> 12) & 0x0f)
	x := int((word >> 6) & 0x3f)
	y := int(word & 0x3f)

	ver := stLinkVersion{stlink: v, flags: bitmap.New(flagCount)}

	switch pid {
	case stLinkV21Pid, stLinkV21NoMsdPid:
		if (x <= 22 && y == 7) || (x >= 25 && y >= 7 && y <= 12) {
			ver.msd = x
			ver.swim = y
		} else {
			ver.jtag = x
			ver.msd = y
		}

	default:
		ver.jtag = x
		ver.swim = y
	}

	flags := ver.flags

	switch ver.stlink {
	case 1:
		// ST-LINK/V1 from J11 switch to api-v2 (and support SWD)
		if ver.jtag >= 11 {
			ver.jtagApi = jTagApiV2
		} else {
			ver.jtagApi = jTagApiV1
		}
	case 2:
		ver.jtagApi = jTagApiV2

		// trace and target voltage from J13
		if ver.jtag >= 13 {
			flags.Set(flagHasTrace, true)
		}
		if ver.jtag >= 15 {
			flags.Set(flagHasGetLastRwStatus2, true)
		}
		if ver.jtag >= 22 {
			flags.Set(flagHasSwdSetFreq, true)
		}
		if ver.jtag >= 24 {
			flags.Set(flagHasJtagSetFreq, true)
			flags.Set(flagHasDapReg, true)
		}
		// fixed in J32
		if ver.jtag >= 24 && ver.jtag < 32 {
			flags.Set(flagQuirkJtagDpRead, true)
		}
		if ver.jtag >= 26 {
			flags.Set(flagHasMem16Bit, true)
		}
		if ver.jtag >= 28 {
			flags.Set(flagHasApInit, true)
		}
		if ver.jtag >= 29 {
			flags.Set(flagFixCloseAp, true)
		}
		if ver.jtag >= 32 {
			flags.Set(flagHasDpBankSel, true)
		}
	}

	return ver
}

func (h *StLink) queryVersion() (uint16, error) {
	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdGetVersion)

	if err := h.usbTransferNoErrCheck(ctx, 6); err != nil {
		return 0, err
	}

	return ctx.dataBuf.ReadUint16BE(), nil
}

func (h *StLink) readVersion() error {
	word, err := h.queryVersion()
	if err != nil {
		return err
	}

	h.version = decodeVersion(word, h.pid)

	serialNo := ""
	if h.libUsbDevice != nil {
		serialNo, _ = h.libUsbDevice.SerialNumber()
	}

	logger.Debugf("parsed st-link version [%s] for [%s]", h.version, serialNo)

	return nil
}

// Version queries the raw 16 bit firmware version word.
func (h *StLink) Version() (uint16, error) {
	word, err := h.queryVersion()
	if err != nil {
		return 0, err
	}

	h.version = decodeVersion(word, h.pid)

	return word, nil
}

// TargetVoltage measures the target supply in volts.
func (h *StLink) TargetVoltage() (float32, error) {
	if !h.version.has(flagHasTargetVolt) {
		return 0, newUsbError("target voltage measurement not supported by st-link firmware", usbErrorCommandNotFound)
	}

	ctx := h.initTransfer(transferIncoming)

	ctx.cmdBuf.WriteByte(cmdGetTargetVoltage)

	if err := h.usbTransferNoErrCheck(ctx, 8); err != nil {
		return 0, err
	}

	adcReference := ctx.dataBuf.ReadUint32LE()
	adcTarget := ctx.dataBuf.ReadUint32LE()

	if adcReference == 0 {
		return 0, newUsbError("target voltage reference reads zero", usbErrorFail)
	}

	voltage := 2 * (float32(adcTarget) * (1.2 / float32(adcReference)))

	logger.Debugf("target voltage: %.2fV", voltage)

	return voltage, nil
}
