// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"errors"
	"fmt"
)

type usbErrorCode int

const (
	usbErrorOK                    usbErrorCode = 0
	usbErrorWait                  usbErrorCode = -1
	usbErrorFail                  usbErrorCode = -2
	usbErrorTargetUnalignedAccess usbErrorCode = -3
	usbErrorCommandNotFound       usbErrorCode = -4
)

type usbError struct {
	errorString  string
	UsbErrorCode usbErrorCode
}

func (e *usbError) Error() string {
	return e.errorString
}

func newUsbError(msg string, code usbErrorCode) error {
	return &usbError{msg, code}
}

// isWait reports whether err is an stlink wait status that may be retried.
func isWait(err error) bool {
	var uerr *usbError
	return errors.As(err, &uerr) && uerr.UsbErrorCode == usbErrorWait
}

// usbErrorCheck converts the stlink status code held in the first byte of a
// response to a gostlink library error.
func (h *StLink) usbErrorCheck(ctx *transferCtx) error {
	data := ctx.DataBytes()
	if len(data) == 0 {
		return newUsbError("empty stlink status response", usbErrorFail)
	}

	errorStatus := data[0]

	if h.stMode == StLinkModeDebugSwim {
		switch errorStatus {
		case swimErrorOk:
			return nil

		case swimErrorBusy:
			return newUsbError("swim is busy", usbErrorWait)

		default:
			return newUsbError(fmt.Sprintf("unknown/unexpected STLINK status code 0x%x", errorStatus), usbErrorFail)
		}
	}

	// api v1 does not report a status byte
	if h.version.jtagApi == jTagApiV1 {
		errorStatus = debugErrorOk
	}

	switch errorStatus {
	case debugErrorOk:
		return nil

	case debugErrorFault:
		return newUsbError(fmt.Sprintf("SWD fault response (0x%x)", debugErrorFault), usbErrorFail)

	case swdAccessPortWait:
		return newUsbError(fmt.Sprintf("wait status SWD_AP_WAIT (0x%x)", swdAccessPortWait), usbErrorWait)

	case swdDebugPortWait:
		return newUsbError(fmt.Sprintf("wait status SWD_DP_WAIT (0x%x)", swdDebugPortWait), usbErrorWait)

	case jTagGetIdCodeError:
		return newUsbError("STLINK_JTAG_GET_IDCODE_ERROR", usbErrorFail)

	case jTagWriteError:
		return newUsbError("write error", usbErrorFail)

	case jTagWriteVerifyError:
		logger.Debug("write verify error, ignoring")
		return nil

	case swdAccessPortFault:
		return newUsbError("STLINK_SWD_AP_FAULT", usbErrorFail)

	case swdAccessPortError:
		return newUsbError("STLINK_SWD_AP_ERROR", usbErrorFail)

	case swdAccessPortParityError:
		return newUsbError("STLINK_SWD_AP_PARITY_ERROR", usbErrorFail)

	case swdDebugPortFault:
		return newUsbError("STLINK_SWD_DP_FAULT", usbErrorFail)

	case swdDebugPortError:
		return newUsbError("STLINK_SWD_DP_ERROR", usbErrorFail)

	case swdDebugPortParityError:
		return newUsbError("STLINK_SWD_DP_PARITY_ERROR", usbErrorFail)

	case swdAccessPortWDataError:
		return newUsbError("STLINK_SWD_AP_WDATA_ERROR", usbErrorFail)

	case swdAccessPortStickyError:
		return newUsbError("STLINK_SWD_AP_STICKY_ERROR", usbErrorFail)

	case swdAccessPortStickOrRunError:
		return newUsbError("STLINK_SWD_AP_STICKYORUN_ERROR", usbErrorFail)

	case badAccessPortError:
		return newUsbError("STLINK_BAD_AP_ERROR", usbErrorFail)

	default:
		return newUsbError(fmt.Sprintf("unknown/unexpected STLINK status code 0x%x", errorStatus), usbErrorFail)
	}
}
