// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// this code is mainly inspired and based on the openocd project source code
// for detailed information see

// https://sourceforge.net/p/openocd/code

package gostlink

import "github.com/google/gousb"

type StLinkMode uint8 // stlink debug modes

const (
	StLinkModeUnknown StLinkMode = iota
	StLinkModeDfu
	StLinkModeMass
	StLinkModeDebugJtag
	StLinkModeDebugSwd
	StLinkModeDebugSwim
)

func (m StLinkMode) String() string {
	switch m {
	case StLinkModeDfu:
		return "dfu"
	case StLinkModeMass:
		return "mass"
	case StLinkModeDebugJtag:
		return "jtag"
	case StLinkModeDebugSwd:
		return "swd"
	case StLinkModeDebugSwim:
		return "swim"
	default:
		return "unknown"
	}
}

// StLink firmware feature bits, indexes into the version bitmap
const (
	flagHasTrace = iota
	flagHasSwdSetFreq
	flagHasJtagSetFreq
	flagHasMem16Bit
	flagHasGetLastRwStatus2
	flagHasDapReg
	flagQuirkJtagDpRead
	flagHasApInit
	flagHasDpBankSel
	flagFixCloseAp

	flagCount

	flagHasTargetVolt = flagHasTrace
)

type stLinkApiVersion uint8 // api versions of stlinks

const (
	jTagApiV1 stLinkApiVersion = 1
	jTagApiV2 stLinkApiVersion = 2
)

// usb endpoint numbers, direction is implied by gousb In/OutEndpoint
const (
	usbRxEndpointNo    = 1
	usbTxEndpointNo    = 2
	usbTxEndpointV21No = 1
)

// stlink internal device mode numbers
const (
	deviceModeDFU        = 0x00
	deviceModeMass       = 0x01
	deviceModeDebug      = 0x02
	deviceModeSwim       = 0x03
	deviceModeBootloader = 0x04
)

type usbTransferEndpoint uint8

const (
	transferIncoming usbTransferEndpoint = iota
	transferOutgoing
)

const (
	swimErrorOk                  = 0x00
	swimErrorBusy                = 0x01
	debugErrorOk                 = 0x80
	debugErrorFault              = 0x81
	jTagGetIdCodeError           = 0x09
	jTagWriteError               = 0x0c
	jTagWriteVerifyError         = 0x0d
	swdAccessPortWait            = 0x10
	swdAccessPortFault           = 0x11
	swdAccessPortError           = 0x12
	swdAccessPortParityError     = 0x13
	swdDebugPortWait             = 0x14
	swdDebugPortFault            = 0x15
	swdDebugPortError            = 0x16
	swdDebugPortParityError      = 0x17
	swdAccessPortWDataError      = 0x18
	swdAccessPortStickyError     = 0x19
	swdAccessPortStickOrRunError = 0x1a
	badAccessPortError           = 0x1d
)

const stLinkVid gousb.ID = 0x0483

const (
	stLinkV1Pid       gousb.ID = 0x3744
	stLinkV2Pid       gousb.ID = 0x3748
	stLinkV21Pid      gousb.ID = 0x374B
	stLinkV21NoMsdPid gousb.ID = 0x3752
)

var supportedPids = []gousb.ID{stLinkV2Pid, stLinkV21Pid, stLinkV21NoMsdPid}

const (
	cmdGetVersion       = 0xF1
	cmdDebug            = 0xF2
	cmdDfu              = 0xF3
	cmdSwim             = 0xF4
	cmdGetCurrentMode   = 0xF5
	cmdGetTargetVoltage = 0xF7
)

const (
	debugReadMem32Bit          = 0x07
	debugReadMem8Bit           = 0x0c
	debugEnterSwdNoReset       = 0xa3
	debugEnterJTagNoReset      = 0xa4
	debugApiV1Enter            = 0x20
	debugExit                  = 0x21
	debugReadCoreId            = 0x22
	debugApiV2Enter            = 0x30
	debugApiV2ReadReg          = 0x33
	debugApiV2WriteDebugReg    = 0x35
	debugApiV2ReadDebugReg     = 0x36
	debugApiV2GetLastRWStatus  = 0x3B
	debugApiV2GetLastRWStatus2 = 0x3E
	debugApiV2SwdSetFreq       = 0x43
	debugApiV2ReadMem16Bit     = 0x47
)

const (
	dfuExit  = 0x07
	swimExit = 0x01
)

const (
	maximumWaitRetries = 8

	maxReadWrite8 = 64

	cmdSizeV2      = 16
	dataBufferSize = 4096
)
