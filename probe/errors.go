// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import "fmt"

type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindNotConnected
	KindUnsupportedCore
	KindUnsupportedDevice
	KindDeviceNotSelected
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport failure"
	case KindNotConnected:
		return "not connected"
	case KindUnsupportedCore:
		return "unsupported core"
	case KindUnsupportedDevice:
		return "unsupported device"
	case KindDeviceNotSelected:
		return "device not selected"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type returned by Probe. Two Errors match with
// errors.Is when their kinds are equal, so the Err* values below work as
// sentinels even when the message carries details.
type Error struct {
	Kind ErrorKind
	msg  string
	Err  error
}

var (
	ErrTransport         = &Error{Kind: KindTransport, msg: "transport failure"}
	ErrNotConnected      = &Error{Kind: KindNotConnected, msg: "not connected to CPU"}
	ErrUnsupportedCore   = &Error{Kind: KindUnsupportedCore, msg: "core is not supported"}
	ErrUnsupportedDevice = &Error{Kind: KindUnsupportedDevice, msg: "CPU is not supported"}
	ErrDeviceNotSelected = &Error{Kind: KindDeviceNotSelected, msg: "CPU is not selected"}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument, msg: "invalid argument"}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return e.msg + ": " + e.Err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func transportError(op string, err error) error {
	return &Error{Kind: KindTransport, msg: op, Err: err}
}

func invalidArgument(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

func unsupportedCore(partNumber uint16) error {
	return &Error{Kind: KindUnsupportedCore, msg: fmt.Sprintf("CORE id:0x%03x is not supported", partNumber)}
}

func unsupportedDevice(id uint16) error {
	return &Error{Kind: KindUnsupportedDevice, msg: fmt.Sprintf("CPU id:0x%03x is not supported", id)}
}
