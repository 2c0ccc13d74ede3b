// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"io"
	"time"

	"github.com/google/gousb"
)

// fakeUsb stands in for both bulk endpoints. Every write is recorded, every
// read is answered with the next queued reply.
type fakeUsb struct {
	sent    [][]byte
	replies [][]byte
}

func (f *fakeUsb) Write(p []byte) (int, error) {
	f.sent = append(f.sent, append([]byte(nil), p...))
	return len(p), nil
}

func (f *fakeUsb) Read(p []byte) (int, error) {
	if len(f.replies) == 0 {
		return 0, io.EOF
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return copy(p, r), nil
}

func (f *fakeUsb) reply(r ...[]byte) {
	f.replies = append(f.replies, r...)
}

// cmdBlock pads a command to the 16 byte block sent on the wire.
func cmdBlock(b ...byte) []byte {
	c := make([]byte, cmdSizeV2)
	copy(c, b)
	return c
}

// rwStatus2 is a GETLASTRWSTATUS2 answer reporting success.
func rwStatus2() []byte {
	s := make([]byte, 12)
	s[0] = debugErrorOk
	return s
}

type testLink struct {
	*StLink
	usb   *fakeUsb
	slept []time.Duration
}

func newTestLink(pid gousb.ID, versionWord uint16) *testLink {
	usb := &fakeUsb{}
	tl := &testLink{usb: usb}
	tl.StLink = &StLink{
		rxEndpoint: usb,
		txEndpoint: usb,
		pid:        pid,
		version:    decodeVersion(versionWord, pid),
		sleep: func(d time.Duration) {
			tl.slept = append(tl.slept, d)
		},
	}
	return tl
}

// v2J25 is an st-link V2 running firmware V2J25S0.
func v2J25() *testLink {
	return newTestLink(stLinkV2Pid, 0x2640)
}
