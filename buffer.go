// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"bytes"
	"encoding/binary"
)

// usbBuffer is a bytes.Buffer with the fixed-width helpers the stlink wire format needs.
type usbBuffer struct {
	bytes.Buffer
}

func (b *usbBuffer) WriteUint16LE(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.Write(tmp[:])
}

func (b *usbBuffer) WriteUint32LE(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
}

// next consumes n bytes, zero padded when the buffer runs short
func (b *usbBuffer) next(n int) []byte {
	out := make([]byte, n)
	copy(out, b.Next(n))
	return out
}

func (b *usbBuffer) ReadUint16LE() uint16 {
	return binary.LittleEndian.Uint16(b.next(2))
}

func (b *usbBuffer) ReadUint16BE() uint16 {
	return binary.BigEndian.Uint16(b.next(2))
}

func (b *usbBuffer) ReadUint32LE() uint32 {
	return binary.LittleEndian.Uint32(b.next(4))
}
