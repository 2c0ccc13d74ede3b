// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import "fmt"

// Memory is a contiguous dump of target memory starting at Addr.
type Memory struct {
	Addr uint32
	Data []byte
}

// ReadMem reads size bytes from addr in blocks of at most the configured
// block size, lowest address first. A failed block fails the whole read.
//
// The session is checked first: before Detect every call, size <= 0
// included, fails with ErrDeviceNotSelected. On a detected probe size <= 0
// returns an empty Memory at addr without touching the transport. A range
// running past 0xffffffff fails with ErrInvalidArgument before any transfer.
func (p *Probe) ReadMem(addr uint32, size int) (Memory, error) {
	if err := p.requireSession(); err != nil {
		return Memory{}, err
	}
	if size <= 0 {
		return Memory{Addr: addr, Data: []byte{}}, nil
	}
	if uint64(addr)+uint64(size) > 1<<32 {
		return Memory{}, invalidArgument("read of %d bytes at %08x runs past the 32 bit address space", size, addr)
	}

	data := make([]byte, 0, size)
	blockAddr := addr

	for remaining := size; remaining > 0; {
		n := p.blockSize
		if n > remaining {
			n = remaining
		}

		block, err := p.transport.ReadMem32(blockAddr, n)
		if err != nil {
			return Memory{}, transportError(fmt.Sprintf("read memory %08x", blockAddr), err)
		}
		if len(block) != n {
			return Memory{}, transportError(fmt.Sprintf("read memory %08x", blockAddr),
				fmt.Errorf("got %d bytes, want %d", len(block), n))
		}

		data = append(data, block...)
		blockAddr += uint32(n)
		remaining -= n
	}

	p.log.Debugf("read %d bytes at %08x", size, addr)

	return Memory{Addr: addr, Data: data}, nil
}

func (p *Probe) ReadSRAM() (Memory, error) {
	if err := p.requireSession(); err != nil {
		return Memory{}, err
	}
	base, size := p.session.SRAM()
	return p.ReadMem(base, int(size))
}

func (p *Probe) ReadFlash() (Memory, error) {
	if err := p.requireSession(); err != nil {
		return Memory{}, err
	}
	base, size := p.session.Flash()
	return p.ReadMem(base, int(size))
}
