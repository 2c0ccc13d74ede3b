// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package probe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + i>>8)
	}
	return b
}

func TestReadMemEmpty(t *testing.T) {
	p, ft := detected(t)

	for _, size := range []int{0, -1, -4096} {
		m, err := p.ReadMem(0x20000100, size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if m.Addr != 0x20000100 || m.Data == nil || len(m.Data) != 0 {
			t.Errorf("size %d: got %+v", size, m)
		}
	}
	if len(ft.calls) != 0 {
		t.Errorf("transport called: %v", ft.calls)
	}
}

func TestReadMemBlocks(t *testing.T) {
	tests := []struct {
		name      string
		addr      uint32
		size      int
		blockSize int
		want      []memRead
		wantErr   error
	}{
		{"single short", 0x20000000, 10, 1024, []memRead{{0x20000000, 10}}, nil},
		{"exact one", 0x20000000, 1024, 1024, []memRead{{0x20000000, 1024}}, nil},
		{"exact multiple", 0x20000000, 3072, 1024, []memRead{{0x20000000, 1024}, {0x20000400, 1024}, {0x20000800, 1024}}, nil},
		{"remainder", 0x20000000, 2500, 1024, []memRead{{0x20000000, 1024}, {0x20000400, 1024}, {0x20000800, 452}}, nil},
		{"small blocks", 0x20000000, 10, 4, []memRead{{0x20000000, 4}, {0x20000004, 4}, {0x20000008, 2}}, nil},
		{"ends at top of address space", 0xFFFFFC00, 1024, 1024, []memRead{{0xFFFFFC00, 1024}}, nil},
		{"wraps past top of address space", 0xFFFFFC00, 2048, 1024, nil, ErrInvalidArgument},
		{"one byte past top", 0xFFFFFFFF, 2, 1024, nil, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := newFakeTransport()
			p := New(ft, WithBlockSize(tt.blockSize))
			if _, err := p.Detect(); err != nil {
				t.Fatal(err)
			}
			ft.memBase = tt.addr
			ft.mem = pattern(4096)

			m, err := p.ReadMem(tt.addr, tt.size)
			if diff := cmp.Diff(tt.want, ft.memReads); diff != "" {
				t.Errorf("blocks mismatch (-want +got):\n%s", diff)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if m.Data != nil {
					t.Errorf("data returned with error: %d bytes", len(m.Data))
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMem: %v", err)
			}
			if len(m.Data) != tt.size {
				t.Errorf("len(Data) = %d, want %d", len(m.Data), tt.size)
			}
			if diff := cmp.Diff(ft.mem[:tt.size], m.Data); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadMemRoundTrip(t *testing.T) {
	p, ft := detected(t)
	ft.memBase = 0x08000000
	ft.mem = pattern(8192)

	for _, size := range []int{1, 3, 1023, 1024, 1025, 4097, 8192} {
		ft.memReads = nil
		m, err := p.ReadMem(0x08000000, size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if diff := cmp.Diff(ft.mem[:size], m.Data); diff != "" {
			t.Errorf("size %d mismatch (-want +got):\n%s", size, diff)
		}
		wantBlocks := (size + DefaultBlockSize - 1) / DefaultBlockSize
		if len(ft.memReads) != wantBlocks {
			t.Errorf("size %d: %d blocks, want %d", size, len(ft.memReads), wantBlocks)
		}
	}
}

func TestReadMemFailureAborts(t *testing.T) {
	p, ft := detected(t)
	ft.memBase = 0x20000000
	ft.mem = pattern(4096)
	ft.failAtMem = 2

	m, err := p.ReadMem(0x20000000, 3000)
	if !errors.Is(err, ErrTransport) || !errors.Is(err, errLink) {
		t.Fatalf("err = %v", err)
	}
	if m.Data != nil {
		t.Errorf("partial data returned: %d bytes", len(m.Data))
	}
	if len(ft.memReads) != 2 {
		t.Errorf("reads after failure: %v", ft.memReads)
	}
}

func TestReadSRAMAndFlash(t *testing.T) {
	ft := newFakeTransport()
	ft.regs16[0x1fff7a22] = 4 // 4KB of flash keeps the fake small
	p := New(ft)
	if _, err := p.Detect(); err != nil {
		t.Fatal(err)
	}

	ft.memBase = 0x08000000
	ft.mem = pattern(4096)
	flash, err := p.ReadFlash()
	if err != nil {
		t.Fatalf("ReadFlash: %v", err)
	}
	if flash.Addr != 0x08000000 || len(flash.Data) != 4096 {
		t.Errorf("flash = %08x/%d", flash.Addr, len(flash.Data))
	}

	ft.memBase = 0x20000000
	ft.mem = make([]byte, 256*1024)
	ft.memReads = nil
	sram, err := p.ReadSRAM()
	if err != nil {
		t.Fatalf("ReadSRAM: %v", err)
	}
	if sram.Addr != 0x20000000 || len(sram.Data) != 262144 {
		t.Errorf("sram = %08x/%d", sram.Addr, len(sram.Data))
	}
	if len(ft.memReads) != 256 {
		t.Errorf("sram blocks = %d, want 256", len(ft.memReads))
	}
}
