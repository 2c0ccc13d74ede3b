// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package hexdump prints memory as addressed hex lines. A run of lines equal
// to the last printed one is shown as a single "*".
package hexdump

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

const DefaultWidth = 16

// Lines formats data read from addr, width bytes per line.
func Lines(addr uint32, data []byte, width int) []string {
	var lines []string
	each(addr, data, width, func(line string) {
		lines = append(lines, line)
	})
	return lines
}

// Write streams the lines of Lines to w.
func Write(w io.Writer, addr uint32, data []byte, width int) error {
	bw := bufio.NewWriter(w)
	var err error

	each(addr, data, width, func(line string) {
		if err == nil {
			_, err = fmt.Fprintln(bw, line)
		}
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

func each(addr uint32, data []byte, width int, emit func(string)) {
	if width <= 0 {
		width = DefaultWidth
	}

	var prev []byte
	collapsed := false

	for i := 0; i < len(data); i += width {
		end := i + width
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]

		switch {
		case prev == nil || !bytes.Equal(prev, chunk):
			emit(fmt.Sprintf("  %08x  %s", addr+uint32(i), hexBytes(chunk)))
			prev = chunk
			collapsed = false
		case !collapsed:
			emit("  *")
			collapsed = true
		}
	}
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}
