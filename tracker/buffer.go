package tracker

import (
	"encoding/binary"
	"strings"
)

// buffer reads module fields by offset. Reads past the end yield zero, so a
// truncated header decodes as empty fields instead of failing.
type buffer []byte

func (b buffer) has(off, n int) bool {
	return off >= 0 && n >= 0 && off+n <= len(b)
}

func (b buffer) u8(off int) int {
	if !b.has(off, 1) {
		return 0
	}

	return int(b[off])
}

func (b buffer) s8(off int) int {
	return int(int8(b.u8(off)))
}

func (b buffer) u16be(off int) int {
	if !b.has(off, 2) {
		return 0
	}

	return int(binary.BigEndian.Uint16(b[off:]))
}

func (b buffer) u16le(off int) int {
	if !b.has(off, 2) {
		return 0
	}

	return int(binary.LittleEndian.Uint16(b[off:]))
}

func (b buffer) u32le(off int) int {
	if !b.has(off, 4) {
		return 0
	}

	return int(binary.LittleEndian.Uint32(b[off:]))
}

// tag returns n raw bytes as a string, or "" when they are not available.
func (b buffer) tag(off, n int) string {
	if !b.has(off, n) {
		return ""
	}

	return string(b[off : off+n])
}

// name decodes a fixed size text field. Unprintable bytes become spaces and
// trailing spaces are dropped.
func (b buffer) name(off, n int) string {
	raw := b.clamp(off, n)

	out := make([]byte, len(raw))
	for i, c := range raw {
		if c < 0x20 || c > 0x7e {
			c = ' '
		}

		out[i] = c
	}

	return strings.TrimRight(string(out), " ")
}

// clamp returns up to n bytes at off, fewer when the buffer ends early.
func (b buffer) clamp(off, n int) []byte {
	if off < 0 || n <= 0 || off >= len(b) {
		return nil
	}

	if off+n > len(b) {
		n = len(b) - off
	}

	return b[off : off+n]
}
