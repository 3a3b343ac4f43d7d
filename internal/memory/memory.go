/*
 * mipssim - MIT License
 *
 * Copyright 2026, mipssim authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package memory models a sparse 4 GiB byte-addressed address space, paged
// in 1024-word (4096-byte) chunks that are allocated and zero-filled lazily
// on first write. Reads of never-written pages return 0 without allocating.
package memory

import "fmt"

const (
	pageWords = 1024
	pageBytes = pageWords * 4
	pageShift = 12
	pageMask  = pageBytes - 1
)

type page [pageBytes]byte

// Memory is one sparse address space. The zero value is ready to use.
type Memory struct {
	pages map[uint32]*page
}

// New returns an empty address space.
func New() *Memory {
	return &Memory{pages: make(map[uint32]*page)}
}

// Reset discards every mapped page, as on hard-reset or flash.
func (m *Memory) Reset() {
	m.pages = make(map[uint32]*page)
}

func (m *Memory) page(addr uint32, create bool) *page {
	num := addr >> pageShift
	p, ok := m.pages[num]
	if !ok {
		if !create {
			return nil
		}
		if m.pages == nil {
			m.pages = make(map[uint32]*page)
		}
		p = &page{}
		m.pages[num] = p
	}
	return p
}

// ReadByte returns the byte at addr, or 0 if its page was never written.
func (m *Memory) ReadByte(addr uint32) byte {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr&pageMask]
}

// WriteByte stores b at addr, allocating its page if needed. Byte writes
// are always permitted regardless of alignment.
func (m *Memory) WriteByte(addr uint32, b byte) {
	p := m.page(addr, true)
	p[addr&pageMask] = b
}

// Aligned reports whether addr is a valid word address.
func Aligned(addr uint32) bool {
	return addr&0x3 == 0
}

// ReadWord returns the little-endian word at addr. addr must be
// 4-byte aligned.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if !Aligned(addr) {
		return 0, fmt.Errorf("unaligned word read at %#08x", addr)
	}
	return uint32(m.ReadByte(addr)) |
		uint32(m.ReadByte(addr+1))<<8 |
		uint32(m.ReadByte(addr+2))<<16 |
		uint32(m.ReadByte(addr+3))<<24, nil
}

// WriteWord stores v little-endian at addr. addr must be 4-byte aligned.
func (m *Memory) WriteWord(addr uint32, v uint32) error {
	if !Aligned(addr) {
		return fmt.Errorf("unaligned word write at %#08x", addr)
	}
	m.WriteByte(addr, byte(v))
	m.WriteByte(addr+1, byte(v>>8))
	m.WriteByte(addr+2, byte(v>>16))
	m.WriteByte(addr+3, byte(v>>24))
	return nil
}
