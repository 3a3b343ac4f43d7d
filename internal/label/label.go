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

// Package label holds the assembler's segment cursors and the symbol and
// source-line tables produced by assembling a program.
package label

import "sort"

// Segment names a memory region the assembler can target.
type Segment int

const (
	Text Segment = iota
	Data
)

// Fixed segment base addresses and stack top, per the memory layout.
const (
	TextBase  uint32 = 0x00400000
	DataBase  uint32 = 0x10010000
	StackBase uint32 = 0x7FFFEFFC
)

// GuardWord is written immediately after the assembled text segment. It
// decodes to an unknown opcode, which the pipeline runs as a no-op: running
// past the end of a program does not halt on it.
const GuardWord uint32 = 0xBAADF00D

// Cursors tracks the current write position within each segment; switching
// segments resumes that segment's own cursor rather than resetting it.
type Cursors struct {
	pos    [2]uint32
	active Segment
}

// NewCursors returns cursors positioned at the start of both segments, with
// Text active.
func NewCursors() *Cursors {
	return &Cursors{pos: [2]uint32{TextBase, DataBase}, active: Text}
}

// Switch changes the active segment.
func (c *Cursors) Switch(s Segment) {
	c.active = s
}

// Active returns the currently selected segment.
func (c *Cursors) Active() Segment {
	return c.active
}

// PC returns the active segment's current cursor.
func (c *Cursors) PC() uint32 {
	return c.pos[c.active]
}

// Advance moves the active segment's cursor forward by n bytes.
func (c *Cursors) Advance(n uint32) {
	c.pos[c.active] += n
}

type lineEntry struct {
	line int
	pc   uint32
}

// Table is the symbol table plus the ordered (source line, pc) index used
// to map an execution address back to the line that produced it.
type Table struct {
	labels map[string]uint32
	lines  []lineEntry
	sorted bool
}

// New returns an empty label table.
func New() *Table {
	return &Table{labels: make(map[string]uint32)}
}

// Define records the address bound to a label.
func (t *Table) Define(name string, addr uint32) {
	t.labels[name] = addr
}

// Lookup resolves a label to its address.
func (t *Table) Lookup(name string) (uint32, bool) {
	addr, ok := t.labels[name]
	return addr, ok
}

// Record associates a source line index with the PC its emission started
// at. Entries may arrive out of pc order (e.g. data emitted after text);
// GetLine sorts lazily on first query.
func (t *Table) Record(sourceLine int, pc uint32) {
	t.lines = append(t.lines, lineEntry{line: sourceLine, pc: pc})
	t.sorted = false
}

// GetLine returns the source line index whose emission span contains pc,
// and whether one was found.
func (t *Table) GetLine(pc uint32) (int, bool) {
	if !t.sorted {
		sort.Slice(t.lines, func(i, j int) bool { return t.lines[i].pc < t.lines[j].pc })
		t.sorted = true
	}
	i := sort.Search(len(t.lines), func(i int) bool { return t.lines[i].pc > pc })
	if i == 0 {
		return 0, false
	}
	return t.lines[i-1].line, true
}
