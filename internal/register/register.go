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

// Package register models the 32-entry MIPS architectural register file.
package register

import (
	"fmt"
	"strconv"
	"strings"
)

// Register identifies one of the 32 architectural registers.
type Register uint8

// Convenience names, in register-number order.
const (
	Zero Register = iota
	At
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA
)

// StackBase is the initial, top-of-stack value seeded into SP.
const StackBase uint32 = 0x7FFFEFFC

var names = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Name returns the conventional assembler name for r.
func (r Register) Name() string {
	if int(r) >= len(names) {
		return "err"
	}
	return names[r]
}

func (r Register) String() string {
	return "$" + r.Name()
}

// Parse resolves a register operand, with or without a leading '$', either
// by symbolic name or by numeric index 0..31.
func Parse(tok string) (Register, error) {
	tok = strings.TrimPrefix(strings.TrimSpace(tok), "$")
	lower := strings.ToLower(tok)

	for i, n := range names {
		if n == lower {
			return Register(i), nil
		}
	}

	if n, err := strconv.ParseUint(lower, 10, 8); err == nil && n < 32 {
		return Register(n), nil
	}

	return 0, fmt.Errorf("unknown register: %q", tok)
}

// File is the 32-word register file. zero always reads as 0; writes to it
// are silently discarded at this boundary (a correctness fix over the reference implementation, which stores into index 0 and
// simply hopes nothing re-reads it).
type File struct {
	regs [32]uint32
}

// New returns a register file with SP seeded to StackBase, as at machine
// construction or hard-reset.
func New() *File {
	f := &File{}
	f.regs[SP] = StackBase
	return f
}

// Reset restores the file to its construction-time state (soft-reset:
// called alongside a PC rewind, not a memory wipe).
func (f *File) Reset() {
	f.regs = [32]uint32{}
	f.regs[SP] = StackBase
}

// Read returns the current value of r.
func (f *File) Read(r Register) uint32 {
	return f.regs[r]
}

// Write sets r to v. Writes to Zero are dropped.
func (f *File) Write(r Register, v uint32) {
	if r == Zero {
		return
	}
	f.regs[r] = v
}
