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

// Package isa is the shared opcode/funct numbering that the parser (which
// encodes instructions) and the pipeline (which decodes them) both need to
// agree on, kept in one place so the two tables cannot drift apart.
package isa

// Opcode field values (I-type and J-type; R-type instructions all share
// opcode 0 and dispatch on Funct instead).
const (
	OpRType  uint32 = 0x00
	OpJ      uint32 = 0x02
	OpJal    uint32 = 0x03
	OpBeq    uint32 = 0x04
	OpBne    uint32 = 0x05
	OpAddi   uint32 = 0x08
	OpAddiu  uint32 = 0x09
	OpAndi   uint32 = 0x0c
	OpOri    uint32 = 0x0d
	OpLui    uint32 = 0x0f
	OpLw     uint32 = 0x23
	OpSw     uint32 = 0x2b
)

// Funct field values, valid only when Op == OpRType.
const (
	FunctSll     uint32 = 0x00
	FunctSrl     uint32 = 0x02
	FunctSra     uint32 = 0x03
	FunctSrlv    uint32 = 0x06
	FunctJr      uint32 = 0x08
	FunctSyscall uint32 = 0x0c
	FunctAdd     uint32 = 0x20
	FunctAddu    uint32 = 0x21
	FunctSub     uint32 = 0x22
	FunctAnd     uint32 = 0x24
	FunctOr      uint32 = 0x25
	FunctXor     uint32 = 0x26
	FunctNor     uint32 = 0x27
	FunctSlt     uint32 = 0x2a
	FunctDiv     uint32 = 0x1a
	FunctDivu    uint32 = 0x1b
)

// ALU operation selector threaded from Decode to Execute.
type AluOp int

const (
	AluR AluOp = iota // R-type: Execute re-dispatches on Funct
	AluAdd
	AluSub
	AluAnd
	AluOr
	AluXor
	AluSlt
	AluSll
	AluSrl
	AluSra
	AluUpper
)

// SignExtend16 widens a 16-bit immediate to a signed 32-bit value.
func SignExtend16(imm uint16) int32 {
	return int32(int16(imm))
}

// Field packs a value of width bits at bit position start (0 = LSB) into a
// 32-bit word, matching the little-endian-numbered bit layout in the
// encoding tables.
func Field(value uint32, start, width uint) uint32 {
	mask := uint32(1)<<width - 1
	return (value & mask) << start
}
