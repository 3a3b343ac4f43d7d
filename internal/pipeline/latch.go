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

// Package pipeline implements the five-stage in-order pipeline: pure stage
// functions operating on typed inter-stage latches, a forwarding unit, and
// the driver that sequences one cycle in reverse-of-dataflow order.
package pipeline

import (
	"github.com/rcornwell/mipssim/internal/isa"
	"github.com/rcornwell/mipssim/internal/register"
)

// NoLine marks a latch that carries no source-line association (a bubble,
// or a latch that has never held a real fetch).
const NoLine = -1

const noLine = NoLine

// IfId is the Fetch/Decode boundary latch.
type IfId struct {
	Instruction uint32
	PC          uint32 // post-increment: address of the word after this one
	Line        int
}

// IdEx is the Decode/Execute boundary latch: control bits plus the operands
// Decode already resolved from the register file.
type IdEx struct {
	AluSrc      bool
	RegDst      bool
	MemToReg    bool
	RegWrite    bool
	MemRead     bool
	MemWrite    bool
	Branch      bool
	BranchNot   bool // true for BNE: branch taken when zero != BranchNot
	Jump        bool
	JumpReg     bool // true for jr: jump target comes from Reg1, not JumpAddr
	Link        bool // true for jal: write PC+4 into $ra instead of the ALU result
	Syscall     bool
	HiLoWrite   bool
	AluOp       isa.AluOp
	Funct       uint32
	Reg1        uint32
	Reg2        uint32
	Imm         uint16
	Shamt       uint32
	Rs          register.Register
	Rt          register.Register
	Rd          register.Register
	JumpAddr    uint32
	PC          uint32
	Instruction uint32
	Line        int
}

// ExMem is the Execute/Memory boundary latch.
type ExMem struct {
	AluResult     uint32
	Zero          bool
	WriteData     uint32
	MemRead       bool
	MemWrite      bool
	MemToReg      bool
	RegWrite      bool
	Branch        bool
	BranchNot     bool
	Jump          bool
	JumpReg       bool
	BranchPC      uint32
	JumpPC        uint32
	WriteRegister register.Register
	Syscall       bool
	HiLoWrite     bool
	Quotient      uint32
	Remainder     uint32
	Instruction   uint32
	Line          int
}

// MemWb is the Memory/Writeback boundary latch.
type MemWb struct {
	MemToReg      bool
	MemData       uint32
	AluData       uint32
	WriteRegister register.Register
	RegWrite      bool
	Syscall       bool
	HiLoWrite     bool
	Quotient      uint32
	Remainder     uint32
	Instruction   uint32
	Line          int
}

// PipeOut is Writeback's purely observational output latch.
type PipeOut struct {
	Syscall     bool
	Instruction uint32
	Line        int
}

// Latches holds the five inter-stage registers. The zero value is not
// ready to use; call NewLatches.
type Latches struct {
	IfId    IfId
	IdEx    IdEx
	ExMem   ExMem
	MemWb   MemWb
	PipeOut PipeOut
}

// NewLatches returns an all-bubble pipeline state: every latch at its
// default/false pattern, with Line set to noLine so CurrentLine reports
// "no instruction here" rather than source line 0.
func NewLatches() Latches {
	return Latches{
		IfId:    IfId{Line: noLine},
		IdEx:    IdEx{Line: noLine},
		ExMem:   ExMem{Line: noLine},
		MemWb:   MemWb{Line: noLine},
		PipeOut: PipeOut{Line: noLine},
	}
}

// DefaultIdEx and DefaultMemWb are the bubble values a stalled or squashed
// cycle latches instead of a real decode/memory result.
func DefaultIdEx() IdEx   { return IdEx{Line: noLine} }
func DefaultMemWb() MemWb { return MemWb{Line: noLine} }
