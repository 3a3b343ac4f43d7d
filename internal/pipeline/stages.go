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

package pipeline

import (
	"fmt"

	"github.com/rcornwell/mipssim/internal/isa"
	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/memory"
	"github.com/rcornwell/mipssim/internal/register"
)

// Fetch reads the word at pc, builds the next IfId, and returns the
// post-increment PC. pc must be 4-byte aligned; unaligned fetch is fatal,
// matching a read_word fault.
func Fetch(pc uint32, mem *memory.Memory, labels *label.Table) (IfId, uint32, error) {
	word, err := mem.ReadWord(pc)
	if err != nil {
		return IfId{}, pc, fmt.Errorf("fetch: %w", err)
	}
	line, ok := labels.GetLine(pc)
	if !ok {
		line = noLine
	}
	return IfId{Instruction: word, PC: pc + 4, Line: line}, pc + 4, nil
}

// Decode extracts fields and control signals from in.Instruction and reads
// the register file. It never errors, and no later stage reports an
// unrecognised instruction either: an unknown opcode decodes with every
// control signal false and passes through the pipeline as a no-op, and an
// unknown R-type funct yields an ALU result of 0 that is written to rd.
func Decode(regs *register.File, in IfId) IdEx {
	instr := in.Instruction
	op := instr >> 26
	rs := register.Register((instr >> 21) & 0x1f)
	rt := register.Register((instr >> 16) & 0x1f)
	rd := register.Register((instr >> 11) & 0x1f)
	shamt := (instr >> 6) & 0x1f
	funct := instr & 0x3f
	imm := uint16(instr & 0xffff)
	addr26 := instr & 0x03ffffff

	out := IdEx{
		Funct:       funct,
		Reg1:        regs.Read(rs),
		Reg2:        regs.Read(rt),
		Imm:         imm,
		Shamt:       shamt,
		Rs:          rs,
		Rt:          rt,
		Rd:          rd,
		PC:          in.PC,
		Instruction: instr,
		Line:        in.Line,
	}

	switch op {
	case isa.OpRType:
		out.RegDst = true
		out.RegWrite = true
		out.AluOp = isa.AluR
		if funct == isa.FunctSyscall {
			out.Syscall = true
			out.RegWrite = false
		}
		if funct == isa.FunctJr {
			out.Jump = true
			out.JumpReg = true
			out.RegWrite = false
		}
		if funct == isa.FunctDiv || funct == isa.FunctDivu {
			out.HiLoWrite = true
			out.RegWrite = false
		}

	case isa.OpJ:
		out.Jump = true
		out.AluOp = isa.AluAdd
		out.JumpAddr = (addr26 << 2)

	case isa.OpJal:
		out.Jump = true
		out.Link = true
		out.RegWrite = true
		out.RegDst = true
		out.Rd = register.RA
		out.AluOp = isa.AluAdd
		out.JumpAddr = (addr26 << 2)

	case isa.OpBeq:
		out.Branch = true
		out.AluOp = isa.AluSub

	case isa.OpBne:
		out.Branch = true
		out.BranchNot = true
		out.AluOp = isa.AluSub

	case isa.OpAddi, isa.OpAddiu:
		out.AluSrc = true
		out.RegWrite = true
		out.AluOp = isa.AluAdd

	case isa.OpAndi:
		out.AluSrc = true
		out.RegWrite = true
		out.AluOp = isa.AluAnd

	case isa.OpOri:
		out.AluSrc = true
		out.RegWrite = true
		out.AluOp = isa.AluOr

	case isa.OpLui:
		out.AluSrc = true
		out.RegWrite = true
		out.AluOp = isa.AluUpper

	case isa.OpLw:
		out.AluSrc = true
		out.MemToReg = true
		out.RegWrite = true
		out.MemRead = true
		out.AluOp = isa.AluAdd

	case isa.OpSw:
		out.AluSrc = true
		out.MemWrite = true
		out.AluOp = isa.AluAdd
	}

	return out
}

// Execute is the ALU stage: resolves forwarded operands, derives the
// concrete ALU operation from AluOp/Funct, and computes branch/jump
// targets and HI/LO division results.
func Execute(in IdEx, fwd Forward) ExMem {
	rsVal := fwd.Resolve(in.Rs, in.Reg1)
	rtVal := fwd.Resolve(in.Rt, in.Reg2)

	aluOp := in.AluOp
	complementA, complementB, subtract := false, false, false
	isShift := false
	shiftAmt := in.Shamt

	switch {
	case in.AluOp == isa.AluR:
		switch in.Funct {
		case isa.FunctAdd, isa.FunctAddu, isa.FunctSyscall:
			aluOp = isa.AluAdd
		case isa.FunctSub:
			aluOp = isa.AluAdd
			subtract = true
		case isa.FunctAnd:
			aluOp = isa.AluAnd
		case isa.FunctOr:
			aluOp = isa.AluOr
		case isa.FunctXor:
			aluOp = isa.AluXor
		case isa.FunctNor:
			aluOp = isa.AluAnd
			complementA, complementB = true, true
		case isa.FunctSlt:
			aluOp = isa.AluSlt
		case isa.FunctSll:
			aluOp = isa.AluSll
			isShift = true
		case isa.FunctSrl:
			aluOp = isa.AluSrl
			isShift = true
		case isa.FunctSra:
			aluOp = isa.AluSra
			isShift = true
		case isa.FunctSrlv:
			aluOp = isa.AluSrl
			isShift = true
			shiftAmt = rsVal & 0x1f
		}
	case in.AluOp == isa.AluSub:
		aluOp = isa.AluAdd
		subtract = true
	}

	var arg1, arg2 uint32
	if isShift {
		arg1 = rtVal
		arg2 = shiftAmt
	} else {
		arg1 = rsVal
		if in.AluSrc {
			arg2 = uint32(isa.SignExtend16(in.Imm))
		} else {
			arg2 = rtVal
		}
	}
	if complementA {
		arg1 = ^arg1
	}
	if complementB {
		arg2 = ^arg2
	}
	if subtract {
		// Two's-complement subtraction: negate B by inverting then adding
		// one, then ADD — arithmetically equivalent to a carry-in borrow.
		arg2 = ^arg2 + 1
	}

	var result uint32
	switch aluOp {
	case isa.AluAdd:
		result = arg1 + arg2
	case isa.AluAnd:
		result = arg1 & arg2
	case isa.AluOr:
		result = arg1 | arg2
	case isa.AluXor:
		result = arg1 ^ arg2
	case isa.AluSlt:
		if int32(arg1) < int32(arg2) {
			result = 1
		}
	case isa.AluSll:
		result = arg1 << (arg2 & 0x1f)
	case isa.AluSrl:
		result = arg1 >> (arg2 & 0x1f)
	case isa.AluSra:
		result = uint32(int32(arg1) >> (arg2 & 0x1f))
	case isa.AluUpper:
		result = arg2 << 16
	}

	var quotient, remainder uint32
	if in.HiLoWrite {
		if in.Funct == isa.FunctDivu {
			if rtVal != 0 {
				quotient, remainder = rsVal/rtVal, rsVal%rtVal
			}
		} else {
			a, b := int32(rsVal), int32(rtVal)
			if b != 0 {
				quotient, remainder = uint32(a/b), uint32(a%b)
			}
		}
	}

	writeReg := in.Rt
	if in.RegDst {
		writeReg = in.Rd
	}

	if in.Link {
		result = in.PC + 4
	}

	jumpPC := in.JumpAddr
	if in.JumpReg {
		jumpPC = rsVal
	}

	dispSigned := isa.SignExtend16(in.Imm)

	return ExMem{
		AluResult:     result,
		Zero:          result == 0,
		WriteData:     rtVal,
		MemRead:       in.MemRead,
		MemWrite:      in.MemWrite,
		MemToReg:      in.MemToReg,
		RegWrite:      in.RegWrite,
		Branch:        in.Branch,
		BranchNot:     in.BranchNot,
		Jump:          in.Jump,
		JumpReg:       in.JumpReg,
		BranchPC:      in.PC + uint32(dispSigned*4),
		JumpPC:        jumpPC,
		WriteRegister: writeReg,
		Syscall:       in.Syscall,
		HiLoWrite:     in.HiLoWrite,
		Quotient:      quotient,
		Remainder:     remainder,
		Instruction:   in.Instruction,
		Line:          in.Line,
	}
}

// MemoryStage performs the data-memory access and resolves taken
// branches/jumps by writing *pc directly.
func MemoryStage(pc *uint32, mem *memory.Memory, in ExMem) (MemWb, error) {
	var memData uint32
	if in.MemRead {
		v, err := mem.ReadWord(in.AluResult)
		if err != nil {
			return MemWb{}, fmt.Errorf("memory: %w", err)
		}
		memData = v
	}
	if in.MemWrite {
		if err := mem.WriteWord(in.AluResult, in.WriteData); err != nil {
			return MemWb{}, fmt.Errorf("memory: %w", err)
		}
	}

	if in.Jump {
		*pc = in.JumpPC
	} else if in.Branch && (in.Zero != in.BranchNot) {
		*pc = in.BranchPC
	}

	return MemWb{
		MemToReg:      in.MemToReg,
		MemData:       memData,
		AluData:       in.AluResult,
		WriteRegister: in.WriteRegister,
		RegWrite:      in.RegWrite,
		Syscall:       in.Syscall,
		HiLoWrite:     in.HiLoWrite,
		Quotient:      in.Quotient,
		Remainder:     in.Remainder,
		Instruction:   in.Instruction,
		Line:          in.Line,
	}, nil
}

// HiLo is the introspection-only register pair written by div/divu.
type HiLo struct {
	Hi uint32
	Lo uint32
}

// Writeback commits a register-file (and, for div/divu, HI/LO) write and
// emits the observational PipeOut latch.
func Writeback(regs *register.File, hiLo *HiLo, in MemWb) PipeOut {
	if in.HiLoWrite {
		hiLo.Lo = in.Quotient
		hiLo.Hi = in.Remainder
	}
	if in.RegWrite {
		v := in.AluData
		if in.MemToReg {
			v = in.MemData
		}
		regs.Write(in.WriteRegister, v)
	}
	return PipeOut{Syscall: in.Syscall, Instruction: in.Instruction, Line: in.Line}
}
