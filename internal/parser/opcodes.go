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

package parser

import (
	"fmt"

	"github.com/rcornwell/mipssim/internal/isa"
	"github.com/rcornwell/mipssim/internal/register"
)

// mnemonicClass is the operand shape a mnemonic parses with; several
// mnemonics share a class and differ only by their encoded op/funct.
type mnemonicClass int

const (
	classRRR      mnemonicClass = iota // op rd, rs, rt
	classShift                         // op rd, rt, shamt
	classShiftV                        // op rd, rt, rs
	classJR                            // op rs
	classNoOp                          // op  (no operands)
	classRegPair                       // op rs, rt  (div/divu: no destination register)
	classIArith                        // op rt, rs, imm
	classLui                           // op rt, imm
	classMem                           // op rt, imm(rs)
	classBranch                        // op rs, rt, label|offset
	classJump                          // op label|addr
)

var mnemonics = map[string]struct {
	class mnemonicClass
	code  uint32 // funct for R-type, opcode otherwise
	jump  bool   // needs branch-shadow padding
}{
	"add":   {classRRR, isa.FunctAdd, false},
	"addu":  {classRRR, isa.FunctAddu, false},
	"sub":   {classRRR, isa.FunctSub, false},
	"and":   {classRRR, isa.FunctAnd, false},
	"or":    {classRRR, isa.FunctOr, false},
	"xor":   {classRRR, isa.FunctXor, false},
	"nor":   {classRRR, isa.FunctNor, false},
	"slt":   {classRRR, isa.FunctSlt, false},
	"sll":   {classShift, isa.FunctSll, false},
	"srl":   {classShift, isa.FunctSrl, false},
	"sra":   {classShift, isa.FunctSra, false},
	"srlv":  {classShiftV, isa.FunctSrlv, false},
	"jr":    {classJR, isa.FunctJr, true},
	"syscall": {classNoOp, isa.FunctSyscall, false},
	"div":   {classRegPair, isa.FunctDiv, false},
	"divu":  {classRegPair, isa.FunctDivu, false},

	"addi":  {classIArith, isa.OpAddi, false},
	"addiu": {classIArith, isa.OpAddiu, false},
	"andi":  {classIArith, isa.OpAndi, false},
	"ori":   {classIArith, isa.OpOri, false},
	"lui":   {classLui, isa.OpLui, false},
	"lw":    {classMem, isa.OpLw, false},
	"sw":    {classMem, isa.OpSw, false},
	"beq":   {classBranch, isa.OpBeq, true},
	"bne":   {classBranch, isa.OpBne, true},

	"j":   {classJump, isa.OpJ, true},
	"jal": {classJump, isa.OpJal, true},
}

// parseInstruction parses operands for a recognised mnemonic (after pseudo
// lowering has already been tried) and returns its one encoded Instruction.
func parseInstruction(mnemonic string, s *scanner) (Instruction, error) {
	def, ok := mnemonics[mnemonic]
	if !ok {
		return nil, fmt.Errorf("undefined mnemonic: %s", mnemonic)
	}

	switch def.class {
	case classRRR:
		rd, rs, rt, err := threeRegisters(s)
		if err != nil {
			return nil, err
		}
		return RInstr{Funct: def.code, Rd: rd, Rs: rs, Rt: rt}, nil

	case classShift:
		rd, err := s.register()
		if err != nil {
			return nil, err
		}
		s.skipComma()
		rt, err := s.register()
		if err != nil {
			return nil, err
		}
		s.skipComma()
		shamt, err := s.number()
		if err != nil {
			return nil, err
		}
		return RInstr{Funct: def.code, Rd: rd, Rt: rt, Shamt: uint32(shamt) & 0x1f}, nil

	case classShiftV:
		rd, rt, rs, err := threeRegisters(s)
		if err != nil {
			return nil, err
		}
		return RInstr{Funct: def.code, Rd: rd, Rt: rt, Rs: rs}, nil

	case classJR:
		rs, err := s.register()
		if err != nil {
			return nil, err
		}
		return RInstr{Funct: def.code, Rs: rs}, nil

	case classNoOp:
		return RInstr{Funct: def.code}, nil

	case classRegPair:
		s.skipSpace()
		rs, err := s.register()
		if err != nil {
			return nil, err
		}
		s.skipComma()
		rt, err := s.register()
		if err != nil {
			return nil, err
		}
		return RInstr{Funct: def.code, Rs: rs, Rt: rt}, nil

	case classIArith:
		rt, rs, imm, err := regRegImm(s)
		if err != nil {
			return nil, err
		}
		return IInstr{Op: def.code, Rt: rt, Rs: rs, Imm: imm}, nil

	case classLui:
		rt, err := s.register()
		if err != nil {
			return nil, err
		}
		s.skipComma()
		imm, err := s.operand()
		if err != nil {
			return nil, err
		}
		if imm.Kind == ImmLabel {
			imm.Kind = ImmHigh
		}
		return IInstr{Op: def.code, Rt: rt, Rs: register.Zero, Imm: imm}, nil

	case classMem:
		rt, rs, imm, err := memOperand(s)
		if err != nil {
			return nil, err
		}
		return IInstr{Op: def.code, Rt: rt, Rs: rs, Imm: imm}, nil

	case classBranch:
		rs, err := s.register()
		if err != nil {
			return nil, err
		}
		s.skipComma()
		rt, err := s.register()
		if err != nil {
			return nil, err
		}
		s.skipComma()
		target, err := s.operand()
		if err != nil {
			return nil, err
		}
		if target.Kind == ImmLabel {
			target.Kind = ImmPCRelative
		}
		return IInstr{Op: def.code, Rs: rs, Rt: rt, Imm: target}, nil

	case classJump:
		target, err := s.operand()
		if err != nil {
			return nil, err
		}
		return JInstr{Op: def.code, Target: target}, nil
	}

	return nil, fmt.Errorf("unhandled mnemonic class for %s", mnemonic)
}

func needsShadow(mnemonic string) bool {
	if def, ok := mnemonics[mnemonic]; ok {
		return def.jump
	}
	switch mnemonic {
	case "blt", "bgt", "ble", "bge":
		return true
	}
	return false
}

func threeRegisters(s *scanner) (a, b, c register.Register, err error) {
	if a, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	if b, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	if c, err = s.register(); err != nil {
		return
	}
	return
}

func regRegImm(s *scanner) (rt, rs register.Register, imm Imm, err error) {
	if rt, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	if rs, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	imm, err = s.operand()
	return
}

// memOperand parses the load/store operand form imm(reg).
func memOperand(s *scanner) (rt, rs register.Register, imm Imm, err error) {
	if rt, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	s.skipSpace()
	imm, err = s.operand()
	if err != nil {
		return
	}
	s.skipSpace()
	if s.eol() || s.peek() != '(' {
		err = fmt.Errorf("expected '(' in memory operand at %q", s.line[s.pos:])
		return
	}
	s.pos++
	rs, err = s.register()
	if err != nil {
		return
	}
	s.skipSpace()
	if s.eol() || s.peek() != ')' {
		err = fmt.Errorf("expected ')' in memory operand at %q", s.line[s.pos:])
		return
	}
	s.pos++
	return
}
