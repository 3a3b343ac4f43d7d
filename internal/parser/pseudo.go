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
	"github.com/rcornwell/mipssim/internal/isa"
	"github.com/rcornwell/mipssim/internal/register"
)

// expandPseudo lowers a pseudo-instruction mnemonic into real instructions.
// ok is false when mnemonic isn't a pseudo-op at all, so the caller falls
// through to parseInstruction.
func expandPseudo(mnemonic string, s *scanner) (insts []Instruction, ok bool, err error) {
	switch mnemonic {
	case "nop":
		return []Instruction{Literal{Data: []byte{0, 0, 0, 0}}}, true, nil

	case "move":
		rd, rs, err := twoRegisters(s)
		if err != nil {
			return nil, true, err
		}
		return []Instruction{RInstr{Funct: isa.FunctAdd, Rd: rd, Rs: rs, Rt: register.Zero}}, true, nil

	case "li", "la":
		rd, err := s.register()
		if err != nil {
			return nil, true, err
		}
		s.skipComma()
		imm, err := s.operand()
		if err != nil {
			return nil, true, err
		}
		return expandLoadImmediate(rd, imm), true, nil

	case "blt", "bgt", "ble", "bge":
		rs, rt, label, err := twoRegistersAndLabel(s)
		if err != nil {
			return nil, true, err
		}
		return expandSignedBranch(mnemonic, rs, rt, label), true, nil
	}
	return nil, false, nil
}

// expandLoadImmediate lowers li/la per §4.1: a constant that fits in 16
// bits becomes a single addi; a wider constant becomes a lui/ori pair
// splitting the value's high and low halfwords. A label operand always
// becomes the lui/ori pair, its halfwords resolved at assembly time.
func expandLoadImmediate(rd register.Register, imm Imm) []Instruction {
	if imm.Kind == ImmLabel {
		return []Instruction{
			IInstr{Op: isa.OpLui, Rt: register.At, Rs: register.Zero,
				Imm: Imm{Kind: ImmHigh, Label: imm.Label}},
			IInstr{Op: isa.OpOri, Rt: rd, Rs: register.At,
				Imm: Imm{Kind: ImmLow, Label: imm.Label}},
		}
	}

	v := imm.Value
	if v >= -(1<<15) && v < (1<<15) || (v >= 0 && v <= 0xffff) {
		return []Instruction{
			IInstr{Op: isa.OpAddi, Rt: rd, Rs: register.Zero, Imm: Imm{Kind: ImmValue, Value: v}},
		}
	}
	return []Instruction{
		IInstr{Op: isa.OpLui, Rt: register.At, Rs: register.Zero,
			Imm: Imm{Kind: ImmValue, Value: (v >> 16) & 0xffff}},
		IInstr{Op: isa.OpOri, Rt: rd, Rs: register.At,
			Imm: Imm{Kind: ImmValue, Value: v & 0xffff}},
	}
}

// expandSignedBranch lowers blt/bgt/ble/bge into an slt into $at followed
// by the beq/bne that tests it, inverting operand order or predicate
// exactly as standard MIPS assemblers do.
func expandSignedBranch(mnemonic string, rs, rt register.Register, label string) []Instruction {
	var sltRs, sltRt register.Register
	var branchOp uint32
	switch mnemonic {
	case "blt":
		sltRs, sltRt, branchOp = rs, rt, isa.OpBne
	case "bgt":
		sltRs, sltRt, branchOp = rt, rs, isa.OpBne
	case "ble":
		sltRs, sltRt, branchOp = rt, rs, isa.OpBeq
	case "bge":
		sltRs, sltRt, branchOp = rs, rt, isa.OpBeq
	}
	return []Instruction{
		RInstr{Funct: isa.FunctSlt, Rd: register.At, Rs: sltRs, Rt: sltRt},
		IInstr{Op: branchOp, Rs: register.At, Rt: register.Zero,
			Imm: Imm{Kind: ImmPCRelative, Label: label}},
	}
}

func twoRegisters(s *scanner) (a, b register.Register, err error) {
	if a, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	b, err = s.register()
	return
}

func twoRegistersAndLabel(s *scanner) (a, b register.Register, label string, err error) {
	if a, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	if b, err = s.register(); err != nil {
		return
	}
	s.skipComma()
	label, err = s.ident()
	if err != nil {
		return
	}
	return a, b, label, nil
}
