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

// Package disassemble is the inverse of the parser's encode tables: given a
// 32-bit instruction word, recover a mnemonic and operand text.
package disassemble

import (
	"fmt"

	"github.com/rcornwell/mipssim/internal/isa"
	"github.com/rcornwell/mipssim/internal/register"
)

const (
	tyR = 1 + iota
	tyShift
	tyShiftV
	tyJr
	tyBranch
	tyImm
	tyMem
	tyJump
)

type opcode struct {
	name string
	kind int
}

var rType = map[uint32]opcode{
	isa.FunctAdd:     {"add", tyR},
	isa.FunctAddu:    {"addu", tyR},
	isa.FunctSub:     {"sub", tyR},
	isa.FunctAnd:     {"and", tyR},
	isa.FunctOr:      {"or", tyR},
	isa.FunctXor:     {"xor", tyR},
	isa.FunctNor:     {"nor", tyR},
	isa.FunctSlt:     {"slt", tyR},
	isa.FunctSll:     {"sll", tyShift},
	isa.FunctSrl:     {"srl", tyShift},
	isa.FunctSra:     {"sra", tyShift},
	isa.FunctSrlv:    {"srlv", tyShiftV},
	isa.FunctJr:      {"jr", tyJr},
	isa.FunctSyscall: {"syscall", tyR},
	isa.FunctDiv:     {"div", tyR},
	isa.FunctDivu:    {"divu", tyR},
}

var iType = map[uint32]opcode{
	isa.OpBeq:   {"beq", tyBranch},
	isa.OpBne:   {"bne", tyBranch},
	isa.OpAddi:  {"addi", tyImm},
	isa.OpAddiu: {"addiu", tyImm},
	isa.OpAndi:  {"andi", tyImm},
	isa.OpOri:   {"ori", tyImm},
	isa.OpLui:   {"lui", tyImm},
	isa.OpLw:    {"lw", tyMem},
	isa.OpSw:    {"sw", tyMem},
}

var jType = map[uint32]opcode{
	isa.OpJ:   {"j", tyJump},
	isa.OpJal: {"jal", tyJump},
}

// Disassemble recovers the mnemonic and operand text for one instruction
// word, along with its byte length in the text segment (always 4; no
// variable-length MIPS encoding exists, unlike the 370's RR/RX/SS forms).
func Disassemble(word uint32) (string, int) {
	op := word >> 26
	rs := register.Register((word >> 21) & 0x1f)
	rt := register.Register((word >> 16) & 0x1f)
	rd := register.Register((word >> 11) & 0x1f)
	shamt := (word >> 6) & 0x1f
	funct := word & 0x3f
	imm := int32(isa.SignExtend16(uint16(word & 0xffff)))
	addr26 := word & 0x03ffffff

	if word == 0 {
		return ".word 0", 4
	}

	if op == isa.OpRType {
		oc, ok := rType[funct]
		if !ok {
			return undefined(word), 4
		}
		switch oc.kind {
		case tyJr:
			return fmt.Sprintf("%s %s", oc.name, rs), 4
		case tyShift:
			return fmt.Sprintf("%s %s, %s, %d", oc.name, rd, rt, shamt), 4
		case tyShiftV:
			return fmt.Sprintf("%s %s, %s, %s", oc.name, rd, rt, rs), 4
		default:
			if funct == isa.FunctSyscall {
				return "syscall", 4
			}
			if funct == isa.FunctDiv || funct == isa.FunctDivu {
				return fmt.Sprintf("%s %s, %s", oc.name, rs, rt), 4
			}
			return fmt.Sprintf("%s %s, %s, %s", oc.name, rd, rs, rt), 4
		}
	}

	if oc, ok := jType[op]; ok {
		return fmt.Sprintf("%s %#x", oc.name, addr26<<2), 4
	}

	oc, ok := iType[op]
	if !ok {
		return undefined(word), 4
	}
	switch oc.kind {
	case tyBranch:
		return fmt.Sprintf("%s %s, %s, %d", oc.name, rs, rt, imm), 4
	case tyMem:
		return fmt.Sprintf("%s %s, %d(%s)", oc.name, rt, imm, rs), 4
	default:
		if op == isa.OpLui {
			return fmt.Sprintf("%s %s, %d", oc.name, rt, imm&0xffff), 4
		}
		return fmt.Sprintf("%s %s, %s, %d", oc.name, rt, rs, imm), 4
	}
}

func undefined(word uint32) string {
	return fmt.Sprintf(".word %#08x", word)
}
