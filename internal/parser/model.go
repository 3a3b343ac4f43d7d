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

// Package parser turns assembly text into a sequence of Line values: a
// hand-written recursive-descent scan, no external grammar library, in the
// style of the teacher's line-oriented instruction assembler.
package parser

import (
	"fmt"

	"github.com/rcornwell/mipssim/internal/isa"
	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/register"
)

// LineKind tags the variant held by a Line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineLabel
	LineSegment
	LineInstruction
)

// Line is one parsed source line. Which fields are meaningful depends on
// Kind; a single source line of assembly may produce several Instructions
// (a pseudo-op, or a branch plus its two shadow words).
type Line struct {
	Kind         LineKind
	Source       int // 0-based source line index, for LabelTable.Record
	Label        string
	Segment      label.Segment
	Comment      string
	Instructions []Instruction
}

// ImmKind tags which of an I-type immediate's forms is in play.
type ImmKind int

const (
	ImmValue ImmKind = iota
	ImmLabel
	ImmHigh
	ImmLow
	ImmPCRelative
)

// Imm is an I-type operand: either a literal value or one of several
// label-relative forms resolved at emission time.
type Imm struct {
	Kind  ImmKind
	Value int64
	Label string
}

func (im Imm) resolve(labels *label.Table, pc uint32) (uint16, error) {
	switch im.Kind {
	case ImmValue:
		return uint16(im.Value), nil
	case ImmLabel:
		addr, ok := labels.Lookup(im.Label)
		if !ok {
			return 0, fmt.Errorf("undefined label: %s", im.Label)
		}
		return uint16(addr), nil
	case ImmHigh:
		addr, ok := labels.Lookup(im.Label)
		if !ok {
			return 0, fmt.Errorf("undefined label: %s", im.Label)
		}
		return uint16(addr >> 16), nil
	case ImmLow:
		addr, ok := labels.Lookup(im.Label)
		if !ok {
			return 0, fmt.Errorf("undefined label: %s", im.Label)
		}
		return uint16(addr), nil
	case ImmPCRelative:
		target, ok := labels.Lookup(im.Label)
		if !ok {
			return 0, fmt.Errorf("undefined label: %s", im.Label)
		}
		disp := (int64(target) - int64(pc+4)) >> 2
		return uint16(disp), nil
	default:
		return 0, fmt.Errorf("unknown immediate kind %d", im.Kind)
	}
}

// Instruction is a lowered, assembler-ready operation: R-type, I-type,
// J-type, or a raw byte Literal (used by directives and branch-shadow
// padding).
type Instruction interface {
	Len() uint32
	Encode(labels *label.Table, pc uint32) ([]byte, error)
}

// RInstr is an R-type instruction (opcode 0, dispatch by Funct).
type RInstr struct {
	Funct uint32
	Rd    register.Register
	Rs    register.Register
	Rt    register.Register
	Shamt uint32
}

func (RInstr) Len() uint32 { return 4 }

func (r RInstr) Encode(_ *label.Table, _ uint32) ([]byte, error) {
	word := isa.Field(uint32(r.Rs), 21, 5) |
		isa.Field(uint32(r.Rt), 16, 5) |
		isa.Field(uint32(r.Rd), 11, 5) |
		isa.Field(r.Shamt, 6, 5) |
		isa.Field(r.Funct, 0, 6)
	return encodeWordLE(word), nil
}

// IInstr is an I-type instruction.
type IInstr struct {
	Op  uint32
	Rt  register.Register
	Rs  register.Register
	Imm Imm
}

func (IInstr) Len() uint32 { return 4 }

func (i IInstr) Encode(labels *label.Table, pc uint32) ([]byte, error) {
	imm16, err := i.Imm.resolve(labels, pc)
	if err != nil {
		return nil, err
	}
	word := isa.Field(i.Op, 26, 6) |
		isa.Field(uint32(i.Rs), 21, 5) |
		isa.Field(uint32(i.Rt), 16, 5) |
		uint32(imm16)
	return encodeWordLE(word), nil
}

// JInstr is a J-type instruction (j, jal).
type JInstr struct {
	Op     uint32
	Target Imm // ImmValue (absolute address) or ImmLabel
}

func (JInstr) Len() uint32 { return 4 }

func (j JInstr) Encode(labels *label.Table, pc uint32) ([]byte, error) {
	var addr uint32
	switch j.Target.Kind {
	case ImmValue:
		addr = uint32(j.Target.Value)
	case ImmLabel:
		a, ok := labels.Lookup(j.Target.Label)
		if !ok {
			return nil, fmt.Errorf("undefined label: %s", j.Target.Label)
		}
		addr = a
	default:
		return nil, fmt.Errorf("invalid jump target kind %d", j.Target.Kind)
	}
	field := (addr & 0x0FFFFFFF) >> 2
	word := isa.Field(j.Op, 26, 6) | isa.Field(field, 0, 26)
	return encodeWordLE(word), nil
}

// Literal is a raw byte sequence: directive data or branch-shadow padding.
type Literal struct {
	Data []byte
}

func (l Literal) Len() uint32 { return uint32(len(l.Data)) }

func (l Literal) Encode(_ *label.Table, _ uint32) ([]byte, error) {
	return l.Data, nil
}

func encodeWordLE(word uint32) []byte {
	return []byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}
}

// Shadow returns the two zero-word shadow instructions placed after every
// branch or jump so the pipeline's fetched-but-discarded delay slots have
// somewhere harmless to fetch from.
func Shadow() []Instruction {
	return []Instruction{
		Literal{Data: []byte{0, 0, 0, 0}},
		Literal{Data: []byte{0, 0, 0, 0}},
	}
}
