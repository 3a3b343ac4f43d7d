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
	"testing"

	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/register"
)

func TestParseBlankAndComment(t *testing.T) {
	lines, err := Parse("\n  # just a comment")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Kind != LineBlank {
		t.Errorf("line 0 kind = %v, want LineBlank", lines[0].Kind)
	}
	if lines[1].Kind != LineComment || lines[1].Comment != "just a comment" {
		t.Errorf("line 1 = %+v, want comment %q", lines[1], "just a comment")
	}
}

func TestParseSegmentSwitch(t *testing.T) {
	lines, err := Parse(".text\n.data\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lines[0].Kind != LineSegment || lines[0].Segment != label.Text {
		t.Errorf("line 0 = %+v, want .text segment", lines[0])
	}
	if lines[1].Kind != LineSegment || lines[1].Segment != label.Data {
		t.Errorf("line 1 = %+v, want .data segment", lines[1])
	}
}

func TestParseLabelAloneAndWithInstruction(t *testing.T) {
	lines, err := Parse("loop:\ndone: add $t0, $t1, $t2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %+v", len(lines), lines)
	}
	if lines[0].Kind != LineLabel || lines[0].Label != "loop" {
		t.Errorf("line 0 = %+v, want label loop", lines[0])
	}
	if lines[1].Kind != LineLabel || lines[1].Label != "done" {
		t.Errorf("line 1 = %+v, want label done", lines[1])
	}
	if lines[2].Kind != LineInstruction || len(lines[2].Instructions) != 1 {
		t.Errorf("line 2 = %+v, want one instruction", lines[2])
	}
}

func TestParseRTypeAndShiftAndJR(t *testing.T) {
	lines, err := Parse("add $t0, $t1, $t2\nsll $t0, $t1, 4\njr $ra")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, want := range []int{1, 1, 3} {
		if got := len(lines[i].Instructions); got != want {
			t.Errorf("line %d has %d instructions, want %d", i, got, want)
		}
	}
	r, ok := lines[0].Instructions[0].(RInstr)
	if !ok {
		t.Fatalf("line 0 instruction is %T, want RInstr", lines[0].Instructions[0])
	}
	if r.Rd != 8 || r.Rs != 9 || r.Rt != 10 {
		t.Errorf("add operands = %+v, want rd=$t0 rs=$t1 rt=$t2", r)
	}
}

func TestParseITypeArithAndMem(t *testing.T) {
	lines, err := Parse("addi $t0, $t1, -4\nlw $t0, 8($sp)\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	i0 := lines[0].Instructions[0].(IInstr)
	if i0.Rt != 8 || i0.Rs != 9 || i0.Imm.Value != -4 {
		t.Errorf("addi = %+v", i0)
	}
	i1 := lines[1].Instructions[0].(IInstr)
	if i1.Rt != 8 || i1.Rs != register.SP || i1.Imm.Value != 8 {
		t.Errorf("lw = %+v", i1)
	}
}

func TestParseBranchGetsShadowPadding(t *testing.T) {
	lines, err := Parse("beq $t0, $t1, done\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lines[0].Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3 (beq + 2 shadow words)", len(lines[0].Instructions))
	}
	if _, ok := lines[0].Instructions[1].(Literal); !ok {
		t.Errorf("instruction 1 = %T, want Literal shadow word", lines[0].Instructions[1])
	}
}

func TestParseJumpGetsShadowPadding(t *testing.T) {
	lines, err := Parse("j done\njal done")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, l := range lines {
		if len(l.Instructions) != 3 {
			t.Errorf("line %d has %d instructions, want 3", i, len(l.Instructions))
		}
	}
}

func TestParsePseudoNop(t *testing.T) {
	lines, err := Parse("nop\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := lines[0].Instructions[0].(Literal)
	if !ok || len(lit.Data) != 4 {
		t.Errorf("nop = %+v, want 4-byte zero Literal", lines[0].Instructions[0])
	}
}

func TestParsePseudoMove(t *testing.T) {
	lines, err := Parse("move $t0, $t1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r, ok := lines[0].Instructions[0].(RInstr)
	if !ok {
		t.Fatalf("move expanded to %T, want RInstr", lines[0].Instructions[0])
	}
	if r.Rd != 8 || r.Rs != 9 {
		t.Errorf("move = %+v, want rd=$t0 rs=$t1 (or $zero)", r)
	}
}

func TestParsePseudoLiSmallAndWide(t *testing.T) {
	lines, err := Parse("li $t0, 5\nli $t0, 0x12345678\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lines[0].Instructions) != 1 {
		t.Errorf("small li expanded to %d instructions, want 1", len(lines[0].Instructions))
	}
	if len(lines[1].Instructions) != 2 {
		t.Errorf("wide li expanded to %d instructions, want 2 (lui+ori)", len(lines[1].Instructions))
	}
}

func TestParsePseudoLa(t *testing.T) {
	lines, err := Parse("la $t0, msg\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lines[0].Instructions) != 2 {
		t.Fatalf("la expanded to %d instructions, want 2", len(lines[0].Instructions))
	}
	lui, ok := lines[0].Instructions[0].(IInstr)
	if !ok || lui.Imm.Kind != ImmHigh {
		t.Errorf("la first instruction = %+v, want lui with ImmHigh", lines[0].Instructions[0])
	}
}

func TestParsePseudoSignedBranches(t *testing.T) {
	for _, mnemonic := range []string{"blt", "bgt", "ble", "bge"} {
		lines, err := Parse(mnemonic + " $t0, $t1, done\n")
		if err != nil {
			t.Fatalf("Parse(%s): %v", mnemonic, err)
		}
		// slt + beq/bne + 2 shadow words.
		if len(lines[0].Instructions) != 4 {
			t.Errorf("%s expanded to %d instructions, want 4", mnemonic, len(lines[0].Instructions))
		}
		if _, ok := lines[0].Instructions[0].(RInstr); !ok {
			t.Errorf("%s first instruction = %T, want RInstr (slt)", mnemonic, lines[0].Instructions[0])
		}
	}
}

func TestParseDirectives(t *testing.T) {
	lines, err := Parse(".word 1, 2, 3\n.half 0x10\n.byte 5\n.ascii \"hi\"\n.asciiz \"yo\"\n.space 4\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	word := lines[0].Instructions[0].(Literal)
	if len(word.Data) != 12 {
		t.Errorf(".word data len = %d, want 12", len(word.Data))
	}
	asciiz := lines[4].Instructions[0].(Literal)
	if len(asciiz.Data) != 3 || asciiz.Data[2] != 0 {
		t.Errorf(".asciiz data = %v, want 3 bytes ending in NUL", asciiz.Data)
	}
	space := lines[5].Instructions[0].(Literal)
	if len(space.Data) != 4 {
		t.Errorf(".space data len = %d, want 4", len(space.Data))
	}
}

func TestParseUnknownMnemonic(t *testing.T) {
	_, err := Parse("frobnicate $t0, $t1\n")
	if err == nil {
		t.Fatal("expected error for unknown mnemonic")
	}
}

func TestParseUnknownRegister(t *testing.T) {
	_, err := Parse("add $t0, $bogus, $t2\n")
	if err == nil {
		t.Fatal("expected error for unknown register")
	}
}

func TestParseMalformedMemoryOperand(t *testing.T) {
	_, err := Parse("lw $t0, 4 $sp\n")
	if err == nil {
		t.Fatal("expected error for missing '(' in memory operand")
	}
}

func TestParseTrailingGarbageRejected(t *testing.T) {
	_, err := Parse("add $t0, $t1, $t2 extra\n")
	if err == nil {
		t.Fatal("expected error for trailing text after operands")
	}
}

func TestResolveImmPCRelative(t *testing.T) {
	labels := label.New()
	labels.Define("done", 0x1008)
	imm := Imm{Kind: ImmPCRelative, Label: "done"}
	got, err := imm.resolve(labels, 0x1000)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// target=0x1008, pc+4=0x1004, disp=(0x1008-0x1004)>>2=1
	if got != 1 {
		t.Errorf("disp = %d, want 1", got)
	}
}

func TestResolveUndefinedLabel(t *testing.T) {
	labels := label.New()
	imm := Imm{Kind: ImmLabel, Label: "nope"}
	if _, err := imm.resolve(labels, 0); err == nil {
		t.Fatal("expected error for undefined label")
	}
}
