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

package disassemble_test

import (
	"strings"
	"testing"

	"github.com/rcornwell/mipssim/internal/assemble"
	"github.com/rcornwell/mipssim/internal/disassemble"
)

func encodeFirst(t *testing.T, text string) uint32 {
	t.Helper()
	prog, err := assemble.Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, err := prog.Memory.ReadWord(prog.Entry)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	return word
}

func TestDisassembleRecoversMnemonic(t *testing.T) {
	cases := []string{
		"add $t0, $t1, $t2",
		"sub $t0, $t1, $t2",
		"and $t0, $t1, $t2",
		"or $t0, $t1, $t2",
		"xor $t0, $t1, $t2",
		"nor $t0, $t1, $t2",
		"slt $t0, $t1, $t2",
		"sll $t0, $t1, 4",
		"srl $t0, $t1, 4",
		"sra $t0, $t1, 4",
		"srlv $t0, $t1, $t2",
		"jr $ra",
		"syscall",
		"div $t0, $t1",
		"divu $t0, $t1",
		"addi $t0, $t1, 5",
		"addiu $t0, $t1, 5",
		"andi $t0, $t1, 5",
		"ori $t0, $t1, 5",
		"lui $t0, 5",
		"lw $t0, 4($t1)",
		"sw $t0, 4($t1)",
	}
	for _, src := range cases {
		word := encodeFirst(t, src)
		text, n := disassemble.Disassemble(word)
		if n != 4 {
			t.Errorf("%q: length = %d, want 4", src, n)
		}
		mnemonic := strings.Fields(src)[0]
		if !strings.HasPrefix(text, mnemonic) {
			t.Errorf("Disassemble(%q) = %q, want prefix %q", src, text, mnemonic)
		}
	}
}

func TestDisassembleBranchRoundTrip(t *testing.T) {
	word := encodeFirst(t, "beq $t0, $t1, 0")
	text, _ := disassemble.Disassemble(word)
	if !strings.HasPrefix(text, "beq $t0, $t1") {
		t.Errorf("got %q", text)
	}

	word = encodeFirst(t, "bne $t0, $t1, 0")
	text, _ = disassemble.Disassemble(word)
	if !strings.HasPrefix(text, "bne $t0, $t1") {
		t.Errorf("got %q", text)
	}
}

func TestDisassembleJumpRoundTrip(t *testing.T) {
	word := encodeFirst(t, "j 0x400100")
	text, _ := disassemble.Disassemble(word)
	if !strings.HasPrefix(text, "j 0x") {
		t.Errorf("got %q", text)
	}
}

func TestDisassembleShadowWord(t *testing.T) {
	text, n := disassemble.Disassemble(0)
	if text != ".word 0" || n != 4 {
		t.Errorf("got (%q, %d), want (\".word 0\", 4)", text, n)
	}
}

func TestDisassembleUndefinedOpcode(t *testing.T) {
	text, n := disassemble.Disassemble(0xfc000000)
	if n != 4 {
		t.Errorf("length = %d, want 4", n)
	}
	if !strings.HasPrefix(text, ".word") {
		t.Errorf("got %q, want a .word fallback", text)
	}
}
