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

package assemble

import (
	"testing"

	"github.com/rcornwell/mipssim/internal/label"
)

func TestAssembleWordDirectiveRoundTrip(t *testing.T) {
	prog, err := Assemble(".data\n.word 1, 2, 3\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i, want := range []uint32{1, 2, 3} {
		got, err := prog.Memory.ReadWord(label.DataBase + uint32(i*4))
		if err != nil {
			t.Fatalf("ReadWord: %v", err)
		}
		if got != want {
			t.Errorf("word %d = %d, want %d", i, got, want)
		}
	}
}

func TestAssembleEntryIsTextBase(t *testing.T) {
	prog, err := Assemble("add $t0, $t1, $t2\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if prog.Entry != label.TextBase {
		t.Errorf("Entry = %#x, want %#x", prog.Entry, label.TextBase)
	}
}

func TestAssembleGuardWordAfterText(t *testing.T) {
	prog, err := Assemble("add $t0, $t1, $t2\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got, err := prog.Memory.ReadWord(label.TextBase + 4)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if got != label.GuardWord {
		t.Errorf("guard word = %#x, want %#x", got, label.GuardWord)
	}
}

func TestAssembleLabelResolvesForwardBranch(t *testing.T) {
	prog, err := Assemble("beq $t0, $t0, done\nadd $t1, $t1, $t1\ndone:\nnop\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	addr, ok := prog.Labels.Lookup("done")
	if !ok {
		t.Fatal("label done not defined")
	}
	// beq + 2 shadow words = 12 bytes, then the unreachable add is 4 bytes.
	want := label.TextBase + 12 + 4
	if addr != want {
		t.Errorf("done = %#x, want %#x", addr, want)
	}
}

func TestAssembleDuplicateLabelErrors(t *testing.T) {
	_, err := Assemble("foo:\nnop\nfoo:\nnop\n")
	if err == nil {
		t.Fatal("expected error for duplicate label")
	}
}

func TestAssembleUndefinedLabelErrors(t *testing.T) {
	_, err := Assemble("beq $t0, $t0, nowhere\n")
	if err == nil {
		t.Fatal("expected error for undefined label")
	}
}

func TestAssembleParseErrorPropagates(t *testing.T) {
	_, err := Assemble("frobnicate $t0\n")
	if err == nil {
		t.Fatal("expected parse error to propagate")
	}
}

func TestAssembleTextAndDataInterleave(t *testing.T) {
	src := ".text\nadd $t0, $t1, $t2\n.data\n.word 99\n.text\nsub $t0, $t1, $t2\n"
	prog, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, err := prog.Memory.ReadWord(label.DataBase)
	if err != nil {
		t.Fatalf("ReadWord data: %v", err)
	}
	if word != 99 {
		t.Errorf("data word = %d, want 99", word)
	}
	// second .text block resumes the text cursor at +4, not back at TextBase.
	second, err := prog.Memory.ReadWord(label.TextBase + 4)
	if err != nil {
		t.Fatalf("ReadWord text: %v", err)
	}
	if second == 0 {
		t.Errorf("second text instruction not written past the first")
	}
}
