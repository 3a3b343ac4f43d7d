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

package trap

import (
	"testing"

	"github.com/rcornwell/mipssim/internal/memory"
	"github.com/rcornwell/mipssim/internal/register"
)

func TestDispatchPrintInt(t *testing.T) {
	regs := register.New()
	regs.Write(register.V0, 1)
	neg := int32(-42)
	regs.Write(register.A0, uint32(neg))
	sc, err := Dispatch(regs, memory.New())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sc.Kind != Print || sc.Text != "-42" {
		t.Errorf("got %+v, want Print(-42)", sc)
	}
}

func TestDispatchPrintString(t *testing.T) {
	regs := register.New()
	mem := memory.New()
	addr := uint32(0x10010000)
	for i, c := range []byte("hi\x00") {
		mem.WriteByte(addr+uint32(i), c)
	}
	regs.Write(register.V0, 4)
	regs.Write(register.A0, addr)
	sc, err := Dispatch(regs, mem)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sc.Kind != Print || sc.Text != "hi" {
		t.Errorf("got %+v, want Print(hi)", sc)
	}
}

func TestDispatchReadInt(t *testing.T) {
	regs := register.New()
	regs.Write(register.V0, 5)
	sc, err := Dispatch(regs, memory.New())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sc.Kind != ReadInt {
		t.Errorf("got %+v, want ReadInt", sc)
	}
}

func TestDispatchQuit(t *testing.T) {
	regs := register.New()
	regs.Write(register.V0, 10)
	sc, err := Dispatch(regs, memory.New())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sc.Kind != Quit {
		t.Errorf("got %+v, want Quit", sc)
	}
}

func TestDispatchUnrecognized(t *testing.T) {
	regs := register.New()
	regs.Write(register.V0, 99)
	_, err := Dispatch(regs, memory.New())
	if err == nil {
		t.Fatal("expected error for unrecognized syscall")
	}
}

func TestResolveInputWritesV0(t *testing.T) {
	regs := register.New()
	if err := ResolveInput(regs, "-7\n"); err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	if got := int32(regs.Read(register.V0)); got != -7 {
		t.Errorf("v0 = %d, want -7", got)
	}
}

func TestResolveInputRejectsGarbage(t *testing.T) {
	regs := register.New()
	if err := ResolveInput(regs, "not a number"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}
