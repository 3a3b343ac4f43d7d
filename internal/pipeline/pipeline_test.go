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

package pipeline_test

import (
	"testing"

	"github.com/rcornwell/mipssim/internal/assemble"
	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/pipeline"
	"github.com/rcornwell/mipssim/internal/register"
)

// run assembles text, drives n cycles, and returns the CPU for inspection.
func run(t *testing.T, text string, n int) *pipeline.CPU {
	t.Helper()
	prog, err := assemble.Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	regs := register.New()
	cpu := pipeline.NewCPU(prog.Memory, prog.Labels, regs)
	cpu.PC = prog.Entry
	for i := 0; i < n; i++ {
		if _, err := cpu.Cycle(false); err != nil {
			t.Fatalf("Cycle %d: %v", i, err)
		}
	}
	return cpu
}

func TestScenarioArithmeticAndStore(t *testing.T) {
	cpu := run(t, `
		addi $t0, $zero, 16
		addi $t1, $zero, 4
		add  $t2, $t0, $t1
		sw   $t2, 0($t0)
	`, 9)

	if v := cpu.Regs.Read(register.T0); v != 16 {
		t.Errorf("t0 = %d, want 16", v)
	}
	if v := cpu.Regs.Read(register.T1); v != 4 {
		t.Errorf("t1 = %d, want 4", v)
	}
	if v := cpu.Regs.Read(register.T2); v != 20 {
		t.Errorf("t2 = %d, want 20", v)
	}
	word, err := cpu.Mem.ReadWord(16)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}
	if word != 20 {
		t.Errorf("mem[16] = %d, want 20", word)
	}
}

func TestScenarioBeqSkip(t *testing.T) {
	cpu := run(t, `
		addi $t0, $zero, 5
		beq  $zero, $zero, L
		addi $t0, $zero, 2
	L:	addi $t0, $zero, 3
	`, 10)

	if v := cpu.Regs.Read(register.T0); v != 3 {
		t.Errorf("t0 = %d, want 3", v)
	}
}

func TestScenarioSlt(t *testing.T) {
	cpu := run(t, `
		addi $t0, $zero, 3
		addi $t1, $zero, 2
		slt  $t2, $t1, $t0
	`, 7)
	if v := cpu.Regs.Read(register.T2); v != 1 {
		t.Errorf("t2 = %d, want 1", v)
	}

	cpu = run(t, `
		addi $t0, $zero, 3
		addi $t1, $zero, 2
		slt  $t2, $t0, $t1
	`, 7)
	if v := cpu.Regs.Read(register.T2); v != 0 {
		t.Errorf("t2 = %d, want 0", v)
	}
}

func TestScenarioPrintIntSyscall(t *testing.T) {
	prog, err := assemble.Assemble(`
		addi $a0, $zero, 42
		addi $v0, $zero, 1
		syscall
	`)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	regs := register.New()
	cpu := pipeline.NewCPU(prog.Memory, prog.Labels, regs)
	cpu.PC = prog.Entry

	var raised bool
	for i := 0; i < 8 && !raised; i++ {
		hit, err := cpu.Cycle(false)
		if err != nil {
			t.Fatalf("Cycle %d: %v", i, err)
		}
		raised = hit
	}
	if !raised {
		t.Fatal("syscall never reached Writeback")
	}
	if v := int32(cpu.Regs.Read(register.A0)); v != 42 {
		t.Errorf("a0 = %d, want 42", v)
	}
}

func TestScenarioLoadUseHazard(t *testing.T) {
	prog, err := assemble.Assemble(`
		lw   $t0, 0($sp)
		add  $t1, $t0, $t0
	`)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if err := prog.Memory.WriteWord(label.StackBase, 9); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}

	regs := register.New()
	regs.Write(register.SP, label.StackBase)
	cpu := pipeline.NewCPU(prog.Memory, prog.Labels, regs)
	cpu.PC = prog.Entry

	for i := 0; i < 8; i++ {
		if _, err := cpu.Cycle(false); err != nil {
			t.Fatalf("Cycle %d: %v", i, err)
		}
	}
	if v := cpu.Regs.Read(register.T0); v != 9 {
		t.Errorf("t0 = %d, want 9", v)
	}
	if v := cpu.Regs.Read(register.T1); v != 18 {
		t.Errorf("t1 = %d, want 18 (forwarded loaded value, not a stale one)", v)
	}
}

func TestCycleNoOpWhenSyscallParked(t *testing.T) {
	prog, err := assemble.Assemble(`addi $t0, $zero, 1`)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	regs := register.New()
	cpu := pipeline.NewCPU(prog.Memory, prog.Labels, regs)
	cpu.PC = prog.Entry
	before := cpu.PC

	hit, err := cpu.Cycle(true)
	if err != nil {
		t.Fatalf("Cycle: %v", err)
	}
	if hit {
		t.Error("parked cycle should never report a fresh syscall")
	}
	if cpu.PC != before {
		t.Errorf("PC advanced during a parked cycle: %#x -> %#x", before, cpu.PC)
	}
}

func TestCurrentLineReportsFurthestBubbleFreeLatch(t *testing.T) {
	cpu := run(t, `
		addi $t0, $zero, 1
		addi $t1, $zero, 2
	`, 1)
	if _, ok := cpu.CurrentLine(); !ok {
		t.Error("expected a current line after one cycle")
	}
}
