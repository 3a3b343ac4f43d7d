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

	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/memory"
	"github.com/rcornwell/mipssim/internal/register"
)

// CPU bundles everything one Cycle touches: the latches, the registers, the
// HI/LO pair div/divu writes, and the PC. It has no behavior of its own —
// the machine façade owns lifecycle (reset, flash, pending-syscall parking)
// around it.
type CPU struct {
	PC      uint32
	Regs    *register.File
	Mem     *memory.Memory
	Labels  *label.Table
	Latches Latches
	HiLo    HiLo
}

// NewCPU returns a CPU wired to the given memory and label table, with all
// latches at their bubble value and PC at 0 (callers normally set PC via a
// reset before the first Cycle).
func NewCPU(mem *memory.Memory, labels *label.Table, regs *register.File) *CPU {
	return &CPU{Mem: mem, Labels: labels, Regs: regs, Latches: NewLatches()}
}

// Cycle advances the pipeline by exactly one cycle, in reverse-of-dataflow
// order, unless a stall or the caller-supplied syscallParked flag overrides
// it. When syscallParked is true the cycle is a complete no-op: the driver
// must not advance any stage while a trap is waiting on resolve_input. The
// returned bool reports whether this cycle's Writeback reached a syscall
// instruction (PipeOut.Syscall); the caller is responsible for dispatching
// it and, if it parks, passing syscallParked=true on the next call.
func (c *CPU) Cycle(syscallParked bool) (bool, error) {
	if syscallParked {
		return false, nil
	}

	// Snapshot the latches Writeback/Memory are about to consume: the
	// forwarding unit must see the same producer values those two stages
	// see, not whatever Memory computes later in this same cycle.
	oldExMem := c.Latches.ExMem
	oldMemWb := c.Latches.MemWb

	// 1. Writeback: MemWb -> PipeOut.
	c.Latches.PipeOut = Writeback(c.Regs, &c.HiLo, oldMemWb)

	// 2. Memory: ExMem -> new MemWb. May update c.PC on a taken branch/jump.
	newMemWb, err := MemoryStage(&c.PC, c.Mem, oldExMem)
	if err != nil {
		return c.Latches.PipeOut.Syscall, fmt.Errorf("cycle: %w", err)
	}

	// 3. Execute: IdEx -> new ExMem, forwarding built from the ExMem/MemWb
	// latches as they stood at the start of this cycle (the EX/MEM result
	// one stage ahead, and the MEM/WB result committing this very cycle).
	fwd := NewForward(oldExMem, oldMemWb)
	newExMem := Execute(c.Latches.IdEx, fwd)
	c.Latches.ExMem = newExMem
	c.Latches.MemWb = newMemWb

	// 4. Syscall-shadow stall: while a syscall sits in EX/MEM or MEM/WB, or
	// has just reached Writeback, latch a bubble into IdEx and hold IfId and
	// PC, so nothing behind the trap decodes until it has been dispatched.
	if newExMem.Syscall || newMemWb.Syscall || c.Latches.PipeOut.Syscall {
		c.Latches.IdEx = DefaultIdEx()
		return c.Latches.PipeOut.Syscall, nil
	}

	// 5. Decode: IfId -> new IdEx.
	prevIdEx := c.Latches.IdEx
	newIdEx := Decode(c.Regs, c.Latches.IfId)

	// 6. Load-use hazard: one bubble, PC and IfId held.
	if prevIdEx.MemRead &&
		(prevIdEx.Rt == newIdEx.Rs || prevIdEx.Rt == newIdEx.Rt) {
		c.Latches.IdEx = DefaultIdEx()
		return c.Latches.PipeOut.Syscall, nil
	}
	c.Latches.IdEx = newIdEx

	// 7. Fetch: PC/memory -> new IfId, PC += 4.
	newIfId, newPC, err := Fetch(c.PC, c.Mem, c.Labels)
	if err != nil {
		return c.Latches.PipeOut.Syscall, fmt.Errorf("cycle: %w", err)
	}
	c.Latches.IfId = newIfId
	c.PC = newPC

	return c.Latches.PipeOut.Syscall, nil
}

// CurrentLine reports the source line associated with the instruction
// furthest along the pipeline that still carries one, or ok=false if every
// latch is a bubble.
func (c *CPU) CurrentLine() (int, bool) {
	for _, line := range []int{
		c.Latches.PipeOut.Line,
		c.Latches.MemWb.Line,
		c.Latches.ExMem.Line,
		c.Latches.IdEx.Line,
		c.Latches.IfId.Line,
	} {
		if line != noLine {
			return line, true
		}
	}
	return 0, false
}
