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

// Package machine is the façade the REPL and the live dashboard drive: it
// owns the pipeline, the pending syscall (if any), and the load/reset
// lifecycle around both.
package machine

import (
	"fmt"

	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/memory"
	"github.com/rcornwell/mipssim/internal/pipeline"
	"github.com/rcornwell/mipssim/internal/register"
	"github.com/rcornwell/mipssim/internal/trap"
)

// Machine is the top-level simulator: a pipeline plus whatever syscall it
// last parked, waiting to be drained (and, for read_int, resolved).
type Machine struct {
	cpu     *pipeline.CPU
	pending *trap.Syscall
}

// New returns a machine with empty memory and no program loaded. Flash and
// Reset must run before the first Cycle.
func New() *Machine {
	mem := memory.New()
	labels := label.New()
	regs := register.New()
	return &Machine{cpu: pipeline.NewCPU(mem, labels, regs)}
}

// PC returns the program counter Fetch will use next cycle.
func (m *Machine) PC() uint32 {
	return m.cpu.PC
}

// Register reads one general-purpose register.
func (m *Machine) Register(r register.Register) uint32 {
	return m.cpu.Regs.Read(r)
}

// SetRegister writes one general-purpose register (writes to $zero are
// silently discarded by the register file, matching the ISA).
func (m *Machine) SetRegister(r register.Register, v uint32) {
	m.cpu.Regs.Write(r, v)
}

// ReadWord and WriteWord expose raw memory access for inspection and for the
// load command's prior contents to be overwritten cleanly.
func (m *Machine) ReadWord(addr uint32) (uint32, error) {
	return m.cpu.Mem.ReadWord(addr)
}

func (m *Machine) WriteWord(addr uint32, v uint32) error {
	return m.cpu.Mem.WriteWord(addr, v)
}

// Flash installs a freshly assembled program's memory image and label
// table. It does not itself reset registers or the PC — callers load then
// reset, matching the REPL's separate load/reset commands.
func (m *Machine) Flash(mem *memory.Memory, labels *label.Table) {
	m.cpu.Mem = mem
	m.cpu.Labels = labels
}

// Reset returns PC to the text segment base, clears every latch and the
// HI/LO pair, zeros the registers (re-seeding $sp), and drops any pending
// syscall. Memory and the label table, and therefore the loaded program,
// are untouched.
func (m *Machine) Reset() {
	m.cpu.PC = label.TextBase
	m.cpu.Latches = pipeline.NewLatches()
	m.cpu.Regs.Reset()
	m.cpu.HiLo = pipeline.HiLo{}
	m.pending = nil
}

// HardReset discards memory and the label table as well, as if no program
// had ever been flashed.
func (m *Machine) HardReset() {
	m.cpu.Mem.Reset()
	m.cpu.Labels = label.New()
	m.Reset()
}

// Cycle advances the pipeline by one cycle. While a syscall is parked it is
// a no-op returning nil: the driver must call HandleSyscall (and, for
// read_int, ResolveInput) before the pipeline can move again. A stage fault
// is itself parked as a Kind: Error syscall, so a collaborator's single
// drain loop renders faults the same way it renders normal output, and is
// also returned directly so a caller that only checks the error return
// still observes it.
func (m *Machine) Cycle() error {
	if m.pending != nil {
		return nil
	}

	hit, err := m.cpu.Cycle(false)
	if err != nil {
		m.pending = &trap.Syscall{Kind: trap.Error, Text: err.Error()}
		return err
	}
	if hit {
		sc, derr := trap.Dispatch(m.cpu.Regs, m.cpu.Mem)
		if derr != nil {
			m.pending = &trap.Syscall{Kind: trap.Error, Text: derr.Error()}
			return derr
		}
		m.pending = &sc
	}
	return nil
}

// PendingSyscall reports whether a trap is parked awaiting HandleSyscall.
func (m *Machine) PendingSyscall() bool {
	return m.pending != nil
}

// HandleSyscall drains the pending syscall, if any, to visit. Every kind
// except ReadInt clears the park immediately; ReadInt stays parked until
// ResolveInput supplies the register value it's waiting on. Reports whether
// there was anything to drain.
func (m *Machine) HandleSyscall(visit func(trap.Syscall)) bool {
	if m.pending == nil {
		return false
	}
	visit(*m.pending)
	if m.pending.Kind != trap.ReadInt {
		m.pending = nil
	}
	return true
}

// ResolveInput completes a parked read_int with a line of collaborator
// input, writing the parsed value to $v0 and unparking the pipeline.
func (m *Machine) ResolveInput(text string) error {
	if m.pending == nil || m.pending.Kind != trap.ReadInt {
		return fmt.Errorf("resolve input: no read_int pending")
	}
	if err := trap.ResolveInput(m.cpu.Regs, text); err != nil {
		return err
	}
	m.pending = nil
	return nil
}

// StackWord is one word of the call stack, reported with its address.
type StackWord struct {
	Addr uint32
	Word uint32
}

// Stack returns every word from $sp up to the stack base, highest address
// first, for a REPL "stack" command to print top-down the way a debugger
// would.
func (m *Machine) Stack() ([]StackWord, error) {
	sp := m.cpu.Regs.Read(register.SP)
	var out []StackWord
	for addr := label.StackBase; addr >= sp; addr -= 4 {
		w, err := m.cpu.Mem.ReadWord(addr)
		if err != nil {
			return nil, err
		}
		out = append(out, StackWord{Addr: addr, Word: w})
		if addr < 4 {
			break
		}
	}
	return out, nil
}

// Pipeline exposes the raw latch snapshot for the dashboard's 5-stage view.
func (m *Machine) Pipeline() pipeline.Latches {
	return m.cpu.Latches
}

// HiLo exposes the div/divu result pair.
func (m *Machine) HiLo() pipeline.HiLo {
	return m.cpu.HiLo
}

// StageLine is one pipeline stage's source-line association.
type StageLine struct {
	Line int
	Ok   bool
}

// CurrentLine reports, for each of the five stages (Fetch, Decode, Execute,
// Memory, Writeback in that order), the source line of the instruction
// currently occupying it, if any.
func (m *Machine) CurrentLine() [5]StageLine {
	l := m.cpu.Latches
	return [5]StageLine{
		{Line: l.IfId.Line, Ok: l.IfId.Line != pipeline.NoLine},
		{Line: l.IdEx.Line, Ok: l.IdEx.Line != pipeline.NoLine},
		{Line: l.ExMem.Line, Ok: l.ExMem.Line != pipeline.NoLine},
		{Line: l.MemWb.Line, Ok: l.MemWb.Line != pipeline.NoLine},
		{Line: l.PipeOut.Line, Ok: l.PipeOut.Line != pipeline.NoLine},
	}
}
