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

import "github.com/rcornwell/mipssim/internal/register"

// Forward is the forwarding unit built fresh each cycle from the EX/MEM and
// MEM/WB latches. ex_mem wins over mem_wb when both forward the same
// register (the newer result).
type Forward struct {
	exMemValid bool
	exMemReg   register.Register
	exMemVal   uint32
	memWbValid bool
	memWbReg   register.Register
	memWbVal   uint32
}

// NewForward builds the unit from the EX/MEM register (holding the result
// of the instruction currently in the Memory stage) and the MEM/WB register
// (holding the result of the instruction currently committing in
// Writeback) — the same two latch values Memory and Writeback themselves
// consume this cycle, not anything recomputed by them.
func NewForward(exMem ExMem, memWb MemWb) Forward {
	selected := memWb.AluData
	if memWb.MemToReg {
		selected = memWb.MemData
	}
	return Forward{
		exMemValid: exMem.RegWrite && exMem.WriteRegister != register.Zero,
		exMemReg:   exMem.WriteRegister,
		exMemVal:   exMem.AluResult,
		memWbValid: memWb.RegWrite && memWb.WriteRegister != register.Zero,
		memWbReg:   memWb.WriteRegister,
		memWbVal:   selected,
	}
}

// Resolve returns the forwarded value for reg if either producer supplies
// it, preferring ex_mem, otherwise the register file's raw value.
func (f Forward) Resolve(reg register.Register, raw uint32) uint32 {
	if f.exMemValid && f.exMemReg == reg {
		return f.exMemVal
	}
	if f.memWbValid && f.memWbReg == reg {
		return f.memWbVal
	}
	return raw
}
