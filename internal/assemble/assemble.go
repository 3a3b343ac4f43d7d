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

// Package assemble drives the two-pass assembler: pass one walks the parsed
// program to bind every label to its eventual address, pass two re-walks it
// to encode and flash each instruction now that every label resolves.
package assemble

import (
	"fmt"

	"github.com/rcornwell/mipssim/internal/label"
	"github.com/rcornwell/mipssim/internal/memory"
	"github.com/rcornwell/mipssim/internal/parser"
)

// Program is the flashable result of assembling a source text: its memory
// image, the symbol table (kept for REPL introspection and disassembly),
// and the source-line index used to highlight the currently executing line.
type Program struct {
	Memory *memory.Memory
	Labels *label.Table
	Entry  uint32
}

// Assemble parses text and lays it out into a fresh memory image. On any
// error the returned Program is nil; nothing partial is ever handed back.
func Assemble(text string) (*Program, error) {
	lines, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}

	labels := label.New()
	cursors := label.NewCursors()
	for _, ln := range lines {
		switch ln.Kind {
		case parser.LineSegment:
			cursors.Switch(ln.Segment)
		case parser.LineLabel:
			if _, dup := labels.Lookup(ln.Label); dup {
				return nil, fmt.Errorf("line %d: label redefined: %s", ln.Source+1, ln.Label)
			}
			labels.Define(ln.Label, cursors.PC())
		case parser.LineInstruction:
			labels.Record(ln.Source, cursors.PC())
			for _, inst := range ln.Instructions {
				cursors.Advance(inst.Len())
			}
		}
	}

	mem := memory.New()
	cursors = label.NewCursors()
	for _, ln := range lines {
		switch ln.Kind {
		case parser.LineSegment:
			cursors.Switch(ln.Segment)
		case parser.LineInstruction:
			for _, inst := range ln.Instructions {
				pc := cursors.PC()
				data, err := inst.Encode(labels, pc)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", ln.Source+1, err)
				}
				for i, b := range data {
					mem.WriteByte(pc+uint32(i), b)
				}
				cursors.Advance(inst.Len())
			}
		}
	}

	cursors.Switch(label.Text)
	textEnd := cursors.PC()
	if err := mem.WriteWord(textEnd, label.GuardWord); err != nil {
		return nil, fmt.Errorf("writing guard word: %w", err)
	}

	return &Program{Memory: mem, Labels: labels, Entry: label.TextBase}, nil
}
