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

// Package parser implements the REPL's command grammar: a minimum-unique-
// prefix command table driven by a line cursor, the same shape as the
// teacher's device command parser, trimmed to the dozen verbs a pipeline
// debugger needs instead of S/370's attach/detach/set device surface.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/mipssim/internal/assemble"
	"github.com/rcornwell/mipssim/internal/disassemble"
	"github.com/rcornwell/mipssim/internal/register"
	"github.com/rcornwell/mipssim/internal/trap"
	"github.com/rcornwell/mipssim/machine"
	"github.com/rcornwell/mipssim/util/console"
	"github.com/rcornwell/mipssim/util/hex"
)

type cmd struct {
	name     string
	min      int
	process  func(*cmdLine, *machine.Machine) (bool, error)
	complete func(*cmdLine) []string
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "load", min: 1, process: load},
	{name: "reset", min: 2, process: reset},
	{name: "hreset", min: 2, process: hreset},
	{name: "run", min: 1, process: run},
	{name: "step", min: 2, process: step},
	{name: "reg", min: 3, process: showReg},
	{name: "mem", min: 2, process: showMem},
	{name: "stack", min: 2, process: showStack},
	{name: "pipeline", min: 1, process: showPipeline},
	{name: "break", min: 3, process: setBreak},
	{name: "input", min: 2, process: input},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand runs one REPL command line against m, reporting whether
// the REPL should exit.
func ProcessCommand(commandLine string, m *machine.Machine) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, m)
}

// CompleteCmd drives tab completion during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() && line.line[line.pos] == ' ' {
		line.skipSpace()
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&line)
	}

	match := matchList(name)
	names := make([]string, len(match))
	for i, c := range match {
		names[i] = c.name
	}
	return names
}

func matchCommand(c cmd, name string) bool {
	if len(name) > len(c.name) {
		return false
	}
	for i := range name {
		if c.name[i] != name[i] {
			return false
		}
	}
	return len(name) >= c.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			match = append(match, c)
		}
	}
	return match
}

func (l *cmdLine) skipSpace() {
	for l.pos < len(l.line) && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

func (l *cmdLine) isEOL() bool {
	if l.pos >= len(l.line) {
		return true
	}
	return l.line[l.pos] == '#'
}

// getWord reads the next whitespace-delimited token, lower-cased.
func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

// rest returns everything left on the line, trimmed, before a trailing
// comment.
func (l *cmdLine) rest() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() {
		l.pos++
	}
	return strings.TrimSpace(l.line[start:l.pos])
}

func parseAddr(tok string) (uint32, error) {
	tok = strings.TrimSpace(tok)
	if v, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 32); err == nil {
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %q", tok)
	}
	return uint32(v), nil
}

// load reads and assembles a source file, flashing and resetting the
// machine with the result.
func load(line *cmdLine, m *machine.Machine) (bool, error) {
	path := line.rest()
	if path == "" {
		return false, errors.New("load requires a file path")
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	prog, err := assemble.Assemble(string(text))
	if err != nil {
		return false, err
	}
	m.Flash(prog.Memory, prog.Labels)
	m.Reset()
	fmt.Printf("loaded %s, entry %#08x\n", path, prog.Entry)
	return false, nil
}

func reset(_ *cmdLine, m *machine.Machine) (bool, error) {
	m.Reset()
	fmt.Println("reset")
	return false, nil
}

func hreset(_ *cmdLine, m *machine.Machine) (bool, error) {
	m.HardReset()
	fmt.Println("hard reset")
	return false, nil
}

// step advances the pipeline one cycle at a time, draining and printing any
// syscall it encounters along the way, for the given cycle count (default
// 1).
func step(line *cmdLine, m *machine.Machine) (bool, error) {
	n := 1
	if tok := line.getWord(); tok != "" {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return false, fmt.Errorf("invalid cycle count: %q", tok)
		}
		n = v
	}
	for range n {
		if err := cycleOnce(m); err != nil {
			return false, err
		}
	}
	return false, nil
}

// run drives the pipeline until a breakpoint, a quit syscall, or a read_int
// syscall parks it waiting for input.
func run(_ *cmdLine, m *machine.Machine) (bool, error) {
	for {
		if m.PendingSyscall() {
			if drainOne(m) {
				return false, nil
			}
			continue
		}
		if hitBreak(m) {
			fmt.Println("breakpoint hit")
			return false, nil
		}
		if err := m.Cycle(); err != nil {
			return false, err
		}
	}
}

var breakpoints = map[uint32]bool{}

func hitBreak(m *machine.Machine) bool {
	return breakpoints[m.PC()]
}

func setBreak(line *cmdLine, _ *machine.Machine) (bool, error) {
	tok := line.rest()
	if tok == "" {
		return false, errors.New("break requires an address")
	}
	addr, err := parseAddr(tok)
	if err != nil {
		return false, err
	}
	breakpoints[addr] = true
	fmt.Printf("breakpoint set at %#08x\n", addr)
	return false, nil
}

// cycleOnce advances one cycle and drains/reports any syscall it raises,
// without consuming further cycles for read_int (the REPL's "input"
// command supplies that separately).
func cycleOnce(m *machine.Machine) error {
	if m.PendingSyscall() {
		drainOne(m)
		return nil
	}
	if err := m.Cycle(); err != nil {
		return err
	}
	if m.PendingSyscall() {
		drainOne(m)
	}
	return nil
}

// drainOne drains exactly one pending syscall, printing it, and reports
// whether the REPL should stop running (exit or awaiting input).
func drainOne(m *machine.Machine) bool {
	stop := false
	m.HandleSyscall(func(sc trap.Syscall) {
		switch sc.Kind {
		case trap.Quit:
			fmt.Println("program exited")
			stop = true
		case trap.ReadInt:
			fmt.Print("? ")
			stop = true
		default:
			fmt.Println(console.Render(sc))
		}
	})
	return stop
}

// input supplies a line of text to a parked read_int syscall.
func input(line *cmdLine, m *machine.Machine) (bool, error) {
	text := line.rest()
	if err := m.ResolveInput(text); err != nil {
		return false, err
	}
	return false, nil
}

func quit(_ *cmdLine, _ *machine.Machine) (bool, error) {
	return true, nil
}

func showReg(line *cmdLine, m *machine.Machine) (bool, error) {
	tok := line.getWord()
	if tok == "" {
		for r := register.Zero; r <= register.RA; r++ {
			fmt.Printf("%-4s %#08x\n", r.String(), m.Register(r))
		}
		return false, nil
	}
	r, err := register.Parse(tok)
	if err != nil {
		return false, err
	}
	fmt.Printf("%-4s %#08x\n", r.String(), m.Register(r))
	return false, nil
}

func showMem(line *cmdLine, m *machine.Machine) (bool, error) {
	addrTok := line.getWord()
	addr, err := parseAddr(addrTok)
	if err != nil {
		return false, err
	}
	n := 1
	if tok := line.getWord(); tok != "" {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return false, fmt.Errorf("invalid word count: %q", tok)
		}
		n = v
	}
	var b strings.Builder
	for range n {
		word, err := m.ReadWord(addr)
		if err != nil {
			return false, err
		}
		fmt.Printf("%#08x: ", addr)
		b.Reset()
		hex.FormatWord(&b, []uint32{word})
		text, _ := disassemble.Disassemble(word)
		fmt.Printf("%s  %s\n", strings.TrimSpace(b.String()), text)
		addr += 4
	}
	return false, nil
}

func showStack(_ *cmdLine, m *machine.Machine) (bool, error) {
	stack, err := m.Stack()
	if err != nil {
		return false, err
	}
	for _, w := range stack {
		var b strings.Builder
		hex.FormatWord(&b, []uint32{w.Word})
		fmt.Printf("%#08x: %s\n", w.Addr, strings.TrimSpace(b.String()))
	}
	return false, nil
}

func showPipeline(_ *cmdLine, m *machine.Machine) (bool, error) {
	latches := m.Pipeline()
	fmt.Printf("IF/ID  pc=%#08x line=%d\n", latches.IfId.PC, latches.IfId.Line)
	fmt.Printf("ID/EX  line=%d\n", latches.IdEx.Line)
	fmt.Printf("EX/MEM line=%d\n", latches.ExMem.Line)
	fmt.Printf("MEM/WB line=%d\n", latches.MemWb.Line)
	fmt.Printf("WB     line=%d syscall=%v\n", latches.PipeOut.Line, latches.PipeOut.Syscall)
	return false, nil
}
