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

// Package trap maps the $v0 syscall service numbers Writeback dispatches on
// to their console/register effects.
package trap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rcornwell/mipssim/internal/memory"
	"github.com/rcornwell/mipssim/internal/register"
)

// Kind tags which effect a Syscall carries.
type Kind int

const (
	Print Kind = iota
	Error
	Quit
	ReadInt
)

// Syscall is the captured effect of a trap, parked by the pipeline driver
// until the collaborator drains it (and, for ReadInt, supplies input).
type Syscall struct {
	Kind Kind
	Text string
}

// Dispatch reads $v0 and performs the corresponding service. ReadInt returns
// immediately with no Text; the caller must park it and later call
// ResolveInput once the collaborator supplies a line of text.
func Dispatch(regs *register.File, mem *memory.Memory) (Syscall, error) {
	switch v0 := regs.Read(register.V0); v0 {
	case 1: // print_int
		return Syscall{Kind: Print, Text: strconv.FormatInt(int64(int32(regs.Read(register.A0))), 10)}, nil

	case 4: // print_string
		return Syscall{Kind: Print, Text: readCString(mem, regs.Read(register.A0))}, nil

	case 5: // read_int
		return Syscall{Kind: ReadInt}, nil

	case 10: // exit
		return Syscall{Kind: Quit}, nil

	case 11: // print_char
		r := rune(regs.Read(register.A0))
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		return Syscall{Kind: Print, Text: string(r)}, nil

	case 34: // print_hex
		return Syscall{Kind: Print, Text: fmt.Sprintf("%x", regs.Read(register.A0))}, nil

	case 35: // print_bin
		return Syscall{Kind: Print, Text: strconv.FormatUint(uint64(regs.Read(register.A0)), 2)}, nil

	case 36: // print_uint
		return Syscall{Kind: Print, Text: strconv.FormatUint(uint64(regs.Read(register.A0)), 10)}, nil

	default:
		return Syscall{}, fmt.Errorf("unrecognized syscall: %d", v0)
	}
}

func readCString(mem *memory.Memory, addr uint32) string {
	var b strings.Builder
	for {
		c := mem.ReadByte(addr)
		if c == 0 {
			break
		}
		b.WriteByte(c)
		addr++
	}
	return b.String()
}

// ResolveInput parses text as a decimal i32 and writes it to $v0, completing
// a parked read_int.
func ResolveInput(regs *register.File, text string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid integer input %q: %w", text, err)
	}
	regs.Write(register.V0, uint32(int32(v)))
	return nil
}
