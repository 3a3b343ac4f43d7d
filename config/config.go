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

// Package config reads the small startup file --config points at: a
// program to flash, and the registers and breakpoints to arm before the
// REPL hands control to the user.
//
// Format, one directive per line, '#' starts a trailing comment:
//
//	load <path>     assembly source to flash at startup
//	watch <reg>     register to list in the watch display ($t0 or t0)
//	break <addr>    PC (hex or decimal) to halt run at
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/mipssim/internal/register"
)

// File is the parsed contents of a config file.
type File struct {
	Load  string
	Watch []register.Register
	Break []uint32
}

// optionLine is the current line's scan cursor, in the teacher's style: a
// line plus a position, rather than a token slice.
type optionLine struct {
	line string
	pos  int
}

// Load reads and parses the config file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := &File{}
	reader := bufio.NewReader(f)
	lineNumber := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNumber++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if perr := (&optionLine{line: raw}).parse(cfg); perr != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, perr)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return cfg, nil
}

func (l *optionLine) parse(cfg *File) error {
	directive := l.word()
	if directive == "" {
		return nil
	}
	l.skipSpace()
	arg := l.rest()

	switch strings.ToLower(directive) {
	case "load":
		if arg == "" {
			return errors.New("load requires a path")
		}
		cfg.Load = arg

	case "watch":
		if arg == "" {
			return errors.New("watch requires a register")
		}
		r, err := register.Parse(arg)
		if err != nil {
			return err
		}
		cfg.Watch = append(cfg.Watch, r)

	case "break":
		if arg == "" {
			return errors.New("break requires an address")
		}
		var addr uint64
		var err error
		if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") {
			addr, err = strconv.ParseUint(arg[2:], 16, 32)
		} else {
			addr, err = strconv.ParseUint(arg, 10, 32)
		}
		if err != nil {
			return fmt.Errorf("invalid address: %q", arg)
		}
		cfg.Break = append(cfg.Break, uint32(addr))

	default:
		return fmt.Errorf("unknown directive: %q", directive)
	}
	return nil
}

func (l *optionLine) skipSpace() {
	for l.pos < len(l.line) && (l.line[l.pos] == ' ' || l.line[l.pos] == '\t') {
		l.pos++
	}
}

func (l *optionLine) isEOL() bool {
	if l.pos >= len(l.line) {
		return true
	}
	return l.line[l.pos] == '#' || l.line[l.pos] == '\n' || l.line[l.pos] == '\r'
}

// word reads the leading directive token.
func (l *optionLine) word() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && l.line[l.pos] != ' ' && l.line[l.pos] != '\t' {
		l.pos++
	}
	return l.line[start:l.pos]
}

// rest reads everything remaining on the line up to a trailing comment,
// trimmed.
func (l *optionLine) rest() string {
	start := l.pos
	for !l.isEOL() {
		l.pos++
	}
	return strings.TrimSpace(l.line[start:l.pos])
}
