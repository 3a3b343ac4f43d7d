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

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/mipssim/internal/register"
)

// scanner walks one source line by byte position, the same cursor-struct
// idiom the command console's line scanner uses.
type scanner struct {
	line string
	pos  int
}

func newScanner(line string) *scanner {
	return &scanner{line: line}
}

func (s *scanner) eol() bool {
	return s.pos >= len(s.line)
}

func (s *scanner) peek() byte {
	if s.eol() {
		return 0
	}
	return s.line[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eol() && unicode.IsSpace(rune(s.line[s.pos])) {
		s.pos++
	}
}

func (s *scanner) skipComma() {
	s.skipSpace()
	if !s.eol() && s.line[s.pos] == ',' {
		s.pos++
		s.skipSpace()
	}
}

// ident scans [A-Za-z_][A-Za-z_0-9]*.
func (s *scanner) ident() (string, error) {
	s.skipSpace()
	start := s.pos
	if s.eol() || !(unicode.IsLetter(rune(s.line[s.pos])) || s.line[s.pos] == '_') {
		return "", fmt.Errorf("expected identifier at %q", s.line[s.pos:])
	}
	for !s.eol() {
		c := rune(s.line[s.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		s.pos++
	}
	return s.line[start:s.pos], nil
}

// register scans a '$'-prefixed register operand.
func (s *scanner) register() (register.Register, error) {
	s.skipSpace()
	start := s.pos
	if s.eol() || s.line[s.pos] != '$' {
		return 0, fmt.Errorf("expected register at %q", s.line[s.pos:])
	}
	s.pos++
	for !s.eol() {
		c := rune(s.line[s.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			break
		}
		s.pos++
	}
	return register.Parse(s.line[start:s.pos])
}

// number scans a signed integer literal: decimal, 0x hex, 0o octal, 0b
// binary, with '_' as an ignorable digit separator.
func (s *scanner) number() (int64, error) {
	s.skipSpace()
	start := s.pos
	if !s.eol() && (s.line[s.pos] == '+' || s.line[s.pos] == '-') {
		s.pos++
	}
	base := 10
	if s.pos+1 < len(s.line) && s.line[s.pos] == '0' {
		switch s.line[s.pos+1] {
		case 'x', 'X':
			base = 16
			s.pos += 2
		case 'o', 'O':
			base = 8
			s.pos += 2
		case 'b', 'B':
			base = 2
			s.pos += 2
		}
	}
	digitsFrom := s.pos
	for !s.eol() {
		c := rune(s.line[s.pos])
		if c == '_' {
			s.pos++
			continue
		}
		if !isDigitInBase(c, base) {
			break
		}
		s.pos++
	}
	if s.pos == digitsFrom {
		return 0, fmt.Errorf("expected number at %q", s.line[start:])
	}
	digits := strings.ReplaceAll(s.line[digitsFrom:s.pos], "_", "")
	val, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s.line[start:s.pos], err)
	}
	if s.line[start] == '-' {
		val = -val
	}
	return val, nil
}

func isDigitInBase(c rune, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return unicode.IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return unicode.IsDigit(c)
	}
}

// operand scans either a number or a bare label identifier, returning an
// Imm of kind ImmValue or ImmLabel.
func (s *scanner) operand() (Imm, error) {
	s.skipSpace()
	if s.eol() {
		return Imm{}, fmt.Errorf("expected operand, got end of line")
	}
	c := s.line[s.pos]
	if c == '+' || c == '-' || unicode.IsDigit(rune(c)) {
		n, err := s.number()
		if err != nil {
			return Imm{}, err
		}
		return Imm{Kind: ImmValue, Value: n}, nil
	}
	name, err := s.ident()
	if err != nil {
		return Imm{}, err
	}
	return Imm{Kind: ImmLabel, Label: name}, nil
}

// quotedString scans a "..." literal, expanding \n and \0 escapes.
func (s *scanner) quotedString() (string, error) {
	s.skipSpace()
	if s.eol() || s.line[s.pos] != '"' {
		return "", fmt.Errorf("expected opening quote at %q", s.line[s.pos:])
	}
	s.pos++
	var out strings.Builder
	for {
		if s.eol() {
			return "", fmt.Errorf("unterminated string literal")
		}
		c := s.line[s.pos]
		if c == '"' {
			s.pos++
			return out.String(), nil
		}
		if c == '\\' && s.pos+1 < len(s.line) {
			switch s.line[s.pos+1] {
			case 'n':
				out.WriteByte('\n')
				s.pos += 2
				continue
			case '0':
				out.WriteByte(0)
				s.pos += 2
				continue
			}
		}
		out.WriteByte(c)
		s.pos++
	}
}
