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

import "fmt"

// parseDirective handles the typed-literal and string directives; segment
// switches (.text/.data) are handled by the caller since they change a
// Line's Kind rather than emitting bytes.
func parseDirective(name string, s *scanner) (Instruction, error) {
	switch name {
	case "word":
		return numberList(s, 4)
	case "half":
		return numberList(s, 2)
	case "byte":
		return numberList(s, 1)
	case "ascii":
		str, err := s.quotedString()
		if err != nil {
			return nil, err
		}
		return Literal{Data: []byte(str)}, nil
	case "asciiz":
		str, err := s.quotedString()
		if err != nil {
			return nil, err
		}
		return Literal{Data: append([]byte(str), 0)}, nil
	case "space":
		n, err := s.number()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf(".space count must be non-negative, got %d", n)
		}
		return Literal{Data: make([]byte, n)}, nil
	}
	return nil, fmt.Errorf("unknown directive: .%s", name)
}

func numberList(s *scanner, width int) (Instruction, error) {
	var data []byte
	for {
		n, err := s.number()
		if err != nil {
			return nil, err
		}
		for i := 0; i < width; i++ {
			data = append(data, byte(n>>(8*i)))
		}
		s.skipSpace()
		if s.eol() || s.peek() != ',' {
			break
		}
		s.pos++
	}
	return Literal{Data: data}, nil
}
