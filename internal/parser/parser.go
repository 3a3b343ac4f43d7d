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
	"strings"

	"github.com/rcornwell/mipssim/internal/label"
)

// ParseError carries a source span excerpt alongside a flattened message,
// per §4.1's failure mode: a single human-readable error that halts
// assembly, leaving the machine unflashed.
type ParseError struct {
	Line   int
	Source string
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line+1, e.Msg, e.Source)
}

// Parse tokenises an assembly text buffer into Line values. A source line
// may yield more than one Line (a label followed on the same line by an
// instruction); both share the originating Source index.
func Parse(text string) ([]Line, error) {
	var out []Line
	for i, raw := range strings.Split(text, "\n") {
		lines, err := parseSourceLine(i, raw)
		if err != nil {
			return nil, &ParseError{Line: i, Source: raw, Msg: err.Error()}
		}
		out = append(out, lines...)
	}
	return out, nil
}

// splitComment separates a trailing, unquoted '#' comment from the code
// preceding it.
func splitComment(raw string) (code, comment string) {
	inQuote := false
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return raw[:i], strings.TrimSpace(raw[i+1:])
			}
		}
	}
	return raw, ""
}

func parseSourceLine(index int, raw string) ([]Line, error) {
	code, comment := splitComment(raw)
	trimmed := strings.TrimSpace(code)

	if trimmed == "" {
		if comment != "" {
			return []Line{{Kind: LineComment, Source: index, Comment: comment}}, nil
		}
		return []Line{{Kind: LineBlank, Source: index}}, nil
	}

	s := newScanner(trimmed)

	// Label: identifier immediately followed by ':'.
	if name, ok := peekLabel(s); ok {
		s.pos++ // past the ':'; peekLabel left the cursor just after name
		labelLine := Line{Kind: LineLabel, Source: index, Label: name}
		s.skipSpace()
		if s.eol() {
			return []Line{labelLine}, nil
		}
		rest, err := parseCode(index, s)
		if err != nil {
			return nil, err
		}
		return append([]Line{labelLine}, rest...), nil
	}

	return parseCode(index, s)
}

// peekLabel reports whether s begins with `identifier:` without consuming
// it on failure.
func peekLabel(s *scanner) (string, bool) {
	save := s.pos
	name, err := s.ident()
	if err != nil {
		s.pos = save
		return "", false
	}
	if s.eol() || s.peek() != ':' {
		s.pos = save
		return "", false
	}
	return name, true
}

func parseCode(index int, s *scanner) ([]Line, error) {
	s.skipSpace()
	if !s.eol() && s.peek() == '.' {
		s.pos++
		name, err := s.ident()
		if err != nil {
			return nil, err
		}
		name = strings.ToLower(name)

		if name == "text" {
			return []Line{{Kind: LineSegment, Source: index, Segment: label.Text}}, nil
		}
		if name == "data" {
			return []Line{{Kind: LineSegment, Source: index, Segment: label.Data}}, nil
		}

		inst, err := parseDirective(name, s)
		if err != nil {
			return nil, err
		}
		return []Line{{Kind: LineInstruction, Source: index, Instructions: []Instruction{inst}}}, nil
	}

	mnemonic, err := s.ident()
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(mnemonic)

	insts, handled, err := expandPseudo(lower, s)
	if err != nil {
		return nil, err
	}
	if !handled {
		inst, err := parseInstruction(lower, s)
		if err != nil {
			return nil, err
		}
		insts = []Instruction{inst}
	}

	if needsShadow(lower) {
		insts = append(insts, Shadow()...)
	}

	s.skipSpace()
	if !s.eol() && s.peek() != '#' {
		return nil, fmt.Errorf("unexpected trailing text: %q", s.line[s.pos:])
	}

	return []Line{{Kind: LineInstruction, Source: index, Instructions: insts}}, nil
}
