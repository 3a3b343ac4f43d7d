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

// Package console renders a trap.Syscall for the surrounding terminal:
// Print text passes through verbatim, Error text is framed between BEL and
// ESC so the collaborator's renderer can colour it apart from normal output.
package console

import (
	"strings"

	"github.com/rcornwell/mipssim/internal/trap"
)

const (
	bel = 0x07
	esc = 0x1b
)

// Render formats sc for display.
func Render(sc trap.Syscall) string {
	if sc.Kind == trap.Error {
		var b strings.Builder
		b.WriteByte(bel)
		b.WriteString(sc.Text)
		b.WriteByte(esc)
		return b.String()
	}
	return sc.Text
}

// StripFraming removes a single BEL/ESC pair from a previously rendered
// error string, for tests and log replay that need the bare message back.
func StripFraming(s string) string {
	s = strings.TrimPrefix(s, string(byte(bel)))
	return strings.TrimSuffix(s, string(byte(esc)))
}
