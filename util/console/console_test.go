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

package console_test

import (
	"testing"

	"github.com/rcornwell/mipssim/internal/trap"
	"github.com/rcornwell/mipssim/util/console"
)

func TestRenderPrintIsVerbatim(t *testing.T) {
	got := console.Render(trap.Syscall{Kind: trap.Print, Text: "42"})
	if got != "42" {
		t.Errorf("got %q, want \"42\"", got)
	}
}

func TestRenderErrorIsFramed(t *testing.T) {
	got := console.Render(trap.Syscall{Kind: trap.Error, Text: "fault"})
	if got[0] != 0x07 || got[len(got)-1] != 0x1b {
		t.Errorf("got %q, want BEL/ESC framing", got)
	}
	if console.StripFraming(got) != "fault" {
		t.Errorf("StripFraming(%q) = %q, want \"fault\"", got, console.StripFraming(got))
	}
}
