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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rcornwell/mipssim/config"
	"github.com/rcornwell/mipssim/internal/register"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mipssim.cfg")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadParsesAllDirectives(t *testing.T) {
	path := writeConfig(t, `
# sample startup config
load prog.asm
watch $t0
watch t1
break 0x400100
break 64
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Load != "prog.asm" {
		t.Errorf("Load = %q, want prog.asm", cfg.Load)
	}
	if len(cfg.Watch) != 2 || cfg.Watch[0] != register.T0 || cfg.Watch[1] != register.T1 {
		t.Errorf("Watch = %v, want [t0 t1]", cfg.Watch)
	}
	if len(cfg.Break) != 2 || cfg.Break[0] != 0x400100 || cfg.Break[1] != 64 {
		t.Errorf("Break = %v, want [0x400100 64]", cfg.Break)
	}
}

func TestLoadRejectsUnknownDirective(t *testing.T) {
	path := writeConfig(t, "bogus 1\n")
	if _, err := config.Load(path); err == nil {
		t.Error("Load with unknown directive: want error, got nil")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Error("Load of missing file: want error, got nil")
	}
}
