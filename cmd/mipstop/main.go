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

// mipstop is a live terminal dashboard over a running machine.Machine: register
// file, stack, and 5-stage pipeline, one step per space bar. It only calls
// machine.Machine's public accessors, the same boundary a GUI shell would be
// held to.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	cli "gopkg.in/urfave/cli.v2"

	"github.com/rcornwell/mipssim/internal/assemble"
	"github.com/rcornwell/mipssim/internal/disassemble"
	"github.com/rcornwell/mipssim/internal/register"
	"github.com/rcornwell/mipssim/internal/trap"
	"github.com/rcornwell/mipssim/machine"
	"github.com/rcornwell/mipssim/util/console"
)

var (
	m              *machine.Machine
	paragraphRegs  *widgets.Paragraph
	paragraphStack *widgets.Paragraph
	paragraphPipe  *widgets.Paragraph
	paragraphTips  *widgets.Paragraph
	paragraphOut   *widgets.Paragraph
	output         strings.Builder
)

func renderRegs(p *widgets.Paragraph) {
	var sb strings.Builder
	for r := register.Zero; r <= register.RA; r++ {
		sb.WriteString(fmt.Sprintf("%-4s %#08x", r.String(), m.Register(r)))
		if r%2 == 1 {
			sb.WriteRune('\n')
		} else {
			sb.WriteString("   ")
		}
	}
	hi, lo := m.HiLo().Hi, m.HiLo().Lo
	sb.WriteString(fmt.Sprintf("\nhi   %#08x   lo   %#08x", hi, lo))
	sb.WriteString(fmt.Sprintf("\npc   %#08x", m.PC()))
	p.Text = sb.String()
}

func renderStack(p *widgets.Paragraph) {
	stack, err := m.Stack()
	if err != nil {
		p.Text = err.Error()
		return
	}
	var sb strings.Builder
	for i, w := range stack {
		if i >= 16 {
			break
		}
		sb.WriteString(fmt.Sprintf("%#08x: %#08x\n", w.Addr, w.Word))
	}
	p.Text = sb.String()
}

func renderPipeline(p *widgets.Paragraph) {
	l := m.Pipeline()
	var sb strings.Builder

	text := ""
	if word, err := m.ReadWord(l.IfId.PC); err == nil {
		text, _ = disassemble.Disassemble(word)
	}

	stages := []struct {
		name string
		line int
		text string
	}{
		{"IF", l.IfId.Line, text},
		{"ID", l.IdEx.Line, ""},
		{"EX", l.ExMem.Line, ""},
		{"MEM", l.MemWb.Line, ""},
		{"WB", l.PipeOut.Line, ""},
	}
	for _, s := range stages {
		sb.WriteString(fmt.Sprintf("%-4s line=%-4d %s\n", s.name, s.line, s.text))
	}
	p.Text = sb.String()
}

func renderTips(p *widgets.Paragraph) {
	p.Text = "SPACE = step one cycle    R = reset    Q = quit"
}

func draw() {
	renderRegs(paragraphRegs)
	renderStack(paragraphStack)
	renderPipeline(paragraphPipe)
	renderTips(paragraphTips)
	paragraphOut.Text = output.String()
	ui.Render(paragraphRegs, paragraphStack, paragraphPipe, paragraphTips, paragraphOut)
}

func initLayout() {
	paragraphRegs = widgets.NewParagraph()
	paragraphRegs.Title = "Registers"
	paragraphRegs.SetRect(0, 0, 56, 20)

	paragraphStack = widgets.NewParagraph()
	paragraphStack.Title = "Stack"
	paragraphStack.SetRect(56, 0, 90, 20)

	paragraphPipe = widgets.NewParagraph()
	paragraphPipe.Title = "Pipeline"
	paragraphPipe.SetRect(0, 20, 56, 28)

	paragraphOut = widgets.NewParagraph()
	paragraphOut.Title = "Console"
	paragraphOut.SetRect(56, 20, 90, 28)

	paragraphTips = widgets.NewParagraph()
	paragraphTips.Title = "Tips"
	paragraphTips.SetRect(0, 28, 90, 31)
}

func step() {
	if m.PendingSyscall() {
		drainOne()
		return
	}
	if err := m.Cycle(); err != nil {
		output.WriteString("error: " + err.Error() + "\n")
		return
	}
	if m.PendingSyscall() {
		drainOne()
	}
}

// drainOne renders one pending syscall to the console pane. read_int stays
// parked: the dashboard is a viewer, not an input surface, so a program
// waiting on input simply shows the prompt until reset.
func drainOne() {
	m.HandleSyscall(func(sc trap.Syscall) {
		if sc.Kind == trap.ReadInt {
			output.WriteString("? (read_int not supported in mipstop)\n")
			return
		}
		output.WriteString(console.Render(sc) + "\n")
	})
}

func run(c *cli.Context) error {
	m = machine.New()
	if path := c.String("load"); path != "" {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		prog, err := assemble.Assemble(string(text))
		if err != nil {
			return err
		}
		m.Flash(prog.Memory, prog.Labels)
		m.Reset()
	}

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	initLayout()
	draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			return nil
		case "<Space>":
			step()
		case "r", "R":
			m.Reset()
			output.Reset()
		}
		draw()
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "mipstop",
		Usage: "live terminal dashboard for a mipssim machine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "load", Aliases: []string{"l"}, Usage: "assembly source to load at startup"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
