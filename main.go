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

package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/mipssim/command/parser"
	"github.com/rcornwell/mipssim/command/reader"
	"github.com/rcornwell/mipssim/config"
	"github.com/rcornwell/mipssim/internal/assemble"
	"github.com/rcornwell/mipssim/machine"
	logger "github.com/rcornwell/mipssim/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLoad := getopt.StringLong("load", 'd', "", "Assembly source to load")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optBatch := getopt.BoolLong("batch", 'b', "Exit after running a loaded program instead of entering the REPL")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}))
	slog.SetDefault(Logger)

	Logger.Info("mipssim started")

	m := machine.New()
	loadPath := *optLoad

	if *optConfig != "" {
		cfg, err := config.Load(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		if loadPath == "" {
			loadPath = cfg.Load
		}
		for _, addr := range cfg.Break {
			if _, err := parser.ProcessCommand(fmt.Sprintf("break %#x", addr), m); err != nil {
				Logger.Error(err.Error())
			}
		}
		for _, r := range cfg.Watch {
			fmt.Printf("watching %s\n", r)
		}
	}

	if loadPath != "" {
		text, err := os.ReadFile(loadPath)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		prog, err := assemble.Assemble(string(text))
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		m.Flash(prog.Memory, prog.Labels)
		m.Reset()
		fmt.Printf("loaded %s, entry %#08x\n", loadPath, prog.Entry)
	}

	if *optBatch {
		if _, err := parser.ProcessCommand("run", m); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	reader.ConsoleReader(m)
	Logger.Info("mipssim stopped")
}
