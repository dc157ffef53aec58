/*
 * nakgpu - shaderc: a minimal driver exercising the lowering engine and
 * the copy-propagation pass end to end against a built-in test shader.
 *
 * Copyright 2026, Richard Cornwell
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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/rcornwell/nakgpu/config"
	"github.com/rcornwell/nakgpu/copyprop"
	"github.com/rcornwell/nakgpu/inputir/fixtures"
	"github.com/rcornwell/nakgpu/ir"
	"github.com/rcornwell/nakgpu/lower"
	logger "github.com/rcornwell/nakgpu/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Target configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optShader := getopt.StringLong("shader", 's', "straight_line", "Built-in test shader to lower")
	optInteractive := getopt.BoolLong("interactive", 'i', "Interactive mode")
	optDump := getopt.BoolLong("dump", 'd', "Dump lowered IR before and after copy propagation")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	log, closeLog := newLogger(*optLogFile)
	defer closeLog()
	slog.SetDefault(log)

	opts := config.Defaults()
	if *optConfig != "" {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			log.Error(err.Error())
			os.Exit(1)
		}
		opts = loaded
	}

	if *optInteractive {
		runInteractive(log, opts)
		return
	}

	out, err := run(log, opts, *optShader, *optDump)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	fmt.Print(out)
}

// newLogger builds the program's *slog.Logger the way main.go does,
// tee-ing to logFile (if given) through util/logger.LogHandler.
func newLogger(logFile string) (*slog.Logger, func()) {
	var out io.Writer = io.Discard
	var file *os.File
	if logFile != "" {
		f, err := os.Create(logFile)
		if err == nil {
			file = f
			out = f
		}
	}

	debugOn := false
	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(out, &slog.HandlerOptions{Level: level}, &debugOn))

	return log, func() {
		if file != nil {
			file.Close()
		}
	}
}

// run looks up the named fixture, lowers it, runs copy propagation over
// every function, and returns the printed result. When dump is set the
// pre-copyprop IR is printed first.
func run(log *slog.Logger, opts config.Options, name string, dump bool) (string, error) {
	shader, ok := fixtures.ByName(name)
	if !ok {
		return "", fmt.Errorf("unknown built-in shader %q (known: %v)", name, fixtures.Names())
	}

	engine := lower.NewEngine(opts.Compile, log)
	lowered := engine.Lower(shader)

	var p ir.Printer
	var before string
	if dump {
		before = p.Print(lowered)
	}

	for _, fn := range lowered.Functions {
		copyprop.Run(fn, log)
	}

	after := p.Print(lowered)
	if dump {
		return "-- before copy propagation --\n" + before + "-- after copy propagation --\n" + after, nil
	}
	return after, nil
}

// runInteractive backs a tiny liner-driven REPL: the user types a fixture
// shader's name and sees it lowered and printed.
func runInteractive(log *slog.Logger, opts config.Options) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, n := range fixtures.Names() {
			if len(partial) <= len(n) && n[:len(partial)] == partial {
				out = append(out, n)
			}
		}
		return out
	})

	fmt.Println("shaderc interactive mode. Known shaders:", fixtures.Names())
	for {
		cmd, err := line.Prompt("shaderc> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			log.Error("error reading line: " + err.Error())
			return
		}
		line.AppendHistory(cmd)
		if cmd == "quit" || cmd == "exit" {
			return
		}

		out, err := run(log, opts, cmd, true)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Print(out)
	}
}
