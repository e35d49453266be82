/*
   Synacor VM - Main process.

   Copyright (c) 2026, Synacor VM Contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/cornwell-vm/synacor-vm/internal/core"
	"github.com/cornwell-vm/synacor-vm/internal/disasm"
	"github.com/cornwell-vm/synacor-vm/internal/dump"
	"github.com/cornwell-vm/synacor-vm/internal/input"
	"github.com/cornwell-vm/synacor-vm/internal/loader"
	"github.com/cornwell-vm/synacor-vm/internal/vm"
	logger "github.com/cornwell-vm/synacor-vm/internal/vmlog"
)

var Logger *slog.Logger

func main() {
	optImage := getopt.StringLong("image", 'i', "challenge.bin", "Challenge binary to load")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDumpDir := getopt.StringLong("dump-dir", 'd', "dump", "Directory to write state dumps under")
	optTrace := getopt.BoolLong("trace", 't', "Log every executed instruction")
	optDisasm := getopt.BoolLong("disasm", 'a', "Print a disassembly listing and exit, without running")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot create log file: %v\n", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	if *optTrace {
		programLevel.Set(slog.LevelDebug)
	}
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, *optTrace))
	slog.SetDefault(Logger)

	if *optImage == "" {
		Logger.Error("please specify an image file with -i/--image")
		os.Exit(1)
	}

	mem, err := loader.LoadFile(*optImage)
	if err != nil {
		Logger.Error("loading image", "err", err)
		os.Exit(1)
	}
	Logger.Info("image loaded", "words", len(mem))

	if *optDisasm {
		if err := disasm.Listing(os.Stdout, mem); err != nil {
			Logger.Error("disassembly", "err", err)
			os.Exit(1)
		}
		return
	}

	in, closeIn := input.NewStdin()
	defer closeIn()

	dumper := dump.New(*optDumpDir, func() string {
		return time.Now().Format("2006-01-02--15-04-05")
	})

	m := vm.New(mem, os.Stdout, in, dumper, Logger)
	m.Trace = *optTrace

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		Logger.Warn("interrupted, shutting down")
		cancel()
	}()

	runner := core.New(m, Logger)
	if err := runner.Run(ctx); err != nil {
		Logger.Error("run ended with error", "err", err, "steps", m.StepCount, "pc", m.PC)
		os.Exit(1)
	}

	Logger.Info("halted cleanly", "steps", m.StepCount)
}
