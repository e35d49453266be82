/*
   Run loop for the Synacor-architecture virtual machine.

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

// Package core drives a vm.Machine to completion. Unlike the teacher's
// event-driven, channel-fed core loop, this machine has exactly one clock:
// Step. There is no cycle counting, no device polling, and no concurrent
// packet queue to service, so the loop here is a plain synchronous call
// sequence, cancellable only between steps via context.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cornwell-vm/synacor-vm/internal/vm"
)

// ErrCancelled is returned when ctx is cancelled before the machine halts.
var ErrCancelled = errors.New("core: run cancelled")

// Runner drives a single Machine's lifetime from the first instruction to
// halt, fault, or cancellation.
type Runner struct {
	Machine *vm.Machine
	Log     *slog.Logger
}

// New builds a Runner over m, logging through log (or m.Log if log is nil).
func New(m *vm.Machine, log *slog.Logger) *Runner {
	if log == nil {
		log = m.Log
	}
	return &Runner{Machine: m, Log: log}
}

// Run steps the machine until it halts, faults, or ctx is cancelled.
// It returns nil only on a clean halt.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		default:
		}

		halted, err := r.Machine.Step()
		if err != nil {
			return fmt.Errorf("core: %w", err)
		}
		if halted {
			return nil
		}
	}
}
