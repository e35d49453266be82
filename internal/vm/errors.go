/*
   Fault taxonomy for the Synacor-architecture virtual machine executor.

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

package vm

import "errors"

// All faults are fatal: once Step returns a non-nil error the machine must
// not be stepped again. None of these are retried or recovered internally.
var (
	// ErrInvalidValue covers a resolved operand that classifies Invalid and
	// division (mod) by zero.
	ErrInvalidValue = errors.New("vm: invalid value")
	// ErrStackUnderflowOnPop is returned by pop against an empty stack.
	ErrStackUnderflowOnPop = errors.New("vm: stack underflow on pop")
	// ErrStackUnderflowOnReturn is returned by ret against an empty stack.
	ErrStackUnderflowOnReturn = errors.New("vm: stack underflow on return")
	// ErrInputUnavailable is returned when standard input is closed before
	// a byte could be produced for an in instruction.
	ErrInputUnavailable = errors.New("vm: input unavailable")
	// ErrAlreadyHalted is returned by Step once the machine has halted.
	ErrAlreadyHalted = errors.New("vm: machine already halted")
)
