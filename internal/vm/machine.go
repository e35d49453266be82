/*
   Executor for the Synacor-architecture virtual machine.

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

// Package vm is the executor: it owns machine state (memory, registers,
// stack, program counter, pending input) and applies one decoded
// instruction per Step, per spec §4.3.
package vm

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/cornwell-vm/synacor-vm/internal/decode"
	"github.com/cornwell-vm/synacor-vm/internal/word"
)

// LineSource supplies one line of host input at a time to the in opcode's
// refill step. Implementations live in package input.
type LineSource interface {
	// NextLine blocks until a full line (including its terminator, if any)
	// is available, or returns an error if the source is exhausted.
	NextLine() ([]byte, error)
}

// Snapshot is the read-only view of machine state handed to a Dumper.
type Snapshot struct {
	Registers [word.NumRegisters]word.Word
	Stack     []word.Word // bottom-to-top
	PC        uint16
	StepCount uint64
	Memory    []word.Word
}

// Dumper is the external "dump" collaborator of spec §6. It must not alter
// machine state.
type Dumper interface {
	Dump(Snapshot) error
}

// Machine is one run's worth of state: a fresh Machine is created per run
// and never shared across goroutines.
type Machine struct {
	Memory    []word.Word
	Registers [word.NumRegisters]word.Word
	Stack     []word.Word
	PC        uint16
	Halted    bool
	StepCount uint64

	pending []byte // FIFO queue of bytes not yet delivered to `in`

	Out    io.Writer
	In     LineSource
	Dumper Dumper
	Log    *slog.Logger
	Trace  bool
}

// New constructs a Machine over the given memory image. The caller retains
// ownership of image only long enough for this call; Machine copies nothing
// extra into it but takes the slice as its own memory going forward.
func New(image []word.Word, out io.Writer, in LineSource, dumper Dumper, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	return &Machine{
		Memory: image,
		Out:    out,
		In:     in,
		Dumper: dumper,
		Log:    log,
	}
}

// resolve dereferences a classified operand to a literal value, per spec
// §4.1: a literal yields itself, a register yields its (always-literal)
// contents, single lookup, no recursion.
func (m *Machine) resolve(c word.Classified) (word.Word, error) {
	switch c.Class {
	case word.Literal:
		return c.Literal, nil
	case word.Register:
		return m.Registers[c.Reg], nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidValue, c)
	}
}

// writeReg stores v into register r, enforcing the invariant that every
// register value is a literal.
func (m *Machine) writeReg(r word.Word, v word.Word) error {
	if !word.IsLiteral(v) {
		return fmt.Errorf("%w: cannot store %d in register %d", ErrInvalidValue, v, r)
	}
	m.Registers[r] = v
	return nil
}

func (m *Machine) push(v word.Word) error {
	if !word.IsLiteral(v) {
		return fmt.Errorf("%w: cannot push %d", ErrInvalidValue, v)
	}
	m.Stack = append(m.Stack, v)
	return nil
}

func (m *Machine) pop() (word.Word, error) {
	if len(m.Stack) == 0 {
		return 0, ErrStackUnderflowOnPop
	}
	top := len(m.Stack) - 1
	v := m.Stack[top]
	m.Stack = m.Stack[:top]
	return v, nil
}

// addr resolves an address operand: literal -> itself, register -> its
// contents, then range-checks against memory.
func (m *Machine) addr(c word.Classified) (uint16, error) {
	v, err := m.resolve(c)
	if err != nil {
		return 0, err
	}
	if int(v) >= len(m.Memory) {
		return 0, fmt.Errorf("%w: address %d out of range (len %d)", ErrInvalidValue, v, len(m.Memory))
	}
	return v, nil
}

// Step decodes and applies exactly one instruction. halted is true when
// this step executed the halt opcode, and also (together with
// ErrAlreadyHalted) when the machine had already halted; any other non-nil
// error is fatal and the machine must not be stepped again.
func (m *Machine) Step() (halted bool, err error) {
	if m.Halted {
		return true, ErrAlreadyHalted
	}

	inst, err := decode.Decode(m.Memory, m.PC)
	if err != nil {
		return false, err
	}

	if m.Trace {
		m.Log.Debug("step", "pc", inst.PC, "op", decode.Name(inst.Op), "words", inst.Words)
	}

	fn, ok := dispatch[inst.Op]
	if !ok {
		return false, fmt.Errorf("%w: opcode %d has no handler", ErrInvalidValue, inst.Op)
	}

	nextPC := inst.PC + inst.Size
	jumped, err := fn(m, inst)
	if err != nil {
		m.Log.Error("fault", "pc", inst.PC, "op", decode.Name(inst.Op), "err", err)
		return false, err
	}

	m.StepCount++

	if inst.Op == decode.OpHalt {
		m.Halted = true
		m.Log.Info("halt", "pc", inst.PC, "steps", m.StepCount)
		return true, nil
	}

	if !jumped {
		m.PC = nextPC
	}
	return false, nil
}

// refillInput reads one more line from the host, applying the byte filter
// of spec §4.3 before buffering it, and handles the "dump" side channel by
// invoking the Dumper and re-reading another line instead of delivering it.
func (m *Machine) refillInput() error {
	for {
		line, err := m.In.NextLine()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInputUnavailable, err)
		}

		if bytes.Contains(line, []byte("dump")) {
			if m.Dumper != nil {
				if derr := m.Dumper.Dump(m.snapshot()); derr != nil {
					m.Log.Error("dump failed", "err", derr)
				}
			}
			continue
		}

		filtered := make([]byte, 0, len(line))
		for _, b := range line {
			if b > 126 || b == 13 {
				continue
			}
			filtered = append(filtered, b)
		}
		m.pending = filtered
		return nil
	}
}

func (m *Machine) snapshot() Snapshot {
	stack := make([]word.Word, len(m.Stack))
	copy(stack, m.Stack)
	mem := make([]word.Word, len(m.Memory))
	copy(mem, m.Memory)
	return Snapshot{
		Registers: m.Registers,
		Stack:     stack,
		PC:        m.PC,
		StepCount: m.StepCount,
		Memory:    mem,
	}
}
