/*
   Opcode handlers for the Synacor-architecture virtual machine executor.

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

import (
	"fmt"

	"github.com/cornwell-vm/synacor-vm/internal/decode"
	"github.com/cornwell-vm/synacor-vm/internal/word"
)

// opFunc applies one decoded instruction. jumped reports whether the
// handler already set m.PC itself (jumps, call, ret); otherwise Step
// advances PC by inst.Size.
type opFunc func(m *Machine, inst decode.Instruction) (jumped bool, err error)

// dispatch is the closed, exhaustive opcode table, built once at package
// init so Step's lookup is a plain array-style index.
var dispatch = map[decode.Op]opFunc{
	decode.OpHalt: opHalt,
	decode.OpSet:  opSet,
	decode.OpPush: opPush,
	decode.OpPop:  opPop,
	decode.OpEq:   opEq,
	decode.OpGt:   opGt,
	decode.OpJmp:  opJmp,
	decode.OpJt:   opJt,
	decode.OpJf:   opJf,
	decode.OpAdd:  opAdd,
	decode.OpMult: opMult,
	decode.OpMod:  opMod,
	decode.OpAnd:  opAnd,
	decode.OpOr:   opOr,
	decode.OpNot:  opNot,
	decode.OpRmem: opRmem,
	decode.OpWmem: opWmem,
	decode.OpCall: opCall,
	decode.OpRet:  opRet,
	decode.OpOut:  opOut,
	decode.OpIn:   opIn,
	decode.OpNoop: opNoop,
}

func opHalt(m *Machine, inst decode.Instruction) (bool, error) {
	return false, nil // Step special-cases halt after this returns
}

func opNoop(m *Machine, inst decode.Instruction) (bool, error) {
	return false, nil
}

func opSet(m *Machine, inst decode.Instruction) (bool, error) {
	v, err := m.resolve(inst.Classes[1])
	if err != nil {
		return false, err
	}
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func opPush(m *Machine, inst decode.Instruction) (bool, error) {
	v, err := m.resolve(inst.Classes[0])
	if err != nil {
		return false, err
	}
	return false, m.push(v)
}

func opPop(m *Machine, inst decode.Instruction) (bool, error) {
	v, err := m.pop()
	if err != nil {
		return false, err
	}
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func (m *Machine) binaryOperands(inst decode.Instruction) (a, b word.Word, err error) {
	a, err = m.resolve(inst.Classes[1])
	if err != nil {
		return 0, 0, err
	}
	b, err = m.resolve(inst.Classes[2])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func opEq(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	v := word.Word(0)
	if a == b {
		v = 1
	}
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func opGt(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	v := word.Word(0)
	if a > b {
		v = 1
	}
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func opJmp(m *Machine, inst decode.Instruction) (bool, error) {
	target, err := m.resolve(inst.Classes[0])
	if err != nil {
		return false, err
	}
	m.PC = target
	return true, nil
}

func opJt(m *Machine, inst decode.Instruction) (bool, error) {
	a, err := m.resolve(inst.Classes[0])
	if err != nil {
		return false, err
	}
	if a == 0 {
		return false, nil
	}
	target, err := m.resolve(inst.Classes[1])
	if err != nil {
		return false, err
	}
	m.PC = target
	return true, nil
}

func opJf(m *Machine, inst decode.Instruction) (bool, error) {
	a, err := m.resolve(inst.Classes[0])
	if err != nil {
		return false, err
	}
	if a != 0 {
		return false, nil
	}
	target, err := m.resolve(inst.Classes[1])
	if err != nil {
		return false, err
	}
	m.PC = target
	return true, nil
}

func opAdd(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	v := word.Word((uint32(a) + uint32(b)) % uint32(word.LiteralBound))
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func opMult(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	v := word.Word((uint32(a) * uint32(b)) % uint32(word.LiteralBound))
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func opMod(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	if b == 0 {
		return false, fmt.Errorf("%w: mod by zero", ErrInvalidValue)
	}
	return false, m.writeReg(inst.Classes[0].Reg, a%b)
}

func opAnd(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	return false, m.writeReg(inst.Classes[0].Reg, a&b)
}

func opOr(m *Machine, inst decode.Instruction) (bool, error) {
	a, b, err := m.binaryOperands(inst)
	if err != nil {
		return false, err
	}
	return false, m.writeReg(inst.Classes[0].Reg, a|b)
}

func opNot(m *Machine, inst decode.Instruction) (bool, error) {
	a, err := m.resolve(inst.Classes[1])
	if err != nil {
		return false, err
	}
	v := (^a) & word.LiteralMask
	return false, m.writeReg(inst.Classes[0].Reg, v)
}

func opRmem(m *Machine, inst decode.Instruction) (bool, error) {
	addr, err := m.addr(inst.Classes[1])
	if err != nil {
		return false, err
	}
	return false, m.writeReg(inst.Classes[0].Reg, m.Memory[addr])
}

func opWmem(m *Machine, inst decode.Instruction) (bool, error) {
	addr, err := m.addr(inst.Classes[0])
	if err != nil {
		return false, err
	}
	v, err := m.resolve(inst.Classes[1])
	if err != nil {
		return false, err
	}
	m.Memory[addr] = v
	return false, nil
}

func opCall(m *Machine, inst decode.Instruction) (bool, error) {
	target, err := m.resolve(inst.Classes[0])
	if err != nil {
		return false, err
	}
	if err := m.push(inst.PC + inst.Size); err != nil {
		return false, err
	}
	m.PC = target
	return true, nil
}

func opRet(m *Machine, inst decode.Instruction) (bool, error) {
	target, err := m.pop()
	if err != nil {
		return false, ErrStackUnderflowOnReturn
	}
	m.PC = target
	return true, nil
}

func opOut(m *Machine, inst decode.Instruction) (bool, error) {
	v, err := m.resolve(inst.Classes[0])
	if err != nil {
		return false, err
	}
	_, werr := m.Out.Write([]byte{byte(v)})
	return false, werr
}

// flusher is satisfied by writers (e.g. *bufio.Writer) that buffer output;
// opIn flushes before it can block so interactive output is never stuck
// behind a pending read, per spec §5.
type flusher interface {
	Flush() error
}

func opIn(m *Machine, inst decode.Instruction) (bool, error) {
	if len(m.pending) == 0 {
		if f, ok := m.Out.(flusher); ok {
			if err := f.Flush(); err != nil {
				return false, err
			}
		}
		if err := m.refillInput(); err != nil {
			return false, err
		}
	}
	b := m.pending[0]
	m.pending = m.pending[1:]
	return false, m.writeReg(inst.Classes[0].Reg, word.Word(b))
}
