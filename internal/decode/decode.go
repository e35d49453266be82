/*
   Instruction decoder for the Synacor-architecture virtual machine.

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

// Package decode reads one instruction (an opcode word plus its operand
// words) out of a memory image at a given program counter. Decoding is pure
// and side-effect free: it never touches registers, the stack, or I/O.
package decode

import (
	"errors"
	"fmt"

	"github.com/cornwell-vm/synacor-vm/internal/word"
)

// Errors returned by Decode. Callers should use errors.Is against these
// sentinels; Decode wraps them with positional context.
var (
	ErrNotEnoughMemory = errors.New("decode: not enough memory")
	ErrInvalidOpcode   = errors.New("decode: invalid opcode")
	ErrInvalidOperand  = errors.New("decode: invalid operand")
)

// OperandKind constrains which word classes an operand position accepts.
type OperandKind int

const (
	// KindReg requires the operand word to classify as a register.
	KindReg OperandKind = iota
	// KindVal accepts a literal or a register, resolved as a value.
	KindVal
	// KindAddr accepts a literal or a register, resolved as an address.
	KindAddr
)

// Op is one of the 22 opcodes of the Synacor architecture.
type Op uint16

const (
	OpHalt Op = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop
	opCount // sentinel, not a real opcode
)

type opDef struct {
	name     string
	operands []OperandKind
}

// opTable is the closed, exhaustive opcode schema of spec.md §4.2.
var opTable = [opCount]opDef{
	OpHalt: {"halt", nil},
	OpSet:  {"set", []OperandKind{KindReg, KindVal}},
	OpPush: {"push", []OperandKind{KindVal}},
	OpPop:  {"pop", []OperandKind{KindReg}},
	OpEq:   {"eq", []OperandKind{KindReg, KindVal, KindVal}},
	OpGt:   {"gt", []OperandKind{KindReg, KindVal, KindVal}},
	OpJmp:  {"jmp", []OperandKind{KindVal}},
	OpJt:   {"jt", []OperandKind{KindVal, KindVal}},
	OpJf:   {"jf", []OperandKind{KindVal, KindVal}},
	OpAdd:  {"add", []OperandKind{KindReg, KindVal, KindVal}},
	OpMult: {"mult", []OperandKind{KindReg, KindVal, KindVal}},
	OpMod:  {"mod", []OperandKind{KindReg, KindVal, KindVal}},
	OpAnd:  {"and", []OperandKind{KindReg, KindVal, KindVal}},
	OpOr:   {"or", []OperandKind{KindReg, KindVal, KindVal}},
	OpNot:  {"not", []OperandKind{KindReg, KindVal}},
	OpRmem: {"rmem", []OperandKind{KindReg, KindAddr}},
	OpWmem: {"wmem", []OperandKind{KindAddr, KindVal}},
	OpCall: {"call", []OperandKind{KindVal}},
	OpRet:  {"ret", nil},
	OpOut:  {"out", []OperandKind{KindVal}},
	OpIn:   {"in", []OperandKind{KindReg}},
	OpNoop: {"noop", nil},
}

// Name returns the mnemonic for op, or "" if op is out of range.
func Name(op Op) string {
	if op >= opCount {
		return ""
	}
	return opTable[op].name
}

// Operands returns the operand schema for op.
func Operands(op Op) []OperandKind {
	if op >= opCount {
		return nil
	}
	return opTable[op].operands
}

// Instruction is one decoded opcode plus its operand words, exactly as read
// from memory — values are not yet resolved through registers.
type Instruction struct {
	Op        Op
	PC        uint16            // address of the opcode word
	Size      uint16            // 1 + len(Words)
	Words     []word.Word       // raw operand words, in order
	Classes   []word.Classified // Classify(Words[i]), in order
}

// Decode reads the instruction at mem[pc]. It reads only mem[pc:pc+1+N]
// where N is the operand count for the decoded opcode, and only after
// validating every word it touches classifies and belongs to the opcode's
// operand schema.
func Decode(mem []word.Word, pc uint16) (Instruction, error) {
	if int(pc) >= len(mem) {
		return Instruction{}, fmt.Errorf("%w: pc=%d len=%d", ErrNotEnoughMemory, pc, len(mem))
	}

	opWord := mem[pc]
	opClass := word.Classify(opWord)
	if opClass.Class == word.Invalid {
		return Instruction{}, fmt.Errorf("%w: opcode word %d at pc=%d is not a valid number", ErrInvalidOpcode, opWord, pc)
	}
	// The opcode word itself is always used as a literal index, never
	// resolved through a register.
	if opWord >= uint16(opCount) {
		return Instruction{}, fmt.Errorf("%w: %d at pc=%d", ErrInvalidOpcode, opWord, pc)
	}

	op := Op(opWord)
	schema := opTable[op].operands

	inst := Instruction{
		Op:   op,
		PC:   pc,
		Size: uint16(1 + len(schema)),
	}
	if len(schema) == 0 {
		return inst, nil
	}

	inst.Words = make([]word.Word, len(schema))
	inst.Classes = make([]word.Classified, len(schema))

	for i, kind := range schema {
		addr := int(pc) + 1 + i
		if addr >= len(mem) {
			return Instruction{}, fmt.Errorf("%w: %s operand %d at pc=%d", ErrNotEnoughMemory, opTable[op].name, i, pc)
		}
		w := mem[addr]
		c := word.Classify(w)
		if c.Class == word.Invalid {
			return Instruction{}, fmt.Errorf("%w: %s operand %d (word %d) at pc=%d", ErrInvalidOperand, opTable[op].name, i, w, pc)
		}
		if kind == KindReg && c.Class != word.Register {
			return Instruction{}, fmt.Errorf("%w: %s operand %d requires a register, got %s", ErrInvalidOperand, opTable[op].name, i, c)
		}
		inst.Words[i] = w
		inst.Classes[i] = c
	}

	return inst, nil
}
