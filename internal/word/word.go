/*
   Word classification for the Synacor-architecture virtual machine.

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

// Package word implements the single classification primitive every
// instruction operand in the machine is resolved through: a 16-bit word is
// either a literal, a register reference, or invalid.
package word

import "fmt"

// Word is the machine's only numeric type: an unsigned 16-bit value.
type Word = uint16

const (
	// LiteralBound is the first word value that is no longer a literal.
	LiteralBound Word = 1 << 15 // 32768

	// RegisterBound is the first word value that is no longer a valid
	// register reference.
	RegisterBound Word = LiteralBound + NumRegisters // 32776

	// NumRegisters is the number of general-purpose registers.
	NumRegisters = 8

	// LiteralMask keeps an arithmetic result within the 15-bit literal range.
	LiteralMask Word = LiteralBound - 1 // 0x7FFF
)

// Class tags the classification of a word.
type Class int

const (
	// Literal means the word is its own value, in [0, 32768).
	Literal Class = iota
	// Register means the word names register (w - 32768), in [32768, 32776).
	Register
	// Invalid means the word is outside both ranges.
	Invalid
)

// Classified is the result of classifying a single word.
type Classified struct {
	Class Class
	// Literal holds the value when Class == Literal.
	Literal Word
	// Reg holds the register index when Class == Register.
	Reg Word
}

// Classify partitions w into exactly one of Literal, Register, or Invalid.
func Classify(w Word) Classified {
	switch {
	case w < LiteralBound:
		return Classified{Class: Literal, Literal: w}
	case w < RegisterBound:
		return Classified{Class: Register, Reg: w - LiteralBound}
	default:
		return Classified{Class: Invalid}
	}
}

// IsLiteral reports whether w is a literal value.
func IsLiteral(w Word) bool { return w < LiteralBound }

// IsRegister reports whether w names a register.
func IsRegister(w Word) bool { return w >= LiteralBound && w < RegisterBound }

// IsValid reports whether w classifies as Literal or Register.
func IsValid(w Word) bool { return w < RegisterBound }

func (c Classified) String() string {
	switch c.Class {
	case Literal:
		return fmt.Sprintf("literal(%d)", c.Literal)
	case Register:
		return fmt.Sprintf("register(%d)", c.Reg)
	default:
		return "invalid"
	}
}
