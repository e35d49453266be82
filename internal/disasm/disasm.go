/*
   Disassembler — the debug pretty-printer named as an external collaborator
   in spec §1.

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

// Package disasm walks a loaded image with the same decoder the executor
// uses and renders one mnemonic line per instruction. It never executes
// the image and never mutates state — a read-only narrow-interface tool,
// same as the teacher's emu/disassemble.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/cornwell-vm/synacor-vm/internal/decode"
	"github.com/cornwell-vm/synacor-vm/internal/vmhex"
	"github.com/cornwell-vm/synacor-vm/internal/word"
)

// Listing writes one line per decoded instruction in mem to w, continuing
// past decode faults by reporting them inline and advancing one word so a
// partially-corrupt image still gets a best-effort listing.
func Listing(w io.Writer, mem []word.Word) error {
	pc := uint16(0)
	for int(pc) < len(mem) {
		var addr strings.Builder
		vmhex.FormatWord(&addr, pc)

		inst, err := decode.Decode(mem, pc)
		if err != nil {
			if _, werr := fmt.Fprintf(w, "%s  ???  %v\n", addr.String(), err); werr != nil {
				return werr
			}
			pc++
			continue
		}

		if _, werr := fmt.Fprintf(w, "%s  %s\n", addr.String(), formatInstruction(inst)); werr != nil {
			return werr
		}
		pc += inst.Size
	}
	return nil
}

func formatInstruction(inst decode.Instruction) string {
	name := decode.Name(inst.Op)
	if len(inst.Classes) == 0 {
		return name
	}
	s := name
	for _, c := range inst.Classes {
		s += " " + formatOperand(c)
	}
	return s
}

func formatOperand(c word.Classified) string {
	switch c.Class {
	case word.Literal:
		return fmt.Sprintf("%d", c.Literal)
	case word.Register:
		return fmt.Sprintf("R%d", c.Reg)
	default:
		return "?"
	}
}
