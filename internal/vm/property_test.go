package vm

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cornwell-vm/synacor-vm/internal/word"
)

// buildArithmeticProgram emits a short, always-halting program built from
// set/push/pop/add/mult/mod/and/not, ending in halt. It never uses jumps
// or in/out, so every prefix is reachable without blocking on input.
func buildArithmeticProgram(r *rand.Rand, nInstrs int) []word.Word {
	var mem []word.Word
	reg := func() word.Word { return word.LiteralBound + word.Word(r.Intn(word.NumRegisters)) }
	lit := func() word.Word { return word.Word(r.Intn(32768)) }

	for i := 0; i < nInstrs; i++ {
		switch r.Intn(8) {
		case 0:
			mem = append(mem, 1, reg(), lit()) // set
		case 1:
			mem = append(mem, 2, lit()) // push
		case 2:
			mem = append(mem, 3, reg()) // pop (may fault if empty — caller handles)
		case 3:
			mem = append(mem, 9, reg(), reg(), lit()) // add
		case 4:
			mem = append(mem, 10, reg(), reg(), lit()) // mult
		case 5:
			// mod: avoid zero divisor so this property run stays fault-free
			mem = append(mem, 11, reg(), reg(), word.Word(1+r.Intn(32767)))
		case 6:
			mem = append(mem, 12, reg(), reg(), lit()) // and
		case 7:
			mem = append(mem, 14, reg(), reg()) // not
		}
	}
	mem = append(mem, 0) // halt
	return mem
}

func TestPropertyRandomizedPrograms(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := rand.New(rand.NewSource(seed))
		mem := buildArithmeticProgram(r, 20)
		m := New(mem, nil, nil, nil, discardLogger())

		prevStack := len(m.Stack)
		for {
			halted, err := m.Step()
			if err != nil {
				// pop against an empty stack is an expected, documented
				// fault for this generator; anything else is a bug.
				if errors.Is(err, ErrStackUnderflowOnPop) {
					break
				}
				t.Fatalf("seed %d: unexpected fault: %v", seed, err)
			}

			// Invariant 2: every register write is a literal.
			for i, reg := range m.Registers {
				if !word.IsLiteral(reg) {
					t.Fatalf("seed %d: register %d = %d not a literal", seed, i, reg)
				}
			}
			// Invariant 3: pc stays in range unless halted this step.
			if !halted && int(m.PC) >= len(m.Memory) {
				t.Fatalf("seed %d: pc %d out of range (len %d)", seed, m.PC, len(m.Memory))
			}
			// Invariant 7 (push/pop symmetry along the way): stack only
			// ever grows or shrinks by one per step in this generator.
			if d := len(m.Stack) - prevStack; d < -1 || d > 1 {
				t.Fatalf("seed %d: stack length jumped by %d in one step", seed, d)
			}
			prevStack = len(m.Stack)

			if halted {
				break
			}
		}
	}
}

func TestPropertyPushPopRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := word.Word(r.Intn(32768))
		mem := []word.Word{2, v, 3, 32768, 0} // push v; pop R0; halt
		m := New(mem, nil, nil, nil, discardLogger())
		stackLenBefore := len(m.Stack)
		for {
			halted, err := m.Step()
			if err != nil {
				t.Fatalf("v=%d: %v", v, err)
			}
			if halted {
				break
			}
		}
		if m.Registers[0] != v {
			t.Fatalf("R0 = %d, want %d", m.Registers[0], v)
		}
		if len(m.Stack) != stackLenBefore {
			t.Fatalf("stack length = %d, want %d", len(m.Stack), stackLenBefore)
		}
	}
}

func TestPropertyCallReturnPreservesStackDepth(t *testing.T) {
	// call 4; halt; <pad>; ret
	mem := []word.Word{17, 4, 0, 0, 18}
	m := New(mem, nil, nil, nil, discardLogger())
	before := m.PC
	depthBefore := len(m.Stack)

	if _, err := m.Step(); err != nil { // call
		t.Fatalf("call: %v", err)
	}
	if _, err := m.Step(); err != nil { // ret
		t.Fatalf("ret: %v", err)
	}
	if m.PC != before+2 {
		t.Fatalf("pc = %d, want %d", m.PC, before+2)
	}
	if len(m.Stack) != depthBefore {
		t.Fatalf("stack depth = %d, want %d", len(m.Stack), depthBefore)
	}
}
