package decode

import (
	"errors"
	"testing"

	"github.com/cornwell-vm/synacor-vm/internal/word"
)

func TestDecodeHalt(t *testing.T) {
	mem := []word.Word{0}
	inst, err := Decode(mem, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Op != OpHalt || inst.Size != 1 {
		t.Fatalf("got %+v", inst)
	}
}

func TestDecodeSet(t *testing.T) {
	// set R0, 4
	mem := []word.Word{1, 32768, 4}
	inst, err := Decode(mem, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Op != OpSet || inst.Size != 3 {
		t.Fatalf("got %+v", inst)
	}
	if inst.Classes[0].Class != word.Register || inst.Classes[0].Reg != 0 {
		t.Fatalf("operand 0 = %+v, want register 0", inst.Classes[0])
	}
	if inst.Classes[1].Class != word.Literal || inst.Classes[1].Literal != 4 {
		t.Fatalf("operand 1 = %+v, want literal 4", inst.Classes[1])
	}
}

func TestDecodeNotEnoughMemoryOpcode(t *testing.T) {
	mem := []word.Word{}
	_, err := Decode(mem, 0)
	if !errors.Is(err, ErrNotEnoughMemory) {
		t.Fatalf("got %v, want ErrNotEnoughMemory", err)
	}
}

func TestDecodeNotEnoughMemoryOperand(t *testing.T) {
	// add needs 3 operands, only 1 present
	mem := []word.Word{9, 32768}
	_, err := Decode(mem, 0)
	if !errors.Is(err, ErrNotEnoughMemory) {
		t.Fatalf("got %v, want ErrNotEnoughMemory", err)
	}
}

func TestDecodeInvalidOpcode(t *testing.T) {
	mem := []word.Word{22} // one past noop
	_, err := Decode(mem, 0)
	if !errors.Is(err, ErrInvalidOpcode) {
		t.Fatalf("got %v, want ErrInvalidOpcode", err)
	}
}

func TestDecodeInvalidOpcodeWord(t *testing.T) {
	mem := []word.Word{40000} // classifies Invalid
	_, err := Decode(mem, 0)
	if !errors.Is(err, ErrInvalidOpcode) {
		t.Fatalf("got %v, want ErrInvalidOpcode", err)
	}
}

func TestDecodeSetRequiresRegister(t *testing.T) {
	// set with a literal destination is malformed.
	mem := []word.Word{1, 5, 4}
	_, err := Decode(mem, 0)
	if !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("got %v, want ErrInvalidOperand", err)
	}
}

func TestDecodeOperandInvalidClass(t *testing.T) {
	mem := []word.Word{6, 40000} // jmp with an invalid operand word
	_, err := Decode(mem, 0)
	if !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("got %v, want ErrInvalidOperand", err)
	}
}

func TestDecodeAllOpcodesHaveNames(t *testing.T) {
	for op := OpHalt; op < opCount; op++ {
		if Name(op) == "" {
			t.Errorf("opcode %d has no mnemonic", op)
		}
	}
}

func TestDecodeAtEndOfMemory(t *testing.T) {
	mem := []word.Word{19, 72, 0}
	inst, err := Decode(mem, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Op != OpHalt {
		t.Fatalf("got %+v", inst)
	}
}
