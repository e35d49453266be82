package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cornwell-vm/synacor-vm/internal/vm"
	"github.com/cornwell-vm/synacor-vm/internal/word"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunHaltsCleanly(t *testing.T) {
	mem := []word.Word{19, 32768, 0} // out R0 ; halt  (R0 defaults to 0)
	var out bytes.Buffer
	m := vm.New(mem, &out, nil, nil, discardLogger())

	r := New(m, nil)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !m.Halted {
		t.Fatalf("expected machine halted")
	}
}

func TestRunPropagatesFault(t *testing.T) {
	mem := []word.Word{22} // invalid opcode (22 is past the last defined opcode)
	m := vm.New(mem, io.Discard, nil, nil, discardLogger())

	r := New(m, nil)
	if err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected fault error")
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	mem := []word.Word{6, 0} // jmp 0: an infinite loop, so only cancellation ends the run
	m := vm.New(mem, io.Discard, nil, nil, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := New(m, nil)
	err := r.Run(ctx)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
}
