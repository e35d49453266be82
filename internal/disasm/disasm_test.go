package disasm

import (
	"strings"
	"testing"

	"github.com/cornwell-vm/synacor-vm/internal/word"
)

func TestListingSimpleProgram(t *testing.T) {
	// set R0 4; out R0; halt
	mem := []word.Word{1, 32768, 4, 19, 32768, 0}

	var sb strings.Builder
	if err := Listing(&sb, mem); err != nil {
		t.Fatalf("Listing: %v", err)
	}

	out := sb.String()
	for _, want := range []string{"0000  set R0 4", "0003  out R0", "0005  halt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("listing missing %q, got:\n%s", want, out)
		}
	}
}

func TestListingReportsDecodeFaultsInline(t *testing.T) {
	mem := []word.Word{21, 9999}

	var sb strings.Builder
	if err := Listing(&sb, mem); err != nil {
		t.Fatalf("Listing: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, "0001  ???") {
		t.Fatalf("expected inline fault marker, got:\n%s", out)
	}
}

func TestListingNeverMutatesMemory(t *testing.T) {
	mem := []word.Word{0}
	cp := append([]word.Word(nil), mem...)

	var sb strings.Builder
	if err := Listing(&sb, mem); err != nil {
		t.Fatalf("Listing: %v", err)
	}
	for i := range cp {
		if mem[i] != cp[i] {
			t.Fatalf("memory mutated at %d", i)
		}
	}
}
