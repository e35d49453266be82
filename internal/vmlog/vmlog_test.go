package vmlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesDebugAndErrorLinesToFile(t *testing.T) {
	var file bytes.Buffer
	h := NewHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	log := slog.New(h)

	log.Debug("decoded", "pc", 4)
	log.Error("fault", "op", "mod")

	out := file.String()
	if !strings.Contains(out, "decoded") || !strings.Contains(out, "pc=4") {
		t.Fatalf("file output missing debug line: %q", out)
	}
	if !strings.Contains(out, "fault") || !strings.Contains(out, "op=mod") {
		t.Fatalf("file output missing error line: %q", out)
	}
}

func TestSetDebugTogglesGate(t *testing.T) {
	var file bytes.Buffer
	h := NewHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}, false)
	if h.debug {
		t.Fatal("debug should start false")
	}
	h.SetDebug(true)
	if !h.debug {
		t.Fatal("SetDebug(true) did not take effect")
	}
}
