/*
   State-dump collaborator for the "dump" escape hatch.

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

// Package dump is the external "dump(state_snapshot)" collaborator named in
// spec §6: one flat, one-value-per-line text file per machine-state
// element, under a timestamped directory. It never mutates machine state.
package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cornwell-vm/synacor-vm/internal/vm"
)

// Writer implements vm.Dumper, writing snapshots under baseDir.
type Writer struct {
	baseDir string
	// now is overridable for tests; defaults to a real timestamp source
	// supplied by the caller (main.go), since this package must stay
	// testable without depending on wall-clock time.
	now func() string
}

// New builds a Writer that creates one subdirectory per dump under baseDir.
// nowFunc must return a directory-safe timestamp, formatted
// "YYYY-MM-DD--HH-MM-SS" in production.
func New(baseDir string, nowFunc func() string) *Writer {
	return &Writer{baseDir: baseDir, now: nowFunc}
}

// Dump satisfies vm.Dumper. It writes registers.txt, stack.txt,
// program_counter.txt, step_number.txt, and memory.txt, one decimal value
// per line, per spec §6.
func (w *Writer) Dump(s vm.Snapshot) error {
	dir := filepath.Join(w.baseDir, w.now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	files := map[string]string{
		"registers.txt":       joinWords(s.Registers[:]),
		"stack.txt":           joinWords(s.Stack),
		"program_counter.txt": strconv.Itoa(int(s.PC)),
		"step_number.txt":     strconv.FormatUint(s.StepCount, 10),
		"memory.txt":          joinWords(s.Memory),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("dump: writing %s: %w", name, err)
		}
	}
	return nil
}

func joinWords(words []uint16) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strconv.Itoa(int(w)))
		b.WriteByte('\n')
	}
	return b.String()
}
