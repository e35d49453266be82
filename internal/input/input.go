/*
   Host line sources for the in opcode's blocking character input pump.

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

// Package input implements the host side of the in opcode's line-buffered
// refill: one implementation for an interactive terminal (line editing and
// history via peterh/liner) and one plain scanner for piped or test input.
package input

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// ErrClosed is returned once the underlying source is exhausted.
var ErrClosed = errors.New("input: source closed")

// scanReader reads lines from an arbitrary io.Reader with bufio.Scanner.
// Used for piped stdin and by this package's tests.
type scanReader struct {
	scanner *bufio.Scanner
}

// NewScanReader wraps r in a LineSource that yields one line at a time,
// LF-terminated (the terminator is re-appended since Scanner strips it).
func NewScanReader(r io.Reader) *scanReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	return &scanReader{scanner: s}
}

func (s *scanReader) NextLine() ([]byte, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, ErrClosed
	}
	line := append(append([]byte(nil), s.scanner.Bytes()...), '\n')
	return line, nil
}

// linerReader is the interactive implementation, used only when stdin is a
// real terminal: it gives the person typing at a running image history and
// basic line editing, the way the teacher's operator console does for its
// own command prompt.
type linerReader struct {
	line *liner.State
}

// NewLinerReader constructs a LineSource backed by peterh/liner. Close must
// be called when the machine halts or faults.
func NewLinerReader() *linerReader {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return &linerReader{line: l}
}

func (l *linerReader) NextLine() ([]byte, error) {
	s, err := l.line.Prompt("")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return nil, ErrClosed
		}
		return nil, err
	}
	l.line.AppendHistory(s)
	return append([]byte(s), '\n'), nil
}

func (l *linerReader) Close() error {
	return l.line.Close()
}

// NewStdin picks the interactive liner-backed reader when stdin is a real
// terminal, and falls back to a plain scanner (piped input, redirected
// files, or a non-interactive test harness) otherwise.
func NewStdin() (interface {
	NextLine() ([]byte, error)
}, func() error) {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		r := NewLinerReader()
		return r, r.Close
	}
	return NewScanReader(os.Stdin), func() error { return nil }
}
