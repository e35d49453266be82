/*
   Binary image loader for the Synacor-architecture virtual machine.

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

// Package loader turns a raw challenge-binary byte stream into the
// word-addressed memory image the executor expects, per spec §6.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cornwell-vm/synacor-vm/internal/word"
)

// ErrOddImageLength is returned when the image's byte length is not even,
// i.e. it cannot be an exact stream of 16-bit little-endian words.
var ErrOddImageLength = errors.New("loader: image has an odd number of bytes")

// Decode converts raw into a little-endian word stream.
func Decode(raw []byte) ([]word.Word, error) {
	if len(raw)%2 != 0 {
		return nil, ErrOddImageLength
	}
	words := make([]word.Word, len(raw)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(raw[2*i : 2*i+2])
	}
	return words, nil
}

// LoadFile reads path and decodes it into a memory image.
func LoadFile(path string) ([]word.Word, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return Decode(raw)
}
