/*
   Fixed-width hex formatting for machine words.

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

// Package vmhex renders machine words as fixed-width hexadecimal, the way
// the teacher's util/hex renders 370 half-words — adapted here to this
// machine's 16-bit word size.
package vmhex

import "strings"

const digits = "0123456789ABCDEF"

// FormatWord appends a 4-digit uppercase hex rendering of w to str.
func FormatWord(str *strings.Builder, w uint16) {
	for shift := 12; shift >= 0; shift -= 4 {
		str.WriteByte(digits[(w>>uint(shift))&0xf])
	}
}

// FormatWords renders each word in words as 4 hex digits, space-separated.
func FormatWords(words []uint16) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		FormatWord(&b, w)
	}
	return b.String()
}
