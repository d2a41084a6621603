// Package chars provides UTF-16 code-unit accounting over ordinary Go
// UTF-8 strings. Buffer lengths, range offsets, and disk positions in this
// project all count UTF-16 code units; text itself stays UTF-8 in memory.
// All functions take ASCII fast paths, where byte index and unit index are
// the same thing.
package chars

import (
	"unicode"
	"unicode/utf8"
)

// Count returns the number of UTF-16 code units needed to represent s.
// Runes outside the Basic Multilingual Plane count as two units.
func Count(s string) int {
	n := len(s)
	// ASCII-only strings need no decoding.
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return n
	}
	n = 0
	for _, r := range s {
		n += RuneUnits(r)
	}
	return n
}

// RuneUnits returns the number of UTF-16 code units used to encode r.
func RuneUnits(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// ByteOffset returns the byte index in s of the unit index u.
// u must be in [0, Count(s)] and must not split a surrogate pair.
func ByteOffset(s string, u int) int {
	if u == 0 {
		return 0
	}
	if u == len(s) {
		// Common case: ASCII, or the caller asked for the end of an
		// ASCII-sized prefix. Verified by the scan below otherwise.
		ascii := true
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				ascii = false
				break
			}
		}
		if ascii {
			return u
		}
	}
	units := 0
	for i, r := range s {
		if units == u {
			return i
		}
		units += RuneUnits(r)
	}
	if units == u {
		return len(s)
	}
	panic("chars: unit offset out of range")
}

// Slice returns the substring of s covering unit range [u0, u1).
// The returned string shares s's backing bytes.
func Slice(s string, u0, u1 int) string {
	if u0 == u1 {
		return ""
	}
	b0 := ByteOffset(s, u0)
	b1 := b0 + ByteOffset(s[b0:], u1-u0)
	return s[b0:b1]
}

// IsSpace reports whether r is whitespace for trimming purposes: any
// character at or below U+0020, or anything the Unicode space category
// matches. There are no whitespace characters outside the BMP, so
// surrogate-pair runes never match.
func IsSpace(r rune) bool {
	return (r >= 0 && r <= ' ') || unicode.IsSpace(r)
}

// RuneAt returns the rune beginning at unit index u of s, along with the
// number of units it occupies. u must address the start of a rune.
func RuneAt(s string, u int) (rune, int) {
	r, _ := utf8.DecodeRuneInString(s[ByteOffset(s, u):])
	return r, RuneUnits(r)
}

// LastRuneBefore returns the rune ending just before unit index u of s,
// along with the number of units it occupies.
func LastRuneBefore(s string, u int) (rune, int) {
	r, _ := utf8.DecodeLastRuneInString(s[:ByteOffset(s, u)])
	return r, RuneUnits(r)
}
