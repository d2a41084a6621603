package buffer

import (
	"github.com/textbuf/textbuf/internal/chars"
)

// StringResult is a result backed by a single owned string, produced by the
// first-string memoization of the array and temp-file writers or directly
// via NewStringResult. When the bounds cover the whole string, Text returns
// the original string untouched, preserving its identity for downstream
// interning and translation tools.
type StringResult struct {
	s string
	// start and end are code-unit bounds within s; units is the code-unit
	// length of all of s.
	start, end, units int

	text    textCache
	trimmed trimCache
}

// NewStringResult returns a result covering all of s.
func NewStringResult(s string) *StringResult {
	units := chars.Count(s)
	return &StringResult{s: s, start: 0, end: units, units: units}
}

func newStringRange(s string, start, end, units int) *StringResult {
	return &StringResult{s: s, start: start, end: end, units: units}
}

func (r *StringResult) Len() int64 {
	return int64(r.end - r.start)
}

func (r *StringResult) IsFastString() bool {
	if r.start == r.end {
		return true
	}
	if r.start == 0 && r.end == r.units {
		return true
	}
	_, ok := r.text.load()
	return ok
}

func (r *StringResult) Text() (string, error) {
	if s, ok := r.text.load(); ok {
		return s, nil
	}
	var s string
	switch {
	case r.start == r.end:
		s = ""
	case r.start == 0 && r.end == r.units:
		s = r.s
	default:
		s = chars.Slice(r.s, r.start, r.end)
	}
	return r.text.publish(s), nil
}

func (r *StringResult) CopyTo(out Sink) error {
	_, err := out.WriteString(chars.Slice(r.s, r.start, r.end))
	return err
}

func (r *StringResult) CopyRangeTo(out Sink, off, n int64) error {
	if off < 0 || n < 0 || off+n > r.Len() {
		return ErrOutOfBounds
	}
	from := r.start + int(off)
	_, err := out.WriteString(chars.Slice(r.s, from, from+int(n)))
	return err
}

func (r *StringResult) EncodeTo(out Sink, enc Encoder) error {
	if enc == nil {
		return r.CopyTo(out)
	}
	return enc.EncodeString(chars.Slice(r.s, r.start, r.end), out)
}

func (r *StringResult) EncodeRangeTo(out Sink, enc Encoder, off, n int64) error {
	if enc == nil {
		return r.CopyRangeTo(out, off, n)
	}
	if off < 0 || n < 0 || off+n > r.Len() {
		return ErrOutOfBounds
	}
	from := r.start + int(off)
	return enc.EncodeString(chars.Slice(r.s, from, from+int(n)), out)
}

func (r *StringResult) Trim() (Result, error) {
	if t, ok := r.trimmed.load(); ok {
		return t, nil
	}
	newStart, newEnd := trimStringRange(r.s, r.start, r.end)
	var t Result
	switch {
	case newStart == newEnd:
		t = Empty()
	case newStart == r.start && newEnd == r.end:
		t = r
	default:
		nt := newStringRange(r.s, newStart, newEnd, r.units)
		nt.trimmed.prime(nt)
		t = nt
	}
	return r.trimmed.publish(t), nil
}
