package buffer

import (
	"strings"
	"unsafe"

	"github.com/textbuf/textbuf/internal/chars"
)

// ArrayResult is a result backed by a frozen character array taken over
// from an ArrayWriter. The array is never mutated again, so a string view
// of it can be shared with range and streaming operations without copying;
// only Text materializes an independent string.
type ArrayResult struct {
	buf        []byte // frozen content, owned by this result
	view       string // zero-copy view of buf
	start, end int    // code-unit bounds within view
	units      int    // code-unit length of all of view

	text    textCache
	trimmed trimCache
}

func newArrayResult(buf []byte, units int) *ArrayResult {
	r := &ArrayResult{buf: buf, start: 0, end: units, units: units}
	if len(buf) > 0 {
		// buf is frozen for the lifetime of the result, making the
		// unsafe view sound.
		r.view = unsafe.String(&buf[0], len(buf))
	}
	return r
}

func (r *ArrayResult) narrowed(start, end int) *ArrayResult {
	nr := &ArrayResult{buf: r.buf, view: r.view, start: start, end: end, units: r.units}
	nr.trimmed.prime(nr)
	return nr
}

func (r *ArrayResult) Len() int64 {
	return int64(r.end - r.start)
}

func (r *ArrayResult) IsFastString() bool {
	if r.start == r.end {
		return true
	}
	_, ok := r.text.load()
	return ok
}

func (r *ArrayResult) Text() (string, error) {
	if s, ok := r.text.load(); ok {
		return s, nil
	}
	var s string
	if r.start != r.end {
		// Copy out of the owned array so the returned string is
		// independent of this result.
		s = strings.Clone(chars.Slice(r.view, r.start, r.end))
	}
	return r.text.publish(s), nil
}

func (r *ArrayResult) CopyTo(out Sink) error {
	_, err := out.WriteString(chars.Slice(r.view, r.start, r.end))
	return err
}

func (r *ArrayResult) CopyRangeTo(out Sink, off, n int64) error {
	if off < 0 || n < 0 || off+n > r.Len() {
		return ErrOutOfBounds
	}
	from := r.start + int(off)
	_, err := out.WriteString(chars.Slice(r.view, from, from+int(n)))
	return err
}

func (r *ArrayResult) EncodeTo(out Sink, enc Encoder) error {
	if enc == nil {
		return r.CopyTo(out)
	}
	return enc.EncodeString(chars.Slice(r.view, r.start, r.end), out)
}

func (r *ArrayResult) EncodeRangeTo(out Sink, enc Encoder, off, n int64) error {
	if enc == nil {
		return r.CopyRangeTo(out, off, n)
	}
	if off < 0 || n < 0 || off+n > r.Len() {
		return ErrOutOfBounds
	}
	from := r.start + int(off)
	return enc.EncodeString(chars.Slice(r.view, from, from+int(n)), out)
}

func (r *ArrayResult) Trim() (Result, error) {
	if t, ok := r.trimmed.load(); ok {
		return t, nil
	}
	newStart, newEnd := trimStringRange(r.view, r.start, r.end)
	var t Result
	switch {
	case newStart == newEnd:
		t = Empty()
	case newStart == r.start && newEnd == r.end:
		t = r
	default:
		t = r.narrowed(newStart, newEnd)
	}
	return r.trimmed.publish(t), nil
}
