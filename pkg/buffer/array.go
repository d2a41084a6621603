package buffer

import (
	"unicode/utf8"

	"github.com/textbuf/textbuf/internal/bufpool"
	"github.com/textbuf/textbuf/internal/chars"
)

const (
	// baseAlloc is the first backing allocation of an ArrayWriter, taken
	// from the pool when one is supplied.
	baseAlloc = bufpool.SlabSize

	// maxUnits is the maximum buffer length in UTF-16 code units. Writers
	// that may need more should be wrapped in an AutoWriter.
	maxUnits = 1 << 30

	// shrinkLimit is the byte size at or under which a closed buffer is
	// copied into a right-sized array so the oversized slab can be
	// recycled.
	shrinkLimit = baseAlloc / 8
)

// arrayState tracks the first-string memoization of an ArrayWriter.
type arrayState uint8

const (
	// stateEmpty means nothing has been written.
	stateEmpty arrayState = iota
	// stateFirstString means exactly one string has been written and is
	// held by reference instead of being copied into the backing array.
	stateFirstString
	// stateGeneral means content lives in the backing array.
	stateGeneral
)

// ArrayWriter buffers writes in a flat growable array. Capacity doubles
// from a fixed base allocation; the maximum length is 2^30 code units.
//
// ArrayWriter is not safe for concurrent use.
type ArrayWriter struct {
	buf    []byte // UTF-8 content; nil after ownership moves to the result
	units  int64  // code units written; frozen once closed
	state  arrayState
	first  string // the memoized first string, valid in stateFirstString
	closed bool
	pool   *bufpool.Pool
	result Result
}

// NewArrayWriter creates an empty writer. pool may be nil, in which case
// backing arrays are plain allocations and nothing is recycled.
func NewArrayWriter(pool *bufpool.Pool) *ArrayWriter {
	return &ArrayWriter{pool: pool}
}

// ensure makes room for addBytes more bytes of content, materializing the
// first-string memo into the backing array when needed.
func (w *ArrayWriter) ensure(addBytes int) {
	need := len(w.buf) + addBytes
	if w.state == stateFirstString {
		need += len(w.first)
	}
	if need > cap(w.buf) {
		newCap := cap(w.buf)
		if newCap == 0 {
			newCap = baseAlloc
		}
		for newCap < need {
			newCap <<= 1
		}
		var newBuf []byte
		if newCap == baseAlloc {
			newBuf = w.pool.Get()[:0]
		} else {
			newBuf = make([]byte, 0, newCap)
		}
		newBuf = append(newBuf, w.buf...)
		if cap(w.buf) == baseAlloc {
			w.pool.Put(w.buf[:baseAlloc])
		}
		w.buf = newBuf
	}
	if w.state == stateFirstString {
		w.buf = append(w.buf, w.first...)
		w.first = ""
	}
	w.state = stateGeneral
}

// checkCapacity fails when adding addUnits would exceed the maximum
// representable length.
func (w *ArrayWriter) checkCapacity(addUnits int64) error {
	if w.units+addUnits > maxUnits {
		return ErrCapacityExceeded
	}
	return nil
}

// WriteString appends s. The first string written to an otherwise-empty
// writer is kept by reference; its identity survives into the result when
// nothing else is written.
func (w *ArrayWriter) WriteString(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(s) == 0 {
		return 0, nil
	}
	u := int64(chars.Count(s))
	if err := w.checkCapacity(u); err != nil {
		return 0, err
	}
	if w.state == stateEmpty {
		w.first = s
		w.state = stateFirstString
	} else {
		w.ensure(len(s))
		w.buf = append(w.buf, s...)
	}
	w.units += u
	return len(s), nil
}

// WriteRune appends a single rune.
func (w *ArrayWriter) WriteRune(r rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	u := int64(chars.RuneUnits(r))
	if err := w.checkCapacity(u); err != nil {
		return 0, err
	}
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	w.ensure(n)
	w.buf = append(w.buf, tmp[:n]...)
	w.units += u
	return n, nil
}

// WriteRunes appends the given runes. Unlike WriteString this never
// memoizes, since the caller retains ownership of the slice.
func (w *ArrayWriter) WriteRunes(rs []rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(rs) == 0 {
		return 0, nil
	}
	s := string(rs)
	u := int64(chars.Count(s))
	if err := w.checkCapacity(u); err != nil {
		return 0, err
	}
	w.ensure(len(s))
	w.buf = append(w.buf, s...)
	w.units += u
	return len(s), nil
}

// Flush fails on a closed writer and is otherwise a no-op.
func (w *ArrayWriter) Flush() error {
	if w.closed {
		return ErrClosed
	}
	return nil
}

// Len returns the number of code units written.
func (w *ArrayWriter) Len() int64 {
	return w.units
}

// Close freezes the writer. Small buffers are copied into a right-sized
// array so the base slab can go back to the pool.
func (w *ArrayWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.state == stateGeneral && len(w.buf) > 0 && len(w.buf) <= shrinkLimit {
		old := w.buf
		w.buf = append(make([]byte, 0, len(old)), old...)
		if cap(old) == baseAlloc {
			w.pool.Put(old[:baseAlloc])
		}
	}
	return nil
}

// Result returns, in priority order, the shared empty result, a
// StringResult when the first-string memo is still valid, or an
// ArrayResult over everything written. Ownership of the backing array
// moves to the result.
func (w *ArrayWriter) Result() (Result, error) {
	if !w.closed {
		return nil, ErrNotClosed
	}
	if w.result == nil {
		switch {
		case w.units == 0:
			w.result = Empty()
		case w.state == stateFirstString:
			w.result = NewStringResult(w.first)
			w.first = ""
		default:
			w.result = newArrayResult(w.buf, int(w.units))
		}
		w.buf = nil
	}
	return w.result, nil
}
