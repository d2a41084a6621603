package buffer

import (
	"github.com/textbuf/textbuf/internal/chars"
)

// segmentKind tags the representation of one segment.
type segmentKind uint8

const (
	// segString references a slice of a caller's string without copying.
	segString segmentKind = iota + 1
	// segNewline, segQuote, and segApos are singleton single-character
	// segments for the characters that dominate generated markup.
	segNewline
	segQuote
	segApos
	// segRune holds any other single character.
	segRune
)

// segment is one contiguous run of text recorded by a single append call.
// A segment never has zero length.
type segment struct {
	kind  segmentKind
	str   string // valid for segString
	r     rune   // valid for segRune
	units int    // length in code units; always > 0
}

// initialSegments is the starting capacity of the segment list.
const initialSegments = 16

// SegmentedWriter buffers writes as a list of segments, holding references
// to the callers' strings instead of copying their characters.
//
// SegmentedWriter is not safe for concurrent use.
type SegmentedWriter struct {
	segs   []segment
	units  int64
	closed bool
	result Result
}

// NewSegmentedWriter creates an empty writer.
func NewSegmentedWriter() *SegmentedWriter {
	return &SegmentedWriter{}
}

func (w *SegmentedWriter) add(seg segment) {
	if w.segs == nil {
		w.segs = make([]segment, 0, initialSegments)
	}
	w.segs = append(w.segs, seg)
	w.units += int64(seg.units)
}

// WriteString appends s as one segment, referencing it without copying.
// Single-character strings prefer the singleton segment kinds.
func (w *SegmentedWriter) WriteString(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(s) == 0 {
		return 0, nil
	}
	u := chars.Count(s)
	if u == 1 && len(s) == 1 {
		switch s[0] {
		case '\n':
			w.add(segment{kind: segNewline, units: 1})
			return 1, nil
		case '"':
			w.add(segment{kind: segQuote, units: 1})
			return 1, nil
		case '\'':
			w.add(segment{kind: segApos, units: 1})
			return 1, nil
		}
	}
	w.add(segment{kind: segString, str: s, units: u})
	return len(s), nil
}

// WriteRune appends a single character.
func (w *SegmentedWriter) WriteRune(r rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	switch r {
	case '\n':
		w.add(segment{kind: segNewline, units: 1})
	case '"':
		w.add(segment{kind: segQuote, units: 1})
	case '\'':
		w.add(segment{kind: segApos, units: 1})
	default:
		w.add(segment{kind: segRune, r: r, units: chars.RuneUnits(r)})
	}
	return len(string(r)), nil
}

// WriteRunes appends the given runes as one segment.
func (w *SegmentedWriter) WriteRunes(rs []rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(rs) == 0 {
		return 0, nil
	}
	if len(rs) == 1 {
		return w.WriteRune(rs[0])
	}
	s := string(rs)
	w.add(segment{kind: segString, str: s, units: chars.Count(s)})
	return len(s), nil
}

// Flush fails on a closed writer and is otherwise a no-op; segments are
// already in their final form.
func (w *SegmentedWriter) Flush() error {
	if w.closed {
		return ErrClosed
	}
	return nil
}

// Len returns the number of code units written.
func (w *SegmentedWriter) Len() int64 {
	return w.units
}

// Close freezes the segment list.
func (w *SegmentedWriter) Close() error {
	w.closed = true
	return nil
}

// Result returns the shared empty result when nothing was written, or a
// SegmentedResult spanning every segment with the boundary metadata
// precomputed so single-segment results can take fast paths.
func (w *SegmentedWriter) Result() (Result, error) {
	if !w.closed {
		return nil, ErrNotClosed
	}
	if w.result == nil {
		if w.units == 0 {
			w.result = Empty()
		} else {
			last := len(w.segs) - 1
			w.result = &SegmentedResult{
				segs:     w.segs,
				start:    0,
				end:      w.units,
				startIdx: 0,
				startOff: 0,
				startLen: w.segs[0].units,
				endIdx:   last,
				endOff:   0,
				endLen:   w.segs[last].units,
			}
		}
	}
	return w.result, nil
}
