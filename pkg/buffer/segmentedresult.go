package buffer

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/textbuf/textbuf/internal/chars"
)

// SegmentedResult is a result over a shared segment list. Narrowed results
// produced by trimming share the underlying segments and only adjust the
// boundary description: the first and last covered segment, and the
// in-segment offset and length at each end, all in code units.
type SegmentedResult struct {
	segs []segment

	start    int64 // absolute code-unit position of the first character
	startIdx int   // index of the first covered segment
	startOff int   // code-unit offset into the first segment
	startLen int   // covered code units of the first segment; always > 0

	end    int64 // absolute code-unit position one past the last character
	endIdx int
	endOff int
	endLen int // always > 0

	text    textCache
	trimmed trimCache
}

// segRange returns the covered (offset, length) of segment i, which is
// narrower than the stored segment only at the boundaries.
func (r *SegmentedResult) segRange(i int) (int, int) {
	switch i {
	case r.startIdx:
		return r.startOff, r.startLen
	case r.endIdx:
		return r.endOff, r.endLen
	default:
		return 0, r.segs[i].units
	}
}

// runeAt returns the rune starting at code-unit offset off of seg, along
// with its width in code units.
func runeAt(seg segment, off int) (rune, int) {
	switch seg.kind {
	case segString:
		return chars.RuneAt(seg.str, off)
	case segNewline:
		return '\n', 1
	case segQuote:
		return '"', 1
	case segApos:
		return '\'', 1
	default:
		return seg.r, seg.units
	}
}

// runeBefore returns the rune ending just before code-unit offset end of
// seg, along with its width in code units.
func runeBefore(seg segment, end int) (rune, int) {
	switch seg.kind {
	case segString:
		return chars.LastRuneBefore(seg.str, end)
	case segNewline:
		return '\n', 1
	case segQuote:
		return '"', 1
	case segApos:
		return '\'', 1
	default:
		return seg.r, seg.units
	}
}

func (r *SegmentedResult) Len() int64 {
	return r.end - r.start
}

// IsFastString is true only when the span collapses to one segment fully
// covering its string, or once the conversion has been cached.
func (r *SegmentedResult) IsFastString() bool {
	if _, ok := r.text.load(); ok {
		return true
	}
	if r.startIdx != r.endIdx {
		return false
	}
	seg := r.segs[r.startIdx]
	if seg.kind != segString {
		return true
	}
	return r.startOff == 0 && r.startLen == seg.units
}

// appendSeg writes the covered (off, n) range of segment i to sb.
func (r *SegmentedResult) appendSeg(sb *strings.Builder, i, off, n int) {
	seg := r.segs[i]
	switch seg.kind {
	case segString:
		sb.WriteString(chars.Slice(seg.str, off, off+n))
	case segNewline:
		sb.WriteByte('\n')
	case segQuote:
		sb.WriteByte('"')
	case segApos:
		sb.WriteByte('\'')
	default:
		sb.WriteRune(seg.r)
	}
}

func (r *SegmentedResult) Text() (string, error) {
	if s, ok := r.text.load(); ok {
		return s, nil
	}
	if r.startIdx == r.endIdx {
		seg := r.segs[r.startIdx]
		var s string
		switch seg.kind {
		case segString:
			s = chars.Slice(seg.str, r.startOff, r.startOff+r.startLen)
		case segNewline:
			s = "\n"
		case segQuote:
			s = "\""
		case segApos:
			s = "'"
		default:
			s = string(seg.r)
		}
		return r.text.publish(s), nil
	}
	length := r.end - r.start
	if length > math.MaxInt32 {
		return "", ErrCapacityExceeded
	}
	// The whole point of segments is avoiding this concatenation.
	log.Debug().Int64("length", length).Msg("creating string from segments, zero-copy benefit lost")
	var sb strings.Builder
	sb.Grow(int(length))
	for i := r.startIdx; i <= r.endIdx; i++ {
		off, n := r.segRange(i)
		r.appendSeg(&sb, i, off, n)
	}
	return r.text.publish(sb.String()), nil
}

// writeSeg streams the covered (off, n) range of segment i to out.
func (r *SegmentedResult) writeSeg(out Sink, i, off, n int) error {
	seg := r.segs[i]
	var err error
	switch seg.kind {
	case segString:
		_, err = out.WriteString(chars.Slice(seg.str, off, off+n))
	case segNewline:
		_, err = out.WriteRune('\n')
	case segQuote:
		_, err = out.WriteRune('"')
	case segApos:
		_, err = out.WriteRune('\'')
	default:
		_, err = out.WriteRune(seg.r)
	}
	return err
}

func (r *SegmentedResult) CopyTo(out Sink) error {
	for i := r.startIdx; i <= r.endIdx; i++ {
		off, n := r.segRange(i)
		if err := r.writeSeg(out, i, off, n); err != nil {
			return err
		}
	}
	return nil
}

// CopyRangeTo is not supported on segmented results; addressing a
// sub-range would require walking from the beginning on every call.
func (r *SegmentedResult) CopyRangeTo(out Sink, off, n int64) error {
	if off < 0 || n < 0 || off+n > r.Len() {
		return ErrOutOfBounds
	}
	return ErrUnsupportedRange
}

func (r *SegmentedResult) EncodeTo(out Sink, enc Encoder) error {
	if enc == nil {
		return r.CopyTo(out)
	}
	return r.CopyTo(encodedSink{enc: enc, out: out})
}

// EncodeRangeTo is not supported on segmented results, as CopyRangeTo.
func (r *SegmentedResult) EncodeRangeTo(out Sink, enc Encoder, off, n int64) error {
	if off < 0 || n < 0 || off+n > r.Len() {
		return ErrOutOfBounds
	}
	return ErrUnsupportedRange
}

// Trim walks segment boundaries inward from both ends one character at a
// time. When the start and end land in the same segment, both boundary
// descriptions are adjusted together so they stay consistent.
func (r *SegmentedResult) Trim() (Result, error) {
	if t, ok := r.trimmed.load(); ok {
		return t, nil
	}
	newStart := r.start
	nsIdx, nsOff, nsLen := r.startIdx, r.startOff, r.startLen
	newEnd := r.end
	neIdx, neOff, neLen := r.endIdx, r.endOff, r.endLen

	// Skip past the leading whitespace characters.
trimLeft:
	for newStart < newEnd {
		seg := r.segs[nsIdx]
		// Segments are never empty, so at least one character is
		// inspected before moving on.
		for nsLen > 0 {
			ch, u := runeAt(seg, nsOff)
			if !chars.IsSpace(ch) {
				break trimLeft
			}
			newStart += int64(u)
			nsOff += u
			nsLen -= u
			if nsIdx == neIdx {
				neOff += u
				neLen -= u
			}
			if newEnd == newStart {
				break trimLeft
			}
		}
		nsIdx++
		if nsIdx == neIdx {
			nsOff, nsLen = neOff, neLen
		} else {
			nsOff, nsLen = 0, r.segs[nsIdx].units
		}
	}

	// Skip past the trailing whitespace characters.
	if newEnd > newStart {
		seg := r.segs[neIdx]
	trimRight:
		for {
			for neLen > 0 {
				ch, u := runeBefore(seg, neOff+neLen)
				if !chars.IsSpace(ch) {
					break trimRight
				}
				newEnd -= int64(u)
				neLen -= u
				if nsIdx == neIdx {
					nsLen -= u
				}
				if newEnd == newStart {
					break trimRight
				}
			}
			// Non-whitespace exists at newStart, so the walk always
			// terminates before running off the front.
			neIdx--
			seg = r.segs[neIdx]
			if neIdx == nsIdx {
				neOff, neLen = nsOff, nsLen
			} else {
				neOff, neLen = 0, r.segs[neIdx].units
			}
		}
	}

	var t Result
	switch {
	case newStart == newEnd:
		t = Empty()
	case newStart == r.start && newEnd == r.end:
		t = r
	default:
		nt := &SegmentedResult{
			segs:     r.segs,
			start:    newStart,
			startIdx: nsIdx,
			startOff: nsOff,
			startLen: nsLen,
			end:      newEnd,
			endIdx:   neIdx,
			endOff:   neOff,
			endLen:   neLen,
		}
		nt.trimmed.prime(nt)
		t = nt
	}
	return r.trimmed.publish(t), nil
}
