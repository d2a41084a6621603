// Package buffer implements output buffering for incrementally accumulated
// text. A caller writes strings and runes into a Writer, closes it, and
// obtains an immutable Result that can be measured, converted to a string,
// streamed to a Sink (optionally through an Encoder), and trimmed of
// surrounding whitespace, all without re-copying the accumulated data when
// avoidable.
//
// Four storage strategies are provided: a flat growable array
// (ArrayWriter), a zero-copy segment list (SegmentedWriter), a disk-backed
// spillover buffer (TempFileWriter), and an automatic wrapper that migrates
// to disk once a size threshold is crossed (AutoWriter).
//
// All lengths and range offsets count UTF-16 code units, matching the
// fixed-width on-disk spill format. Writers are single-owner and carry no
// internal locking; Results are immutable and safe for concurrent readers.
package buffer

// Sink is any destination accepting bulk character writes. The method set
// is chosen so *strings.Builder, *bytes.Buffer, and *bufio.Writer satisfy
// it directly, as does every Writer in this package. The int results count
// bytes, following the standard library convention.
type Sink interface {
	WriteString(s string) (int, error)
	WriteRune(r rune) (int, error)
}

// Writer is a mutable, single-owner text buffer. Ranged writes are
// expressed by slicing the argument (s[a:b], rs[a:b]); appending another
// buffer's contents is Result.CopyTo(writer).
//
// Once Close has been called, all write methods fail with ErrClosed and
// Result becomes available. Calling Result before Close fails with
// ErrNotClosed.
type Writer interface {
	Sink

	// WriteRunes appends the given runes. It reports the number of bytes
	// in the UTF-8 encoding of the runes written.
	WriteRunes(rs []rune) (int, error)

	// Len returns the number of UTF-16 code units written so far. It is
	// frozen once the writer is closed.
	Len() int64

	// Flush pushes any buffered data toward the underlying storage.
	Flush() error

	// Close freezes the writer. Closing an already-closed writer is a
	// no-op.
	Close() error

	// Result returns the immutable result of everything written. The
	// same value is returned on every call.
	Result() (Result, error)
}

// Result is the immutable, shareable artifact produced by closing a
// Writer. Results may be read concurrently from any number of goroutines;
// the Text and Trim memoizations are idempotent single-assignment caches.
type Result interface {
	// Len returns the content length in UTF-16 code units.
	Len() int64

	// IsFastString reports whether Text requires no allocation or copy,
	// either because the value is already cached or because the result
	// already is exactly one owned string.
	IsFastString() bool

	// Text returns the content as a string. The conversion is computed
	// once and cached.
	Text() (string, error)

	// CopyTo streams the content to out without necessarily
	// materializing a string.
	CopyTo(out Sink) error

	// CopyRangeTo streams the sub-range [off, off+n) to out. Offsets
	// count UTF-16 code units. Representations that cannot address a
	// sub-range fail with ErrUnsupportedRange.
	CopyRangeTo(out Sink, off, n int64) error

	// EncodeTo streams the content through enc to out. A nil encoder is
	// equivalent to CopyTo.
	EncodeTo(out Sink, enc Encoder) error

	// EncodeRangeTo streams the sub-range [off, off+n) through enc.
	EncodeRangeTo(out Sink, enc Encoder, off, n int64) error

	// Trim returns this result with leading and trailing whitespace
	// removed: the receiver itself when there is nothing to trim, the
	// shared empty result when the content is entirely whitespace, or a
	// narrower result of the same kind otherwise. The answer is computed
	// once and cached.
	Trim() (Result, error)
}

var (
	_ Writer = (*ArrayWriter)(nil)
	_ Writer = (*SegmentedWriter)(nil)
	_ Writer = (*TempFileWriter)(nil)
	_ Writer = (*AutoWriter)(nil)
	_ Writer = NullWriter{}

	_ Result = emptyResult{}
	_ Result = (*StringResult)(nil)
	_ Result = (*ArrayResult)(nil)
	_ Result = (*SegmentedResult)(nil)
	_ Result = (*TempFileResult)(nil)
)
