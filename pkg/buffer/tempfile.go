package buffer

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/textbuf/textbuf/internal/bufpool"
	"github.com/textbuf/textbuf/internal/chars"
	"github.com/textbuf/textbuf/pkg/tempfiles"
)

// utf16be is the fixed-width on-disk codec: two bytes per code unit, big
// endian, no byte order mark. Per-character seeks are index*2.
var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// TempFileWriter buffers writes in a provider-supplied temporary file,
// encoding through a buffered UTF-16BE stream. Lengths count code units,
// not bytes.
//
// TempFileWriter is not safe for concurrent use.
type TempFileWriter struct {
	tf    *tempfiles.TempFile
	pool  *bufpool.Pool
	file  *os.File
	buf   *bufio.Writer
	enc   io.WriteCloser // UTF-8 in, UTF-16BE out into buf
	units int64

	closed bool

	// first-string memo, as in ArrayWriter. Only whole-string appends to
	// an empty writer qualify.
	first    string
	hasFirst bool

	result Result
}

// NewTempFileWriter opens tf for writing. pool may be nil; when present it
// supplies the block buffers used by the eventual result's reads.
func NewTempFileWriter(tf *tempfiles.TempFile, pool *bufpool.Pool) (*TempFileWriter, error) {
	f, err := os.OpenFile(tf.Path(), os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, ErrSpill.MsgErr("opening spill file", err)
	}
	bw := bufio.NewWriterSize(f, bufpool.SlabSize)
	return &TempFileWriter{
		tf:   tf,
		pool: pool,
		file: f,
		buf:  bw,
		enc:  transform.NewWriter(bw, utf16be.NewEncoder()),
	}, nil
}

func (w *TempFileWriter) WriteString(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(s) == 0 {
		return 0, nil
	}
	if w.units == 0 {
		w.first = s
		w.hasFirst = true
	} else {
		w.first = ""
		w.hasFirst = false
	}
	if _, err := io.WriteString(w.enc, s); err != nil {
		return 0, ErrSpill.MsgErr("writing spill file", err)
	}
	w.units += int64(chars.Count(s))
	return len(s), nil
}

func (w *TempFileWriter) WriteRune(r rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	w.first = ""
	w.hasFirst = false
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	if _, err := w.enc.Write(tmp[:n]); err != nil {
		return 0, ErrSpill.MsgErr("writing spill file", err)
	}
	w.units += int64(chars.RuneUnits(r))
	return n, nil
}

func (w *TempFileWriter) WriteRunes(rs []rune) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if len(rs) == 0 {
		return 0, nil
	}
	w.first = ""
	w.hasFirst = false
	s := string(rs)
	if _, err := io.WriteString(w.enc, s); err != nil {
		return 0, ErrSpill.MsgErr("writing spill file", err)
	}
	w.units += int64(chars.Count(s))
	return len(s), nil
}

// Flush pushes buffered bytes to the file. Our writes never end inside a
// rune, so the encoder holds no partial state between calls.
func (w *TempFileWriter) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if err := w.buf.Flush(); err != nil {
		return ErrSpill.MsgErr("flushing spill file", err)
	}
	return nil
}

// Len returns the number of code units written.
func (w *TempFileWriter) Len() int64 {
	return w.units
}

// Close flushes remaining data and releases the file handle.
func (w *TempFileWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.enc.Close()
	if ferr := w.buf.Flush(); err == nil {
		err = ferr
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	w.file = nil
	w.buf = nil
	w.enc = nil
	if err != nil {
		return ErrSpill.MsgErr("closing spill file", err)
	}
	return nil
}

// Result returns the shared empty result, a StringResult when the
// first-string memo is still valid, or a TempFileResult referencing the
// spill file.
func (w *TempFileWriter) Result() (Result, error) {
	if !w.closed {
		return nil, ErrNotClosed
	}
	if w.result == nil {
		switch {
		case w.units == 0:
			w.result = Empty()
		case w.hasFirst:
			w.result = NewStringResult(w.first)
			w.first = ""
		default:
			w.result = newTempFileResult(w.tf, w.pool, 0, w.units)
		}
	}
	return w.result, nil
}
