package buffer

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/transform"

	"github.com/textbuf/textbuf/internal/bufpool"
	"github.com/textbuf/textbuf/internal/chars"
	"github.com/textbuf/textbuf/pkg/tempfiles"
)

// TempFileResult is a result backed by a UTF-16BE spill file. Narrowed
// results produced by trimming share the same file reference; the file is
// never duplicated. The file's lifecycle belongs to whoever owns the
// tempfiles provider.
type TempFileResult struct {
	tf         *tempfiles.TempFile
	pool       *bufpool.Pool
	start, end int64 // code-unit bounds; byte position is index*2

	text    textCache
	trimmed trimCache
}

func newTempFileResult(tf *tempfiles.TempFile, pool *bufpool.Pool, start, end int64) *TempFileResult {
	return &TempFileResult{tf: tf, pool: pool, start: start, end: end}
}

func (r *TempFileResult) Len() int64 {
	return r.end - r.start
}

func (r *TempFileResult) IsFastString() bool {
	if r.start == r.end {
		return true
	}
	_, ok := r.text.load()
	return ok
}

// Text reads the whole covered range off disk and decodes it. This defeats
// the point of spilling to disk, so it is logged.
func (r *TempFileResult) Text() (string, error) {
	if s, ok := r.text.load(); ok {
		return s, nil
	}
	if r.start == r.end {
		return r.text.publish(""), nil
	}
	length := r.end - r.start
	if length > math.MaxInt32 {
		return "", ErrCapacityExceeded
	}
	log.Info().Str("path", r.tf.Path()).Int64("length", length).
		Msg("creating string from spill file, buffering benefit lost")
	f, err := os.Open(r.tf.Path())
	if err != nil {
		return "", ErrSpill.MsgErr("opening spill file", err)
	}
	defer f.Close()
	section := io.NewSectionReader(f, r.start*2, length*2)
	dec := transform.NewReader(section, utf16be.NewDecoder())
	var sb strings.Builder
	sb.Grow(int(length))
	block := r.pool.Get()
	defer r.pool.Put(block)
	if _, err := io.CopyBuffer(&sb, dec, block); err != nil {
		return "", ErrSpill.MsgErr("reading spill file", err)
	}
	return r.text.publish(sb.String()), nil
}

// writeRange streams the absolute code-unit range [from, to) to out,
// decoding fixed-size blocks as it goes. Chunks handed to the sink are
// always whole runes.
func (r *TempFileResult) writeRange(out Sink, from, to int64) error {
	if from == to {
		return nil
	}
	f, err := os.Open(r.tf.Path())
	if err != nil {
		return ErrSpill.MsgErr("opening spill file", err)
	}
	defer f.Close()
	section := io.NewSectionReader(f, from*2, (to-from)*2)
	dec := transform.NewReader(section, utf16be.NewDecoder())
	block := r.pool.Get()
	defer r.pool.Put(block)
	carry := 0
	for {
		n, rerr := dec.Read(block[carry:])
		n += carry
		carry = 0
		if n > 0 {
			// A block may end between the bytes of a rune; hold the
			// partial tail back for the next block so the sink only
			// ever sees whole runes.
			emit := n
			if rerr == nil {
				ls := n - 1
				for ls > 0 && !utf8.RuneStart(block[ls]) {
					ls--
				}
				if !utf8.FullRune(block[ls:n]) {
					emit = ls
				}
			}
			if emit > 0 {
				if _, err := out.WriteString(string(block[:emit])); err != nil {
					return err
				}
			}
			carry = copy(block, block[emit:n])
		}
		if rerr == io.EOF {
			if carry > 0 {
				if _, err := out.WriteString(string(block[:carry])); err != nil {
					return err
				}
			}
			return nil
		}
		if rerr != nil {
			return ErrSpill.MsgErr("reading spill file", rerr)
		}
	}
}

func (r *TempFileResult) CopyTo(out Sink) error {
	return r.writeRange(out, r.start, r.end)
}

func (r *TempFileResult) CopyRangeTo(out Sink, off, n int64) error {
	if off < 0 || n < 0 || r.start+off+n > r.end {
		return ErrOutOfBounds
	}
	return r.writeRange(out, r.start+off, r.start+off+n)
}

func (r *TempFileResult) EncodeTo(out Sink, enc Encoder) error {
	if enc == nil {
		return r.CopyTo(out)
	}
	return r.writeRange(encodedSink{enc: enc, out: out}, r.start, r.end)
}

func (r *TempFileResult) EncodeRangeTo(out Sink, enc Encoder, off, n int64) error {
	if enc == nil {
		return r.CopyRangeTo(out, off, n)
	}
	if off < 0 || n < 0 || r.start+off+n > r.end {
		return ErrOutOfBounds
	}
	return r.writeRange(encodedSink{enc: enc, out: out}, r.start+off, r.start+off+n)
}

// Trim seeks to one code unit at a time from each end to find the trimmed
// bounds, then shares the same file reference in the narrowed result.
func (r *TempFileResult) Trim() (Result, error) {
	if t, ok := r.trimmed.load(); ok {
		return t, nil
	}
	f, err := os.Open(r.tf.Path())
	if err != nil {
		return nil, ErrSpill.MsgErr("opening spill file", err)
	}
	defer f.Close()
	var unit [2]byte
	newStart := r.start
	for newStart < r.end {
		if _, err := f.ReadAt(unit[:], newStart*2); err != nil {
			return nil, ErrSpill.MsgErr("reading spill file", err)
		}
		// Whitespace only exists in the BMP, so a single code unit is
		// always enough to decide.
		if !chars.IsSpace(rune(binary.BigEndian.Uint16(unit[:]))) {
			break
		}
		newStart++
	}
	newEnd := r.end
	for newEnd > newStart {
		if _, err := f.ReadAt(unit[:], (newEnd-1)*2); err != nil {
			return nil, ErrSpill.MsgErr("reading spill file", err)
		}
		if !chars.IsSpace(rune(binary.BigEndian.Uint16(unit[:]))) {
			break
		}
		newEnd--
	}
	var t Result
	switch {
	case newStart == newEnd:
		t = Empty()
	case newStart == r.start && newEnd == r.end:
		t = r
	default:
		nt := newTempFileResult(r.tf, r.pool, newStart, newEnd)
		nt.trimmed.prime(nt)
		t = nt
	}
	return r.trimmed.publish(t), nil
}
