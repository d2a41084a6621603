package buffer

import (
	"github.com/rs/zerolog/log"

	"github.com/textbuf/textbuf/internal/bufpool"
	"github.com/textbuf/textbuf/internal/chars"
	"github.com/textbuf/textbuf/pkg/tempfiles"
)

// DefaultSpillThreshold is the accumulated length, in code units, at which
// an AutoWriter migrates its content to a spill file.
const DefaultSpillThreshold = 4 << 20

// AutoOption configures an AutoWriter.
type AutoOption func(*AutoWriter)

// WithThreshold overrides the spill threshold.
func WithThreshold(units int64) AutoOption {
	return func(w *AutoWriter) {
		if units > 0 {
			w.threshold = units
		}
	}
}

// WithPool supplies the buffer pool handed to spill writers and their
// results.
func WithPool(pool *bufpool.Pool) AutoOption {
	return func(w *AutoWriter) {
		w.pool = pool
	}
}

// AutoWriter delegates to an initial in-memory writer and migrates its
// content to a TempFileWriter the first time an append would reach the
// threshold. The migration happens at most once and is never reconsidered.
//
// AutoWriter is not safe for concurrent use.
type AutoWriter struct {
	provider  tempfiles.Provider
	pool      *bufpool.Pool
	threshold int64
	inner     Writer
	initial   bool
}

// NewAutoWriter wraps inner. If inner is already a TempFileWriter the
// writer starts spilled and no migration ever happens.
func NewAutoWriter(inner Writer, provider tempfiles.Provider, opts ...AutoOption) *AutoWriter {
	w := &AutoWriter{
		provider:  provider,
		threshold: DefaultSpillThreshold,
		inner:     inner,
		initial:   true,
	}
	if _, ok := inner.(*TempFileWriter); ok {
		w.initial = false
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Spilled reports whether content now lives in a spill file.
func (w *AutoWriter) Spilled() bool {
	return !w.initial
}

// switchIfNeeded performs the one-time migration when the post-append
// length would reach the threshold: close the inner writer, stream its
// result into a fresh spill writer, and swap. No append interleaves with
// the migration.
func (w *AutoWriter) switchIfNeeded(addUnits int64) error {
	if !w.initial || w.inner.Len()+addUnits < w.threshold {
		return nil
	}
	tf, err := w.provider.Create()
	if err != nil {
		return ErrSpill.MsgErr("creating spill file", err)
	}
	log.Debug().Str("path", tf.Path()).Int64("threshold", w.threshold).
		Msg("switching to spill file")
	if err := w.inner.Close(); err != nil {
		return err
	}
	res, err := w.inner.Result()
	if err != nil {
		return err
	}
	tw, err := NewTempFileWriter(tf, w.pool)
	if err != nil {
		return err
	}
	if err := res.CopyTo(tw); err != nil {
		return err
	}
	w.inner = tw
	w.initial = false
	return nil
}

func (w *AutoWriter) WriteString(s string) (int, error) {
	if w.initial {
		if err := w.switchIfNeeded(int64(chars.Count(s))); err != nil {
			return 0, err
		}
	}
	return w.inner.WriteString(s)
}

func (w *AutoWriter) WriteRune(r rune) (int, error) {
	if w.initial {
		if err := w.switchIfNeeded(int64(chars.RuneUnits(r))); err != nil {
			return 0, err
		}
	}
	return w.inner.WriteRune(r)
}

func (w *AutoWriter) WriteRunes(rs []rune) (int, error) {
	if w.initial {
		var u int64
		for _, r := range rs {
			u += int64(chars.RuneUnits(r))
		}
		if err := w.switchIfNeeded(u); err != nil {
			return 0, err
		}
	}
	return w.inner.WriteRunes(rs)
}

func (w *AutoWriter) Flush() error {
	return w.inner.Flush()
}

func (w *AutoWriter) Len() int64 {
	return w.inner.Len()
}

func (w *AutoWriter) Close() error {
	return w.inner.Close()
}

func (w *AutoWriter) Result() (Result, error) {
	return w.inner.Result()
}
