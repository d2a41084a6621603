package buffer

import (
	"github.com/textbuf/textbuf/internal/common/apperrors"
)

var (
	// ErrBuffer is the root of all errors returned by this package.
	ErrBuffer apperrors.Error = apperrors.New("buffer error")

	// ErrClosed is returned when a write is attempted on a closed writer.
	ErrClosed apperrors.Error = ErrBuffer.New("writer is closed")

	// ErrNotClosed is returned when a result is requested from a writer
	// that has not been closed.
	ErrNotClosed apperrors.Error = ErrBuffer.New("writer is not closed")

	// ErrCapacityExceeded is returned when a write would push a buffer
	// past its maximum representable length.
	ErrCapacityExceeded apperrors.Error = ErrBuffer.New("maximum buffer length exceeded")

	// ErrOutOfBounds is returned when an offset or length argument falls
	// outside the written content.
	ErrOutOfBounds apperrors.Error = ErrBuffer.New("offset or length out of bounds")

	// ErrUnsupportedRange is returned when a ranged copy is requested on
	// a representation that cannot address sub-ranges.
	ErrUnsupportedRange apperrors.Error = ErrBuffer.New("ranged copy not supported by this result")

	// ErrSpill wraps I/O failures on the disk spillover path.
	ErrSpill apperrors.Error = ErrBuffer.New("spill file error")
)
