package buffer

// emptyResult is the shared result of zero-length buffers. Every operation
// is a constant.
type emptyResult struct{}

var sharedEmpty Result = emptyResult{}

// Empty returns the shared zero-length result.
func Empty() Result {
	return sharedEmpty
}

func (emptyResult) Len() int64 {
	return 0
}

func (emptyResult) IsFastString() bool {
	return true
}

func (emptyResult) Text() (string, error) {
	return "", nil
}

func (emptyResult) CopyTo(out Sink) error {
	return nil
}

func (emptyResult) CopyRangeTo(out Sink, off, n int64) error {
	if off != 0 || n != 0 {
		return ErrOutOfBounds
	}
	return nil
}

func (emptyResult) EncodeTo(out Sink, enc Encoder) error {
	return nil
}

func (emptyResult) EncodeRangeTo(out Sink, enc Encoder, off, n int64) error {
	if off != 0 || n != 0 {
		return ErrOutOfBounds
	}
	return nil
}

func (e emptyResult) Trim() (Result, error) {
	return e, nil
}
