package buffer

// NullWriter discards everything written to it. Not a proper buffer, but
// useful to measure the overhead of the writer call surface. The shared
// instance is never closed, so Result is available at any time and always
// returns the shared empty result.
type NullWriter struct{}

var sharedNull = NullWriter{}

// Null returns the shared discarding writer.
func Null() NullWriter {
	return sharedNull
}

func (NullWriter) WriteString(s string) (int, error) {
	return len(s), nil
}

func (NullWriter) WriteRune(r rune) (int, error) {
	return len(string(r)), nil
}

func (NullWriter) WriteRunes(rs []rune) (int, error) {
	return len(string(rs)), nil
}

func (NullWriter) Len() int64 {
	return 0
}

func (NullWriter) Flush() error {
	return nil
}

func (NullWriter) Close() error {
	return nil
}

func (NullWriter) Result() (Result, error) {
	return Empty(), nil
}
