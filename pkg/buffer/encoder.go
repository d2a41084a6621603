package buffer

import (
	"golang.org/x/text/transform"
)

// Encoder transforms text on its way to a Sink. Implementations receive
// the same bulk-write surface that sinks expose and decide what to forward.
type Encoder interface {
	EncodeString(s string, out Sink) error
	EncodeRune(r rune, out Sink) error
}

// encodedSink adapts an (Encoder, Sink) pair back into a Sink so streaming
// code paths can stay encoder-agnostic.
type encodedSink struct {
	enc Encoder
	out Sink
}

func (e encodedSink) WriteString(s string) (int, error) {
	if err := e.enc.EncodeString(s, e.out); err != nil {
		return 0, err
	}
	return len(s), nil
}

func (e encodedSink) WriteRune(r rune) (int, error) {
	if err := e.enc.EncodeRune(r, e.out); err != nil {
		return 0, err
	}
	return len(string(r)), nil
}

// TransformerEncoder adapts a golang.org/x/text/transform.Transformer into
// an Encoder. The transformer is reset for every chunk, so it must be
// stateless across chunk boundaries (rune mappers, case folders, and the
// like).
type TransformerEncoder struct {
	t transform.Transformer
}

// NewTransformerEncoder wraps t.
func NewTransformerEncoder(t transform.Transformer) *TransformerEncoder {
	return &TransformerEncoder{t: t}
}

// EncodeString transforms s and writes the transformed text to out.
func (e *TransformerEncoder) EncodeString(s string, out Sink) error {
	res, _, err := transform.String(e.t, s)
	if err != nil {
		return ErrBuffer.MsgErr("transforming text", err)
	}
	_, err = out.WriteString(res)
	return err
}

// EncodeRune transforms a single rune and writes the result to out.
func (e *TransformerEncoder) EncodeRune(r rune, out Sink) error {
	return e.EncodeString(string(r), out)
}
