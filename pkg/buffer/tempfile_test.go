package buffer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textbuf/textbuf/internal/bufpool"
	"github.com/textbuf/textbuf/pkg/tempfiles"
)

func newSpillWriter(t *testing.T) *TempFileWriter {
	t.Helper()
	tf, err := tempfiles.NewDirProvider(t.TempDir()).Create()
	require.NoError(t, err)
	w, err := NewTempFileWriter(tf, bufpool.New())
	require.NoError(t, err)
	return w
}

func TestTempFileWriterEmpty(t *testing.T) {
	w := newSpillWriter(t)
	require.NoError(t, w.Close())
	res, err := w.Result()
	require.NoError(t, err)
	assert.Equal(t, Empty(), res)
}

func TestTempFileWriterFirstStringIdentity(t *testing.T) {
	in := "only write"
	w := newSpillWriter(t)
	_, err := w.WriteString(in)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	res, err := w.Result()
	require.NoError(t, err)
	require.IsType(t, &StringResult{}, res)
	out, err := res.Text()
	require.NoError(t, err)
	assert.True(t, sameString(in, out), "single-string result avoids the disk read")
}

func TestTempFileWriterRoundTrip(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.WriteString("héllo ")
	require.NoError(t, err)
	_, err = w.WriteRune('日')
	require.NoError(t, err)
	_, err = w.WriteRunes([]rune("本語"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	res, err := w.Result()
	require.NoError(t, err)
	require.IsType(t, &TempFileResult{}, res)
	assert.EqualValues(t, 9, res.Len())
	assert.False(t, res.IsFastString())

	out, err := res.Text()
	require.NoError(t, err)
	assert.Equal(t, "héllo 日本語", out)
	assert.True(t, res.IsFastString(), "conversion is cached after the first read")

	var sb strings.Builder
	require.NoError(t, res.CopyTo(&sb))
	assert.Equal(t, "héllo 日本語", sb.String())
}

func TestTempFileWriterAstralRoundTrip(t *testing.T) {
	in := "a\U0001D11Eb\U0001F600"
	w := newSpillWriter(t)
	_, err := w.WriteString(in)
	require.NoError(t, err)
	_, err = w.WriteRune('!')
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.EqualValues(t, 7, w.Len(), "astral runes take two units each")

	res, err := w.Result()
	require.NoError(t, err)
	out, err := res.Text()
	require.NoError(t, err)
	assert.Equal(t, in+"!", out)
}

func TestTempFileFormatIsFixedWidth(t *testing.T) {
	tf, err := tempfiles.NewDirProvider(t.TempDir()).Create()
	require.NoError(t, err)
	w, err := NewTempFileWriter(tf, nil)
	require.NoError(t, err)
	_, err = w.WriteString("ab語\U0001D11E")
	require.NoError(t, err)
	_, err = w.WriteRune('c')
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(tf.Path())
	require.NoError(t, err)
	// 6 code units, two bytes each, big endian, no byte order mark.
	require.Len(t, raw, 12)
	assert.Equal(t, []byte{0x00, 'a', 0x00, 'b'}, raw[:4])
	assert.Equal(t, []byte{0x8a, 0x9e}, raw[4:6])
	assert.Equal(t, []byte{0xd8, 0x34, 0xdd, 0x1e}, raw[6:10], "surrogate pair")
	assert.Equal(t, []byte{0x00, 'c'}, raw[10:12])
}

func TestTempFileWriterClosedBehavior(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.WriteString("ab")
	require.NoError(t, err)
	_, err = w.WriteString("cd")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Flush(), ErrClosed)

	_, err = w.WriteString("x")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = w.WriteRune('x')
	assert.ErrorIs(t, err, ErrClosed)
	_, err = w.WriteRunes([]rune{'x'})
	assert.ErrorIs(t, err, ErrClosed)

	r1, err := w.Result()
	require.NoError(t, err)
	r2, err := w.Result()
	require.NoError(t, err)
	assert.True(t, r1 == r2)
}

func TestTempFileWriterResultBeforeClose(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.Result()
	assert.ErrorIs(t, err, ErrNotClosed)
	require.NoError(t, w.Close())
}

func TestTempFileResultRanges(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.WriteString("0123456789")
	require.NoError(t, err)
	_, err = w.WriteString("abcdefghij")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	res, err := w.Result()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, res.CopyRangeTo(&sb, 8, 4))
	assert.Equal(t, "89ab", sb.String())

	sb.Reset()
	require.NoError(t, res.CopyRangeTo(&sb, 0, 0))
	assert.Equal(t, "", sb.String())

	err = res.CopyRangeTo(&sb, 15, 6)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	err = res.CopyRangeTo(&sb, -1, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestTempFileResultLargeCopy(t *testing.T) {
	// Content larger than one read block exercises the rune carry at
	// block boundaries; three-byte runes never divide the block size
	// evenly.
	chunk := strings.Repeat("語", 1500)
	w := newSpillWriter(t)
	for i := 0; i < 4; i++ {
		_, err := w.WriteString(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	res, err := w.Result()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, res.CopyTo(&sb))
	assert.Equal(t, strings.Repeat(chunk, 4), sb.String())
}

func TestTempFileTrim(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.WriteString(" \t abc ")
	require.NoError(t, err)
	_, err = w.WriteString("def \n ")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	res, err := w.Result()
	require.NoError(t, err)

	trimmed, err := res.Trim()
	require.NoError(t, err)
	require.IsType(t, &TempFileResult{}, trimmed)
	out, err := trimmed.Text()
	require.NoError(t, err)
	assert.Equal(t, "abc def", out)

	again, err := res.Trim()
	require.NoError(t, err)
	assert.Same(t, trimmed, again)

	self, err := trimmed.Trim()
	require.NoError(t, err)
	assert.Same(t, trimmed, self)
}

func TestTempFileTrimAllWhitespace(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.WriteString("  ")
	require.NoError(t, err)
	_, err = w.WriteRune('\n')
	require.NoError(t, err)
	require.NoError(t, w.Close())
	res, err := w.Result()
	require.NoError(t, err)

	trimmed, err := res.Trim()
	require.NoError(t, err)
	assert.Equal(t, Empty(), trimmed)
}

func TestTempFileTrimNoOp(t *testing.T) {
	w := newSpillWriter(t)
	_, err := w.WriteString("ab")
	require.NoError(t, err)
	_, err = w.WriteString("cd")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	res, err := w.Result()
	require.NoError(t, err)

	trimmed, err := res.Trim()
	require.NoError(t, err)
	assert.Same(t, res, trimmed)
}
