package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullWriterDiscards(t *testing.T) {
	w := Null()
	n, err := w.WriteString("dropped")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = w.WriteRune('語')
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = w.WriteRunes([]rune("also dropped"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	assert.EqualValues(t, 0, w.Len())
	require.NoError(t, w.Flush())
}

func TestNullWriterResultAlwaysEmpty(t *testing.T) {
	w := Null()
	res, err := w.Result()
	require.NoError(t, err)
	assert.Equal(t, Empty(), res)

	// The shared instance is never closed: writes keep working and the
	// result stays the empty singleton.
	require.NoError(t, w.Close())
	_, err = w.WriteString("still accepted")
	require.NoError(t, err)
	res, err = w.Result()
	require.NoError(t, err)
	assert.Equal(t, Empty(), res)
}
