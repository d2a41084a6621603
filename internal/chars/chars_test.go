package chars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"two byte", "héllo", 5},
		{"three byte", "日本語", 3},
		{"astral pair", "a\U0001D11Eb", 4},
		{"only astral", "\U0001F600", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.in))
		})
	}
}

func TestRuneUnits(t *testing.T) {
	assert.Equal(t, 1, RuneUnits('a'))
	assert.Equal(t, 1, RuneUnits('é'))
	assert.Equal(t, 1, RuneUnits('語'))
	assert.Equal(t, 2, RuneUnits('\U0001D11E'))
}

func TestByteOffset(t *testing.T) {
	s := "a語\U0001D11Ez"
	// units: a=1 at byte 0, 語=1 at byte 1, astral=2 at byte 4, z=1 at byte 8
	assert.Equal(t, 0, ByteOffset(s, 0))
	assert.Equal(t, 1, ByteOffset(s, 1))
	assert.Equal(t, 4, ByteOffset(s, 2))
	assert.Equal(t, 8, ByteOffset(s, 4))
	assert.Equal(t, len(s), ByteOffset(s, 5))

	assert.Equal(t, 3, ByteOffset("abcdef", 3))
	assert.Equal(t, 6, ByteOffset("abcdef", 6))
}

func TestSlice(t *testing.T) {
	s := "a語\U0001D11Ez"
	assert.Equal(t, "", Slice(s, 2, 2))
	assert.Equal(t, "a", Slice(s, 0, 1))
	assert.Equal(t, "語", Slice(s, 1, 2))
	assert.Equal(t, "\U0001D11E", Slice(s, 2, 4))
	assert.Equal(t, s, Slice(s, 0, 5))
	assert.Equal(t, "cde", Slice("abcdef", 2, 5))
}

func TestRuneAt(t *testing.T) {
	s := "a語\U0001D11Ez"
	r, u := RuneAt(s, 0)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, u)
	r, u = RuneAt(s, 1)
	assert.Equal(t, '語', r)
	assert.Equal(t, 1, u)
	r, u = RuneAt(s, 2)
	assert.Equal(t, '\U0001D11E', r)
	assert.Equal(t, 2, u)
}

func TestLastRuneBefore(t *testing.T) {
	s := "a語\U0001D11Ez"
	r, u := LastRuneBefore(s, 5)
	assert.Equal(t, 'z', r)
	assert.Equal(t, 1, u)
	r, u = LastRuneBefore(s, 4)
	assert.Equal(t, '\U0001D11E', r)
	assert.Equal(t, 2, u)
	r, u = LastRuneBefore(s, 1)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, u)
}

func TestIsSpace(t *testing.T) {
	assert.True(t, IsSpace(' '))
	assert.True(t, IsSpace('\t'))
	assert.True(t, IsSpace('\n'))
	assert.True(t, IsSpace('\r'))
	// Control characters at or below U+0020 trim like java-style trim.
	assert.True(t, IsSpace('\x00'))
	assert.True(t, IsSpace('\x1f'))
	// Unicode space category beyond ASCII.
	assert.True(t, IsSpace('\u00a0'))
	assert.True(t, IsSpace('\u2003'))

	assert.False(t, IsSpace('a'))
	assert.False(t, IsSpace('!'))
	assert.False(t, IsSpace('語'))
	assert.False(t, IsSpace('\U0001D11E'))
}
