package uuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()
	assert.NotEqual(t, a, b)
	assert.True(t, IsUUIDv7(a))
	assert.True(t, IsUUIDv7(b))
}

func TestParseRoundTrip(t *testing.T) {
	a := New()
	parsed, err := Parse(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("not-a-uuid")
	assert.Error(t, err)
}
