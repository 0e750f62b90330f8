package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZero(t *testing.T) {
	data := []byte("sensitive data")
	Zero(data)
	for _, b := range data {
		assert.Equal(t, byte(0), b)
	}
}

func TestClearBytes(t *testing.T) {
	data := []byte{1, 2, 3}
	ClearBytes(&data)
	assert.Nil(t, data)

	// nil-safe
	ClearBytes(nil)
	var empty []byte
	ClearBytes(&empty)
}

func TestConstantTimeCompare(t *testing.T) {
	assert.True(t, ConstantTimeCompare([]byte("abc"), []byte("abc")))
	assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("abd")))
	assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("ab")))
}

func TestRandom(t *testing.T) {
	a, err := Random(32)
	require.NoError(t, err)
	require.Len(t, a, 32)

	b, err := Random(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
