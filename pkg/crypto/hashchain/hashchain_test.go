package hashchain

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainZeroIterations(t *testing.T) {
	secret := []byte("token secret material, 32 bytes!")
	out := Chain(secret, 0)

	assert.Equal(t, secret, out)

	// Returned copy must not alias the input.
	out[0] ^= 0xFF
	assert.NotEqual(t, secret[0], out[0])
}

func TestChainOneIteration(t *testing.T) {
	secret := []byte("token secret material, 32 bytes!")
	expected := sha256.Sum256(secret)

	assert.Equal(t, expected[:], Chain(secret, 1))
}

func TestChainComposition(t *testing.T) {
	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}

	// chain(s, n+1) == sha256(chain(s, n))
	for n := 0; n < 16; n++ {
		prev := Chain(secret, n)
		next := sha256.Sum256(prev)
		assert.Equal(t, next[:], Chain(secret, n+1), "n=%d", n)
	}
}

func TestChainDeterministic(t *testing.T) {
	secret := []byte("token secret material, 32 bytes!")

	a := Chain(secret, 255)
	b := Chain(secret, 255)
	require.Equal(t, a, b)
	assert.Len(t, a, sha256.Size)
}
