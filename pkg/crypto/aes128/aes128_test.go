package aes128

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncryptBlockFIPS197(t *testing.T) {
	// Appendix C.1 of FIPS-197
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHex(t, "00112233445566778899aabbccddeeff")
	expected := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	ciphertext, err := EncryptBlock(key, plaintext)
	require.NoError(t, err)
	assert.Equal(t, expected, ciphertext)
}

func TestExpandKey(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")

	roundKeys, err := ExpandKey(key)
	require.NoError(t, err)
	require.Len(t, roundKeys, 11)

	for i, rk := range roundKeys {
		assert.Len(t, rk, KeySize, "round key %d", i)
	}

	assert.Equal(t, key, roundKeys[0])
	assert.Equal(t, mustHex(t, "d6aa74fdd2af72fadaa678f1d6ab76fe"), roundKeys[1])
	assert.Equal(t, mustHex(t, "13111d7fe3944a17f307a78b4d2b30c5"), roundKeys[10])
}

func TestExpandKeyAppendixA(t *testing.T) {
	// Appendix A.1 of FIPS-197 expands 2b7e1516... and ends on d014f9a8...
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")

	roundKeys, err := ExpandKey(key)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "d014f9a8c9ee2589e13f0cc8b6630ca6"), roundKeys[10])
}

func TestExpandKeyRejectsBadLength(t *testing.T) {
	for _, size := range []int{0, 15, 17, 24, 32} {
		_, err := ExpandKey(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidKeyLength, "size %d", size)
	}
}

func TestEncryptBlockRejectsBadLength(t *testing.T) {
	key := make([]byte, KeySize)

	for _, size := range []int{0, 1, 15, 17, 32} {
		_, err := EncryptBlock(key, make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidBlockLength, "size %d", size)
	}

	_, err := EncryptBlock(make([]byte, 8), make([]byte, BlockSize))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestEncryptBlockDoesNotMutateInput(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHex(t, "00112233445566778899aabbccddeeff")
	original := append([]byte(nil), plaintext...)

	_, err := EncryptBlock(key, plaintext)
	require.NoError(t, err)
	assert.Equal(t, original, plaintext)
}
