package mnemonic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	secret := make([]byte, SecretSize)
	for i := range secret {
		secret[i] = byte(i)
	}
	return secret
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	phrase, err := EncodeSecret(testSecret())
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), WordCount)

	secret, err := DecodeSecret(phrase)
	require.NoError(t, err)
	assert.Equal(t, testSecret(), secret)
}

func TestEncodeSecretRejectsBadLength(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		_, err := EncodeSecret(make([]byte, size))
		assert.Error(t, err, "size %d", size)
	}
}

func TestDecodeSecretNormalizesWhitespace(t *testing.T) {
	phrase, err := EncodeSecret(testSecret())
	require.NoError(t, err)

	sloppy := "  " + strings.ReplaceAll(phrase, " ", "   ") + "\n"
	secret, err := DecodeSecret(sloppy)
	require.NoError(t, err)
	assert.Equal(t, testSecret(), secret)
}

func TestDecodeSecretRejectsWrongWordCount(t *testing.T) {
	_, err := DecodeSecret("abandon abandon abandon")
	assert.Error(t, err)
}

func TestDecodeSecretRejectsBadChecksumWord(t *testing.T) {
	// The all-zero secret encodes as 23x "abandon" plus checksum word
	// "art"; any other final word fails validation.
	valid := strings.Repeat("abandon ", WordCount-1) + "art"
	secret, err := DecodeSecret(valid)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, SecretSize), secret)

	invalid := strings.Repeat("abandon ", WordCount-1) + "abandon"
	_, err = DecodeSecret(invalid)
	assert.Error(t, err)
}

func TestChecksum(t *testing.T) {
	phrase, err := EncodeSecret(testSecret())
	require.NoError(t, err)

	sum, err := Checksum(phrase)
	require.NoError(t, err)
	assert.Len(t, sum, 8)

	again, err := Checksum(phrase)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
}
