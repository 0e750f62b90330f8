// Package mnemonic renders blob secrets as BIP39 word phrases for paper
// backups. A 32-byte blob secret maps to exactly 24 words.
package mnemonic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	// SecretSize is the blob secret length this package encodes.
	SecretSize = 32
	// WordCount is the phrase length a 32-byte secret produces.
	WordCount = 24
)

// EncodeSecret renders a 32-byte blob secret as a 24-word phrase.
func EncodeSecret(secret []byte) (string, error) {
	if len(secret) != SecretSize {
		return "", fmt.Errorf("secret must be exactly %d bytes (got %d)", SecretSize, len(secret))
	}

	phrase, err := bip39.NewMnemonic(secret)
	if err != nil {
		return "", fmt.Errorf("failed to encode secret: %w", err)
	}
	return phrase, nil
}

// DecodeSecret recovers the 32-byte blob secret from a 24-word phrase.
func DecodeSecret(phrase string) ([]byte, error) {
	phrase = normalize(phrase)

	words := strings.Fields(phrase)
	if len(words) != WordCount {
		return nil, fmt.Errorf("phrase must have %d words (got %d)", WordCount, len(words))
	}
	if !bip39.IsMnemonicValid(phrase) {
		return nil, fmt.Errorf("invalid mnemonic phrase")
	}

	secret, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decode phrase: %w", err)
	}
	return secret, nil
}

// Validate checks that a phrase is a well-formed 24-word secret encoding.
func Validate(phrase string) error {
	_, err := DecodeSecret(phrase)
	return err
}

// Checksum returns a short hex fingerprint of the phrase's secret, for
// labelling paper backups without writing the secret down twice.
func Checksum(phrase string) (string, error) {
	secret, err := DecodeSecret(phrase)
	if err != nil {
		return "", err
	}

	h := sha256.Sum256(secret)
	return hex.EncodeToString(h[:4]), nil
}

func normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(phrase))), " ")
}
