package validation

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/sa015bcr/keygen/pkg/registry"
)

const (
	// SeedHexDigits is the number of hex digits a 5-byte seed needs.
	SeedHexDigits = 10
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// seedSeparators are cosmetic characters users paste along with seeds
// ("8C:E7:D1:FD:06", "8c e7 d1 fd 06", ...).
const seedSeparators = " ,:_-"

// NormalizeSeed strips separators from human-entered seed text.
func NormalizeSeed(input string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(input) {
		if !strings.ContainsRune(seedSeparators, ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// ParseSeed normalizes and decodes a 5-byte seed from user input.
func ParseSeed(input string) ([]byte, error) {
	filtered := NormalizeSeed(input)

	if len(filtered) != SeedHexDigits {
		return nil, fmt.Errorf("seed must be %d hex digits (got %d)", SeedHexDigits, len(filtered))
	}
	if !hexPattern.MatchString(filtered) {
		return nil, fmt.Errorf("seed is not valid hex")
	}

	seed, err := hex.DecodeString(filtered)
	if err != nil {
		return nil, fmt.Errorf("seed is not valid hex: %w", err)
	}
	return seed, nil
}

// ParseAlgoID parses a decimal or 0x-prefixed hex algorithm selector.
func ParseAlgoID(input string) (uint16, error) {
	return registry.ParseID(input)
}

// ValidateBlobText performs a cheap format precheck before the codec runs:
// printable ASCII and minimum length. The codec does the real validation.
func ValidateBlobText(blob string) error {
	blob = strings.TrimSpace(blob)
	if len(blob) < 62 {
		return fmt.Errorf("blob must be at least 62 characters (got %d)", len(blob))
	}
	for i, ch := range blob {
		if ch < '!' || ch > '~' {
			return fmt.Errorf("blob contains non-printable character at position %d", i)
		}
	}
	return nil
}

// SanitizeInput trims surrounding whitespace and normalizes line endings.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}
