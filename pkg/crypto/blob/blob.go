// Package blob decodes and authenticates sa015bcr password blobs.
//
// A blob is a 62-character ASCII string: a 2-character prefix ("01" or "03")
// followed by 60 Base64 characters that decode to a 44-byte payload:
//
//	secret[32] || minSeed[2, big-endian] || algoID[2, big-endian] || tag[8]
//
// The tag is the first 8 bytes of SHA-256 over the preceding 36 bytes. It is
// a truncated unkeyed hash, so it detects corruption and typos, not
// tampering by anyone who knows the format.
package blob

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sa015bcr/keygen/pkg/secure"
)

const (
	// Length is the minimum blob string length: prefix plus payload.
	Length = prefixLen + payloadLen

	prefixLen  = 2
	payloadLen = 60

	// decoded payload layout
	rawLen    = 44
	secretLen = 32
	tagLen    = 8
	taggedLen = rawLen - tagLen // bytes covered by the tag
)

var (
	// ErrTooShort is returned for blobs shorter than 62 characters.
	ErrTooShort = errors.New("blob: too short, expect prefix plus 60 characters")

	// ErrUnsupportedPrefix is returned for prefixes other than "01" or "03".
	ErrUnsupportedPrefix = errors.New(`blob: unsupported prefix, expected "01" or "03"`)

	// ErrPayloadInvalid is returned when the payload is not valid Base64 or
	// does not decode to exactly 44 bytes.
	ErrPayloadInvalid = errors.New("blob: payload must be 60 Base64 characters decoding to 44 bytes")

	// ErrChecksumMismatch is returned when the trailing tag does not match
	// the recomputed digest. The blob is corrupted or mistyped.
	ErrChecksumMismatch = errors.New("blob: checksum mismatch, blob is not authentic")
)

// Record is the decoded contents of an authenticated blob.
type Record struct {
	// Secret is the 32-byte seed of the hash chain.
	Secret []byte
	// MinSeed is the lowest seed ceiling the blob accepts.
	MinSeed uint16
	// AlgoID is the algorithm selector embedded in the blob.
	AlgoID uint16
}

// Wipe zeroes the record's secret.
func (r *Record) Wipe() {
	secure.ClearBytes(&r.Secret)
}

// Parse validates a blob string and unpacks it into a Record.
func Parse(blob string) (Record, error) {
	if len(blob) < Length {
		return Record{}, fmt.Errorf("%w (got %d characters)", ErrTooShort, len(blob))
	}

	prefix := blob[:prefixLen]
	if prefix != "01" && prefix != "03" {
		return Record{}, fmt.Errorf("%w (got %q)", ErrUnsupportedPrefix, prefix)
	}

	payload := blob[prefixLen:]
	if len(payload) != payloadLen {
		return Record{}, fmt.Errorf("%w (got %d payload characters)", ErrPayloadInvalid, len(payload))
	}

	raw, err := base64.StdEncoding.Strict().DecodeString(payload)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if len(raw) != rawLen {
		return Record{}, fmt.Errorf("%w (decoded to %d bytes)", ErrPayloadInvalid, len(raw))
	}

	digest := sha256.Sum256(raw[:taggedLen])
	if !secure.ConstantTimeCompare(digest[:tagLen], raw[taggedLen:]) {
		return Record{}, ErrChecksumMismatch
	}

	secret := make([]byte, secretLen)
	copy(secret, raw[:secretLen])

	return Record{
		Secret:  secret,
		MinSeed: binary.BigEndian.Uint16(raw[secretLen : secretLen+2]),
		AlgoID:  binary.BigEndian.Uint16(raw[secretLen+2 : taggedLen]),
	}, nil
}

// Seal encodes a secret and its constraints into a "01"-prefixed blob that
// Parse accepts. It is the inverse of Parse and exists for re-issuing blobs
// recovered from escrow shares.
func Seal(secret []byte, minSeed, algoID uint16) (string, error) {
	if len(secret) != secretLen {
		return "", fmt.Errorf("blob: secret must be exactly %d bytes (got %d)", secretLen, len(secret))
	}

	raw := make([]byte, rawLen)
	copy(raw, secret)
	binary.BigEndian.PutUint16(raw[secretLen:], minSeed)
	binary.BigEndian.PutUint16(raw[secretLen+2:], algoID)

	digest := sha256.Sum256(raw[:taggedLen])
	copy(raw[taggedLen:], digest[:tagLen])

	return "01" + base64.StdEncoding.EncodeToString(raw), nil
}
