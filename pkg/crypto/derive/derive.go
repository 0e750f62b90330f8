// Package derive runs the sa015bcr key-derivation pipeline.
//
// The pipeline is a pure transform: it authenticates the caller's algorithm
// selector against the blob, converts the seed's trailing byte into a hash
// chain length, chains the blob secret into an AES-128 key, encrypts a
// seed-carrying block, and truncates the ciphertext to the device's 5-byte
// MAC. Identical inputs always yield identical outputs.
package derive

import (
	"errors"
	"fmt"

	"github.com/sa015bcr/keygen/pkg/crypto/aes128"
	"github.com/sa015bcr/keygen/pkg/crypto/blob"
	"github.com/sa015bcr/keygen/pkg/crypto/hashchain"
	"github.com/sa015bcr/keygen/pkg/registry"
)

const (
	// SeedSize is the required seed length in bytes.
	SeedSize = 5
	// MACSize is the length of the derived MAC in bytes.
	MACSize = 5

	seedCeiling = 255
)

var (
	// ErrAlgorithmMismatch is returned when the requested algorithm does
	// not match the one embedded in the blob.
	ErrAlgorithmMismatch = errors.New("derive: algorithm does not match blob")

	// ErrInvalidSeedLength is returned when the seed is not exactly 5 bytes.
	ErrInvalidSeedLength = errors.New("derive: seed must be exactly 5 bytes")

	// ErrSeedRejected is returned when the seed's ceiling falls below the
	// blob's minimum.
	ErrSeedRejected = errors.New("derive: seed not allowed by the blob's min seed constraint")

	// ErrUnknownAlgorithm is returned when no blob is registered for the
	// requested algorithm.
	ErrUnknownAlgorithm = errors.New("derive: no password blob registered for algorithm")
)

// Result holds the derived MAC together with the intermediates the device
// tooling displays for diagnostics.
type Result struct {
	// MAC is the 5-byte derived key the token would emit.
	MAC []byte
	// Iterations is the hash chain length the seed selected.
	Iterations int
	// AESKey is the intermediate 16-byte AES key.
	AESKey []byte
}

// Derive computes the MAC for a parsed blob record.
//
// The seed's last byte counts down from 255: maxSeed = 255 - seed[4]. The
// blob's MinSeed must not exceed that ceiling, and the difference is the
// number of hash chain iterations.
func Derive(algoID uint16, seed []byte, rec blob.Record) (Result, error) {
	if algoID != rec.AlgoID {
		return Result{}, fmt.Errorf("%w: blob expects 0x%02X, got 0x%02X",
			ErrAlgorithmMismatch, rec.AlgoID, algoID)
	}
	if len(seed) != SeedSize {
		return Result{}, fmt.Errorf("%w (got %d)", ErrInvalidSeedLength, len(seed))
	}

	maxSeed := uint16(seedCeiling - seed[SeedSize-1])
	if rec.MinSeed > maxSeed {
		return Result{}, fmt.Errorf("%w: min seed %d exceeds ceiling %d",
			ErrSeedRejected, rec.MinSeed, maxSeed)
	}
	iterations := int(maxSeed - rec.MinSeed)

	digest := hashchain.Chain(rec.Secret, iterations)
	aesKey := digest[:aes128.KeySize]

	block := make([]byte, aes128.BlockSize)
	for i := range block {
		block[i] = 0xFF
	}
	copy(block[aes128.BlockSize-SeedSize:], seed)

	ciphertext, err := aes128.EncryptBlock(aesKey, block)
	if err != nil {
		return Result{}, err
	}

	return Result{
		MAC:        ciphertext[:MACSize],
		Iterations: iterations,
		AESKey:     aesKey,
	}, nil
}

// FromBlob parses a blob string and derives the MAC for it.
func FromBlob(blobStr string, seed []byte, algoID uint16) (Result, error) {
	rec, err := blob.Parse(blobStr)
	if err != nil {
		return Result{}, err
	}
	defer rec.Wipe()

	return Derive(algoID, seed, rec)
}

// FromRegistry looks up the blob registered for algoID and derives the MAC.
func FromRegistry(algoID uint16, seed []byte, reg registry.Registry) (Result, error) {
	blobStr, ok := reg.Lookup(algoID)
	if !ok {
		return Result{}, fmt.Errorf("%w 0x%02X", ErrUnknownAlgorithm, algoID)
	}
	return FromBlob(blobStr, seed, algoID)
}
