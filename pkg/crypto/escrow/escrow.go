// Package escrow splits a blob's secret into Shamir shares so a lost blob
// can be re-issued from a quorum of custodians.
//
// Only the 32-byte secret is shared. MinSeed and the algorithm id are
// public blob metadata and travel alongside the shares; Restore re-seals
// them into a fresh blob once enough shares are combined.
package escrow

import (
	"fmt"

	"github.com/hashicorp/vault/shamir"

	"github.com/sa015bcr/keygen/pkg/crypto/blob"
	"github.com/sa015bcr/keygen/pkg/secure"
)

// Share is one custodian's fragment of a blob secret.
type Share struct {
	Index byte
	Data  []byte
}

// Config sets how many shares are cut and how many are needed back.
type Config struct {
	Parts     int
	Threshold int
}

// Validate checks the share/threshold bounds.
func (c *Config) Validate() error {
	if c.Parts < 2 {
		return fmt.Errorf("parts must be at least 2, got %d", c.Parts)
	}
	if c.Threshold < 2 {
		return fmt.Errorf("threshold must be at least 2, got %d", c.Threshold)
	}
	if c.Threshold > c.Parts {
		return fmt.Errorf("threshold (%d) cannot be greater than parts (%d)", c.Threshold, c.Parts)
	}
	if c.Parts > 255 {
		return fmt.Errorf("parts cannot exceed 255, got %d", c.Parts)
	}
	return nil
}

// SplitRecord cuts the record's secret into shares.
func SplitRecord(rec blob.Record, config Config) ([]Share, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(rec.Secret) == 0 {
		return nil, fmt.Errorf("record has no secret to split")
	}

	shares, err := shamir.Split(rec.Secret, config.Parts, config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	result := make([]Share, len(shares))
	for i, share := range shares {
		result[i] = Share{
			Index: byte(i + 1),
			Data:  share,
		}
	}
	return result, nil
}

// Combine reconstructs the 32-byte blob secret from a quorum of shares.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("at least 2 shares are required for reconstruction")
	}

	shareBytes := make([][]byte, len(shares))
	for i, share := range shares {
		if len(share.Data) == 0 {
			return nil, fmt.Errorf("share %d has empty data", share.Index)
		}
		shareBytes[i] = share.Data
	}

	secret, err := shamir.Combine(shareBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}
	return secret, nil
}

// Restore combines shares and seals the recovered secret back into a blob
// carrying the given constraints.
func Restore(shares []Share, minSeed, algoID uint16) (string, error) {
	secret, err := Combine(shares)
	if err != nil {
		return "", err
	}
	defer secure.Zero(secret)

	sealed, err := blob.Seal(secret, minSeed, algoID)
	if err != nil {
		return "", fmt.Errorf("recovered secret cannot be sealed: %w", err)
	}
	return sealed, nil
}
