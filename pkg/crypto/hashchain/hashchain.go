// Package hashchain implements the token's iterated SHA-256 work factor.
//
// The device rate-limits derivations by forcing the caller to hash the blob
// secret a seed-dependent number of times before it becomes an AES key.
// This is a proof-of-work style chain, not a KDF: there is no salt and no
// domain separation.
package hashchain

import "crypto/sha256"

// Chain applies SHA-256 to secret iterations times and returns the final
// 32-byte digest. Zero iterations returns an unchanged copy of secret.
func Chain(secret []byte, iterations int) []byte {
	digest := make([]byte, len(secret))
	copy(digest, secret)

	for i := 0; i < iterations; i++ {
		sum := sha256.Sum256(digest)
		digest = sum[:]
	}
	return digest
}
