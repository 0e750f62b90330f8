// Package aes128 implements AES-128 single-block encryption from first
// principles, matching FIPS-197 bit for bit.
//
// The sa015bcr token runs its key schedule through a plain AES-128 block
// encryption with no padding and no chaining mode, so this package exposes
// exactly that: ExpandKey and EncryptBlock. Nothing here is constant-time
// hardened; it reproduces a device algorithm, it does not protect secrets
// against side channels.
package aes128

import (
	"errors"
	"fmt"
)

const (
	// KeySize is the AES-128 key length in bytes.
	KeySize = 16
	// BlockSize is the AES block length in bytes.
	BlockSize = 16

	numRounds    = 10
	numRoundKeys = numRounds + 1
	numWords     = 44
)

var (
	// ErrInvalidKeyLength is returned when a key is not exactly 16 bytes.
	ErrInvalidKeyLength = errors.New("aes128: key must be exactly 16 bytes")

	// ErrInvalidBlockLength is returned when a plaintext block is not
	// exactly 16 bytes.
	ErrInvalidBlockLength = errors.New("aes128: block must be exactly 16 bytes")
)

// state is the 4x4 AES byte matrix. Byte k of a block occupies row k mod 4,
// column k div 4 (column-major order).
type state [4][4]byte

func blockToState(block []byte) state {
	var s state
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s[row][col] = block[row+4*col]
		}
	}
	return s
}

func (s *state) bytes() []byte {
	out := make([]byte, BlockSize)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row+4*col] = s[row][col]
		}
	}
	return out
}

func (s *state) subBytes() {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s[row][col] = sbox[s[row][col]]
		}
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	for row := 1; row < 4; row++ {
		var rotated [4]byte
		for col := 0; col < 4; col++ {
			rotated[col] = s[row][(col+row)%4]
		}
		s[row] = rotated
	}
}

// mixColumns multiplies each column by the fixed MDS matrix over GF(2^8).
func (s *state) mixColumns() {
	for col := 0; col < 4; col++ {
		a0, a1, a2, a3 := s[0][col], s[1][col], s[2][col], s[3][col]
		s[0][col] = gfMultiply(a0, 2) ^ gfMultiply(a1, 3) ^ a2 ^ a3
		s[1][col] = a0 ^ gfMultiply(a1, 2) ^ gfMultiply(a2, 3) ^ a3
		s[2][col] = a0 ^ a1 ^ gfMultiply(a2, 2) ^ gfMultiply(a3, 3)
		s[3][col] = gfMultiply(a0, 3) ^ a1 ^ a2 ^ gfMultiply(a3, 2)
	}
}

func (s *state) addRoundKey(roundKey []byte) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			s[row][col] ^= roundKey[row+4*col]
		}
	}
}

// rotWord rotates a 4-byte key schedule word left by one byte.
func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

// subWord applies the S-box to each byte of a key schedule word.
func subWord(w [4]byte) [4]byte {
	return [4]byte{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

// ExpandKey derives the 11 round keys of 16 bytes each required for AES-128.
func ExpandKey(key []byte) ([][]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidKeyLength, len(key))
	}

	var words [numWords][4]byte
	for i := 0; i < 4; i++ {
		copy(words[i][:], key[4*i:4*i+4])
	}

	for i := 4; i < numWords; i++ {
		temp := words[i-1]
		if i%4 == 0 {
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/4]
		}
		for j := 0; j < 4; j++ {
			words[i][j] = words[i-4][j] ^ temp[j]
		}
	}

	roundKeys := make([][]byte, numRoundKeys)
	for i := 0; i < numRoundKeys; i++ {
		rk := make([]byte, KeySize)
		for j := 0; j < 4; j++ {
			copy(rk[4*j:], words[4*i+j][:])
		}
		roundKeys[i] = rk
	}
	return roundKeys, nil
}

// EncryptBlock encrypts a single 16-byte block with AES-128.
func EncryptBlock(key, block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidBlockLength, len(block))
	}

	roundKeys, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}

	s := blockToState(block)
	s.addRoundKey(roundKeys[0])
	for round := 1; round < numRounds; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(roundKeys[round])
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(roundKeys[numRounds])

	return s.bytes(), nil
}
