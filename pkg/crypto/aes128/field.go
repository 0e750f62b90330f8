package aes128

// GF(2^8) arithmetic using polynomial representation with operations modulo
// the Rijndael irreducible polynomial x^8 + x^4 + x^3 + x + 1 (0x11B),
// as used by the AES MixColumns diffusion step.

const (
	// Rijndael polynomial: x^8 + x^4 + x^3 + x + 1
	rijndaelPoly = 0x11B
)

// xtime multiplies by x (2) in GF(2^8)
func xtime(a byte) byte {
	if a&0x80 == 0 {
		return a << 1
	}
	return (a << 1) ^ byte(rijndaelPoly&0xFF)
}

// gfMultiply performs multiplication in GF(2^8) using the Russian peasant
// method: accumulate a for each set bit of b, doubling a along the way.
func gfMultiply(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			result ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return result
}
