// Package symmetric provides the hash functions H and G and the key
// derivation function used by the KEM transform.
package symmetric

import (
	"golang.org/x/crypto/sha3"
)

// Suite is the set of symmetric primitives the transform consumes.
// Implementations write exactly len(out) bytes; H writes 32, G writes 64.
type Suite interface {
	// H is the fixed-length hash.
	H(out, in []byte)
	// G is the double-length hash.
	G(out, in []byte)
	// KDF derives len(out) bytes from in.
	KDF(out, in []byte)
}

// SHA3 is the round-3 Kyber suite: H = SHA3-256, G = SHA3-512,
// KDF = SHAKE-256.
type SHA3 struct{}

func (SHA3) H(out, in []byte) {
	sum := sha3.Sum256(in)
	copy(out, sum[:])
}

func (SHA3) G(out, in []byte) {
	sum := sha3.Sum512(in)
	copy(out, sum[:])
}

func (SHA3) KDF(out, in []byte) {
	sha3.ShakeSum256(out, in)
}
