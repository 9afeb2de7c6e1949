package fo

import (
	"errors"

	"github.com/vaultsandbox/kyberkem/internal/params"
)

// ErrSecretKeySize is returned when an encoded secret key does not have the
// length of its parameter set.
var ErrSecretKeySize = errors.New("fo: wrong secret key size")

// SecretKey is the decapsulation key. Its encoding is the contiguous layout
//
//	cpa_secret || cpa_public || H(cpa_public) || z
//
// and every field below is a fixed-length view into that single buffer, so
// the key is always stored and serialized as a whole.
type SecretKey struct {
	raw []byte

	CPASecret     []byte
	CPAPublic     []byte
	PublicKeyHash []byte
	Z             []byte
}

// newSecretKey slices raw into the fields of p. raw must have length
// p.SecretKeySize().
func newSecretKey(p params.Set, raw []byte) *SecretKey {
	return &SecretKey{
		raw:           raw,
		CPASecret:     raw[:p.PublicKeyOffset():p.PublicKeyOffset()],
		CPAPublic:     raw[p.PublicKeyOffset():p.PublicKeyHashOffset():p.PublicKeyHashOffset()],
		PublicKeyHash: raw[p.PublicKeyHashOffset():p.RejectionSeedOffset():p.RejectionSeedOffset()],
		Z:             raw[p.RejectionSeedOffset():],
	}
}

// ParseSecretKey copies buf into a new SecretKey for parameter set p.
func ParseSecretKey(p params.Set, buf []byte) (*SecretKey, error) {
	if len(buf) != p.SecretKeySize() {
		return nil, ErrSecretKeySize
	}
	raw := make([]byte, len(buf))
	copy(raw, buf)
	return newSecretKey(p, raw), nil
}

// Bytes returns a copy of the encoded key.
func (sk *SecretKey) Bytes() []byte {
	out := make([]byte, len(sk.raw))
	copy(out, sk.raw)
	return out
}

// Zero overwrites the key material.
func (sk *SecretKey) Zero() {
	clear(sk.raw)
}
