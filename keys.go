package kyberkem

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/vaultsandbox/kyberkem/internal/fo"
)

// PublicKey is an encapsulation key.
type PublicKey struct {
	scheme *Scheme
	raw    []byte
}

// Scheme returns the scheme the key belongs to.
func (pk *PublicKey) Scheme() *Scheme { return pk.scheme }

// MarshalBinary returns a copy of the encoded key.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(pk.raw))
	copy(out, pk.raw)
	return out, nil
}

// Equal reports whether pk and other are the same key of the same scheme.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil || pk.scheme != other.scheme {
		return false
	}
	return subtle.ConstantTimeCompare(pk.raw, other.raw) == 1
}

// SecretKey is a decapsulation key. It embeds a copy of its public key.
type SecretKey struct {
	scheme *Scheme
	key    *fo.SecretKey
}

// Scheme returns the scheme the key belongs to.
func (sk *SecretKey) Scheme() *Scheme { return sk.scheme }

// MarshalBinary returns a copy of the encoded key:
// cpa_secret || cpa_public || H(cpa_public) || z.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	return sk.key.Bytes(), nil
}

// Public returns the public key embedded in sk.
func (sk *SecretKey) Public() *PublicKey {
	raw := make([]byte, len(sk.key.CPAPublic))
	copy(raw, sk.key.CPAPublic)
	return &PublicKey{scheme: sk.scheme, raw: raw}
}

// Equal reports whether sk and other are the same key of the same scheme.
func (sk *SecretKey) Equal(other *SecretKey) bool {
	if other == nil || sk.scheme != other.scheme {
		return false
	}
	return subtle.ConstantTimeCompare(sk.key.Bytes(), other.key.Bytes()) == 1
}

// errPublicKeyHash is returned by Validate.
var errPublicKeyHash = errors.New("cached public key hash does not match embedded public key")

// Validate recomputes the hash of the embedded public key and compares it
// with the cached copy in constant time.
func (sk *SecretKey) Validate() error {
	if !sk.scheme.t.PublicKeyHashValid(sk.key) {
		return fmt.Errorf("%w: %v", ErrInvalidImportData, errPublicKeyHash)
	}
	return nil
}

// Zero overwrites the key material. The key must not be used afterwards.
func (sk *SecretKey) Zero() {
	sk.key.Zero()
}
