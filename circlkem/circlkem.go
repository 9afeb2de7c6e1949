// Package circlkem exposes the Kyber schemes of package kyberkem through
// the generic circl kem.Scheme interface, so they can be used wherever a
// circl KEM is expected (HPKE, hybrid constructions, test harnesses).
package circlkem

import (
	"github.com/cloudflare/circl/kem"

	"github.com/vaultsandbox/kyberkem"
	"github.com/vaultsandbox/kyberkem/katgen"
)

// This file contains the boilerplate code to connect kyberkem to the
// generic KEM API.

// Scheme returns the generic KEM interface for s.
func Scheme(s *kyberkem.Scheme) kem.Scheme { return scheme{s: s} }

// Schemes returns the generic KEM interface for every supported scheme.
func Schemes() []kem.Scheme {
	all := kyberkem.Schemes()
	out := make([]kem.Scheme, len(all))
	for i, s := range all {
		out[i] = Scheme(s)
	}
	return out
}

type scheme struct {
	s *kyberkem.Scheme
}

// PublicKey wraps a kyberkem public key.
type PublicKey struct {
	pk *kyberkem.PublicKey
}

// PrivateKey wraps a kyberkem secret key.
type PrivateKey struct {
	sk *kyberkem.SecretKey
}

func (sch scheme) Name() string               { return sch.s.Name() }
func (sch scheme) PublicKeySize() int         { return sch.s.PublicKeySize() }
func (sch scheme) PrivateKeySize() int        { return sch.s.SecretKeySize() }
func (sch scheme) SeedSize() int              { return katgen.KeySeedSize }
func (sch scheme) EncapsulationSeedSize() int { return katgen.EncapsulationSeedSize }
func (sch scheme) SharedKeySize() int         { return sch.s.SharedSecretSize() }
func (sch scheme) CiphertextSize() int        { return sch.s.CiphertextSize() }
func (pk *PublicKey) Scheme() kem.Scheme      { return Scheme(pk.pk.Scheme()) }
func (sk *PrivateKey) Scheme() kem.Scheme     { return Scheme(sk.sk.Scheme()) }

// Unwrap returns the underlying kyberkem public key.
func (pk *PublicKey) Unwrap() *kyberkem.PublicKey { return pk.pk }

// Unwrap returns the underlying kyberkem secret key.
func (sk *PrivateKey) Unwrap() *kyberkem.SecretKey { return sk.sk }

func (pk *PublicKey) MarshalBinary() ([]byte, error) { return pk.pk.MarshalBinary() }

func (sk *PrivateKey) MarshalBinary() ([]byte, error) { return sk.sk.MarshalBinary() }

func (pk *PublicKey) Equal(other kem.PublicKey) bool {
	oth, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	return pk.pk.Equal(oth.pk)
}

func (sk *PrivateKey) Equal(other kem.PrivateKey) bool {
	oth, ok := other.(*PrivateKey)
	if !ok {
		return false
	}
	return sk.sk.Equal(oth.sk)
}

func (sk *PrivateKey) Public() kem.PublicKey {
	return &PublicKey{pk: sk.sk.Public()}
}

func (sch scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	pk, sk, err := sch.s.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	return &PublicKey{pk: pk}, &PrivateKey{sk: sk}, nil
}

func (sch scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != katgen.KeySeedSize {
		panic(kem.ErrSeedSize)
	}
	pk, sk, err := katgen.DeriveKeyPair(sch.s, seed)
	if err != nil {
		panic(err)
	}
	return &PublicKey{pk: pk}, &PrivateKey{sk: sk}
}

func (sch scheme) publicKey(pk kem.PublicKey) (*kyberkem.PublicKey, error) {
	pub, ok := pk.(*PublicKey)
	if !ok || pub.pk.Scheme() != sch.s {
		return nil, kem.ErrTypeMismatch
	}
	return pub.pk, nil
}

func (sch scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	pub, err := sch.publicKey(pk)
	if err != nil {
		return nil, nil, err
	}
	return sch.s.Encapsulate(pub)
}

func (sch scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	if len(seed) != katgen.EncapsulationSeedSize {
		return nil, nil, kem.ErrSeedSize
	}
	pub, err := sch.publicKey(pk)
	if err != nil {
		return nil, nil, err
	}
	return katgen.EncapsulateDeterministically(pub, seed)
}

// Decapsulate returns the shared secret carried by ct. As with every
// implicitly-rejecting KEM behind this interface, a rejected ciphertext is
// not an error: the pseudorandom rejection secret is returned instead.
func (sch scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	if len(ct) != sch.CiphertextSize() {
		return nil, kem.ErrCiphertextSize
	}
	priv, ok := sk.(*PrivateKey)
	if !ok || priv.sk.Scheme() != sch.s {
		return nil, kem.ErrTypeMismatch
	}
	ss, _, err := sch.s.Decapsulate(priv.sk, ct)
	return ss, err
}

func (sch scheme) UnmarshalBinaryPublicKey(buf []byte) (kem.PublicKey, error) {
	if len(buf) != sch.PublicKeySize() {
		return nil, kem.ErrPubKeySize
	}
	pk, err := sch.s.UnmarshalPublicKey(buf)
	if err != nil {
		return nil, err
	}
	return &PublicKey{pk: pk}, nil
}

func (sch scheme) UnmarshalBinaryPrivateKey(buf []byte) (kem.PrivateKey, error) {
	if len(buf) != sch.PrivateKeySize() {
		return nil, kem.ErrPrivKeySize
	}
	sk, err := sch.s.UnmarshalSecretKey(buf)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{sk: sk}, nil
}
