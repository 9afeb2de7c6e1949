package kyberkem

import (
	"fmt"
	"io"
	"strings"

	"github.com/vaultsandbox/kyberkem/internal/fo"
	"github.com/vaultsandbox/kyberkem/internal/params"
	"github.com/vaultsandbox/kyberkem/internal/schemes"
)

// Scheme is one Kyber parameter set. The zero value is not usable; use
// Kyber512, Kyber768 or Kyber1024.
type Scheme struct {
	t *fo.Transform
}

var (
	// Kyber512 targets NIST security level 1.
	Kyber512 = &Scheme{t: schemes.Kyber512}
	// Kyber768 targets NIST security level 3.
	Kyber768 = &Scheme{t: schemes.Kyber768}
	// Kyber1024 targets NIST security level 5.
	Kyber1024 = &Scheme{t: schemes.Kyber1024}
)

// Schemes returns all supported schemes in increasing security order.
func Schemes() []*Scheme {
	return []*Scheme{Kyber512, Kyber768, Kyber1024}
}

// SchemeByName looks up a scheme by name, ignoring case.
func SchemeByName(name string) (*Scheme, error) {
	for _, s := range Schemes() {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Name returns the parameter set name, e.g. "Kyber768".
func (s *Scheme) Name() string { return s.t.Params.Name }

// String implements fmt.Stringer.
func (s *Scheme) String() string { return s.Name() }

// PublicKeySize is the length of an encoded public key.
func (s *Scheme) PublicKeySize() int { return s.t.Params.PublicKeySize() }

// SecretKeySize is the length of an encoded secret key.
func (s *Scheme) SecretKeySize() int { return s.t.Params.SecretKeySize() }

// CiphertextSize is the length of a ciphertext.
func (s *Scheme) CiphertextSize() int { return s.t.Params.CiphertextSize }

// SharedSecretSize is the length of a shared secret.
func (s *Scheme) SharedSecretSize() int { return params.SharedSecretSize }

// GenerateKeyPair creates a new key pair using the configured randomness
// source (WithRand). Both seeds are drawn before any key material is
// computed, so a failing source leaves nothing behind.
func (s *Scheme) GenerateKeyPair(opts ...Option) (*PublicKey, *SecretKey, error) {
	cfg := newConfig(opts)

	seed := make([]byte, params.KeySeedSize)
	defer clear(seed)

	// Two separate draws: the CPA key seed, then the rejection seed z.
	if _, err := io.ReadFull(cfg.rand, seed[:params.SymBytes]); err != nil {
		return nil, nil, &RandomnessError{Op: "keypair", Err: err}
	}
	if _, err := io.ReadFull(cfg.rand, seed[params.SymBytes:]); err != nil {
		return nil, nil, &RandomnessError{Op: "keypair", Err: err}
	}

	pk, sk := s.t.KeyPair(seed)
	return &PublicKey{scheme: s, raw: pk}, &SecretKey{scheme: s, key: sk}, nil
}

// Encapsulate generates a fresh shared secret for pk and returns it along
// with the ciphertext that carries it.
func (s *Scheme) Encapsulate(pk *PublicKey, opts ...Option) (ct, ss []byte, err error) {
	if pk == nil || pk.scheme != s {
		return nil, nil, ErrSchemeMismatch
	}
	cfg := newConfig(opts)

	var seed [params.EncapsulationSeedSize]byte
	defer clear(seed[:])
	if _, err := io.ReadFull(cfg.rand, seed[:]); err != nil {
		return nil, nil, &RandomnessError{Op: "encapsulate", Err: err}
	}

	ct = make([]byte, s.CiphertextSize())
	ss = make([]byte, params.SharedSecretSize)
	s.t.Encapsulate(ct, ss, pk.raw, seed[:])
	return ct, ss, nil
}

// Decapsulate recovers the shared secret carried by ct.
//
// The shared secret is always returned. When ct fails the re-encryption
// check the status is StatusDecodeFail and the secret is a pseudorandom
// value derived from the secret key's rejection seed and ct, so a caller
// that ignores the status still ends up with a key the sender does not
// know. The error is non-nil only for a wrong-length ciphertext or a key
// of another scheme.
func (s *Scheme) Decapsulate(sk *SecretKey, ct []byte) ([]byte, Status, error) {
	if sk == nil || sk.scheme != s {
		return nil, StatusDecodeFail, ErrSchemeMismatch
	}
	if len(ct) != s.CiphertextSize() {
		return nil, StatusDecodeFail, fmt.Errorf("%w: got %d, expected %d",
			ErrInvalidCiphertextSize, len(ct), s.CiphertextSize())
	}

	ss := make([]byte, params.SharedSecretSize)
	st := s.t.Decapsulate(ss, ct, sk.key)
	return ss, Status(st), nil
}

// UnmarshalPublicKey parses an encoded public key.
func (s *Scheme) UnmarshalPublicKey(buf []byte) (*PublicKey, error) {
	if len(buf) != s.PublicKeySize() {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrInvalidPublicKeySize, len(buf), s.PublicKeySize())
	}
	raw := make([]byte, len(buf))
	copy(raw, buf)
	return &PublicKey{scheme: s, raw: raw}, nil
}

// UnmarshalSecretKey parses an encoded secret key. The cached public-key
// hash is taken as-is; call SecretKey.Validate for keys from untrusted
// storage.
func (s *Scheme) UnmarshalSecretKey(buf []byte) (*SecretKey, error) {
	key, err := fo.ParseSecretKey(s.t.Params, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrInvalidSecretKeySize, len(buf), s.SecretKeySize())
	}
	return &SecretKey{scheme: s, key: key}, nil
}
