// Package fo implements the Fujisaki-Okamoto transform with implicit
// rejection that turns the IND-CPA Kyber encryption scheme into an
// IND-CCA2 key-encapsulation mechanism.
//
// All operations work on caller-owned, fixed-length buffers and take their
// randomness as explicit seeds. Drawing seeds from a randomness source is
// the caller's job, so that every function here is a pure computation.
//
// Decapsulation never branches on secret-derived data: the re-encryption
// check produces a 0/1 value that is only ever passed to the constant-time
// selection, and the key derivation runs on both paths.
package fo

import (
	"github.com/vaultsandbox/kyberkem/internal/cpa"
	"github.com/vaultsandbox/kyberkem/internal/ct"
	"github.com/vaultsandbox/kyberkem/internal/params"
	"github.com/vaultsandbox/kyberkem/internal/symmetric"
)

const symBytes = params.SymBytes

// Status is the outcome of decapsulation.
type Status int

const (
	// OK means the ciphertext re-encrypted to itself.
	OK Status = 0
	// DecodeFail means the re-encryption check failed and the shared
	// secret was derived from the rejection seed z.
	DecodeFail Status = 1
)

// Transform binds a parameter set to the primitives the KEM consumes.
type Transform struct {
	Params params.Set
	PKE    cpa.PKE
	Sym    symmetric.Suite
	CT     ct.Primitives
}

// New returns a Transform over the given primitives.
func New(p params.Set, pke cpa.PKE, sym symmetric.Suite, prims ct.Primitives) *Transform {
	return &Transform{Params: p, PKE: pke, Sym: sym, CT: prims}
}

// KeyPair derives a key pair from a params.KeySeedSize seed laid out as
// cpa_seed || z. The returned public key does not alias the secret key.
func (t *Transform) KeyPair(seed []byte) ([]byte, *SecretKey) {
	if len(seed) != params.KeySeedSize {
		panic("fo: key seed must be of length KeySeedSize")
	}

	sk := newSecretKey(t.Params, make([]byte, t.Params.SecretKeySize()))
	t.PKE.KeyPair(sk.CPAPublic, sk.CPASecret, seed[:symBytes])

	// Cache H(pk) so decapsulation never recomputes it.
	t.Sym.H(sk.PublicKeyHash, sk.CPAPublic)
	copy(sk.Z, seed[symBytes:])

	pk := make([]byte, t.Params.PublicKeySize())
	copy(pk, sk.CPAPublic)
	return pk, sk
}

// Encapsulate writes a ciphertext for pk to ct and the shared secret to ss,
// using a params.EncapsulationSeedSize seed as the message randomness.
func (t *Transform) Encapsulate(ct, ss, pk, seed []byte) {
	if len(seed) != params.EncapsulationSeedSize {
		panic("fo: encapsulation seed must be of length EncapsulationSeedSize")
	}
	if len(ct) != t.Params.CiphertextSize {
		panic("fo: ct must be of length CiphertextSize")
	}
	if len(pk) != t.Params.PublicKeySize() {
		panic("fo: pk must be of length PublicKeySize")
	}

	var buf, kr [2 * symBytes]byte
	defer clear(buf[:])
	defer clear(kr[:])

	// m = H(seed); the raw source output never reaches the ciphertext.
	t.Sym.H(buf[:symBytes], seed)

	// Multitarget countermeasure: bind the coins to H(pk).
	t.Sym.H(buf[symBytes:], pk)

	// (K', coins) = G(m || H(pk))
	t.Sym.G(kr[:], buf[:])

	t.PKE.Encrypt(ct, buf[:symBytes], pk, kr[symBytes:])

	// Replace the coins with H(c), then K = KDF(K' || H(c)).
	t.Sym.H(kr[symBytes:], ct)
	t.Sym.KDF(ss, kr[:])
}

// Decapsulate writes the shared secret encapsulated in ct to ss. On
// DecodeFail ss holds KDF(z || H(c)), computed along the same path as the
// success case.
func (t *Transform) Decapsulate(ss, ct []byte, sk *SecretKey) Status {
	if len(ct) != t.Params.CiphertextSize {
		panic("fo: ct must be of length CiphertextSize")
	}

	var buf, kr [2 * symBytes]byte
	defer clear(buf[:])
	defer clear(kr[:])
	cmp := make([]byte, t.Params.CiphertextSize)

	t.PKE.Decrypt(buf[:symBytes], ct, sk.CPASecret)
	copy(buf[symBytes:], sk.PublicKeyHash)

	t.Sym.G(kr[:], buf[:])

	// Re-encrypt m' with the derived coins.
	t.PKE.Encrypt(cmp, buf[:symBytes], sk.CPAPublic, kr[symBytes:])

	fail := t.CT.NotEqual(ct, cmp)

	t.Sym.H(kr[symBytes:], ct)

	// Implicit rejection: K' is replaced by z when fail == 1.
	t.CT.Select(kr[:symBytes], sk.Z, fail)

	t.Sym.KDF(ss, kr[:])

	return Status(fail)
}

// PublicKeyHashValid recomputes H(pk) and compares it with the cached copy
// in constant time.
func (t *Transform) PublicKeyHashValid(sk *SecretKey) bool {
	var h [symBytes]byte
	t.Sym.H(h[:], sk.CPAPublic)
	return t.CT.NotEqual(h[:], sk.PublicKeyHash) == 0
}
