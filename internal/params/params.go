// Package params holds the fixed byte lengths of each supported Kyber
// parameter set and the KEM sizes derived from them.
package params

const (
	// SymBytes is the symmetric unit: the length of hash digests, seeds and
	// the implicit-rejection value z.
	SymBytes = 32

	// SharedSecretSize is the length of the KDF output.
	SharedSecretSize = 32

	// KeySeedSize is the length of the seed consumed by key generation:
	// the CPA key seed followed by z.
	KeySeedSize = 2 * SymBytes

	// EncapsulationSeedSize is the length of the message seed consumed by
	// encapsulation.
	EncapsulationSeedSize = SymBytes
)

// Set describes one parameter set. Only the CPA sizes are stored; the KEM
// sizes are derived.
type Set struct {
	Name string
	K    int

	CPAPublicKeySize int
	CPASecretKeySize int
	CiphertextSize   int
}

var (
	Kyber512 = Set{
		Name:             "Kyber512",
		K:                2,
		CPAPublicKeySize: 800,
		CPASecretKeySize: 768,
		CiphertextSize:   768,
	}
	Kyber768 = Set{
		Name:             "Kyber768",
		K:                3,
		CPAPublicKeySize: 1184,
		CPASecretKeySize: 1152,
		CiphertextSize:   1088,
	}
	Kyber1024 = Set{
		Name:             "Kyber1024",
		K:                4,
		CPAPublicKeySize: 1568,
		CPASecretKeySize: 1536,
		CiphertextSize:   1568,
	}
)

// All lists the parameter sets in increasing security order.
func All() []Set {
	return []Set{Kyber512, Kyber768, Kyber1024}
}

// PublicKeySize is the length of an encoded KEM public key.
func (s Set) PublicKeySize() int { return s.CPAPublicKeySize }

// SecretKeySize is the length of an encoded KEM secret key:
// cpa_secret || cpa_public || H(pk) || z.
func (s Set) SecretKeySize() int {
	return s.CPASecretKeySize + s.CPAPublicKeySize + 2*SymBytes
}

// PublicKeyOffset is where cpa_public starts inside the secret key.
func (s Set) PublicKeyOffset() int { return s.CPASecretKeySize }

// PublicKeyHashOffset is where the cached H(pk) starts inside the secret key.
func (s Set) PublicKeyHashOffset() int { return s.CPASecretKeySize + s.CPAPublicKeySize }

// RejectionSeedOffset is where z starts inside the secret key.
func (s Set) RejectionSeedOffset() int { return s.PublicKeyHashOffset() + SymBytes }
