package fo

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cloudflare/circl/kem"
	circl1024 "github.com/cloudflare/circl/kem/kyber/kyber1024"
	circl512 "github.com/cloudflare/circl/kem/kyber/kyber512"
	circl768 "github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/stretchr/testify/require"

	"github.com/vaultsandbox/kyberkem/internal/cpa"
	"github.com/vaultsandbox/kyberkem/internal/ct"
	"github.com/vaultsandbox/kyberkem/internal/params"
	"github.com/vaultsandbox/kyberkem/internal/symmetric"
)

func newTransform(p params.Set) *Transform {
	return New(p, cpa.ForParams(p), symmetric.SHA3{}, ct.Subtle{})
}

func seedOf(b byte, n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = b + byte(i)
	}
	return s
}

func encapsulate(t *Transform, pk, seed []byte) (c, ss []byte) {
	c = make([]byte, t.Params.CiphertextSize)
	ss = make([]byte, params.SharedSecretSize)
	t.Encapsulate(c, ss, pk, seed)
	return c, ss
}

func decapsulate(t *Transform, c []byte, sk *SecretKey) ([]byte, Status) {
	ss := make([]byte, params.SharedSecretSize)
	st := t.Decapsulate(ss, c, sk)
	return ss, st
}

func TestRoundTrip(t *testing.T) {
	for _, p := range params.All() {
		t.Run(p.Name, func(t *testing.T) {
			a := require.New(t)
			tr := newTransform(p)

			pk, sk := tr.KeyPair(seedOf(1, params.KeySeedSize))
			a.Len(pk, p.PublicKeySize())
			a.Len(sk.Bytes(), p.SecretKeySize())

			c, ss := encapsulate(tr, pk, seedOf(2, params.EncapsulationSeedSize))
			a.Len(c, p.CiphertextSize)
			a.Len(ss, params.SharedSecretSize)

			got, st := decapsulate(tr, c, sk)
			a.Equal(OK, st)
			a.Equal(ss, got)
		})
	}
}

func TestKeyPair_Layout(t *testing.T) {
	a := require.New(t)
	p := params.Kyber768
	tr := newTransform(p)
	seed := seedOf(9, params.KeySeedSize)

	pk, sk := tr.KeyPair(seed)
	raw := sk.Bytes()

	a.Equal(pk, raw[p.PublicKeyOffset():p.PublicKeyHashOffset()])
	a.Equal(seed[params.SymBytes:], raw[p.RejectionSeedOffset():])

	var h [params.SymBytes]byte
	symmetric.SHA3{}.H(h[:], pk)
	a.Equal(h[:], raw[p.PublicKeyHashOffset():p.RejectionSeedOffset()])
	a.True(tr.PublicKeyHashValid(sk))

	// The public key is a copy, not a view into the secret key.
	pk[0] ^= 0xff
	a.NotEqual(pk, sk.CPAPublic)
}

func TestDeterminism(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber768)

	pk1, sk1 := tr.KeyPair(seedOf(3, params.KeySeedSize))
	pk2, sk2 := tr.KeyPair(seedOf(3, params.KeySeedSize))
	a.Equal(pk1, pk2)
	a.Equal(sk1.Bytes(), sk2.Bytes())

	c1, ss1 := encapsulate(tr, pk1, seedOf(4, params.EncapsulationSeedSize))
	c2, ss2 := encapsulate(tr, pk1, seedOf(4, params.EncapsulationSeedSize))
	a.Equal(c1, c2)
	a.Equal(ss1, ss2)
}

func TestTwoEncapsulationsDiffer(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber768)
	pk, sk := tr.KeyPair(seedOf(5, params.KeySeedSize))

	c1, ss1 := encapsulate(tr, pk, seedOf(6, params.EncapsulationSeedSize))
	c2, ss2 := encapsulate(tr, pk, seedOf(7, params.EncapsulationSeedSize))
	a.NotEqual(c1, c2)
	a.NotEqual(ss1, ss2)

	got1, st1 := decapsulate(tr, c1, sk)
	got2, st2 := decapsulate(tr, c2, sk)
	a.Equal(OK, st1)
	a.Equal(OK, st2)
	a.Equal(ss1, got1)
	a.Equal(ss2, got2)
}

func TestTamperedCiphertext(t *testing.T) {
	for _, p := range params.All() {
		t.Run(p.Name, func(t *testing.T) {
			tr := newTransform(p)
			pk, sk := tr.KeyPair(seedOf(11, params.KeySeedSize))
			c, ss := encapsulate(tr, pk, seedOf(12, params.EncapsulationSeedSize))

			positions := []int{0, 1, p.CiphertextSize / 3, p.CiphertextSize / 2, p.CiphertextSize - 33, p.CiphertextSize - 1}
			for _, pos := range positions {
				for _, bit := range []uint{0, 7} {
					t.Run(fmt.Sprintf("byte%d_bit%d", pos, bit), func(t *testing.T) {
						a := require.New(t)
						tampered := bytes.Clone(c)
						tampered[pos] ^= 1 << bit

						got, st := decapsulate(tr, tampered, sk)
						a.Equal(DecodeFail, st)
						a.Len(got, params.SharedSecretSize)
						a.NotEqual(ss, got)
					})
				}
			}
		})
	}
}

func TestFailurePathOutput(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber768)

	// Same CPA seed, different z: identical public keys.
	seedA := seedOf(20, params.KeySeedSize)
	seedB := bytes.Clone(seedA)
	seedB[params.KeySeedSize-1] ^= 0x01

	pkA, skA := tr.KeyPair(seedA)
	pkB, skB := tr.KeyPair(seedB)
	a.Equal(pkA, pkB)

	c, ss := encapsulate(tr, pkA, seedOf(21, params.EncapsulationSeedSize))
	c[17] ^= 0x04

	fail1, st1 := decapsulate(tr, c, skA)
	fail2, st2 := decapsulate(tr, c, skA)
	a.Equal(DecodeFail, st1)
	a.Equal(DecodeFail, st2)
	a.Equal(fail1, fail2, "failing secret must be deterministic")
	a.NotEqual(ss, fail1)

	failB, stB := decapsulate(tr, c, skB)
	a.Equal(DecodeFail, stB)
	a.NotEqual(fail1, failB, "different z must give different failing secrets")

	// The failing secret is KDF(z || H(c)).
	var kr [2 * params.SymBytes]byte
	copy(kr[:params.SymBytes], skA.Z)
	symmetric.SHA3{}.H(kr[params.SymBytes:], c)
	want := make([]byte, params.SharedSecretSize)
	symmetric.SHA3{}.KDF(want, kr[:])
	a.Equal(want, fail1)
}

func TestWrongSecretKey(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber512)
	pk, _ := tr.KeyPair(seedOf(30, params.KeySeedSize))
	_, other := tr.KeyPair(seedOf(31, params.KeySeedSize))

	c, ss := encapsulate(tr, pk, seedOf(32, params.EncapsulationSeedSize))
	got, st := decapsulate(tr, c, other)
	a.Equal(DecodeFail, st)
	a.NotEqual(ss, got)
}

func TestSeedLengthPanics(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber512)

	a.Panics(func() { tr.KeyPair(make([]byte, params.SymBytes)) })

	pk, _ := tr.KeyPair(seedOf(0, params.KeySeedSize))
	a.Panics(func() { encapsulate(tr, pk, make([]byte, 16)) })
	a.Panics(func() {
		tr.Encapsulate(make([]byte, 10), make([]byte, params.SharedSecretSize), pk, seedOf(0, params.EncapsulationSeedSize))
	})
}

func TestMatchesCirclKyber(t *testing.T) {
	schemes := map[string]kem.Scheme{
		params.Kyber512.Name:  circl512.Scheme(),
		params.Kyber768.Name:  circl768.Scheme(),
		params.Kyber1024.Name: circl1024.Scheme(),
	}

	for _, p := range params.All() {
		t.Run(p.Name, func(t *testing.T) {
			a := require.New(t)
			tr := newTransform(p)
			scheme := schemes[p.Name]

			a.Equal(scheme.SeedSize(), params.KeySeedSize)
			a.Equal(scheme.EncapsulationSeedSize(), params.EncapsulationSeedSize)
			a.Equal(scheme.PrivateKeySize(), p.SecretKeySize())
			a.Equal(scheme.PublicKeySize(), p.PublicKeySize())
			a.Equal(scheme.CiphertextSize(), p.CiphertextSize)

			kseed := seedOf(40, params.KeySeedSize)
			pk, sk := tr.KeyPair(kseed)
			cpk, csk := scheme.DeriveKeyPair(kseed)

			cpkBytes, err := cpk.MarshalBinary()
			a.NoError(err)
			cskBytes, err := csk.MarshalBinary()
			a.NoError(err)
			a.Equal(cpkBytes, pk)
			a.Equal(cskBytes, sk.Bytes())

			eseed := seedOf(41, params.EncapsulationSeedSize)
			c, ss := encapsulate(tr, pk, eseed)
			cc, css, err := scheme.EncapsulateDeterministically(cpk, eseed)
			a.NoError(err)
			a.Equal(cc, c)
			a.Equal(css, ss)

			c[5] ^= 0x20
			got, st := decapsulate(tr, c, sk)
			a.Equal(DecodeFail, st)
			cgot, err := scheme.Decapsulate(csk, c)
			a.NoError(err)
			a.Equal(cgot, got)
		})
	}
}

func TestParseSecretKey(t *testing.T) {
	a := require.New(t)
	p := params.Kyber1024
	tr := newTransform(p)
	_, sk := tr.KeyPair(seedOf(50, params.KeySeedSize))

	parsed, err := ParseSecretKey(p, sk.Bytes())
	a.NoError(err)
	a.Equal(sk.Bytes(), parsed.Bytes())
	a.Equal(sk.Z, parsed.Z)
	a.Equal(sk.PublicKeyHash, parsed.PublicKeyHash)

	_, err = ParseSecretKey(p, sk.Bytes()[1:])
	a.ErrorIs(err, ErrSecretKeySize)
	_, err = ParseSecretKey(params.Kyber768, sk.Bytes())
	a.ErrorIs(err, ErrSecretKeySize)
}

func TestParseSecretKey_CopiesInput(t *testing.T) {
	a := require.New(t)
	p := params.Kyber512
	buf := seedOf(0, p.SecretKeySize())

	sk, err := ParseSecretKey(p, buf)
	a.NoError(err)
	buf[0] ^= 0xff
	a.NotEqual(buf[0], sk.CPASecret[0])
}

func TestSecretKey_Zero(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber512)
	_, sk := tr.KeyPair(seedOf(60, params.KeySeedSize))

	sk.Zero()
	a.Equal(make([]byte, params.Kyber512.SecretKeySize()), sk.Bytes())
	a.Equal(make([]byte, params.SymBytes), sk.Z)
}

func TestPublicKeyHashValid_DetectsCorruption(t *testing.T) {
	a := require.New(t)
	tr := newTransform(params.Kyber768)
	_, sk := tr.KeyPair(seedOf(70, params.KeySeedSize))

	a.True(tr.PublicKeyHashValid(sk))
	sk.PublicKeyHash[3] ^= 1
	a.False(tr.PublicKeyHashValid(sk))
}
