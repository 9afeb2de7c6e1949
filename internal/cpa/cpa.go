// Package cpa adapts the IND-CPA Kyber public-key encryption scheme to the
// byte-oriented interface consumed by the KEM transform.
//
// The lattice arithmetic itself is provided by circl's round-3 Kyber
// CPAPKE packages; this package only moves packed keys, messages and
// ciphertexts across that boundary.
package cpa

import (
	"github.com/cloudflare/circl/pke/kyber/kyber1024"
	"github.com/cloudflare/circl/pke/kyber/kyber512"
	"github.com/cloudflare/circl/pke/kyber/kyber768"

	"github.com/vaultsandbox/kyberkem/internal/params"
)

// PKE is a passively secure public-key encryption scheme. Every buffer has
// the fixed length given by Params; implementations may panic otherwise.
// Encryption is fully deterministic given coins.
type PKE interface {
	Params() params.Set
	// KeyPair derives a packed key pair from a params.SymBytes seed.
	KeyPair(pk, sk, seed []byte)
	// Encrypt writes the encryption of the params.SymBytes message under pk
	// with the given params.SymBytes coins to ct.
	Encrypt(ct, msg, pk, coins []byte)
	// Decrypt writes the params.SymBytes message recovered from ct to msg.
	Decrypt(msg, ct, sk []byte)
}

// ForParams returns the adapter for the given parameter set, or nil.
func ForParams(p params.Set) PKE {
	switch p.Name {
	case params.Kyber512.Name:
		return Kyber512{}
	case params.Kyber768.Name:
		return Kyber768{}
	case params.Kyber1024.Name:
		return Kyber1024{}
	}
	return nil
}

// Kyber512 is Kyber512.CPAPKE.
type Kyber512 struct{}

func (Kyber512) Params() params.Set { return params.Kyber512 }

func (Kyber512) KeyPair(pk, sk, seed []byte) {
	p, s := kyber512.NewKeyFromSeed(seed)
	p.Pack(pk)
	s.Pack(sk)
}

func (Kyber512) Encrypt(ct, msg, pk, coins []byte) {
	var p kyber512.PublicKey
	p.Unpack(pk)
	p.EncryptTo(ct, msg, coins)
}

func (Kyber512) Decrypt(msg, ct, sk []byte) {
	var s kyber512.PrivateKey
	s.Unpack(sk)
	s.DecryptTo(msg, ct)
}

// Kyber768 is Kyber768.CPAPKE.
type Kyber768 struct{}

func (Kyber768) Params() params.Set { return params.Kyber768 }

func (Kyber768) KeyPair(pk, sk, seed []byte) {
	p, s := kyber768.NewKeyFromSeed(seed)
	p.Pack(pk)
	s.Pack(sk)
}

func (Kyber768) Encrypt(ct, msg, pk, coins []byte) {
	var p kyber768.PublicKey
	p.Unpack(pk)
	p.EncryptTo(ct, msg, coins)
}

func (Kyber768) Decrypt(msg, ct, sk []byte) {
	var s kyber768.PrivateKey
	s.Unpack(sk)
	s.DecryptTo(msg, ct)
}

// Kyber1024 is Kyber1024.CPAPKE.
type Kyber1024 struct{}

func (Kyber1024) Params() params.Set { return params.Kyber1024 }

func (Kyber1024) KeyPair(pk, sk, seed []byte) {
	p, s := kyber1024.NewKeyFromSeed(seed)
	p.Pack(pk)
	s.Pack(sk)
}

func (Kyber1024) Encrypt(ct, msg, pk, coins []byte) {
	var p kyber1024.PublicKey
	p.Unpack(pk)
	p.EncryptTo(ct, msg, coins)
}

func (Kyber1024) Decrypt(msg, ct, sk []byte) {
	var s kyber1024.PrivateKey
	s.Unpack(sk)
	s.DecryptTo(msg, ct)
}
