// Package drbg implements the AES-256 CTR_DRBG (without derivation
// function, without prediction resistance) that the NIST PQC reference
// harness uses as randombytes() when generating known-answer tests.
//
// It is deterministic by construction and must only be used to reproduce
// test vectors.
package drbg

import (
	"crypto/aes"
	"crypto/cipher"
)

// SeedSize is the length of the entropy input accepted by New.
const SeedSize = 48

// DRBG is an AES-256 CTR_DRBG. It implements io.Reader and never fails.
type DRBG struct {
	key [32]byte
	v   [16]byte
}

// New returns a DRBG instantiated with a SeedSize entropy input.
func New(seed []byte) *DRBG {
	if len(seed) != SeedSize {
		panic("drbg: seed must be of length SeedSize")
	}
	d := &DRBG{}
	d.update(seed)
	return d
}

func (d *DRBG) block() cipher.Block {
	b, err := aes.NewCipher(d.key[:])
	if err != nil {
		panic(err)
	}
	return b
}

func (d *DRBG) incV() {
	for j := 15; j >= 0; j-- {
		d.v[j]++
		if d.v[j] != 0 {
			return
		}
	}
}

func (d *DRBG) update(provided []byte) {
	var temp [48]byte
	b := d.block()
	for i := 0; i < 3; i++ {
		d.incV()
		b.Encrypt(temp[16*i:], d.v[:])
	}
	for i := range provided {
		temp[i] ^= provided[i]
	}
	copy(d.key[:], temp[:32])
	copy(d.v[:], temp[32:])
}

// Read fills p and then updates the internal state, exactly as one call
// to the reference randombytes(p, len(p)).
func (d *DRBG) Read(p []byte) (int, error) {
	var blk [16]byte
	b := d.block()
	for off := 0; off < len(p); off += 16 {
		d.incV()
		b.Encrypt(blk[:], d.v[:])
		copy(p[off:], blk[:])
	}
	d.update(nil)
	return len(p), nil
}
