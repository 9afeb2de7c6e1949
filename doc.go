// Package kyberkem provides the Kyber (round 3) key-encapsulation
// mechanism: the IND-CPA Kyber encryption scheme lifted to an IND-CCA2
// KEM by the Fujisaki-Okamoto transform with implicit rejection.
//
// Three parameter sets are available as Kyber512, Kyber768 and Kyber1024.
//
// Basic usage:
//
//	pk, sk, err := kyberkem.Kyber768.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Sender
//	ct, ss, err := kyberkem.Kyber768.Encapsulate(pk)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Recipient
//	ss2, status, err := kyberkem.Kyber768.Decapsulate(sk, ct)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decapsulate always returns a shared secret. A ciphertext that fails the
// re-encryption check yields StatusDecodeFail together with a pseudorandom
// secret derived from the secret key, and the two cases take the same
// time. Protocols that confirm the key (for example by AES-GCM
// authentication, as Seal and Open do) need not inspect the status.
//
// Seal and Open build a one-shot KEM-DEM on top of the KEM: HKDF-SHA-512
// derives an AES-256-GCM key from the shared secret, and an optional
// ML-DSA-65 signature authenticates the sender.
//
// Secret keys can be exported as JSON with [SecretKey.Export], or wrapped
// under a passphrase with [SecretKey.ExportEncrypted].
//
// Deterministic, seed-driven operation for known-answer tests lives in the
// katgen package, and the circlkem package exposes each scheme as a
// circl kem.Scheme.
package kyberkem
