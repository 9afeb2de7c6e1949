// Package crypto provides the symmetric half of sealed payloads: the data
// encapsulation mechanism that turns a KEM shared secret into an
// authenticated encryption of arbitrary data, and the signatures that
// authenticate the sender.
//
// # Algorithm Suite
//
//   - HKDF-SHA-512 (RFC 5869): derives the AES key from the KEM shared
//     secret, salted with SHA-256 of the KEM ciphertext and bound to the
//     associated data.
//
//   - AES-256-GCM: authenticated encryption of the payload.
//
//   - ML-DSA-65 (NIST FIPS 204): optional sender signatures over the full
//     payload transcript.
//
//   - Argon2id + XChaCha20-Poly1305: passphrase protection for exported
//     secret keys ([WrapKey], [UnwrapKey]).
//
// # Implicit Rejection
//
// Decapsulation of a tampered KEM ciphertext does not fail; it yields a
// pseudorandom shared secret. [OpenDEM] therefore never needs to know
// whether decapsulation succeeded: a rejected secret derives a wrong AES
// key and authentication fails with [ErrDecryptionFailed].
//
// # Signature Verification
//
// When a payload is signed, [VerifyPinned] MUST be performed BEFORE
// [OpenDEM], against a signer key obtained out of band.
//
// AES-GCM nonces are drawn fresh for every payload; a nonce is never
// reused with the same key because every payload also has a fresh KEM
// shared secret.
package crypto
