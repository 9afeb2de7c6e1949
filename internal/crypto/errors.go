package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned when AES-GCM authentication fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrSignatureVerificationFailed is returned when signature verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrSignerKeyMismatch is returned when the payload's signer public key
	// does not match the pinned signer key.
	ErrSignerKeyMismatch = errors.New("signer public key mismatch: payload key differs from pinned key")

	// ErrInvalidPublicKey is returned when a signer public key cannot be parsed.
	ErrInvalidPublicKey = errors.New("invalid signer public key")
)
