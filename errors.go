package kyberkem

import (
	"errors"
	"fmt"

	"github.com/vaultsandbox/kyberkem/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrRandomness is returned when the randomness source fails. No key
	// material has been produced when this error is returned.
	ErrRandomness = errors.New("randomness source failure")

	// ErrDecapsulationFailed is returned by Status.Err for DecodeFail.
	ErrDecapsulationFailed = errors.New("decapsulation failed: ciphertext rejected")

	// ErrInvalidPublicKeySize is returned when an encoded public key has the wrong length.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidSecretKeySize is returned when an encoded secret key has the wrong length.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidCiphertextSize is returned when a ciphertext has the wrong length.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")

	// ErrUnknownScheme is returned when a scheme name is not recognized.
	ErrUnknownScheme = errors.New("unknown scheme")

	// ErrInvalidImportData is returned when exported key data is invalid.
	ErrInvalidImportData = errors.New("invalid import data")

	// ErrDecryptionFailed is returned when a sealed payload cannot be opened.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrSchemeMismatch is returned when a key or payload belongs to a
	// different scheme than the one used.
	ErrSchemeMismatch = errors.New("scheme mismatch")
)

// KEMError is implemented by all typed errors of this package.
type KEMError interface {
	error
	KEMError() // marker method
}

// RandomnessError reports a failed read from the randomness source.
type RandomnessError struct {
	Op  string // "keypair", "encapsulate"
	Err error
}

func (e *RandomnessError) Error() string {
	return fmt.Sprintf("%s: randomness source failure: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *RandomnessError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *RandomnessError) Is(target error) bool {
	return target == ErrRandomness
}

// KEMError implements the KEMError interface.
func (e *RandomnessError) KEMError() {}

// DecryptionError represents a failure to open a sealed payload.
type DecryptionError struct {
	Stage   string // "kem", "hkdf", "aes", "unwrap"
	Message string
	Err     error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decryption failed at %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// KEMError implements the KEMError interface.
func (e *DecryptionError) KEMError() {}

// SignatureVerificationError indicates potential tampering.
type SignatureVerificationError struct {
	Message string
	// IsKeyMismatch is set when the payload was signed by a key other than
	// the pinned one.
	IsKeyMismatch bool
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("signature verification failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// KEMError implements the KEMError interface.
func (e *SignatureVerificationError) KEMError() {}

// wrapCryptoError converts internal crypto errors to public sentinel errors
// so that errors.Is() checks work correctly.
func wrapCryptoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, crypto.ErrSignerKeyMismatch) {
		return &SignatureVerificationError{Message: err.Error(), IsKeyMismatch: true}
	}
	if errors.Is(err, crypto.ErrSignatureVerificationFailed) || errors.Is(err, crypto.ErrInvalidPublicKey) {
		return &SignatureVerificationError{Message: err.Error()}
	}
	if errors.Is(err, crypto.ErrDecryptionFailed) {
		return &DecryptionError{Stage: "aes", Err: err}
	}

	return err
}
