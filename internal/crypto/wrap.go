package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters for passphrase-wrapped keys.
const (
	ArgonTime    = 2
	ArgonMemory  = 64 * 1024
	ArgonThreads = 4
	ArgonKeyLen  = chacha20poly1305.KeySize

	// WrapSaltSize is the size of the Argon2id salt in bytes.
	WrapSaltSize = 16
)

// Algorithm names recorded in wrapped key exports.
const (
	AlgWrapKDF  = "Argon2id"
	AlgWrapAEAD = "XChaCha20-Poly1305"
)

// WrapKey encrypts secret under a key derived from passphrase with
// Argon2id and seals it with XChaCha20-Poly1305. The returned box is
// nonce || ciphertext || tag. aad is authenticated but not encrypted.
func WrapKey(passphrase, secret, aad []byte) (salt, box []byte, err error) {
	salt = make([]byte, WrapSaltSize)
	if _, err := io.ReadFull(reader(), salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(passphrase, salt, ArgonTime, ArgonMemory, ArgonThreads, ArgonKeyLen)
	defer clear(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create XChaCha20-Poly1305: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(secret)+aead.Overhead())
	if _, err := io.ReadFull(reader(), nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}
	return salt, aead.Seal(nonce, nonce, secret, aad), nil
}

// UnwrapKey reverses WrapKey. A wrong passphrase, salt or aad fails with
// ErrDecryptionFailed.
func UnwrapKey(passphrase, salt, box, aad []byte) ([]byte, error) {
	if len(salt) != WrapSaltSize {
		return nil, fmt.Errorf("%w: salt size %d, want %d", ErrInvalidKeySize, len(salt), WrapSaltSize)
	}

	key := argon2.IDKey(passphrase, salt, ArgonTime, ArgonMemory, ArgonThreads, ArgonKeyLen)
	defer clear(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create XChaCha20-Poly1305: %w", err)
	}

	if len(box) < aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: wrapped key too short", ErrDecryptionFailed)
	}
	nonce, ciphertext := box[:aead.NonceSize()], box[aead.NonceSize():]
	secret, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return secret, nil
}
