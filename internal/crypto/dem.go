package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for nonces and signer keys.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader == nil {
		return rand.Reader
	}
	return randReader
}

// SealDEM encrypts plaintext under a key derived from a KEM shared secret
// and the KEM ciphertext that carried it. It returns the fresh nonce and
// ciphertext || tag.
func SealDEM(sharedSecret, ctKem, aad, plaintext []byte) (nonce, ciphertext []byte, err error) {
	key, err := deriveSealKey(sharedSecret, ctKem, aad)
	if err != nil {
		return nil, nil, err
	}
	defer clear(key)

	nonce = make([]byte, AESNonceSize)
	if _, err := io.ReadFull(reader(), nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext, err = encryptAESGCM(key, nonce, aad, plaintext)
	if err != nil {
		return nil, nil, err
	}
	return nonce, ciphertext, nil
}

// OpenDEM reverses SealDEM. A shared secret produced by implicit rejection
// fails here, at AES-GCM authentication, with ErrDecryptionFailed.
func OpenDEM(sharedSecret, ctKem, aad, nonce, ciphertext []byte) ([]byte, error) {
	key, err := deriveSealKey(sharedSecret, ctKem, aad)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	return decryptAESGCM(key, nonce, aad, ciphertext)
}
