package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func randomBytes(t testing.TB, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestAESGCM_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
		aad       []byte
	}{
		{"empty", []byte{}, nil},
		{"simple", []byte("hello world"), nil},
		{"with aad", []byte("hello world"), []byte("header")},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}, []byte{0x01}},
		{"large", make([]byte, 10000), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := randomBytes(t, AESKeySize)
			nonce := randomBytes(t, AESNonceSize)

			ciphertext, err := encryptAESGCM(key, nonce, tt.aad, tt.plaintext)
			if err != nil {
				t.Fatalf("encryptAESGCM() error = %v", err)
			}

			if len(ciphertext) != len(tt.plaintext)+AESTagSize {
				t.Errorf("ciphertext length = %d, want %d", len(ciphertext), len(tt.plaintext)+AESTagSize)
			}

			decrypted, err := decryptAESGCM(key, nonce, tt.aad, ciphertext)
			if err != nil {
				t.Fatalf("decryptAESGCM() error = %v", err)
			}

			if !bytes.Equal(decrypted, tt.plaintext) {
				t.Errorf("decrypted = %v, want %v", decrypted, tt.plaintext)
			}
		})
	}
}

func TestAESGCM_InvalidKeySize(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
	}{
		{"empty", 0},
		{"too short", 16},
		{"too long", 64},
	}

	nonce := make([]byte, AESNonceSize)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, tt.keySize)
			_, err := encryptAESGCM(key, nonce, nil, []byte("test"))
			if !errors.Is(err, ErrInvalidKeySize) {
				t.Errorf("expected ErrInvalidKeySize, got %v", err)
			}
			_, err = decryptAESGCM(key, nonce, nil, make([]byte, AESTagSize))
			if !errors.Is(err, ErrInvalidKeySize) {
				t.Errorf("expected ErrInvalidKeySize, got %v", err)
			}
		})
	}
}

func TestAESGCM_InvalidNonceSize(t *testing.T) {
	tests := []struct {
		name      string
		nonceSize int
	}{
		{"empty", 0},
		{"too short", 8},
		{"too long", 16},
	}

	key := make([]byte, AESKeySize)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nonce := make([]byte, tt.nonceSize)
			_, err := encryptAESGCM(key, nonce, nil, []byte("test"))
			if !errors.Is(err, ErrInvalidNonceSize) {
				t.Errorf("expected ErrInvalidNonceSize, got %v", err)
			}
		})
	}
}

func TestAESGCM_Tampering(t *testing.T) {
	key := randomBytes(t, AESKeySize)
	nonce := randomBytes(t, AESNonceSize)
	aad := []byte("aad")

	ciphertext, err := encryptAESGCM(key, nonce, aad, []byte("sensitive data"))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("flipped ciphertext bit", func(t *testing.T) {
		tampered := bytes.Clone(ciphertext)
		tampered[len(tampered)/2] ^= 0xff
		if _, err := decryptAESGCM(key, nonce, aad, tampered); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("wrong aad", func(t *testing.T) {
		if _, err := decryptAESGCM(key, nonce, []byte("other"), ciphertext); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		if _, err := decryptAESGCM(randomBytes(t, AESKeySize), nonce, aad, ciphertext); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})
}

func BenchmarkEncryptAESGCM(b *testing.B) {
	key := randomBytes(b, AESKeySize)
	nonce := randomBytes(b, AESNonceSize)
	plaintext := randomBytes(b, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = encryptAESGCM(key, nonce, nil, plaintext)
	}
}
