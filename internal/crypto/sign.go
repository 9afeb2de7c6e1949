package crypto

import (
	"crypto/subtle"
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"golang.org/x/crypto/cryptobyte"
)

// Signer holds an ML-DSA-65 key pair used to authenticate sealed payloads.
type Signer struct {
	priv *mldsa65.PrivateKey
	pub  []byte
}

// GenerateSigner creates a new ML-DSA-65 signer.
func GenerateSigner() (*Signer, error) {
	pub, priv, err := mldsa65.GenerateKey(reader())
	if err != nil {
		return nil, err
	}

	// MarshalBinary never fails for keys from GenerateKey
	pubBytes, _ := pub.MarshalBinary()
	return &Signer{priv: priv, pub: pubBytes}, nil
}

// PublicKey returns the raw ML-DSA-65 public key bytes.
func (s *Signer) PublicKey() []byte {
	out := make([]byte, len(s.pub))
	copy(out, s.pub)
	return out
}

// Sign signs message with hedged randomness.
func (s *Signer) Sign(message []byte) ([]byte, error) {
	sig := make([]byte, MLDSASignatureSize)
	if err := mldsa65.SignTo(s.priv, message, nil, true, sig); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}

// Verify verifies an ML-DSA-65 signature (low-level function).
func Verify(publicKey, message, signature []byte) error {
	pk := &mldsa65.PublicKey{}
	if err := pk.UnmarshalBinary(publicKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	if !mldsa65.Verify(pk, message, nil, signature) {
		return ErrSignatureVerificationFailed
	}

	return nil
}

// VerifyPinned checks that signerPk equals the pinned key before verifying
// the signature, so a payload cannot bring its own signing key.
func VerifyPinned(pinned, signerPk, message, signature []byte) error {
	if subtle.ConstantTimeCompare(pinned, signerPk) != 1 {
		return ErrSignerKeyMismatch
	}
	return Verify(signerPk, message, signature)
}

// BuildTranscript constructs the byte string covered by a payload signature.
// Every variable-length field is prefixed with its 4-byte big-endian length.
func BuildTranscript(version int, suite string, ctKem, nonce, aad, ciphertext, signerPk []byte) []byte {
	var b cryptobyte.Builder
	b.AddUint8(uint8(version))
	for _, field := range [][]byte{[]byte(suite), []byte(SealContext), ctKem, nonce, aad, ciphertext, signerPk} {
		b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes(field)
		})
	}
	return b.BytesOrPanic()
}
