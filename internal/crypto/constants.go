package crypto

import "github.com/cloudflare/circl/sign/mldsa/mldsa65"

const (
	// SealContext is the HKDF context string that domain-separates sealed
	// payload keys from any other use of a KEM shared secret.
	SealContext = "kyberkem:seal:v1"

	// SealVersion is the sealed payload format version.
	SealVersion = 1

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// MLDSAPublicKeySize is the size of an ML-DSA-65 public key in bytes.
	MLDSAPublicKeySize = mldsa65.PublicKeySize
	// MLDSASignatureSize is the size of an ML-DSA-65 signature in bytes.
	MLDSASignatureSize = mldsa65.SignatureSize
)

// Algorithm names recorded in sealed payloads.
const (
	AlgSig  = "ML-DSA-65"
	AlgAEAD = "AES-256-GCM"
	AlgKDF  = "HKDF-SHA-512"
)
