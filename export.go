package kyberkem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vaultsandbox/kyberkem/internal/crypto"
)

// ExportVersion is the current export format version.
const ExportVersion = 1

// ExportedKey contains all data needed to restore a key pair.
// WARNING: this contains private key material - handle securely.
//
// The public key is not included; it is recovered from the secret key.
type ExportedKey struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// Scheme is the parameter set name, e.g. "Kyber768".
	Scheme string `json:"scheme"`
	// SecretKey is the encoded secret key (base64url).
	SecretKey string `json:"secretKey"`
	// ExportedAt is the export timestamp (ISO 8601). Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Validate checks that the exported data is well formed.
func (e *ExportedKey) Validate() error {
	if e.Version != ExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, ExportVersion)
	}

	scheme, err := SchemeByName(e.Scheme)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}

	if e.SecretKey == "" {
		return fmt.Errorf("%w: secretKey is required", ErrInvalidImportData)
	}
	secretKey, err := crypto.FromBase64URL(e.SecretKey)
	if err != nil {
		return fmt.Errorf("%w: invalid secretKey encoding", ErrInvalidImportData)
	}
	defer clear(secretKey)
	if len(secretKey) != scheme.SecretKeySize() {
		return fmt.Errorf("%w: secretKey size %d, expected %d", ErrInvalidImportData, len(secretKey), scheme.SecretKeySize())
	}

	return nil
}

// Export returns exportable key data.
func (sk *SecretKey) Export() *ExportedKey {
	raw := sk.key.Bytes()
	defer clear(raw)

	return &ExportedKey{
		Version:    ExportVersion,
		Scheme:     sk.scheme.Name(),
		SecretKey:  crypto.ToBase64URL(raw),
		ExportedAt: time.Now().UTC(),
	}
}

// ImportSecretKey reconstructs a key pair from exported data. The public
// key is taken from the copy embedded in the secret key, and the cached
// public key hash is checked against it.
func ImportSecretKey(data *ExportedKey) (*PublicKey, *SecretKey, error) {
	if err := data.Validate(); err != nil {
		return nil, nil, err
	}

	// Validate() already verified the scheme and the encoding.
	scheme, _ := SchemeByName(data.Scheme)
	raw, _ := crypto.FromBase64URL(data.SecretKey)
	defer clear(raw)

	sk, err := scheme.UnmarshalSecretKey(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	if err := sk.Validate(); err != nil {
		return nil, nil, err
	}

	return sk.Public(), sk, nil
}

// EncryptedExportedKey is an ExportedKey whose secret key is protected by
// a passphrase. The scheme name is authenticated along with the key.
type EncryptedExportedKey struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// Scheme is the parameter set name, e.g. "Kyber768".
	Scheme string `json:"scheme"`
	// KDF names the passphrase key derivation, "Argon2id".
	KDF string `json:"kdf"`
	// AEAD names the key wrapping cipher, "XChaCha20-Poly1305".
	AEAD string `json:"aead"`
	// Salt is the Argon2id salt (base64url).
	Salt string `json:"salt"`
	// WrappedKey is nonce || ciphertext || tag (base64url).
	WrappedKey string `json:"wrappedKey"`
	// ExportedAt is the export timestamp (ISO 8601). Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// ExportEncrypted returns the secret key wrapped under passphrase.
func (sk *SecretKey) ExportEncrypted(passphrase []byte) (*EncryptedExportedKey, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase", ErrInvalidImportData)
	}
	raw := sk.key.Bytes()
	defer clear(raw)

	salt, box, err := crypto.WrapKey(passphrase, raw, []byte(sk.scheme.Name()))
	if err != nil {
		return nil, fmt.Errorf("wrap secret key: %w", err)
	}

	return &EncryptedExportedKey{
		Version:    ExportVersion,
		Scheme:     sk.scheme.Name(),
		KDF:        crypto.AlgWrapKDF,
		AEAD:       crypto.AlgWrapAEAD,
		Salt:       crypto.ToBase64URL(salt),
		WrappedKey: crypto.ToBase64URL(box),
		ExportedAt: time.Now().UTC(),
	}, nil
}

// ImportEncryptedSecretKey unwraps data with passphrase and reconstructs
// the key pair. A wrong passphrase returns an error matching
// ErrDecryptionFailed.
func ImportEncryptedSecretKey(data *EncryptedExportedKey, passphrase []byte) (*PublicKey, *SecretKey, error) {
	if data.Version != ExportVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, data.Version, ExportVersion)
	}
	if data.KDF != crypto.AlgWrapKDF || data.AEAD != crypto.AlgWrapAEAD {
		return nil, nil, fmt.Errorf("%w: unsupported wrapping %s/%s", ErrInvalidImportData, data.KDF, data.AEAD)
	}
	scheme, err := SchemeByName(data.Scheme)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	salt, err := crypto.FromBase64URL(data.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid salt encoding", ErrInvalidImportData)
	}
	box, err := crypto.FromBase64URL(data.WrappedKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid wrappedKey encoding", ErrInvalidImportData)
	}

	raw, err := crypto.UnwrapKey(passphrase, salt, box, []byte(scheme.Name()))
	if err != nil {
		if errors.Is(err, crypto.ErrDecryptionFailed) {
			return nil, nil, &DecryptionError{Stage: "unwrap", Err: err}
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	defer clear(raw)

	return ImportSecretKey(&ExportedKey{
		Version:   ExportVersion,
		Scheme:    scheme.Name(),
		SecretKey: crypto.ToBase64URL(raw),
	})
}

// ExportKeyToFile writes the exported secret key to filePath as indented
// JSON, readable only by the owner.
func ExportKeyToFile(sk *SecretKey, filePath string) error {
	jsonData, err := json.MarshalIndent(sk.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export data: %w", err)
	}

	if err := os.WriteFile(filePath, jsonData, 0600); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	return nil
}

// ImportKeyFromFile reads a key pair written by ExportKeyToFile.
func ImportKeyFromFile(filePath string) (*PublicKey, *SecretKey, error) {
	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read import file: %w", err)
	}

	var data ExportedKey
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}

	return ImportSecretKey(&data)
}
