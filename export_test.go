package kyberkem

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vaultsandbox/kyberkem/internal/crypto"
)

func TestExport_ImportRoundTrip(t *testing.T) {
	for _, s := range Schemes() {
		t.Run(s.Name(), func(t *testing.T) {
			pk, sk, err := s.GenerateKeyPair()
			if err != nil {
				t.Fatal(err)
			}

			exported := sk.Export()
			if exported.Version != ExportVersion {
				t.Errorf("Version = %d, want %d", exported.Version, ExportVersion)
			}
			if exported.Scheme != s.Name() {
				t.Errorf("Scheme = %s, want %s", exported.Scheme, s.Name())
			}
			if exported.ExportedAt.IsZero() {
				t.Error("ExportedAt is zero")
			}

			gotPk, gotSk, err := ImportSecretKey(exported)
			if err != nil {
				t.Fatalf("ImportSecretKey() error = %v", err)
			}
			if !gotPk.Equal(pk) {
				t.Error("imported public key differs")
			}
			if !gotSk.Equal(sk) {
				t.Error("imported secret key differs")
			}
		})
	}
}

func TestExportedKey_Validate(t *testing.T) {
	_, sk, err := Kyber768.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	valid := sk.Export()

	tests := []struct {
		name    string
		modify  func(*ExportedKey)
		wantErr string
	}{
		{"valid", func(*ExportedKey) {}, ""},
		{"wrong version", func(e *ExportedKey) { e.Version = 2 }, "unsupported version"},
		{"unknown scheme", func(e *ExportedKey) { e.Scheme = "ML-KEM-768" }, "unknown scheme"},
		{"missing secret key", func(e *ExportedKey) { e.SecretKey = "" }, "secretKey is required"},
		{"bad encoding", func(e *ExportedKey) { e.SecretKey = "!!!" }, "invalid secretKey encoding"},
		{"wrong size", func(e *ExportedKey) { e.SecretKey = crypto.ToBase64URL(make([]byte, 100)) }, "secretKey size 100"},
		{"scheme and size disagree", func(e *ExportedKey) { e.Scheme = "Kyber512" }, "expected 1632"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := *valid
			tt.modify(&e)
			err := e.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidImportData) {
				t.Errorf("expected ErrInvalidImportData, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestImportSecretKey_CorruptedHash(t *testing.T) {
	_, sk, err := Kyber512.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := sk.MarshalBinary()
	raw[Kyber512.SecretKeySize()-64] ^= 0xff

	data := &ExportedKey{
		Version:    ExportVersion,
		Scheme:     "Kyber512",
		SecretKey:  crypto.ToBase64URL(raw),
		ExportedAt: time.Now(),
	}
	if _, _, err := ImportSecretKey(data); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("expected ErrInvalidImportData, got %v", err)
	}
}

func TestExportedKey_JSONFieldNames(t *testing.T) {
	_, sk, err := Kyber512.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(sk.Export())
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"version", "scheme", "secretKey", "exportedAt"} {
		if _, ok := m[field]; !ok {
			t.Errorf("missing JSON field %q", field)
		}
	}
	if len(m) != 4 {
		t.Errorf("unexpected fields in export: %v", m)
	}
}

func TestExportImportFile(t *testing.T) {
	pk, sk, err := Kyber1024.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "key.json")
	if err := ExportKeyToFile(sk, path); err != nil {
		t.Fatalf("ExportKeyToFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	gotPk, gotSk, err := ImportKeyFromFile(path)
	if err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if !gotPk.Equal(pk) || !gotSk.Equal(sk) {
		t.Error("keys from file differ")
	}
}

func TestImportKeyFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := ImportKeyFromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ImportKeyFromFile(bad); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("expected ErrInvalidImportData, got %v", err)
	}
}

func TestExportEncrypted_RoundTrip(t *testing.T) {
	pk, sk, err := Kyber768.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	passphrase := []byte("hunter2")

	enc, err := sk.ExportEncrypted(passphrase)
	if err != nil {
		t.Fatalf("ExportEncrypted() error = %v", err)
	}
	if enc.KDF != "Argon2id" || enc.AEAD != "XChaCha20-Poly1305" {
		t.Errorf("wrapping = %s/%s", enc.KDF, enc.AEAD)
	}

	gotPk, gotSk, err := ImportEncryptedSecretKey(enc, passphrase)
	if err != nil {
		t.Fatalf("ImportEncryptedSecretKey() error = %v", err)
	}
	if !gotPk.Equal(pk) || !gotSk.Equal(sk) {
		t.Error("imported keys differ")
	}
}

func TestExportEncrypted_EmptyPassphrase(t *testing.T) {
	_, sk, err := Kyber512.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sk.ExportEncrypted(nil); !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("expected ErrInvalidImportData, got %v", err)
	}
}

func TestImportEncryptedSecretKey_Failures(t *testing.T) {
	_, sk, err := Kyber512.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	passphrase := []byte("passphrase")
	valid, err := sk.ExportEncrypted(passphrase)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		modify     func(*EncryptedExportedKey)
		passphrase []byte
		wantErr    error
	}{
		{"wrong passphrase", func(*EncryptedExportedKey) {}, []byte("Passphrase"), ErrDecryptionFailed},
		{"scheme relabelled", func(e *EncryptedExportedKey) { e.Scheme = "Kyber768" }, passphrase, ErrDecryptionFailed},
		{"wrong version", func(e *EncryptedExportedKey) { e.Version = 2 }, passphrase, ErrInvalidImportData},
		{"unknown kdf", func(e *EncryptedExportedKey) { e.KDF = "scrypt" }, passphrase, ErrInvalidImportData},
		{"unknown scheme", func(e *EncryptedExportedKey) { e.Scheme = "X25519" }, passphrase, ErrInvalidImportData},
		{"bad salt", func(e *EncryptedExportedKey) { e.Salt = "!!!" }, passphrase, ErrInvalidImportData},
		{"short salt", func(e *EncryptedExportedKey) { e.Salt = crypto.ToBase64URL(make([]byte, 4)) }, passphrase, ErrInvalidImportData},
		{"bad wrapped key", func(e *EncryptedExportedKey) { e.WrappedKey = "!!!" }, passphrase, ErrInvalidImportData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := *valid
			tt.modify(&e)
			_, _, err := ImportEncryptedSecretKey(&e, tt.passphrase)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ImportEncryptedSecretKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
