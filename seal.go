package kyberkem

import (
	"errors"
	"fmt"

	"github.com/vaultsandbox/kyberkem/internal/crypto"
)

// SealVersion is the current sealed payload format version.
const SealVersion = crypto.SealVersion

// AlgorithmSuite names the algorithms a sealed payload was built with.
type AlgorithmSuite struct {
	KEM  string `json:"kem"`
	Sig  string `json:"sig,omitempty"`
	AEAD string `json:"aead"`
	KDF  string `json:"kdf"`
}

func (a AlgorithmSuite) String() string {
	sig := a.Sig
	if sig == "" {
		sig = "none"
	}
	return a.KEM + ":" + sig + ":" + a.AEAD + ":" + a.KDF
}

// SealedPayload is a one-shot KEM-DEM ciphertext. All byte fields are
// base64url encoded without padding.
type SealedPayload struct {
	// V is the payload format version.
	V int `json:"v"`
	// Algs specifies the algorithm suite used.
	Algs AlgorithmSuite `json:"algs"`
	// CtKem is the KEM ciphertext.
	CtKem string `json:"ct_kem"`
	// Nonce is the AES-GCM nonce.
	Nonce string `json:"nonce"`
	// AAD is the additional authenticated data.
	AAD string `json:"aad,omitempty"`
	// Ciphertext is the AES-GCM ciphertext including the tag.
	Ciphertext string `json:"ciphertext"`
	// Sig is the ML-DSA-65 signature over the payload transcript.
	Sig string `json:"sig,omitempty"`
	// SignerPk is the signer's ML-DSA-65 public key.
	SignerPk string `json:"signer_pk,omitempty"`
}

// Signed reports whether the payload carries a signature.
func (p *SealedPayload) Signed() bool {
	return p.Sig != ""
}

// Signer holds an ML-DSA-65 key pair used to authenticate sealed payloads.
type Signer struct {
	s *crypto.Signer
}

// NewSigner generates a new ML-DSA-65 signer.
func NewSigner() (*Signer, error) {
	s, err := crypto.GenerateSigner()
	if err != nil {
		return nil, fmt.Errorf("generate signer: %w", err)
	}
	return &Signer{s: s}, nil
}

// PublicKey returns the signer's public key, to be pinned by recipients.
func (s *Signer) PublicKey() []byte {
	return s.s.PublicKey()
}

// Seal encrypts plaintext to pk: it encapsulates a fresh shared secret,
// derives an AES-256 key from it with HKDF-SHA-512 and encrypts with
// AES-256-GCM. WithAAD binds additional data; WithSigner signs the result.
func Seal(pk *PublicKey, plaintext []byte, opts ...Option) (*SealedPayload, error) {
	if pk == nil {
		return nil, ErrSchemeMismatch
	}
	cfg := newConfig(opts)
	log := cfg.logger.With("scheme", pk.scheme.Name())

	ctKem, ss, err := pk.scheme.Encapsulate(pk, opts...)
	if err != nil {
		return nil, err
	}
	defer clear(ss)

	nonce, ciphertext, err := crypto.SealDEM(ss, ctKem, cfg.aad, plaintext)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	payload := &SealedPayload{
		V: SealVersion,
		Algs: AlgorithmSuite{
			KEM:  pk.scheme.Name(),
			AEAD: crypto.AlgAEAD,
			KDF:  crypto.AlgKDF,
		},
		CtKem:      crypto.ToBase64URL(ctKem),
		Nonce:      crypto.ToBase64URL(nonce),
		Ciphertext: crypto.ToBase64URL(ciphertext),
	}
	if len(cfg.aad) > 0 {
		payload.AAD = crypto.ToBase64URL(cfg.aad)
	}

	if cfg.signer != nil {
		signerPk := cfg.signer.PublicKey()
		payload.Algs.Sig = crypto.AlgSig
		transcript := crypto.BuildTranscript(payload.V, payload.Algs.String(), ctKem, nonce, cfg.aad, ciphertext, signerPk)
		sig, err := cfg.signer.s.Sign(transcript)
		if err != nil {
			return nil, fmt.Errorf("seal: %w", err)
		}
		payload.Sig = crypto.ToBase64URL(sig)
		payload.SignerPk = crypto.ToBase64URL(signerPk)
	}

	log.Debug("sealed payload",
		"plaintext_len", len(plaintext),
		"aad_len", len(cfg.aad),
		"signed", payload.Signed(),
		Redacted("shared_secret"))

	return payload, nil
}

// decodedPayload holds the binary fields of a SealedPayload.
type decodedPayload struct {
	ctKem      []byte
	nonce      []byte
	aad        []byte
	ciphertext []byte
}

func decodePayload(p *SealedPayload) (*decodedPayload, error) {
	if p.V != SealVersion {
		return nil, &DecryptionError{Stage: "kem", Message: fmt.Sprintf("unsupported payload version %d", p.V)}
	}

	var d decodedPayload
	var err error
	fields := []struct {
		name string
		in   string
		out  *[]byte
	}{
		{"ct_kem", p.CtKem, &d.ctKem},
		{"nonce", p.Nonce, &d.nonce},
		{"aad", p.AAD, &d.aad},
		{"ciphertext", p.Ciphertext, &d.ciphertext},
	}
	for _, f := range fields {
		if *f.out, err = crypto.DecodeBase64(f.in); err != nil {
			return nil, &DecryptionError{Stage: "kem", Message: "invalid " + f.name + " encoding", Err: err}
		}
	}
	return &d, nil
}

// Open decrypts a sealed payload with sk. If the payload is signed,
// VerifySignature must be called first; Open does not check signatures.
//
// Open does not look at the decapsulation status. A rejected KEM
// ciphertext yields an implicit-rejection secret, so the AES-GCM tag check
// fails and Open returns an error matching ErrDecryptionFailed.
func Open(sk *SecretKey, payload *SealedPayload, opts ...Option) ([]byte, error) {
	if sk == nil || payload == nil {
		return nil, &DecryptionError{Stage: "kem", Message: "missing key or payload"}
	}
	if payload.Algs.KEM != sk.scheme.Name() {
		return nil, fmt.Errorf("%w: payload uses %q, key is %s", ErrSchemeMismatch, payload.Algs.KEM, sk.scheme.Name())
	}
	cfg := newConfig(opts)
	log := cfg.logger.With("scheme", sk.scheme.Name())

	d, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	ss, _, err := sk.scheme.Decapsulate(sk, d.ctKem)
	if err != nil {
		return nil, &DecryptionError{Stage: "kem", Err: err}
	}
	defer clear(ss)

	plaintext, err := crypto.OpenDEM(ss, d.ctKem, d.aad, d.nonce, d.ciphertext)
	if err != nil {
		log.Debug("open failed", "error", err, Redacted("shared_secret"))
		if errors.Is(err, crypto.ErrDecryptionFailed) || errors.Is(err, crypto.ErrInvalidNonceSize) {
			return nil, &DecryptionError{Stage: "aes", Err: err}
		}
		return nil, &DecryptionError{Stage: "hkdf", Err: err}
	}

	log.Debug("opened payload", "plaintext_len", len(plaintext))
	return plaintext, nil
}

// VerifySignature checks the payload signature against a pinned signer
// public key. The key carried in the payload must equal the pinned key.
func VerifySignature(payload *SealedPayload, pinnedSignerKey []byte) error {
	if payload == nil || !payload.Signed() {
		return &SignatureVerificationError{Message: "payload is not signed"}
	}

	d, err := decodePayload(payload)
	if err != nil {
		return &SignatureVerificationError{Message: err.Error()}
	}
	sig, err := crypto.DecodeBase64(payload.Sig)
	if err != nil {
		return &SignatureVerificationError{Message: "invalid sig encoding"}
	}
	signerPk, err := crypto.DecodeBase64(payload.SignerPk)
	if err != nil {
		return &SignatureVerificationError{Message: "invalid signer_pk encoding"}
	}

	transcript := crypto.BuildTranscript(payload.V, payload.Algs.String(), d.ctKem, d.nonce, d.aad, d.ciphertext, signerPk)
	return wrapCryptoError(crypto.VerifyPinned(pinnedSignerKey, signerPk, transcript, sig))
}
