package main

import (
	"fmt"

	"github.com/vaultsandbox/kyberkem"
	"github.com/vaultsandbox/kyberkem/internal/crypto"
)

// KeygenOutput is the response of keygen.
type KeygenOutput struct {
	PublicKey string                `json:"publicKey"`
	Key       *kyberkem.ExportedKey `json:"key"`
}

// EncapsRequest is the request of encaps and the public-key part of seal.
type EncapsRequest struct {
	PublicKey string `json:"publicKey"`
}

// EncapsOutput is the response of encaps.
type EncapsOutput struct {
	Ciphertext   string `json:"ciphertext"`
	SharedSecret string `json:"sharedSecret"`
}

// DecapsRequest is the request of decaps.
type DecapsRequest struct {
	Key        *kyberkem.ExportedKey `json:"key"`
	Ciphertext string                `json:"ciphertext"`
}

// DecapsOutput is the response of decaps.
type DecapsOutput struct {
	SharedSecret string `json:"sharedSecret"`
	Status       string `json:"status"`
}

// SealRequest is the request of seal.
type SealRequest struct {
	PublicKey string `json:"publicKey"`
	Plaintext string `json:"plaintext"`
	AAD       string `json:"aad,omitempty"`
}

// OpenRequest is the request of open.
type OpenRequest struct {
	Key     *kyberkem.ExportedKey   `json:"key"`
	Payload *kyberkem.SealedPayload `json:"payload"`
}

// OpenOutput is the response of open.
type OpenOutput struct {
	Plaintext string `json:"plaintext"`
}

func (s *session) keygen() error {
	pk, sk, err := s.scheme.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}
	defer sk.Zero()

	pkBytes, _ := pk.MarshalBinary()
	return s.writeResponse(KeygenOutput{
		PublicKey: crypto.ToBase64URL(pkBytes),
		Key:       sk.Export(),
	})
}

func (s *session) publicKey(encoded string) (*kyberkem.PublicKey, error) {
	raw, err := crypto.DecodeBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode publicKey: %w", err)
	}
	return s.scheme.UnmarshalPublicKey(raw)
}

func (s *session) secretKey(data *kyberkem.ExportedKey) (*kyberkem.SecretKey, error) {
	if data == nil {
		return nil, fmt.Errorf("import key: %w: key is required", kyberkem.ErrInvalidImportData)
	}
	_, sk, err := kyberkem.ImportSecretKey(data)
	if err != nil {
		return nil, fmt.Errorf("import key: %w", err)
	}
	return sk, nil
}

func (s *session) encaps() error {
	var req EncapsRequest
	if err := s.readRequest(&req); err != nil {
		return err
	}
	pk, err := s.publicKey(req.PublicKey)
	if err != nil {
		return err
	}

	ct, ss, err := s.scheme.Encapsulate(pk)
	if err != nil {
		return fmt.Errorf("encapsulate: %w", err)
	}
	return s.writeResponse(EncapsOutput{
		Ciphertext:   crypto.ToBase64URL(ct),
		SharedSecret: crypto.ToBase64URL(ss),
	})
}

func (s *session) decaps() error {
	var req DecapsRequest
	if err := s.readRequest(&req); err != nil {
		return err
	}
	sk, err := s.secretKey(req.Key)
	if err != nil {
		return err
	}
	defer sk.Zero()

	ct, err := crypto.DecodeBase64(req.Ciphertext)
	if err != nil {
		return fmt.Errorf("decode ciphertext: %w", err)
	}

	ss, status, err := sk.Scheme().Decapsulate(sk, ct)
	if err != nil {
		return fmt.Errorf("decapsulate: %w", err)
	}
	return s.writeResponse(DecapsOutput{
		SharedSecret: crypto.ToBase64URL(ss),
		Status:       status.String(),
	})
}

func (s *session) seal() error {
	var req SealRequest
	if err := s.readRequest(&req); err != nil {
		return err
	}
	pk, err := s.publicKey(req.PublicKey)
	if err != nil {
		return err
	}
	plaintext, err := crypto.DecodeBase64(req.Plaintext)
	if err != nil {
		return fmt.Errorf("decode plaintext: %w", err)
	}
	aad, err := crypto.DecodeBase64(req.AAD)
	if err != nil {
		return fmt.Errorf("decode aad: %w", err)
	}

	payload, err := kyberkem.Seal(pk, plaintext, kyberkem.WithAAD(aad), kyberkem.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("seal: %w", err)
	}
	return s.writeResponse(payload)
}

func (s *session) open() error {
	var req OpenRequest
	if err := s.readRequest(&req); err != nil {
		return err
	}
	sk, err := s.secretKey(req.Key)
	if err != nil {
		return err
	}
	defer sk.Zero()

	plaintext, err := kyberkem.Open(sk, req.Payload, kyberkem.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return s.writeResponse(OpenOutput{Plaintext: crypto.ToBase64URL(plaintext)})
}
