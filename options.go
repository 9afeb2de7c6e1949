package kyberkem

import (
	"crypto/rand"
	"io"
	"log/slog"
)

// config holds the settings shared by key generation, encapsulation and
// the sealing layer. Settings that do not apply to an operation are ignored.
type config struct {
	rand   io.Reader
	logger *slog.Logger
	aad    []byte
	signer *Signer
}

// Option configures an operation.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{
		rand:   rand.Reader,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithRand sets the randomness source for key generation and
// encapsulation. Default: crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithLogger sets the logger used by Seal and Open. Default: discard.
// The KEM operations themselves never log.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAAD sets additional authenticated data for Seal. The AAD travels in
// the payload and is bound into both the key derivation and AES-GCM.
func WithAAD(aad []byte) Option {
	return func(c *config) {
		c.aad = aad
	}
}

// WithSigner makes Seal sign the payload transcript with ML-DSA-65.
func WithSigner(s *Signer) Option {
	return func(c *config) {
		c.signer = s
	}
}
