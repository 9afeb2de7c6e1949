// Package katgen reproduces the NIST PQC known-answer tests of the Kyber
// KEM and exposes the seed-driven operations they are built from.
//
// Everything here is deterministic and intended for test harnesses only.
// Production code uses the randomized operations of package kyberkem.
package katgen

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaultsandbox/kyberkem"
	"github.com/vaultsandbox/kyberkem/internal/drbg"
	"github.com/vaultsandbox/kyberkem/internal/params"
)

const (
	// KeySeedSize is the seed length of DeriveKeyPair: the CPA key seed
	// followed by the rejection seed z.
	KeySeedSize = params.KeySeedSize
	// EncapsulationSeedSize is the seed length of EncapsulateDeterministically.
	EncapsulationSeedSize = params.EncapsulationSeedSize
	// DRBGSeedSize is the length of a per-vector seed.
	DRBGSeedSize = drbg.SeedSize
)

var (
	// ErrSeedSize is returned when a seed has the wrong length.
	ErrSeedSize = errors.New("katgen: wrong seed size")
	// ErrMismatch is returned by Check when a vector does not reproduce.
	ErrMismatch = errors.New("katgen: vector mismatch")
)

// DeriveKeyPair derives a key pair from a KeySeedSize seed.
func DeriveKeyPair(s *kyberkem.Scheme, seed []byte) (*kyberkem.PublicKey, *kyberkem.SecretKey, error) {
	if len(seed) != KeySeedSize {
		return nil, nil, ErrSeedSize
	}
	return s.GenerateKeyPair(kyberkem.WithRand(bytes.NewReader(seed)))
}

// EncapsulateDeterministically encapsulates to pk with the message seed
// taken from seed instead of a randomness source.
func EncapsulateDeterministically(pk *kyberkem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	if len(seed) != EncapsulationSeedSize {
		return nil, nil, ErrSeedSize
	}
	return pk.Scheme().Encapsulate(pk, kyberkem.WithRand(bytes.NewReader(seed)))
}

// Vector is one entry of a KAT response file.
type Vector struct {
	Count        int
	Seed         []byte
	PublicKey    []byte
	SecretKey    []byte
	Ciphertext   []byte
	SharedSecret []byte
}

// entropy is the DRBG input the reference harness starts from.
func entropy() []byte {
	seed := make([]byte, drbg.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

// Vectors computes the first count vectors of the reference KAT for s.
func Vectors(s *kyberkem.Scheme, count int) ([]Vector, error) {
	outer := drbg.New(entropy())
	out := make([]Vector, 0, count)
	for i := 0; i < count; i++ {
		seed := make([]byte, drbg.SeedSize)
		_, _ = outer.Read(seed)

		v, err := vectorFromSeed(s, i, seed)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// vectorFromSeed runs keygen, encapsulation and decapsulation on the DRBG
// seeded with seed. The DRBG is read once per randombytes call of the
// reference: CPA key seed, z, then the message seed.
func vectorFromSeed(s *kyberkem.Scheme, count int, seed []byte) (Vector, error) {
	rng := drbg.New(seed)

	pk, sk, err := s.GenerateKeyPair(kyberkem.WithRand(rng))
	if err != nil {
		return Vector{}, err
	}
	ct, ss, err := s.Encapsulate(pk, kyberkem.WithRand(rng))
	if err != nil {
		return Vector{}, err
	}

	ss2, status, err := s.Decapsulate(sk, ct)
	if err != nil {
		return Vector{}, err
	}
	if status != kyberkem.StatusOK || !bytes.Equal(ss, ss2) {
		return Vector{}, fmt.Errorf("%w: count %d does not decapsulate", ErrMismatch, count)
	}

	pkBytes, _ := pk.MarshalBinary()
	skBytes, _ := sk.MarshalBinary()
	return Vector{
		Count:        count,
		Seed:         seed,
		PublicKey:    pkBytes,
		SecretKey:    skBytes,
		Ciphertext:   ct,
		SharedSecret: ss,
	}, nil
}

// Generate writes count vectors for s in the NIST .rsp format.
func Generate(s *kyberkem.Scheme, count int, w io.Writer) error {
	vectors, err := Vectors(s, count)
	if err != nil {
		return err
	}
	return Write(w, s.Name(), vectors)
}

// Write formats vectors as a .rsp file.
func Write(w io.Writer, name string, vectors []Vector) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", name)
	for _, v := range vectors {
		fmt.Fprintf(bw, "count = %d\n", v.Count)
		fmt.Fprintf(bw, "seed = %X\n", v.Seed)
		fmt.Fprintf(bw, "pk = %X\n", v.PublicKey)
		fmt.Fprintf(bw, "sk = %X\n", v.SecretKey)
		fmt.Fprintf(bw, "ct = %X\n", v.Ciphertext)
		fmt.Fprintf(bw, "ss = %X\n\n", v.SharedSecret)
	}
	return bw.Flush()
}

// Parse reads a .rsp file. It returns the name from the header line and
// the vectors in file order.
func Parse(r io.Reader) (string, []Vector, error) {
	var (
		name    string
		vectors []Vector
		cur     *Vector
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(text, "#"); ok {
			if name == "" {
				name = strings.TrimSpace(rest)
			}
			continue
		}

		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return "", nil, fmt.Errorf("line %d: expected key = value", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "count" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", nil, fmt.Errorf("line %d: invalid count: %w", line, err)
			}
			vectors = append(vectors, Vector{Count: n})
			cur = &vectors[len(vectors)-1]
			continue
		}
		if cur == nil {
			return "", nil, fmt.Errorf("line %d: %s before count", line, key)
		}

		data, err := hex.DecodeString(value)
		if err != nil {
			return "", nil, fmt.Errorf("line %d: invalid hex for %s: %w", line, key, err)
		}
		switch key {
		case "seed":
			cur.Seed = data
		case "pk":
			cur.PublicKey = data
		case "sk":
			cur.SecretKey = data
		case "ct":
			cur.Ciphertext = data
		case "ss":
			cur.SharedSecret = data
		default:
			return "", nil, fmt.Errorf("line %d: unknown field %q", line, key)
		}
	}
	if err := sc.Err(); err != nil {
		return "", nil, err
	}
	return name, vectors, nil
}

// Check recomputes every vector from its seed and compares all fields.
// It also decapsulates each recorded ciphertext with the recorded secret
// key, so a file produced by another implementation is checked against
// this one in both directions.
func Check(s *kyberkem.Scheme, vectors []Vector) error {
	for _, want := range vectors {
		if len(want.Seed) != drbg.SeedSize {
			return fmt.Errorf("%w: count %d has seed of %d bytes", ErrSeedSize, want.Count, len(want.Seed))
		}
		got, err := vectorFromSeed(s, want.Count, want.Seed)
		if err != nil {
			return err
		}

		fields := []struct {
			name      string
			got, want []byte
		}{
			{"pk", got.PublicKey, want.PublicKey},
			{"sk", got.SecretKey, want.SecretKey},
			{"ct", got.Ciphertext, want.Ciphertext},
			{"ss", got.SharedSecret, want.SharedSecret},
		}
		for _, f := range fields {
			if !bytes.Equal(f.got, f.want) {
				return fmt.Errorf("%w: count %d field %s", ErrMismatch, want.Count, f.name)
			}
		}

		sk, err := s.UnmarshalSecretKey(want.SecretKey)
		if err != nil {
			return err
		}
		ss, status, err := s.Decapsulate(sk, want.Ciphertext)
		if err != nil {
			return err
		}
		if status != kyberkem.StatusOK || !bytes.Equal(ss, want.SharedSecret) {
			return fmt.Errorf("%w: count %d recorded ciphertext does not decapsulate", ErrMismatch, want.Count)
		}
	}
	return nil
}
