package kyberkem

import "github.com/vaultsandbox/kyberkem/internal/fo"

// Status is the outcome of Decapsulate.
type Status int

const (
	// StatusOK means the ciphertext passed the re-encryption check.
	StatusOK = Status(fo.OK)
	// StatusDecodeFail means the ciphertext was rejected and the returned
	// shared secret was derived by implicit rejection.
	StatusDecodeFail = Status(fo.DecodeFail)
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDecodeFail:
		return "decode_fail"
	}
	return "unknown"
}

// Err returns nil for StatusOK and ErrDecapsulationFailed otherwise.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return ErrDecapsulationFailed
}
