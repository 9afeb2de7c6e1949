// Package ct provides the constant-time comparison and conditional move the
// KEM transform uses on secret-derived data.
package ct

import "crypto/subtle"

// Primitives execute in time independent of buffer contents and of the
// condition value.
type Primitives interface {
	// NotEqual returns 1 if a and b differ anywhere, 0 otherwise. a and b
	// must have equal length; every byte is read.
	NotEqual(a, b []byte) int
	// Select copies src into dst if cond is 1 and leaves dst unchanged if
	// cond is 0. cond must be 0 or 1.
	Select(dst, src []byte, cond int)
}

// Subtle implements Primitives with crypto/subtle.
type Subtle struct{}

func (Subtle) NotEqual(a, b []byte) int {
	return 1 ^ subtle.ConstantTimeCompare(a, b)
}

func (Subtle) Select(dst, src []byte, cond int) {
	subtle.ConstantTimeCopy(cond, dst, src)
}
