package ct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubtle_NotEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"equal", []byte{1, 2, 3, 4}, []byte{1, 2, 3, 4}, 0},
		{"first byte", []byte{0, 2, 3, 4}, []byte{1, 2, 3, 4}, 1},
		{"last byte", []byte{1, 2, 3, 4}, []byte{1, 2, 3, 5}, 1},
		{"single bit", []byte{0x80, 0, 0, 0}, []byte{0, 0, 0, 0}, 1},
		{"empty", []byte{}, []byte{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Subtle{}.NotEqual(tt.a, tt.b))
		})
	}
}

func TestSubtle_Select(t *testing.T) {
	a := require.New(t)
	src := []byte{9, 9, 9}

	dst := []byte{1, 2, 3}
	Subtle{}.Select(dst, src, 0)
	a.Equal([]byte{1, 2, 3}, dst)

	Subtle{}.Select(dst, src, 1)
	a.Equal([]byte{9, 9, 9}, dst)
}
