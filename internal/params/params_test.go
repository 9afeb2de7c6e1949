package params

import "testing"

func TestSecretKeySize(t *testing.T) {
	tests := []struct {
		set  Set
		want int
	}{
		{Kyber512, 1632},
		{Kyber768, 2400},
		{Kyber1024, 3168},
	}

	for _, tt := range tests {
		t.Run(tt.set.Name, func(t *testing.T) {
			if got := tt.set.SecretKeySize(); got != tt.want {
				t.Errorf("SecretKeySize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			if s.PublicKeyHashOffset() != s.SecretKeySize()-2*SymBytes {
				t.Errorf("PublicKeyHashOffset() = %d, want %d", s.PublicKeyHashOffset(), s.SecretKeySize()-2*SymBytes)
			}
			if s.RejectionSeedOffset() != s.SecretKeySize()-SymBytes {
				t.Errorf("RejectionSeedOffset() = %d, want %d", s.RejectionSeedOffset(), s.SecretKeySize()-SymBytes)
			}
			if s.PublicKeyOffset()+s.PublicKeySize() != s.PublicKeyHashOffset() {
				t.Error("public key region does not end at the hash offset")
			}
		})
	}
}

func TestAll_Order(t *testing.T) {
	sets := All()
	for i := 1; i < len(sets); i++ {
		if sets[i].K <= sets[i-1].K {
			t.Errorf("All()[%d].K = %d, not greater than %d", i, sets[i].K, sets[i-1].K)
		}
	}
}
