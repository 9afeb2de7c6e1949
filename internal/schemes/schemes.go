// Package schemes binds every supported parameter set to a ready-to-use
// KEM transform.
package schemes

import (
	"strings"

	"github.com/vaultsandbox/kyberkem/internal/cpa"
	"github.com/vaultsandbox/kyberkem/internal/ct"
	"github.com/vaultsandbox/kyberkem/internal/fo"
	"github.com/vaultsandbox/kyberkem/internal/params"
	"github.com/vaultsandbox/kyberkem/internal/symmetric"
)

var (
	Kyber512  = build(params.Kyber512)
	Kyber768  = build(params.Kyber768)
	Kyber1024 = build(params.Kyber1024)
)

func build(p params.Set) *fo.Transform {
	return fo.New(p, cpa.ForParams(p), symmetric.SHA3{}, ct.Subtle{})
}

// All returns the transforms in increasing security order.
func All() []*fo.Transform {
	return []*fo.Transform{Kyber512, Kyber768, Kyber1024}
}

// ByName looks up a transform by parameter-set name, ignoring case.
func ByName(name string) (*fo.Transform, bool) {
	for _, t := range All() {
		if strings.EqualFold(t.Params.Name, name) {
			return t, true
		}
	}
	return nil, false
}
