package asteroid

import (
	"math/rand/v2"
)

// Source is the random source used to pick a global seed when none is
// configured. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// PCG stream selectors. Distinct increments keep the global stream and the
// per-layer offset streams uncorrelated even when seeds coincide.
const (
	globalStream = 0x9e3779b97f4a7c15
	layerStream  = 0xda3e39cb94b95bdb
	fieldStream  = 0xbf58476d1ce4e5b9
)

// processSource draws from the runtime's entropy.
func processSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func newStream(seed int64, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), stream))
}
