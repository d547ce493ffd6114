package daily

import (
	"math"

	"gonum.org/v1/gonum/mathext/prng"
)

// source draws numbers the way the browser client's seeded generator did, so
// that challenges already stored in players' histories keep matching.
//
// The generator is a 32-bit Mersenne Twister initialised with the low 32
// bits of the seed; floats are genrand_int32 / 2^32.
type source struct {
	mt *prng.MT19937
}

func newSource(seed int64) *source {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))
	return &source{mt: mt}
}

// float returns a value in [0, 1) with 32 bits of precision.
func (s *source) float() float64 {
	return float64(s.mt.Uint32()) * (1.0 / 4294967296.0)
}

// intn returns an integer in [lo, hi].
func (s *source) intn(lo, hi int) int {
	return int(math.Floor(s.float()*float64(hi-lo+1) + float64(lo)))
}

// chance returns true with the given likelihood in percent.
func (s *source) chance(likelihood float64) bool {
	return s.float()*100 < likelihood
}
