package numtheory

import (
	"math/rand"
	"sync"

	"github.com/ncw/gmp"
)

// Sampler draws arbitrary-precision integers from a half-open range.
// It owns its random generator; calls from several goroutines are serialized.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler reading from src. A fixed-seed source gives a
// reproducible sequence of draws.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Int returns x with min <= x < max.
//
// The draw is one byte wider than max-min before it is reduced.
func (s *Sampler) Int(min, max *gmp.Int) (*gmp.Int, error) {
	if min == nil || max == nil || max.Cmp(min) <= 0 {
		return nil, ErrInvalidRange
	}

	span := new(gmp.Int).Sub(max, min)
	buf := make([]byte, (span.BitLen()+7)/8+1)

	s.mu.Lock()
	s.rng.Read(buf)
	s.mu.Unlock()

	// SetBytes reads an unsigned magnitude, so the draw is already |x|
	x := new(gmp.Int).SetBytes(buf)
	x.Mod(x, span)
	return x.Add(x, min), nil
}
