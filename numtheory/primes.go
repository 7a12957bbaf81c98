package numtheory

import (
	"github.com/ncw/gmp"
)

// GeneratePrimes returns the first count primes in ascending order, found by
// trial division of each candidate against every prime found before it.
func GeneratePrimes(count int) []uint64 {
	if count <= 0 {
		return []uint64{}
	}

	primes := make([]uint64, 0, count)
	for candidate := uint64(2); len(primes) < count; candidate++ {
		isPrime := true
		for _, p := range primes {
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, candidate)
		}
	}

	return primes
}

// FactorBase is a fixed, ascending list of small primes used to shrink
// exponents in ModPow. It is read-only after construction and safe to share.
type FactorBase struct {
	primes []uint64
	ints   []*gmp.Int

	// divisibility tests run in parallel once the base has this many primes
	parallelThreshold int
}

// NewFactorBase precomputes the first count primes.
func NewFactorBase(count int) *FactorBase {
	primes := GeneratePrimes(count)
	ints := make([]*gmp.Int, len(primes))
	for i, p := range primes {
		ints[i] = new(gmp.Int).SetUint64(p)
	}

	return &FactorBase{
		primes:            primes,
		ints:              ints,
		parallelThreshold: defaultParallelThreshold,
	}
}

// Len returns the number of primes in the base.
func (fb *FactorBase) Len() int {
	return len(fb.primes)
}

// Primes returns a copy of the primes in the base.
func (fb *FactorBase) Primes() []uint64 {
	out := make([]uint64, len(fb.primes))
	copy(out, fb.primes)
	return out
}
