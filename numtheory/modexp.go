package numtheory

import (
	"fmt"
	"runtime"

	"github.com/ncw/gmp"
	"golang.org/x/sync/errgroup"
)

const (
	defaultParallelThreshold = 512
	filterChunkSize          = 128
)

func checkOperands(exp, m *gmp.Int) error {
	if m.Sign() == 0 {
		return ErrZeroModulus
	}
	if m.Sign() < 0 || exp.Sign() < 0 {
		return ErrNegative
	}
	return nil
}

// ModPow computes base^exp mod m by square-and-multiply: an even exponent
// squares the base and halves, an odd one multiplies into the result and
// decrements.
func ModPow(base, exp, m *gmp.Int) (*gmp.Int, error) {
	if err := checkOperands(exp, m); err != nil {
		return nil, err
	}

	b := new(gmp.Int).Set(base)
	e := new(gmp.Int).Set(exp)
	result := gmp.NewInt(1)

	for e.Sign() > 0 {
		if e.Bit(0) == 0 {
			b.Mul(b, b)
			b.Mod(b, m)
			e.Rsh(e, 1)
		} else {
			result.Mul(result, b)
			result.Mod(result, m)
			e.Sub(e, one)
		}
	}

	return result.Mod(result, m), nil
}

// ModPow computes base^exp mod m, using the factor base to shrink the exponent.
//
// Each pass divides the running exponent by every prime in the base that
// divides it, raising the running base to that prime, then multiplies the
// base into the result and decrements the exponent. result * base^exp mod m
// is unchanged by every step. Exponents with no small factors left fall back
// to one decrement per pass.
func (fb *FactorBase) ModPow(base, exp, m *gmp.Int) (*gmp.Int, error) {
	if err := checkOperands(exp, m); err != nil {
		return nil, err
	}

	b := new(gmp.Int).Mod(base, m)
	e := new(gmp.Int).Set(exp)
	result := gmp.NewInt(1)
	quo, rem := new(gmp.Int), new(gmp.Int)

	for e.Sign() > 0 {
		divisors, err := fb.divisors(e)
		if err != nil {
			return nil, err
		}

		for _, i := range divisors {
			quo.QuoRem(e, fb.ints[i], rem)
			if rem.Sign() != 0 {
				return nil, fmt.Errorf("%w: %d does not divide %v", ErrInexactDivision, fb.primes[i], e)
			}

			b, err = ModPow(b, fb.ints[i], m)
			if err != nil {
				return nil, err
			}
			e.Set(quo)
		}

		result.Mul(result, b)
		result.Mod(result, m)
		e.Sub(e, one)
	}

	return result.Mod(result, m), nil
}

// divisors returns the indices of the primes dividing e, in ascending order.
func (fb *FactorBase) divisors(e *gmp.Int) ([]int, error) {
	if len(fb.ints) < fb.parallelThreshold {
		return fb.divisorsIn(e, 0, len(fb.ints)), nil
	}

	hits := make([]bool, len(fb.ints))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(fb.ints); start += filterChunkSize {
		start := start
		end := start + filterChunkSize
		if end > len(fb.ints) {
			end = len(fb.ints)
		}

		g.Go(func() error {
			for _, i := range fb.divisorsIn(e, start, end) {
				hits[i] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// applied in factor base order regardless of which chunk finished first
	divisors := make([]int, 0)
	for i, hit := range hits {
		if hit {
			divisors = append(divisors, i)
		}
	}
	return divisors, nil
}

// divisorsIn tests fb.ints[start:end] against e; e is only read.
func (fb *FactorBase) divisorsIn(e *gmp.Int, start, end int) []int {
	var found []int
	rem := new(gmp.Int)
	for i := start; i < end; i++ {
		// primes are ascending, none past e can divide it
		if fb.ints[i].Cmp(e) > 0 {
			break
		}
		if rem.Rem(e, fb.ints[i]).Sign() == 0 {
			found = append(found, i)
		}
	}
	return found
}
