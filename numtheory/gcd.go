package numtheory

import (
	"fmt"

	"github.com/ncw/gmp"
)

var one = gmp.NewInt(1)

// GCD returns the greatest common divisor of |a| and |b| by repeatedly
// replacing the larger operand with its remainder modulo the smaller.
// Neither argument is modified.
func GCD(a, b *gmp.Int) *gmp.Int {
	x := new(gmp.Int).Abs(a)
	y := new(gmp.Int).Abs(b)

	for x.Sign() != 0 && y.Sign() != 0 {
		if x.Cmp(y) > 0 {
			x.Mod(x, y)
		} else {
			y.Mod(y, x)
		}
	}

	if x.Sign() == 0 {
		return y
	}
	return x
}

// FindCoprime samples candidates from [lower, a) until one has gcd 1 with a.
// It gives up with ErrCoprimeExhausted after maxAttempts draws; maxAttempts <= 0
// searches without a bound.
func FindCoprime(s *Sampler, lower, a *gmp.Int, maxAttempts int) (*gmp.Int, error) {
	for attempt := 0; maxAttempts <= 0 || attempt < maxAttempts; attempt++ {
		candidate, err := s.Int(lower, a)
		if err != nil {
			return nil, err
		}
		if GCD(candidate, a).Cmp(one) == 0 {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w in [%v, %v) after %d attempts", ErrCoprimeExhausted, lower, a, maxAttempts)
}
