package numtheory

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ncw/gmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBig(x *gmp.Int) *big.Int {
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		panic("cannot convert " + x.String())
	}
	return b
}

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{48, 18, 6},
		{18, 48, 6},
		{17, 5, 1},
		{0, 9, 9},
		{9, 0, 9},
		{1001, 77, 77},
		{1 << 40, 1 << 20, 1 << 20},
	}

	for _, tt := range tests {
		got := GCD(gmp.NewInt(tt.a), gmp.NewInt(tt.b))
		if got.Cmp(gmp.NewInt(tt.want)) != 0 {
			t.Errorf("GCD(%d, %d) = %v, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGCDDoesNotModifyArguments(t *testing.T) {
	a, b := gmp.NewInt(48), gmp.NewInt(18)
	GCD(a, b)
	assert.Equal(t, "48", a.String())
	assert.Equal(t, "18", b.String())
}

func TestGCDMatchesReference(t *testing.T) {
	s := NewSampler(rand.NewSource(5))
	zero := gmp.NewInt(0)
	max := new(gmp.Int).Lsh(gmp.NewInt(1), 512)

	for i := 0; i < 500; i++ {
		a, err := s.Int(zero, max)
		require.NoError(t, err)
		b, err := s.Int(zero, max)
		require.NoError(t, err)

		// share a factor half of the time so results are not all 1
		if i%2 == 0 {
			f, err := s.Int(gmp.NewInt(2), gmp.NewInt(1<<20))
			require.NoError(t, err)
			a.Mul(a, f)
			b.Mul(b, f)
		}

		got := GCD(a, b)
		want := new(big.Int).GCD(nil, nil, toBig(a), toBig(b))
		require.Equal(t, want.String(), got.String())

		if got.Sign() != 0 {
			assert.Equal(t, 0, new(gmp.Int).Mod(a, got).Sign())
			assert.Equal(t, 0, new(gmp.Int).Mod(b, got).Sign())
		}
	}
}

func TestFindCoprime(t *testing.T) {
	s := NewSampler(rand.NewSource(6))
	x := gmp.NewInt(1001) // 7 * 11 * 13
	lower := gmp.NewInt(2)

	for i := 0; i < 100; i++ {
		c, err := FindCoprime(s, lower, x, 0)
		require.NoError(t, err)
		assert.Equal(t, "1", GCD(c, x).String())
		assert.True(t, c.Cmp(lower) >= 0 && c.Cmp(x) < 0)
	}
}

func TestFindCoprimeExhausted(t *testing.T) {
	// 30030 = 2*3*5*7*11*13 leaves under a fifth of candidates coprime
	a := gmp.NewInt(30030)
	lower := gmp.NewInt(2)

	exhausted := false
	for seed := int64(0); seed < 100 && !exhausted; seed++ {
		_, err := FindCoprime(NewSampler(rand.NewSource(seed)), lower, a, 1)
		if err != nil {
			require.True(t, errors.Is(err, ErrCoprimeExhausted), "unexpected error %v", err)
			exhausted = true
		}
	}

	assert.True(t, exhausted, "single attempt never failed over 100 seeds")
}

func TestFindCoprimeInvalidRange(t *testing.T) {
	s := NewSampler(rand.NewSource(7))
	_, err := FindCoprime(s, gmp.NewInt(10), gmp.NewInt(10), 5)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
