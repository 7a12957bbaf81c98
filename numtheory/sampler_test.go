package numtheory

import (
	"math/rand"
	"testing"

	"github.com/ncw/gmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplerBounds(t *testing.T) {
	s := NewSampler(rand.NewSource(1))

	ranges := []struct{ min, max int64 }{
		{0, 1},
		{2, 3},
		{2, 1000},
		{128, 32768},
		{-50, 50},
	}

	for _, r := range ranges {
		min, max := gmp.NewInt(r.min), gmp.NewInt(r.max)
		for i := 0; i < 10000; i++ {
			x, err := s.Int(min, max)
			require.NoError(t, err)
			if x.Cmp(min) < 0 || x.Cmp(max) >= 0 {
				t.Fatalf("sample %v outside [%v, %v)", x, min, max)
			}
		}
	}
}

func TestSamplerLargeRange(t *testing.T) {
	s := NewSampler(rand.NewSource(2))
	min := new(gmp.Int).Lsh(gmp.NewInt(1), 1023)
	max := new(gmp.Int).Lsh(gmp.NewInt(1), 2047)

	for i := 0; i < 1000; i++ {
		x, err := s.Int(min, max)
		require.NoError(t, err)
		require.True(t, x.Cmp(min) >= 0 && x.Cmp(max) < 0, "sample out of range")
	}
}

func TestSamplerCoversRange(t *testing.T) {
	s := NewSampler(rand.NewSource(3))
	min, max := gmp.NewInt(10), gmp.NewInt(20)

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		x, err := s.Int(min, max)
		require.NoError(t, err)
		seen[x.String()] = true
	}

	assert.Len(t, seen, 10)
}

func TestSamplerInvalidRange(t *testing.T) {
	s := NewSampler(rand.NewSource(4))

	_, err := s.Int(gmp.NewInt(5), gmp.NewInt(5))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = s.Int(gmp.NewInt(6), gmp.NewInt(5))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = s.Int(nil, gmp.NewInt(5))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(rand.NewSource(42))
	b := NewSampler(rand.NewSource(42))
	min, max := gmp.NewInt(0), new(gmp.Int).Lsh(gmp.NewInt(1), 300)

	for i := 0; i < 100; i++ {
		x, err := a.Int(min, max)
		require.NoError(t, err)
		y, err := b.Int(min, max)
		require.NoError(t, err)
		require.Equal(t, 0, x.Cmp(y), "draw %d differs", i)
	}
}
