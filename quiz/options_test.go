package quiz_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/safexpr/quiz"
)

func TestRound1(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.3},
		{-0.25, -0.3},
		{2.449, 2.4},
		{-2.449, -2.4},
		{5.96, 6},
		{0.04, 0},
		{1e15 + 0.5, 1e15 + 0.5},
		{-1e16, -1e16},
	}
	for _, c := range cases {
		got := quiz.Round1(c.in)
		assert.Equal(t, c.want, got, "Round1(%v)", c.in)
	}
	assert.False(t, math.Signbit(quiz.Round1(-0.04)), "Round1 gave negative zero")
	assert.False(t, math.Signbit(quiz.Round1(math.Copysign(0, -1))), "Round1 kept negative zero")
}

func TestOptions(t *testing.T) {
	values := []float64{0, 6, -2, 0.05, -0.05, 1.5, 123.456, -9999.99, 1e15, 1e17}
	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, 1))
		for _, v := range values {
			opts, err := quiz.Options(v, rng)
			require.NoError(t, err)
			require.Len(t, opts, quiz.NumOptions)
			assert.Contains(t, opts, quiz.Round1(v), "options for %v", v)
			seen := make(map[float64]bool, len(opts))
			for _, o := range opts {
				assert.False(t, seen[o], "duplicate option %v for %v in %v", o, v, opts)
				seen[o] = true
				assert.False(t, math.IsNaN(o) || math.IsInf(o, 0), "non-finite option %v", o)
			}
		}
	}
}

func TestOptionsNearCorrect(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	for i := 0; i < 200; i++ {
		opts, err := quiz.Options(6, rng)
		require.NoError(t, err)
		for _, o := range opts {
			assert.InDelta(t, 6, o, 1+1e-9, "option %v is too far", o)
		}
	}
}

func TestOptionsDeterministic(t *testing.T) {
	a, err := quiz.Options(3.14159, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := quiz.Options(3.14159, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOptionsNotFinite(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := quiz.Options(v, rng)
		assert.ErrorIs(t, err, quiz.ErrNotFinite)
	}
}
