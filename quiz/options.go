// Package quiz builds multiple-choice questions about the slope of a function
// at a point, with the correct answer estimated numerically by safexpr.
package quiz

import (
	"errors"
	"math"
	"math/rand/v2"
)

// NumOptions is the number of choices in every question.
const NumOptions = 4

// MaxTries is the number of consecutive duplicate distractors drawn before
// the distractor magnitudes are doubled.
const MaxTries = 32

// magnitudes are the offsets from the correct answer that distractors use.
var magnitudes = [...]float64{0.1, 0.2, 0.3, 0.5, 1.0}

// ErrNotFinite is returned for a correct value that is infinite or NaN, for
// which no distinct distractors exist.
var ErrNotFinite = errors.New("quiz: correct value is not finite")

// Round1 rounds v to one decimal place, half away from zero. The result is
// never negative zero.
func Round1(v float64) float64 {
	if math.Abs(v) >= 1e15 {
		// No fractional digits remain at this magnitude.
		return v
	}
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0
	}
	return r
}

// Options returns the numeric choices for a value question: correct rounded
// to one decimal and three distinct distractors near it, in random order.
// Each distractor is the rounded correct value plus or minus one of 0.1, 0.2,
// 0.3, 0.5, or 1. After MaxTries duplicates in a row the offsets double, so
// Options terminates for every finite input.
func Options(correct float64, rng *rand.Rand) ([]float64, error) {
	if math.IsNaN(correct) || math.IsInf(correct, 0) {
		return nil, ErrNotFinite
	}
	c := Round1(correct)
	opts := make([]float64, 1, NumOptions)
	opts[0] = c
	seen := map[float64]bool{c: true}
	scale, misses := 1.0, 0
	for len(opts) < NumOptions {
		d := magnitudes[rng.IntN(len(magnitudes))] * scale
		if rng.IntN(2) == 0 {
			d = -d
		}
		v := Round1(c + d)
		if !seen[v] {
			seen[v] = true
			opts = append(opts, v)
			misses = 0
			continue
		}
		misses++
		if misses >= MaxTries {
			scale *= 2
			misses = 0
		}
	}
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts, nil
}
