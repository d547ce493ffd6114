// internal/daily/challenge.go
//
// Deterministic daily challenge generation.
// Every player sees the same challenge on the same UTC day, and a challenge
// stored by an earlier run must be regenerated bit-for-bit, so the draw
// order below is part of the persisted format:
//   1. one 50/50 draw: exclude a base color today?
//   2. if so, one index in [0,3] naming the excluded color
//   3. ten indices in [0,3], each redrawn until it is not the excluded one
//
// The challenge is the single-pass mix of the ten drawn colors.

package daily

import "github.com/robalobadob/mixle/internal/paint"

// ChallengeSize is the number of base colors blended into a challenge.
const ChallengeSize = 10

// Generate returns the challenge for a day key (UTC midnight, epoch millis).
func Generate(dayKey int64) paint.Color {
	return paint.Mix(Composition(dayKey))
}

// Composition returns the base colors drawn for a day key, in draw order.
func Composition(dayKey int64) []paint.Color {
	src := newSource(dayKey)
	last := len(paint.Palette) - 1

	excluded := -1
	if src.chance(50) {
		excluded = src.intn(0, last)
	}

	out := make([]paint.Color, 0, ChallengeSize)
	for len(out) < ChallengeSize {
		idx := src.intn(0, last)
		for idx == excluded {
			idx = src.intn(0, last)
		}
		out = append(out, paint.Palette[idx].Color)
	}
	return out
}
