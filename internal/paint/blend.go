package paint

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Blend mixes colors the way paint mixes rather than averaging RGB.
//
// Each input is split into a white part (its smallest channel) and a color
// part (the remainder). Both parts are averaged across all inputs. The white
// that the averaged color part still shares across channels is removed and
// half of it is given back to green only. The averaged white is then added
// back and channels are floored.
//
// The floor and the white extraction make Blend non-associative: always pass
// the full list, never fold pairwise. An empty list yields the zero Color.
func Blend(colors []Color) Color {
	if len(colors) == 0 {
		return Color{}
	}

	whites := make([]float64, len(colors))
	parts := [3][]float64{}
	for i := range parts {
		parts[i] = make([]float64, len(colors))
	}
	for i, c := range colors {
		w := float64(min(c.R, c.G, c.B))
		whites[i] = w
		parts[0][i] = float64(c.R) - w
		parts[1][i] = float64(c.G) - w
		parts[2][i] = float64(c.B) - w
	}

	avgWhite := mean(whites)
	var avg [3]float64
	for i := range avg {
		avg[i] = mean(parts[i])
	}

	extra := min3(avg[0], avg[1], avg[2])
	for i := range avg {
		avg[i] -= extra
	}
	avg[1] += extra / 2

	return Color{
		R: int(math.Floor(avg[0] + avgWhite)),
		G: int(math.Floor(avg[1] + avgWhite)),
		B: int(math.Floor(avg[2] + avgWhite)),
	}
}

// Mix blends colors and records them, in order, as the result's composition.
func Mix(colors []Color) Color {
	out := Blend(colors)
	out.Composition = make([]Color, len(colors))
	for i, c := range colors {
		out.Composition[i] = c.Plain()
	}
	return out
}

// Preview blends whichever slots are filled. With nothing selected the
// preview is white, matching an empty palette well.
func Preview(slots []*Color) Color {
	var picked []Color
	for _, s := range slots {
		if s != nil {
			picked = append(picked, *s)
		}
	}
	if len(picked) == 0 {
		return White
	}
	return Blend(picked)
}

// mean is a sequential sum divided by the count; stats.Mean only fails on an
// empty slice, which Blend rules out.
func mean(xs []float64) float64 {
	m, _ := stats.Mean(xs)
	return m
}
