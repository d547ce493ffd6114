package paint

import "math"

// RGBToRYB converts an additive RGB color into the paint-like RYB model.
//
// The white component is removed, yellow is pulled out of red+green, and any
// green left over is split between yellow and blue. When blue and green
// overlap both are halved first. The result is rescaled to the pre-extraction
// maximum, white is added back and every channel is floored, so the
// conversion is lossy.
func RGBToRYB(r, g, b int) (int, int, int) {
	red, green, blue := float64(r), float64(g), float64(b)

	white := min3(red, green, blue)
	red -= white
	green -= white
	blue -= white

	maxGreen := max3(red, green, blue)

	yellow := math.Min(red, green)
	red -= yellow
	green -= yellow

	if blue > 0 && green > 0 {
		blue /= 2
		green /= 2
	}

	yellow += green
	blue += green

	if maxYellow := max3(red, yellow, blue); maxYellow > 0 {
		n := maxGreen / maxYellow
		red *= n
		yellow *= n
		blue *= n
	}

	return int(math.Floor(red + white)), int(math.Floor(yellow + white)), int(math.Floor(blue + white))
}

// RYBToRGB is the mirror of RGBToRYB: green is pulled out of yellow+blue,
// overlap is doubled and the remaining yellow is split into red and green.
func RYBToRGB(r, y, b int) (int, int, int) {
	red, yellow, blue := float64(r), float64(y), float64(b)

	white := min3(red, yellow, blue)
	red -= white
	yellow -= white
	blue -= white

	maxYellow := max3(red, yellow, blue)

	green := math.Min(yellow, blue)
	yellow -= green
	blue -= green

	if blue > 0 && green > 0 {
		blue *= 2
		green *= 2
	}

	red += yellow
	green += yellow

	if maxGreen := max3(red, green, blue); maxGreen > 0 {
		n := maxYellow / maxGreen
		red *= n
		green *= n
		blue *= n
	}

	return int(math.Floor(red + white)), int(math.Floor(green + white)), int(math.Floor(blue + white))
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
