// internal/paint/color.go
//
// Core color type for the mixing game.
// Defines:
//   - Color: an RGB triple plus the optional list of colors it was mixed from.
//   - Hex/RGBString: display and identity helpers.
//   - CompositionCounts: per-color usage counts, used to diff guesses.
//
// Channel values are expected in 0–255. Nothing in this package checks that;
// values read from outside the process are validated by the history package.

package paint

import "fmt"

// Color is an RGB color. Composition lists the colors blended to produce it
// (empty for palette colors). Treat values as immutable.
type Color struct {
	R           int     `json:"r"`
	G           int     `json:"g"`
	B           int     `json:"b"`
	Composition []Color `json:"composition,omitempty"`
}

// RGB builds a plain color without composition.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the 6-digit uppercase hex code, zero-padded per channel.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// RGBString returns the CSS-style representation, e.g. "rgb(238, 17, 17)".
// It doubles as the identity key in CompositionCounts.
func (c Color) RGBString() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// SameRGB reports whether both colors have identical channels.
// Compositions are ignored.
func (c Color) SameRGB(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B
}

// Plain returns a copy of c without its composition.
func (c Color) Plain() Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// CompositionCounts maps each constituent's RGBString to how many times it
// appears in the composition.
func (c Color) CompositionCounts() map[string]int {
	counts := make(map[string]int, len(c.Composition))
	for _, part := range c.Composition {
		counts[part.RGBString()]++
	}
	return counts
}

// InRange reports whether every channel (including the composition's) is a
// valid 0–255 value.
func (c Color) InRange() bool {
	for _, v := range [3]int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return false
		}
	}
	for _, part := range c.Composition {
		if !part.InRange() {
			return false
		}
	}
	return true
}
