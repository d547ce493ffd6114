package paint

import "strings"

// Base is one of the fixed input colors a player can pick.
type Base struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
	Glyph string `json:"glyph"`
}

// The four base colors. Not configurable: challenges persisted by earlier
// runs depend on these exact values.
var (
	Red    = RGB(238, 17, 17)
	Yellow = RGB(238, 238, 17)
	Blue   = RGB(17, 17, 238)
	White  = RGB(255, 255, 255)
)

// Palette lists the base colors in generator index order.
var Palette = []Base{
	{Name: "red", Color: Red, Glyph: "🟥"},
	{Name: "yellow", Color: Yellow, Glyph: "🟨"},
	{Name: "blue", Color: Blue, Glyph: "🟦"},
	{Name: "white", Color: White, Glyph: "⬜"},
}

// BaseByName looks up a palette color by name (case-insensitive).
func BaseByName(name string) (Base, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range Palette {
		if b.Name == name {
			return b, true
		}
	}
	return Base{}, false
}

// BaseOf returns the palette entry whose channels match c.
func BaseOf(c Color) (Base, bool) {
	for _, b := range Palette {
		if b.Color.SameRGB(c) {
			return b, true
		}
	}
	return Base{}, false
}
