package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/history"
	"github.com/robalobadob/mixle/internal/paint"
)

func TestDiff(t *testing.T) {
	challenge := daily.Generate(daily.DayKey(day1)) // W2 Y5 R3

	tests := []struct {
		name    string
		guess   []paint.Color
		correct int
		excess  map[string]int
		line    string
	}{
		{
			name:    "exact",
			guess:   daily.Composition(daily.DayKey(day1)),
			correct: 10,
			excess:  map[string]int{},
			line:    strings.Repeat("🟩", 10),
		},
		{
			name:    "all red",
			guess:   repeat(paint.Red, 10),
			correct: 3,
			excess:  map[string]int{paint.Red.RGBString(): 7},
			line:    "🟩🟩🟩🟥🟥🟥🟥🟥🟥🟥",
		},
		{
			name:    "blue and white",
			guess:   append(repeat(paint.White, 5), repeat(paint.Blue, 5)...),
			correct: 2,
			excess:  map[string]int{paint.Blue.RGBString(): 5, paint.White.RGBString(): 3},
			line:    "🟩🟩🟦🟦🟦🟦🟦⬜⬜⬜",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := paint.Mix(tt.guess)
			correct, excess := Diff(sub, challenge)
			assert.Equal(t, tt.correct, correct)
			assert.Equal(t, tt.excess, excess)
			assert.Equal(t, tt.line, ShareLine(sub, challenge))
		})
	}
}

func TestShareText(t *testing.T) {
	key := daily.DayKey(day1)
	e := history.NewEntry(key)
	e.Submissions = []paint.Color{
		paint.Mix(repeat(paint.Red, 10)),
		paint.Mix(daily.Composition(key)),
	}
	assert.Equal(t,
		"Mixle 2024-01-01 2/6\n🟩🟩🟩🟥🟥🟥🟥🟥🟥🟥\n🟩🟩🟩🟩🟩🟩🟩🟩🟩🟩",
		ShareText("Mixle", e))

	e.Submissions = e.Submissions[:1]
	assert.Equal(t, "Mixle 2024-01-01 X/6\n🟩🟩🟩🟥🟥🟥🟥🟥🟥🟥", ShareText("Mixle", e))

	e.Submissions = nil
	assert.Equal(t, "Mixle 2024-01-01 X/6", ShareText("Mixle", e))
}
