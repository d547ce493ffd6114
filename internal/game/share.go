package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/history"
	"github.com/robalobadob/mixle/internal/paint"
)

const (
	correctGlyph = "🟩"
	unknownGlyph = "⬛"
)

// Diff compares the composition of a guess with the challenge's. A use of a
// color counts as correct while it does not exceed the challenge's count of
// that exact color; excess holds the remainder keyed by RGBString.
func Diff(submission, challenge paint.Color) (correct int, excess map[string]int) {
	want := challenge.CompositionCounts()
	excess = make(map[string]int)
	for key, n := range submission.CompositionCounts() {
		over := max(0, n-want[key])
		if over > 0 {
			excess[key] = over
		}
		correct += n - over
	}
	return correct, excess
}

// ShareLine renders one guess as glyphs: the correct ones first, then the
// excess uses in palette order.
func ShareLine(submission, challenge paint.Color) string {
	correct, excess := Diff(submission, challenge)

	var b strings.Builder
	b.WriteString(strings.Repeat(correctGlyph, correct))
	for _, base := range paint.Palette {
		key := base.Color.RGBString()
		b.WriteString(strings.Repeat(base.Glyph, excess[key]))
		delete(excess, key)
	}
	for _, n := range excess {
		b.WriteString(strings.Repeat(unknownGlyph, n))
	}
	return b.String()
}

// ShareText renders a day for the clipboard. The header carries the number
// of guesses on a win and X otherwise.
func ShareText(host string, e history.Entry) string {
	score := "X"
	if e.IsWon() {
		score = fmt.Sprint(e.SubmissionCount())
	}

	lines := make([]string, 0, 1+len(e.Submissions))
	lines = append(lines, fmt.Sprintf("%s %s %s/%d",
		host, daily.DateKey(daily.FromKey(e.DayTimestamp)), score, history.MaxSubmissions))
	for _, sub := range e.Submissions {
		lines = append(lines, ShareLine(sub, e.Challenge))
	}
	return strings.Join(lines, "\n")
}
