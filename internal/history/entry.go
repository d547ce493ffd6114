package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/mixle/internal/daily"
	"github.com/robalobadob/mixle/internal/paint"
)

// MaxSubmissions is the number of guesses a day allows.
const MaxSubmissions = 6

// Entry is one calendar day's record. DayTimestamp is the unique key.
type Entry struct {
	DayTimestamp int64         `json:"dayTimestamp"`
	HasStarted   bool          `json:"hasStarted"`
	Submissions  []paint.Color `json:"submissions"`
	Challenge    paint.Color   `json:"challenge"`
}

// NewEntry creates an unplayed entry for a day with its generated challenge.
func NewEntry(dayKey int64) Entry {
	return Entry{
		DayTimestamp: dayKey,
		Submissions:  []paint.Color{},
		Challenge:    daily.Generate(dayKey),
	}
}

// SubmissionCount is the number of guesses made that day.
func (e Entry) SubmissionCount() int {
	return len(e.Submissions)
}

// IsWon reports whether the last of 1–6 submissions matches the challenge.
func (e Entry) IsWon() bool {
	n := len(e.Submissions)
	if n == 0 || n > MaxSubmissions {
		return false
	}
	return e.Submissions[n-1].SameRGB(e.Challenge)
}

// IsLost reports whether all six guesses were used without a win.
func (e Entry) IsLost() bool {
	return len(e.Submissions) == MaxSubmissions && !e.IsWon()
}

// WasOneDayBefore reports whether this entry's day is exactly 24h before t.
func (e Entry) WasOneDayBefore(t int64) bool {
	return t-daily.OneDay == e.DayTimestamp
}

// Validate checks an entry read from storage.
func (e Entry) Validate() error {
	if e.DayTimestamp%daily.OneDay != 0 {
		return fmt.Errorf("day %d is not a UTC midnight", e.DayTimestamp)
	}
	if len(e.Submissions) > MaxSubmissions {
		return fmt.Errorf("day %d has %d submissions", e.DayTimestamp, len(e.Submissions))
	}
	if !e.Challenge.InRange() {
		return errors.New("challenge channel out of range")
	}
	for i, s := range e.Submissions {
		if !s.InRange() {
			return fmt.Errorf("submission %d channel out of range", i)
		}
	}
	return nil
}

// UnmarshalJSON also accepts the field names used by the browser client
// (todayTimestamp, todayChallenge) so older histories keep loading.
func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw struct {
		DayTimestamp   *int64        `json:"dayTimestamp"`
		TodayTimestamp *int64        `json:"todayTimestamp"`
		HasStarted     bool          `json:"hasStarted"`
		Submissions    []paint.Color `json:"submissions"`
		Challenge      *paint.Color  `json:"challenge"`
		TodayChallenge *paint.Color  `json:"todayChallenge"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.DayTimestamp != nil:
		e.DayTimestamp = *raw.DayTimestamp
	case raw.TodayTimestamp != nil:
		e.DayTimestamp = *raw.TodayTimestamp
	default:
		return errors.New("missing dayTimestamp")
	}

	e.HasStarted = raw.HasStarted
	e.Submissions = raw.Submissions
	if e.Submissions == nil {
		e.Submissions = []paint.Color{}
	}

	switch {
	case raw.Challenge != nil:
		e.Challenge = *raw.Challenge
	case raw.TodayChallenge != nil:
		e.Challenge = *raw.TodayChallenge
	default:
		e.Challenge = daily.Generate(e.DayTimestamp)
		return nil
	}
	if len(e.Challenge.Composition) == 0 {
		// Older records stored only the color; rebuild what was drawn when
		// it still agrees with the generator.
		if gen := daily.Generate(e.DayTimestamp); gen.SameRGB(e.Challenge) {
			e.Challenge = gen
		}
	}
	return nil
}
