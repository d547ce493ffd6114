package daily

import (
	"fmt"
	"time"
)

// OneDay is the distance between consecutive day keys. No DST or leap
// adjustment applies: keys are UTC midnights.
const OneDay = int64(24 * time.Hour / time.Millisecond)

// DayKey returns UTC midnight of t's calendar day as epoch milliseconds.
func DayKey(t time.Time) int64 {
	return DayStart(t).UnixMilli()
}

// DayStart returns UTC midnight of t's calendar day.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromKey converts a day key back into a UTC time.
func FromKey(key int64) time.Time {
	return time.UnixMilli(key).UTC()
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDate reads a YYYY-MM-DD date and returns its day key.
func ParseDate(s string) (int64, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// UntilNext returns the time left before the next UTC midnight. Exactly at
// midnight the next challenge is a full day away.
func UntilNext(now time.Time) time.Duration {
	return DayStart(now).Add(24 * time.Hour).Sub(now.UTC())
}

// TimeUntilNext formats UntilNext as zero-padded HH:MM:SS, truncated to the
// second.
func TimeUntilNext(now time.Time) string {
	secs := int(UntilNext(now) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
