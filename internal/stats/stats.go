package stats

import (
	mstats "github.com/montanaflynn/stats"

	"github.com/robalobadob/mixle/internal/history"
)

// Stats summarises a player's history.
type Stats struct {
	PlayedCount    int                         `json:"playedCount"`
	WonCount       int                         `json:"wonCount"`
	WonPercent     int                         `json:"wonPercent"`
	TodayStreak    int                         `json:"todayStreak"`
	LongestStreak  int                         `json:"longestStreak"`
	AverageGuesses float64                     `json:"averageGuesses"`
	BreakDown      [history.MaxSubmissions]int `json:"breakDown"`
}

// Compute derives statistics from a history ordered oldest to newest.
//
// The walk runs newest to oldest. A won day extends the running streak when
// it is the newest entry or sits exactly one day before the next newer
// entry; anything else closes the streak. TodayStreak is the run that ends
// at the newest entry. BreakDown counts wins by number of guesses.
func Compute(entries []history.Entry) Stats {
	var s Stats
	s.PlayedCount = len(entries)

	current := 0
	broken := false
	for i := len(entries) - 1; i >= 0; i-- {
		day := entries[i]
		won := day.IsWon()
		if won {
			s.WonCount++
			s.BreakDown[day.SubmissionCount()-1]++
		}

		chained := i == len(entries)-1 || day.WasOneDayBefore(entries[i+1].DayTimestamp)
		if won && chained {
			current++
		} else {
			s.LongestStreak = max(s.LongestStreak, current)
			current = 0
			broken = true
		}

		if !broken {
			s.TodayStreak++
		}
	}
	s.LongestStreak = max(s.LongestStreak, current)

	if s.PlayedCount > 0 {
		s.WonPercent = int(round(float64(s.WonCount)/float64(s.PlayedCount)*100, 0))
	}

	wins, guesses := 0, 0
	for i, n := range s.BreakDown {
		wins += n
		guesses += n * (i + 1)
	}
	if wins > 0 {
		s.AverageGuesses = round(float64(guesses)/float64(wins), 1)
	}
	return s
}

// round rounds half up to the given number of decimal places. Inputs here
// are never NaN, which is the only error mstats.Round reports.
func round(x float64, places int) float64 {
	r, _ := mstats.Round(x, places)
	return r
}
