package domain

import "time"

// Recurrence is a cron-like rule: a time of day, optionally bound to a
// weekday (weekly cadence) or a day of month (monthly cadence). With neither
// bound it fires daily.
type Recurrence struct {
	Hour     int
	Minute   int
	Weekday  *time.Weekday
	MonthDay int
}

// Next computes the first fire time strictly after the given instant, in
// that instant's location. Months lacking the configured day (e.g. the 31st)
// are skipped, matching cron behavior.
func (r Recurrence) Next(after time.Time) time.Time {
	loc := after.Location()
	day := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, loc)

	// Two years of candidate days covers every reachable rule.
	for i := 0; i < 740; i++ {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), r.Hour, r.Minute, 0, 0, loc)
		if candidate.After(after) && r.matchesDay(candidate) {
			return candidate
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}
}

func (r Recurrence) matchesDay(t time.Time) bool {
	if r.Weekday != nil && t.Weekday() != *r.Weekday {
		return false
	}
	if r.MonthDay != 0 && t.Day() != r.MonthDay {
		return false
	}
	return true
}
