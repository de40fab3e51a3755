package domain

import "time"

// Period is one of the three recurrence classes driving fetch window,
// display cap and pin policy.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Periods lists all recurrence classes in cadence order.
func Periods() []Period {
	return []Period{PeriodDaily, PeriodWeekly, PeriodMonthly}
}

// Valid reports whether p is one of the three known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Window returns the fetch interval for a run anchored at now. Daily covers
// the current calendar day; weekly and monthly trail 7 and 30 days.
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeekly:
		return now.AddDate(0, 0, -7), now
	case PeriodMonthly:
		return now.AddDate(0, 0, -30), now
	default:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24*time.Hour - time.Second)
	}
}

// Limit is the per-run fetch and display cap.
func (p Period) Limit() int {
	if p == PeriodDaily {
		return 10
	}
	return 20
}

// WithComments reports whether the fetch should embed launch comments.
// Only the daily query carries them; the wider windows skip comments to
// keep API query cost down.
func (p Period) WithComments() bool {
	return p == PeriodDaily
}

// Pinned reports whether the period's directory message gets pinned. The
// daily directory changes every day, so pinning it would be pointless.
func (p Period) Pinned() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}
