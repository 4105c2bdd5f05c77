// Package timeframe resolves symbolic time filters into concrete windows.
package timeframe

import (
	"time"

	"upboard/internal/domain"
)

// Resolve maps a TimeFilter to a concrete [since, until] window anchored at
// now, in now's location. Weeks start on Monday (ISO). Month and year shifts
// use calendar boundaries, so last-month from March 31 is all of February.
// all-time returns an unbounded window; callers must check Window.Bounded
// rather than read sentinel dates.
//
// Resolve is a pure function of (filter, now).
func Resolve(filter domain.TimeFilter, now time.Time) (domain.Window, error) {
	switch filter {
	case domain.FilterToday:
		return bounded(startOfDay(now), endOfDay(now)), nil

	case domain.FilterThisWeek:
		start := startOfWeek(now)
		return bounded(start, endOfDay(start.AddDate(0, 0, 6))), nil

	case domain.FilterLastWeek:
		start := startOfWeek(now).AddDate(0, 0, -7)
		return bounded(start, endOfDay(start.AddDate(0, 0, 6))), nil

	case domain.FilterThisMonth:
		start := startOfMonth(now)
		return bounded(start, endOfDay(start.AddDate(0, 1, -1))), nil

	case domain.FilterLastMonth:
		// Shift the first-of-month anchor, never now itself: AddDate on
		// day 31 would normalize into the wrong month.
		start := startOfMonth(now).AddDate(0, -1, 0)
		return bounded(start, endOfDay(startOfMonth(now).AddDate(0, 0, -1))), nil

	case domain.FilterThisYear:
		start := startOfYear(now)
		return bounded(start, endOfDay(start.AddDate(1, 0, -1))), nil

	case domain.FilterLastYear:
		start := startOfYear(now).AddDate(-1, 0, 0)
		return bounded(start, endOfDay(startOfYear(now).AddDate(0, 0, -1))), nil

	case domain.FilterAllTime:
		return domain.Window{Bounded: false}, nil

	default:
		return domain.Window{}, &domain.ErrValidation{
			Field:   "filter",
			Message: "unknown time filter: " + string(filter),
		}
	}
}

func bounded(since, until time.Time) domain.Window {
	return domain.Window{Since: since, Until: until, Bounded: true}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// startOfWeek returns the Monday 00:00 of t's ISO week.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	return startOfDay(t.AddDate(0, 0, -(wd - 1)))
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
