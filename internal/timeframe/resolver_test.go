package timeframe_test

import (
	"testing"
	"time"

	"upboard/internal/domain"
	"upboard/internal/timeframe"
)

func mustResolve(t *testing.T, filter domain.TimeFilter, now time.Time) domain.Window {
	t.Helper()
	w, err := timeframe.Resolve(filter, now)
	if err != nil {
		t.Fatalf("Resolve(%s) returned error: %v", filter, err)
	}
	return w
}

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestResolve_Today(t *testing.T) {
	now := date(2024, time.March, 15, 10, 0)
	w := mustResolve(t, domain.FilterToday, now)

	wantSince := date(2024, time.March, 15, 0, 0)
	if !w.Since.Equal(wantSince) {
		t.Errorf("since = %v, want %v", w.Since, wantSince)
	}
	if w.Until.Day() != 15 || w.Until.Hour() != 23 || w.Until.Minute() != 59 || w.Until.Second() != 59 {
		t.Errorf("until = %v, want end of March 15", w.Until)
	}
	if w.Until.Add(time.Nanosecond).Day() != 16 {
		t.Errorf("until is not the last instant of the day: %v", w.Until)
	}
}

func TestResolve_Weeks_MondayStart(t *testing.T) {
	// Wednesday 2024-03-13
	now := date(2024, time.March, 13, 12, 30)

	w := mustResolve(t, domain.FilterThisWeek, now)
	if got, want := w.Since, date(2024, time.March, 11, 0, 0); !got.Equal(want) {
		t.Errorf("this-week since = %v, want Monday %v", got, want)
	}
	if w.Until.Day() != 17 {
		t.Errorf("this-week until day = %d, want Sunday 17", w.Until.Day())
	}

	w = mustResolve(t, domain.FilterLastWeek, now)
	if got, want := w.Since, date(2024, time.March, 4, 0, 0); !got.Equal(want) {
		t.Errorf("last-week since = %v, want %v", got, want)
	}
	if w.Until.Day() != 10 {
		t.Errorf("last-week until day = %d, want 10", w.Until.Day())
	}
}

func TestResolve_Weeks_SundayBelongsToPrecedingMondayWeek(t *testing.T) {
	// Sunday 2024-03-17 is the last day of the Mon 11 – Sun 17 week.
	now := date(2024, time.March, 17, 8, 0)
	w := mustResolve(t, domain.FilterThisWeek, now)
	if got, want := w.Since, date(2024, time.March, 11, 0, 0); !got.Equal(want) {
		t.Errorf("since = %v, want %v", got, want)
	}
}

func TestResolve_LastMonth_ClampsFromMarch31(t *testing.T) {
	// Leap year: February has 29 days.
	w := mustResolve(t, domain.FilterLastMonth, date(2024, time.March, 31, 9, 0))
	if got, want := w.Since, date(2024, time.February, 1, 0, 0); !got.Equal(want) {
		t.Errorf("leap since = %v, want %v", got, want)
	}
	if w.Until.Month() != time.February || w.Until.Day() != 29 {
		t.Errorf("leap until = %v, want Feb 29", w.Until)
	}

	// Non-leap year: February has 28 days.
	w = mustResolve(t, domain.FilterLastMonth, date(2023, time.March, 31, 9, 0))
	if w.Until.Month() != time.February || w.Until.Day() != 28 {
		t.Errorf("non-leap until = %v, want Feb 28", w.Until)
	}
}

func TestResolve_Months(t *testing.T) {
	now := date(2024, time.January, 20, 15, 0)

	w := mustResolve(t, domain.FilterThisMonth, now)
	if got, want := w.Since, date(2024, time.January, 1, 0, 0); !got.Equal(want) {
		t.Errorf("this-month since = %v, want %v", got, want)
	}
	if w.Until.Day() != 31 {
		t.Errorf("this-month until day = %d, want 31", w.Until.Day())
	}

	// Last month crosses the year boundary.
	w = mustResolve(t, domain.FilterLastMonth, now)
	if w.Since.Year() != 2023 || w.Since.Month() != time.December || w.Since.Day() != 1 {
		t.Errorf("last-month since = %v, want Dec 1 2023", w.Since)
	}
	if w.Until.Month() != time.December || w.Until.Day() != 31 {
		t.Errorf("last-month until = %v, want Dec 31", w.Until)
	}
}

func TestResolve_Years(t *testing.T) {
	now := date(2024, time.June, 10, 0, 0)

	w := mustResolve(t, domain.FilterThisYear, now)
	if w.Since.Year() != 2024 || w.Since.Month() != time.January || w.Since.Day() != 1 {
		t.Errorf("this-year since = %v", w.Since)
	}
	if w.Until.Year() != 2024 || w.Until.Month() != time.December || w.Until.Day() != 31 {
		t.Errorf("this-year until = %v", w.Until)
	}

	w = mustResolve(t, domain.FilterLastYear, now)
	if w.Since.Year() != 2023 || w.Until.Year() != 2023 {
		t.Errorf("last-year window = [%v, %v]", w.Since, w.Until)
	}
}

func TestResolve_AllTimeIsUnbounded(t *testing.T) {
	w := mustResolve(t, domain.FilterAllTime, time.Now())
	if w.Bounded {
		t.Error("all-time window must not be bounded")
	}
}

func TestResolve_UnknownFilter(t *testing.T) {
	_, err := timeframe.Resolve(domain.TimeFilter("fortnight"), time.Now())
	if err == nil {
		t.Fatal("expected error for unknown filter")
	}
}

func TestResolve_SinceNeverAfterUntil(t *testing.T) {
	filters := []domain.TimeFilter{
		domain.FilterToday, domain.FilterThisWeek, domain.FilterLastWeek,
		domain.FilterThisMonth, domain.FilterLastMonth,
		domain.FilterThisYear, domain.FilterLastYear,
	}
	nows := []time.Time{
		date(2024, time.January, 1, 0, 0),
		date(2024, time.February, 29, 23, 59),
		date(2024, time.December, 31, 12, 0),
		date(2023, time.March, 31, 6, 0),
	}
	for _, f := range filters {
		for _, now := range nows {
			w := mustResolve(t, f, now)
			if w.Since.After(w.Until) {
				t.Errorf("%s at %v: since %v after until %v", f, now, w.Since, w.Until)
			}
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	now := date(2024, time.March, 15, 10, 0)
	a := mustResolve(t, domain.FilterThisWeek, now)
	b := mustResolve(t, domain.FilterThisWeek, now)
	if !a.Since.Equal(b.Since) || !a.Until.Equal(b.Until) {
		t.Errorf("Resolve is not deterministic: %v vs %v", a, b)
	}
}
