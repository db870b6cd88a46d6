// Package dt provides calendar helpers: period boundaries, previous-period
// lookups and inclusive day/week/month/year range iteration.
//
// Every helper taking a reference time treats the zero time.Time as "now".
// Date results are midnight in the location of the reference time. Weeks
// start on Monday.
package dt

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// clock is replaced in tests.
var clock = time.Now

// calendar does date arithmetic on UTC midnights, which have no clock
// changes. It also truncates hours and parses dates.
var calendar = &now.Config{WeekStartDay: time.Monday}

func ref(t time.Time) time.Time {
	if t.IsZero() {
		return clock()
	}
	return t
}

// civil returns the calendar date of t as a UTC midnight.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// localize returns the first instant of the calendar date c in loc. Where a
// clock change skips midnight the day starts at the end of the gap.
func localize(c time.Time, loc *time.Location) time.Time {
	y, m, d := c.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if ty, tm, td := t.Date(); ty != y || tm != m || td != d {
		if _, end := t.ZoneBounds(); !end.IsZero() {
			t = end
		}
	}
	return t
}

// onCalendar applies f to the calendar date of t and maps the result back
// to t's location.
func onCalendar(t time.Time, f func(*now.Now) time.Time) time.Time {
	t = ref(t)
	return localize(f(calendar.With(civil(t))), t.Location())
}

// StartOfDay returns midnight of the day of t.
func StartOfDay(t time.Time) time.Time {
	t = ref(t)
	return localize(civil(t), t.Location())
}

// EndOfDay returns 23:59:59 on the day of t.
func EndOfDay(t time.Time) time.Time {
	t = ref(t)
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// StartOfHour returns t truncated to the hour.
func StartOfHour(t time.Time) time.Time {
	return calendar.With(ref(t)).BeginningOfHour()
}

// EndOfHour returns the last microsecond of the hour of t.
func EndOfHour(t time.Time) time.Time {
	return StartOfHour(t).Add(time.Hour - time.Microsecond)
}

// StartOfWeek returns the Monday of the week of t.
func StartOfWeek(t time.Time) time.Time {
	return onCalendar(t, (*now.Now).BeginningOfWeek)
}

// EndOfWeek returns the Sunday of the week of t.
func EndOfWeek(t time.Time) time.Time {
	return onCalendar(t, (*now.Now).EndOfWeek)
}

// StartOfMonth returns the first day of the month of t.
func StartOfMonth(t time.Time) time.Time {
	return onCalendar(t, (*now.Now).BeginningOfMonth)
}

// EndOfMonth returns the last day of the month of t.
func EndOfMonth(t time.Time) time.Time {
	return onCalendar(t, (*now.Now).EndOfMonth)
}

// StartOfYear returns January 1st of the year of t.
func StartOfYear(t time.Time) time.Time {
	return onCalendar(t, (*now.Now).BeginningOfYear)
}

// EndOfYear returns December 31st of the year of t.
func EndOfYear(t time.Time) time.Time {
	return onCalendar(t, (*now.Now).EndOfYear)
}

// MonthStart returns the first day of the month delta months away from the
// month of t. A negative delta goes back in time.
func MonthStart(t time.Time, delta int) time.Time {
	return onCalendar(t, func(n *now.Now) time.Time {
		return n.BeginningOfMonth().AddDate(0, delta, 0)
	})
}

// Yesterday returns t minus one calendar day.
func Yesterday(t time.Time) time.Time {
	return ref(t).AddDate(0, 0, -1)
}

// LastMonth returns the first day of the month before the month of t.
func LastMonth(t time.Time) time.Time {
	return MonthStart(t, -1)
}

// LastMonthStart is LastMonth.
func LastMonthStart(t time.Time) time.Time {
	return LastMonth(t)
}

// LastMonthEnd returns the last day of the month before the month of t.
func LastMonthEnd(t time.Time) time.Time {
	return EndOfMonth(LastMonth(t))
}

// LastMonthYearStart returns January 1st of the year the previous month
// belongs to. In January this is the previous year.
func LastMonthYearStart(t time.Time) time.Time {
	return StartOfYear(LastMonth(t))
}

// LastMonthYearEnd returns December 31st of the year the previous month
// belongs to.
func LastMonthYearEnd(t time.Time) time.Time {
	return EndOfYear(LastMonth(t))
}

// YearToLastMonth returns the year-to-date window closed at the end of the
// previous month.
func YearToLastMonth(t time.Time) (start, end time.Time) {
	return LastMonthYearStart(t), LastMonthEnd(t)
}

// LastWeekEnd returns the Sunday before the week of t.
func LastWeekEnd(t time.Time) time.Time {
	return onCalendar(t, func(n *now.Now) time.Time {
		return n.BeginningOfWeek().AddDate(0, 0, -1)
	})
}

// LastWeekStart returns the Monday of the week before the week of t.
func LastWeekStart(t time.Time) time.Time {
	return StartOfWeek(LastWeekEnd(t))
}

// WeeksBack returns a window of whole weeks. The window ends on the Sunday
// offset weeks away from the end of last week and spans weeks weeks.
// WeeksBack(t, -1, 2) covers the two weeks before last week.
func WeeksBack(t time.Time, offset, weeks int) (start, end time.Time) {
	last := LastWeekEnd(t)
	c := civil(last).AddDate(0, 0, 7*offset)
	return localize(c.AddDate(0, 0, 1-7*weeks), last.Location()), localize(c, last.Location())
}

// DaysBack returns the days start and end days before t.
// DaysBack(t, 1, 1) is yesterday to yesterday.
func DaysBack(t time.Time, start, end int) (from, to time.Time) {
	t = ref(t)
	day := civil(t)
	return localize(day.AddDate(0, 0, -start), t.Location()), localize(day.AddDate(0, 0, -end), t.Location())
}

// WorkingDays counts the days from start to end inclusive that are not
// Saturday or Sunday.
func WorkingDays(start, end time.Time) int {
	n := 0
	for day := range DayRange(start, end).All() {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// InRange reports whether t lies within [start, end]. When both bounds are
// dates (midnight) only the calendar day of t is compared. The zero time is
// never in range.
func InRange(t, start, end time.Time) bool {
	if t.IsZero() {
		return false
	}
	if isDate(start) && isDate(end) {
		t = StartOfDay(t)
	}
	return !t.Before(start) && !t.After(end)
}

func isDate(t time.Time) bool {
	return t.Equal(StartOfDay(t))
}

// Format formats t with layout, or returns fallback for the zero time.
func Format(t time.Time, layout, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format(layout)
}

// ParseDate parses loosely formatted dates such as "2020-02-01",
// "2020-2" or "2020-02-01 14:30" in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dt: parse date %q: %w", s, err)
	}
	return t, nil
}
