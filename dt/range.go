package dt

import (
	"fmt"
	"iter"
	"time"
)

// DateLayout is the layout used to render dates.
const DateLayout = "2006-01-02"

// Range is an inclusive range of period-start markers. Each traversal of
// All starts afresh, so a Range can be iterated any number of times.
//
// Start after end is allowed and yields nothing. Markers are stepped on the
// calendar date, so a day whose midnight is skipped by a clock change is
// still listed, at its first instant.
type Range struct {
	Period Period

	// calendar dates as UTC midnights
	first time.Time
	last  time.Time
	loc   *time.Location
}

// Interval is a single period: its start marker and its last calendar day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewRange returns the range of p markers from the period containing start
// up to the period containing end.
func NewRange(p Period, start, end time.Time) Range {
	if !p.Valid() {
		return Range{Period: p}
	}
	start = ref(start)
	return Range{
		Period: p,
		first:  civil(p.Start(start)),
		last:   civil(p.Start(end)),
		loc:    start.Location(),
	}
}

// DayRange lists every day between start and end, both included.
//
//	DayRange(2020-02-01, 2020-02-03) -> 2020-02-01, 2020-02-02, 2020-02-03
func DayRange(start, end time.Time) Range { return NewRange(Day, start, end) }

// WeekRange lists the Mondays of the weeks between start and end.
//
//	WeekRange(2020-02-01, 2020-02-15) -> 2020-01-27, 2020-02-03, 2020-02-10
func WeekRange(start, end time.Time) Range { return NewRange(Week, start, end) }

// MonthRange lists the first day of each month between start and end.
//
//	MonthRange(2020-02-01, 2020-03-01) -> 2020-02-01, 2020-03-01
func MonthRange(start, end time.Time) Range { return NewRange(Month, start, end) }

// YearRange lists January 1st of each year between start and end.
func YearRange(start, end time.Time) Range { return NewRange(Year, start, end) }

// All yields the markers of the range in order.
func (r Range) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if !r.Period.Valid() {
			return
		}
		for cur := r.first; !cur.After(r.last); cur = r.Period.step(cur) {
			if !yield(localize(cur, r.loc)) {
				return
			}
		}
	}
}

// Intervals yields each period of the range with its last day.
func (r Range) Intervals() iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		for start := range r.All() {
			if !yield(Interval{Start: start, End: r.Period.End(start)}) {
				return
			}
		}
	}
}

// Dates collects the markers into a slice.
func (r Range) Dates() []time.Time {
	var dates []time.Time
	for d := range r.All() {
		dates = append(dates, d)
	}
	return dates
}

// Len returns the number of markers in the range.
func (r Range) Len() int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}

// Bounds returns the first marker and the last day covered by the range.
// For a week range this is a Monday and a Sunday.
func (r Range) Bounds() (start, end time.Time) {
	if !r.Period.Valid() {
		return time.Time{}, time.Time{}
	}
	return localize(r.first, r.loc), r.Period.End(localize(r.last, r.loc))
}

func (r Range) String() string {
	start, end := r.Bounds()
	return fmt.Sprintf("[%s;%s]", start.Format(DateLayout), end.Format(DateLayout))
}

// Days returns the number of calendar days in the interval.
func (iv Interval) Days() int {
	return DayRange(iv.Start, iv.End).Len()
}
