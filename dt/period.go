package dt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/inflection"
)

// ErrUnknownPeriod is returned by ParsePeriod for names it does not recognise.
var ErrUnknownPeriod = errors.New("dt: unknown period")

// Period is a calendar unit used to step through ranges.
type Period int

const (
	Day Period = iota + 1
	Week
	Month
	Year
)

var periodNames = map[Period]string{
	Day:   "day",
	Week:  "week",
	Month: "month",
	Year:  "year",
}

// ParsePeriod maps "day", "week", "month" or "year" (any case, singular or
// plural) to a Period.
func ParsePeriod(name string) (Period, error) {
	key := inflection.Singular(strings.ToLower(strings.TrimSpace(name)))
	for p, n := range periodNames {
		if n == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	_, ok := periodNames[p]
	return ok
}

// String returns the singular name of p, e.g. "month".
func (p Period) String() string {
	if n, ok := periodNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// Plural returns the plural name of the period, e.g. "months".
func (p Period) Plural() string {
	return inflection.Plural(p.String())
}

// Start returns the period-start marker of the period containing t: the day
// itself, the Monday of its week, the 1st of its month or January 1st.
// An invalid period returns t unchanged.
func (p Period) Start(t time.Time) time.Time {
	switch p {
	case Day:
		return StartOfDay(t)
	case Week:
		return StartOfWeek(t)
	case Month:
		return StartOfMonth(t)
	case Year:
		return StartOfYear(t)
	}
	return t
}

// End returns the last calendar day (at midnight) of the period containing t.
// An invalid period returns t unchanged.
func (p Period) End(t time.Time) time.Time {
	switch p {
	case Day:
		return StartOfDay(t)
	case Week:
		return EndOfWeek(t)
	case Month:
		return EndOfMonth(t)
	case Year:
		return EndOfYear(t)
	}
	return t
}

// Next returns the marker of the period following the one containing t.
// An invalid period returns t unchanged.
func (p Period) Next(t time.Time) time.Time {
	if !p.Valid() {
		return t
	}
	start := p.Start(t)
	return localize(p.step(civil(start)), start.Location())
}

// step advances the calendar date c by one period.
func (p Period) step(c time.Time) time.Time {
	switch p {
	case Week:
		return c.AddDate(0, 0, 7)
	case Month:
		return c.AddDate(0, 1, 0)
	case Year:
		return c.AddDate(1, 0, 0)
	}
	return c.AddDate(0, 0, 1)
}
