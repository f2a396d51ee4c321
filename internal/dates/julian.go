package dates

import (
	"strings"
	"time"
)

// openEndYears is how far a BEF/AFT date extends on its open side.
const openEndYears = 10

// Interval is an inclusive Julian-day window covering every day a date
// string may denote.
type Interval struct {
	Min     int
	Max     int
	Precise bool
}

// Days returns the width of the window in days.
func (i Interval) Days() int { return i.Max - i.Min }

// MinYear is the calendar year of the earliest day in the window.
func (i Interval) MinYear() int { return YearFromJD(i.Min) }

// MaxYear is the calendar year of the latest day in the window.
func (i Interval) MaxYear() int { return YearFromJD(i.Max) }

// Window computes the Julian-day window for raw. A date is precise only when
// day, month and year are resolved and no qualifier (ABT, BEF, BET...) is
// present. Returns false when raw carries no year.
func Window(raw string) (Interval, bool) {
	raw = strings.TrimSpace(calendarEscape.ReplaceAllString(raw, ""))
	if raw == "" {
		return Interval{}, false
	}
	qual, rest := splitQualifier(raw)
	if from, to, _, ok := splitRange(qual, rest); ok {
		lo, lok := simpleWindow(from)
		hi, hok := simpleWindow(to)
		switch {
		case lok && hok:
			if hi.Max < lo.Min {
				lo, hi = hi, lo
			}
			return Interval{Min: lo.Min, Max: hi.Max}, true
		case lok:
			return Interval{Min: lo.Min, Max: lo.Max}, true
		case hok:
			return Interval{Min: hi.Min, Max: hi.Max}, true
		default:
			return Interval{}, false
		}
	}

	w, ok := simpleWindow(rest)
	if !ok {
		return Interval{}, false
	}
	switch qual {
	case "":
		return w, true
	case "BEF", "TO":
		w.Min = JulianDay(YearFromJD(w.Min)-openEndYears, time.January, 1)
	case "AFT", "FROM":
		w.Max = JulianDay(YearFromJD(w.Max)+openEndYears, time.December, 31)
	}
	w.Precise = false
	return w, true
}

func simpleWindow(raw string) (Interval, bool) {
	p := Parse(raw)
	if !p.HasYear() {
		return Interval{}, false
	}
	switch {
	case p.Complete():
		jd := JulianDay(p.Year, p.Month, p.Day)
		return Interval{Min: jd, Max: jd, Precise: true}, true
	case p.Month != 0:
		first := JulianDay(p.Year, p.Month, 1)
		next := JulianDay(p.Year, p.Month+1, 1)
		if p.Month == time.December {
			next = JulianDay(p.Year+1, time.January, 1)
		}
		return Interval{Min: first, Max: next - 1}, true
	default:
		return Interval{
			Min: JulianDay(p.Year, time.January, 1),
			Max: JulianDay(p.Year, time.December, 31),
		}, true
	}
}

// JulianDay converts a proleptic Gregorian date to its Julian day number.
func JulianDay(year int, month time.Month, day int) int {
	a := (14 - int(month)) / 12
	y := year + 4800 - a
	m := int(month) + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// YearFromJD returns the proleptic Gregorian year containing jd.
func YearFromJD(jd int) int {
	y, _, _ := FromJulianDay(jd)
	return y
}

// FromJulianDay converts a Julian day number back to a Gregorian date.
func FromJulianDay(jd int) (int, time.Month, int) {
	a := jd + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day := e - (153*m+2)/5 + 1
	month := m + 3 - 12*(m/10)
	year := 100*b + d - 4800 + m/10
	return year, time.Month(month), day
}

// FromTime returns the Julian day of t's calendar date in UTC.
func FromTime(t time.Time) int {
	y, m, d := t.UTC().Date()
	return JulianDay(y, m, d)
}
