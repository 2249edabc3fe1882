package holiday

import (
	"sort"
	"time"
)

const (
	// MinYear is the first year of the Gregorian computus.
	MinYear = 1583
	// MaxYear is the last year with a four-digit date representation.
	MaxYear = 9999
)

// ValidYear reports whether year lies in [MinYear, MaxYear].
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// Holiday is a public holiday on a given date.
type Holiday struct {
	Date time.Time `json:"date" yaml:"date"`
	Name string    `json:"name" yaml:"name"`
}

// Provider answers holiday questions for any Gregorian year.
type Provider interface {
	Holidays(year int) []time.Time
	IsHoliday(date time.Time) bool
	IsDayBeforeHoliday(date time.Time) bool
}

// Calendar computes holidays from fixed dates, the Easter computus and
// weekday-anchored rules. The zero value is ready to use and holds no state.
type Calendar struct{}

// Named returns the holidays of year in ascending date order. When two rules
// fall on the same date their names are joined.
func (Calendar) Named(year int) []Holiday {
	easter := EasterSunday(year)
	all := []Holiday{
		{Date: date(year, time.January, 1), Name: "New Year's Day"},
		{Date: date(year, time.January, 6), Name: "Epiphany"},
		{Date: easter.AddDate(0, 0, -2), Name: "Good Friday"},
		{Date: easter.AddDate(0, 0, -1), Name: "Easter Eve"},
		{Date: easter, Name: "Easter Sunday"},
		{Date: easter.AddDate(0, 0, 1), Name: "Easter Monday"},
		{Date: easter.AddDate(0, 0, 39), Name: "Ascension Day"},
		{Date: easter.AddDate(0, 0, 49), Name: "Whit Sunday"},
		{Date: date(year, time.June, 6), Name: "National Day"},
		{Date: MidsummerEve(year), Name: "Midsummer Eve"},
		{Date: AllSaintsDay(year), Name: "All Saints' Day"},
		{Date: date(year, time.December, 24), Name: "Christmas Eve"},
		{Date: date(year, time.December, 25), Name: "Christmas Day"},
		{Date: date(year, time.December, 26), Name: "Boxing Day"},
		{Date: date(year, time.December, 31), Name: "New Year's Eve"},
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })

	out := all[:0]
	for _, h := range all {
		if n := len(out); n > 0 && out[n-1].Date.Equal(h.Date) {
			out[n-1].Name += " / " + h.Name
			continue
		}
		out = append(out, h)
	}
	return out
}

// Holidays returns the deduplicated holiday dates of year in ascending order.
func (c Calendar) Holidays(year int) []time.Time {
	named := c.Named(year)
	out := make([]time.Time, len(named))
	for i, h := range named {
		out[i] = h.Date
	}
	return out
}

// IsHoliday reports whether the calendar date of t is a holiday.
func (c Calendar) IsHoliday(t time.Time) bool {
	return contains(c.Holidays(t.Year()), Day(t))
}

// IsDayBeforeHoliday reports whether the day after t is a holiday. The
// following day is looked up in its own year so that December 31 sees
// New Year's Day.
func (c Calendar) IsDayBeforeHoliday(t time.Time) bool {
	next := Day(t).AddDate(0, 0, 1)
	return contains(c.Holidays(next.Year()), next)
}

// DaysBeforeHolidays returns every date of year whose following day is a
// holiday, in ascending order.
func (c Calendar) DaysBeforeHolidays(year int) []time.Time {
	return daysBefore(year, c.Holidays)
}

func daysBefore(year int, holidays func(int) []time.Time) []time.Time {
	var out []time.Time
	for _, y := range []int{year, year + 1} {
		for _, h := range holidays(y) {
			d := h.AddDate(0, 0, -1)
			if d.Year() != year || contains(out, d) {
				continue
			}
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// EasterSunday returns the date of Easter Sunday in the Gregorian calendar
// using the anonymous (Meeus/Jones/Butcher) algorithm. Valid from 1583.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114
	return date(year, time.Month(n/31), n%31+1)
}

// MidsummerEve returns the first Friday on or after June 19.
func MidsummerEve(year int) time.Time {
	return firstWeekdayFrom(date(year, time.June, 19), time.Friday)
}

// AllSaintsDay returns the first Saturday on or after October 31.
func AllSaintsDay(year int) time.Time {
	return firstWeekdayFrom(date(year, time.October, 31), time.Saturday)
}

// Day strips the time of day from t, keeping its calendar date.
func Day(t time.Time) time.Time {
	return date(t.Year(), t.Month(), t.Day())
}

func firstWeekdayFrom(d time.Time, wd time.Weekday) time.Time {
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func contains(dates []time.Time, d time.Time) bool {
	for _, x := range dates {
		if x.Equal(d) {
			return true
		}
	}
	return false
}
