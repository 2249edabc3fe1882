package holiday

import (
	"sync"
	"time"
)

// CachedCalendar memoizes Calendar results per year. Concurrent callers may
// compute the same year twice; the results are identical so the last store
// wins without harm.
type CachedCalendar struct {
	cal   Calendar
	years sync.Map // int -> []Holiday
}

// NewCachedCalendar returns an empty CachedCalendar.
func NewCachedCalendar() *CachedCalendar { return &CachedCalendar{} }

// Named returns a copy of the memoized holidays of year.
func (c *CachedCalendar) Named(year int) []Holiday {
	v, ok := c.years.Load(year)
	if !ok {
		v, _ = c.years.LoadOrStore(year, c.cal.Named(year))
	}
	cached := v.([]Holiday)
	out := make([]Holiday, len(cached))
	copy(out, cached)
	return out
}

func (c *CachedCalendar) Holidays(year int) []time.Time {
	named := c.Named(year)
	out := make([]time.Time, len(named))
	for i, h := range named {
		out[i] = h.Date
	}
	return out
}

func (c *CachedCalendar) IsHoliday(t time.Time) bool {
	return contains(c.Holidays(t.Year()), Day(t))
}

func (c *CachedCalendar) IsDayBeforeHoliday(t time.Time) bool {
	next := Day(t).AddDate(0, 0, 1)
	return contains(c.Holidays(next.Year()), next)
}

func (c *CachedCalendar) DaysBeforeHolidays(year int) []time.Time {
	return daysBefore(year, c.Holidays)
}
