// Package holiday computes the public holidays that make a date toll free.
//
// Holidays are a pure function of the year: the fixed dates (New Year's Day,
// Epiphany, National Day and the Christmas days), the Easter cycle derived
// from the Gregorian computus, Midsummer Eve and All Saints' Day. Calendar
// recomputes on every call; CachedCalendar memoizes per year and is safe for
// concurrent use.
package holiday
