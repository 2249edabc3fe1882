package exemption

import (
	"time"

	"github.com/kilianp07/tollfee/core/holiday"
	"github.com/kilianp07/tollfee/core/model"
)

// DefaultTollFreeMonth is the month during which no fee is charged.
const DefaultTollFreeMonth = time.July

// Reason explains why a date is toll free.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonWeekend          Reason = "weekend"
	ReasonTollFreeMonth    Reason = "toll_free_month"
	ReasonHoliday          Reason = "holiday"
	ReasonDayBeforeHoliday Reason = "day_before_holiday"
	ReasonVehicle          Reason = "toll_free_vehicle"
	// ReasonDate is used when an exempter reports a toll-free date without a rule.
	ReasonDate Reason = "toll_free_date"
)

// Policy decides whether dates and vehicle categories are exempt from charging.
type Policy struct {
	holidays holiday.Provider
	month    time.Month
}

// Option configures a Policy.
type Option func(*Policy)

// WithTollFreeMonth overrides the toll-free month. Invalid months are ignored.
func WithTollFreeMonth(m time.Month) Option {
	return func(p *Policy) {
		if m >= time.January && m <= time.December {
			p.month = m
		}
	}
}

// NewPolicy returns a Policy backed by the given holiday provider. A nil
// provider falls back to holiday.Calendar.
func NewPolicy(holidays holiday.Provider, opts ...Option) *Policy {
	if holidays == nil {
		holidays = holiday.Calendar{}
	}
	p := &Policy{holidays: holidays, month: DefaultTollFreeMonth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TollFreeMonth returns the configured toll-free month.
func (p *Policy) TollFreeMonth() time.Month { return p.month }

// IsTollFreeDate reports whether no fee is charged on the date of ts.
func (p *Policy) IsTollFreeDate(ts time.Time) bool {
	return p.DateReason(ts) != ReasonNone
}

// DateReason returns the first rule that makes the date of ts toll free, or
// ReasonNone. Rules are checked in the order weekend, month, holiday, day
// before holiday.
func (p *Policy) DateReason(ts time.Time) Reason {
	switch {
	case ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday:
		return ReasonWeekend
	case ts.Month() == p.month:
		return ReasonTollFreeMonth
	case p.holidays.IsHoliday(ts):
		return ReasonHoliday
	case p.holidays.IsDayBeforeHoliday(ts):
		return ReasonDayBeforeHoliday
	}
	return ReasonNone
}

// IsTollFreeVehicle reports whether the category is exempt on every date.
func (p *Policy) IsTollFreeVehicle(v model.Vehicle) bool {
	return IsTollFreeVehicle(v)
}

// IsTollFreeVehicle is the static exemption table for vehicle categories.
func IsTollFreeVehicle(v model.Vehicle) bool {
	switch v {
	case model.VehicleMotorbike,
		model.VehicleTractor,
		model.VehicleEmergency,
		model.VehicleDiplomat,
		model.VehicleForeign,
		model.VehicleMilitary:
		return true
	default:
		// Cars, unknown and out-of-range categories are charged.
		return false
	}
}
