package toll

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/tollfee/core/exemption"
	"github.com/kilianp07/tollfee/core/fee"
	"github.com/kilianp07/tollfee/core/holiday"
	"github.com/kilianp07/tollfee/core/logger"
	"github.com/kilianp07/tollfee/core/metrics"
	"github.com/kilianp07/tollfee/core/model"
)

const (
	// DailyMaximumFee caps the fee charged to one vehicle on one day.
	DailyMaximumFee = 60
	// WindowLength is the span, measured from its first pass, of a charge window.
	WindowLength = 60 * time.Minute
)

var (
	// ErrInvalidArgument is wrapped by every input validation error.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyInput is returned when no passes are supplied.
	ErrEmptyInput = fmt.Errorf("%w: expected at least one pass", ErrInvalidArgument)
	// ErrMultiDaySpan is returned when passes fall on different calendar dates.
	ErrMultiDaySpan = fmt.Errorf("%w: passes span multiple days", ErrInvalidArgument)
)

// Exempter decides which dates and vehicles are never charged.
type Exempter interface {
	IsTollFreeDate(ts time.Time) bool
	IsTollFreeVehicle(v model.Vehicle) bool
}

// reasoner is implemented by exempters able to explain a toll-free date.
type reasoner interface {
	DateReason(ts time.Time) exemption.Reason
}

// Window groups the passes charged as one. Fee is the highest single fee
// among its passes.
type Window struct {
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Passes []time.Time `json:"-"`
	Fee    int         `json:"fee"`
}

// Assessment is the detailed result of a daily fee computation.
type Assessment struct {
	ID        string           `json:"id,omitempty"`
	Vehicle   model.Vehicle    `json:"vehicle"`
	Date      time.Time        `json:"date"`
	Passes    int              `json:"passes"`
	Windows   []Window         `json:"windows"`
	Uncapped  int              `json:"uncapped"`
	Total     int              `json:"total"`
	Exemption exemption.Reason `json:"exemption,omitempty"`
}

// Capped reports whether the daily maximum reduced the total.
func (a Assessment) Capped() bool { return a.Uncapped > a.Total }

// Calculator computes daily congestion fees.
type Calculator struct {
	policy   Exempter
	log      logger.Logger
	recorder metrics.FeeRecorder
	newID    func() string
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for debug traces.
func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRecorder sets the recorder notified of every assessment.
func WithRecorder(r metrics.FeeRecorder) Option {
	return func(c *Calculator) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithIDGenerator sets the function building assessment IDs.
func WithIDGenerator(f func() string) Option {
	return func(c *Calculator) {
		if f != nil {
			c.newID = f
		}
	}
}

// NewCalculator returns a Calculator using policy for exemptions. A nil
// policy uses exemption.NewPolicy with the built-in holiday calendar.
func NewCalculator(policy Exempter, opts ...Option) *Calculator {
	if policy == nil {
		policy = exemption.NewPolicy(holiday.Calendar{})
	}
	c := &Calculator{
		policy:   policy,
		log:      logger.NopLogger{},
		recorder: metrics.NopRecorder{},
		newID:    func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DailyFee returns the total fee for the vehicle's passes on one day.
func (c *Calculator) DailyFee(v model.Vehicle, passes []time.Time) (int, error) {
	a, err := c.Assess(v, passes)
	if err != nil {
		return 0, err
	}
	return a.Total, nil
}

// Assess computes the daily fee and returns the windows that produced it.
// Passes need not be ordered and the slice is not modified. Passes are
// charged at minute precision: seconds are dropped before windowing.
func (c *Calculator) Assess(v model.Vehicle, passes []time.Time) (Assessment, error) {
	if err := validate(passes); err != nil {
		c.reject(err)
		return Assessment{}, err
	}
	sorted := make([]time.Time, len(passes))
	for i, p := range passes {
		sorted[i] = p.Truncate(time.Minute)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	a := Assessment{ID: c.newID(), Vehicle: v, Date: holiday.Day(sorted[0]), Passes: len(sorted)}
	if reason := c.exemptionReason(v, sorted[0]); reason != exemption.ReasonNone {
		a.Exemption = reason
		c.log.Debugw("toll free", map[string]any{
			"vehicle": v.String(),
			"date":    a.Date.Format(time.DateOnly),
			"reason":  string(reason),
		})
		c.record(a)
		return a, nil
	}

	a.Windows = Partition(sorted)
	for _, w := range a.Windows {
		a.Uncapped += w.Fee
	}
	a.Total = min(a.Uncapped, DailyMaximumFee)
	if a.Capped() {
		c.log.Debugf("daily fee for %s capped from %d to %d", v, a.Uncapped, a.Total)
	}
	c.record(a)
	return a, nil
}

func (c *Calculator) exemptionReason(v model.Vehicle, first time.Time) exemption.Reason {
	if c.policy.IsTollFreeDate(first) {
		if r, ok := c.policy.(reasoner); ok {
			return r.DateReason(first)
		}
		return exemption.ReasonDate
	}
	if c.policy.IsTollFreeVehicle(v) {
		return exemption.ReasonVehicle
	}
	return exemption.ReasonNone
}

// Partition splits passes sorted in ascending order into charge windows. A
// pass more than WindowLength after the first pass of the current window
// opens a new one.
func Partition(sorted []time.Time) []Window {
	var out []Window
	for _, p := range sorted {
		n := len(out)
		if n == 0 || p.Sub(out[n-1].Start) > WindowLength {
			out = append(out, Window{Start: p})
			n++
		}
		w := &out[n-1]
		w.End = p
		w.Passes = append(w.Passes, p)
		w.Fee = max(w.Fee, fee.ForTimeOfDay(p))
	}
	return out
}

func validate(passes []time.Time) error {
	if len(passes) == 0 {
		return ErrEmptyInput
	}
	y, m, d := passes[0].Date()
	for _, p := range passes[1:] {
		if py, pm, pd := p.Date(); py != y || pm != m || pd != d {
			return ErrMultiDaySpan
		}
	}
	return nil
}

func (c *Calculator) record(a Assessment) {
	ev := metrics.FeeEvent{
		ID:        a.ID,
		Vehicle:   a.Vehicle,
		Date:      a.Date,
		Passes:    a.Passes,
		Windows:   len(a.Windows),
		Uncapped:  a.Uncapped,
		Total:     a.Total,
		Capped:    a.Capped(),
		Exemption: string(a.Exemption),
		Time:      time.Now(),
	}
	if err := c.recorder.RecordAssessment(ev); err != nil {
		c.log.Warnf("record assessment: %v", err)
	}
}

func (c *Calculator) reject(err error) {
	rec, ok := c.recorder.(metrics.RejectionRecorder)
	if !ok {
		return
	}
	reason := "invalid_argument"
	switch {
	case errors.Is(err, ErrEmptyInput):
		reason = "empty_input"
	case errors.Is(err, ErrMultiDaySpan):
		reason = "multi_day_span"
	}
	if rerr := rec.RecordRejection(reason); rerr != nil {
		c.log.Warnf("record rejection: %v", rerr)
	}
}
