package toll

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tollfee/core/exemption"
	"github.com/kilianp07/tollfee/core/holiday"
	"github.com/kilianp07/tollfee/core/metrics"
	"github.com/kilianp07/tollfee/core/model"
)

// stubExempter returns fixed answers, counting calls.
type stubExempter struct {
	date, vehicle bool
	dateCalls     int
}

func (s *stubExempter) IsTollFreeDate(time.Time) bool {
	s.dateCalls++
	return s.date
}
func (s *stubExempter) IsTollFreeVehicle(model.Vehicle) bool { return s.vehicle }

type captureRecorder struct {
	events     []metrics.FeeEvent
	rejections []string
}

func (c *captureRecorder) RecordAssessment(ev metrics.FeeEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func (c *captureRecorder) RecordRejection(reason string) error {
	c.rejections = append(c.rejections, reason)
	return nil
}

// 2025-03-07 is an ordinary Friday.
func pass(h, m int) time.Time {
	return time.Date(2025, time.March, 7, h, m, 0, 0, time.UTC)
}

func newCalendarCalculator() *Calculator {
	return NewCalculator(exemption.NewPolicy(holiday.Calendar{}))
}

func TestDailyFeeSinglePass(t *testing.T) {
	calc := newCalendarCalculator()
	cases := []struct {
		h, m int
		want int
	}{
		{0, 0, 0}, {3, 0, 0}, {6, 0, 8}, {6, 30, 13}, {6, 59, 13}, {7, 0, 18},
		{8, 0, 13}, {8, 30, 8}, {9, 0, 8}, {11, 22, 8}, {12, 18, 8}, {14, 59, 8},
		{15, 0, 13}, {15, 30, 18}, {16, 0, 18}, {16, 34, 18}, {17, 0, 13},
		{17, 59, 13}, {18, 0, 8}, {18, 30, 0},
	}
	for _, c := range cases {
		got, err := calc.DailyFee(model.VehicleCar, []time.Time{pass(c.h, c.m)})
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%02d:%02d", c.h, c.m)
	}
}

func TestDailyFeeScenarios(t *testing.T) {
	calc := newCalendarCalculator()
	cases := []struct {
		name   string
		passes []time.Time
		want   int
	}{
		{
			name:   "several passes within one hour charge the maximum",
			passes: []time.Time{pass(6, 15), pass(6, 30), pass(7, 14)},
			want:   18,
		},
		{
			name: "two windows",
			passes: []time.Time{
				pass(8, 0), pass(8, 15), pass(8, 40),
				pass(15, 0), pass(15, 15), pass(15, 30),
			},
			want: 31,
		},
		{
			name: "daily maximum",
			passes: []time.Time{
				pass(6, 0), pass(7, 0), pass(8, 0), pass(9, 30), pass(11, 30),
				pass(12, 30), pass(15, 30), pass(16, 30), pass(17, 30),
			},
			want: 60,
		},
		{
			name:   "exactly sixty minutes stays in window",
			passes: []time.Time{pass(6, 0), pass(7, 0)},
			want:   18,
		},
		{
			name:   "sixty one minutes opens a new window",
			passes: []time.Time{pass(6, 0), pass(7, 1)},
			want:   26,
		},
		{
			name:   "window measured from first pass not previous",
			passes: []time.Time{pass(6, 0), pass(6, 50), pass(7, 40)},
			want:   13 + 18,
		},
		{
			name: "seconds are ignored when measuring the window",
			passes: []time.Time{
				time.Date(2025, time.March, 7, 6, 0, 30, 0, time.UTC),
				time.Date(2025, time.March, 7, 7, 0, 45, 0, time.UTC),
			},
			want: 18,
		},
		{
			name:   "free evening passes",
			passes: []time.Time{pass(19, 0), pass(21, 0), pass(23, 59)},
			want:   0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calc.DailyFee(model.VehicleCar, c.passes)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDailyFeeValidation(t *testing.T) {
	rec := &captureRecorder{}
	calc := NewCalculator(&stubExempter{}, WithRecorder(rec))

	_, err := calc.DailyFee(model.VehicleCar, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.DailyFee(model.VehicleCar, []time.Time{
		time.Date(2024, time.February, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 3, 8, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrMultiDaySpan)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, errors.Is(err, ErrEmptyInput))

	// Order does not matter for the span check.
	_, err = calc.DailyFee(model.VehicleCar, []time.Time{pass(8, 0), pass(23, 0), pass(0, 1).AddDate(0, 0, 1), pass(1, 0)})
	assert.ErrorIs(t, err, ErrMultiDaySpan)

	assert.Equal(t, []string{"empty_input", "multi_day_span", "multi_day_span"}, rec.rejections)
	assert.Empty(t, rec.events)
}

func TestDailyFeeShortCircuits(t *testing.T) {
	cases := []struct {
		name    string
		stub    *stubExempter
		vehicle model.Vehicle
	}{
		{"toll free date", &stubExempter{date: true}, model.VehicleCar},
		{"toll free vehicle", &stubExempter{vehicle: true}, model.VehicleMotorbike},
		{"both", &stubExempter{date: true, vehicle: true}, model.VehicleMotorbike},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			calc := NewCalculator(c.stub)
			a, err := calc.Assess(c.vehicle, []time.Time{pass(8, 0), pass(7, 0)})
			require.NoError(t, err)
			assert.Equal(t, 0, a.Total)
			assert.Empty(t, a.Windows)
			assert.NotEqual(t, exemption.ReasonNone, a.Exemption)
			assert.Equal(t, 1, c.stub.dateCalls)
		})
	}
}

func TestDailyFeeUsesEarliestPassForDate(t *testing.T) {
	var seen []time.Time
	policy := exempterFunc(func(ts time.Time) bool {
		seen = append(seen, ts)
		return false
	})
	calc := NewCalculator(policy)
	_, err := calc.DailyFee(model.VehicleCar, []time.Time{pass(15, 0), pass(6, 5), pass(9, 0)})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, pass(6, 5), seen[0])
}

type exempterFunc func(time.Time) bool

func (f exempterFunc) IsTollFreeDate(ts time.Time) bool   { return f(ts) }
func (exempterFunc) IsTollFreeVehicle(model.Vehicle) bool { return false }

func TestDailyFeeExemptVehiclesAnyDate(t *testing.T) {
	calc := newCalendarCalculator()
	exempt := []model.Vehicle{
		model.VehicleMotorbike, model.VehicleTractor, model.VehicleEmergency,
		model.VehicleDiplomat, model.VehicleForeign, model.VehicleMilitary,
	}
	start := time.Date(2025, time.January, 1, 7, 30, 0, 0, time.UTC)
	for day := 0; day < 365; day += 5 {
		ts := start.AddDate(0, 0, day)
		for _, v := range exempt {
			got, err := calc.DailyFee(v, []time.Time{ts, ts.Add(2 * time.Hour)})
			require.NoError(t, err)
			assert.Zero(t, got, "%s on %s", v, ts.Format(time.DateOnly))
		}
	}
}

func TestDailyFeeCalendarExemptions(t *testing.T) {
	calc := newCalendarCalculator()
	cases := []struct {
		name   string
		at     time.Time
		reason exemption.Reason
	}{
		{"july weekday", time.Date(2025, time.July, 8, 7, 0, 0, 0, time.UTC), exemption.ReasonTollFreeMonth},
		{"saturday", time.Date(2025, time.March, 8, 7, 0, 0, 0, time.UTC), exemption.ReasonWeekend},
		{"national day", time.Date(2025, time.June, 6, 7, 0, 0, 0, time.UTC), exemption.ReasonHoliday},
		{"day before national day", time.Date(2025, time.June, 5, 7, 0, 0, 0, time.UTC), exemption.ReasonDayBeforeHoliday},
		{"new year's eve", time.Date(2024, time.December, 31, 7, 0, 0, 0, time.UTC), exemption.ReasonHoliday},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := calc.Assess(model.VehicleCar, []time.Time{c.at})
			require.NoError(t, err)
			assert.Equal(t, 0, a.Total)
			assert.Equal(t, c.reason, a.Exemption)
		})
	}
}

func TestDailyFeePermutationInvariant(t *testing.T) {
	calc := newCalendarCalculator()
	base := []time.Time{
		pass(6, 0), pass(6, 20), pass(7, 5), pass(8, 10), pass(9, 45),
		pass(12, 0), pass(15, 29), pass(16, 10), pass(17, 45), pass(18, 15),
	}
	want, err := calc.DailyFee(model.VehicleCar, base)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]time.Time(nil), base...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := calc.DailyFee(model.VehicleCar, shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDailyFeeDoesNotMutateInput(t *testing.T) {
	calc := newCalendarCalculator()
	in := []time.Time{pass(15, 0), pass(6, 0)}
	_, err := calc.DailyFee(model.VehicleCar, in)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{pass(15, 0), pass(6, 0)}, in)
}

func TestLowerFeeNeverRaisesWindow(t *testing.T) {
	calc := newCalendarCalculator()
	before, err := calc.DailyFee(model.VehicleCar, []time.Time{pass(7, 0)})
	require.NoError(t, err)
	after, err := calc.DailyFee(model.VehicleCar, []time.Time{pass(7, 0), pass(6, 45)})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDailyFeeBounds(t *testing.T) {
	calc := newCalendarCalculator()
	for step := 1; step <= 120; step += 7 {
		var passes []time.Time
		for m := 0; m < 24*60; m += step {
			passes = append(passes, pass(m/60, m%60))
		}
		got, err := calc.DailyFee(model.VehicleCar, passes)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, DailyMaximumFee)
	}
}

func TestAssessBreakdown(t *testing.T) {
	rec := &captureRecorder{}
	calc := NewCalculator(exemption.NewPolicy(holiday.Calendar{}),
		WithRecorder(rec),
		WithIDGenerator(func() string { return "a-1" }),
	)
	a, err := calc.Assess(model.VehicleCar, []time.Time{
		pass(15, 30), pass(8, 0), pass(8, 40), pass(15, 0), pass(8, 15), pass(15, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, "a-1", a.ID)
	assert.Equal(t, time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC), a.Date)
	require.Len(t, a.Windows, 2)
	assert.Equal(t, Window{Start: pass(8, 0), End: pass(8, 40), Passes: []time.Time{pass(8, 0), pass(8, 15), pass(8, 40)}, Fee: 13}, a.Windows[0])
	assert.Equal(t, 18, a.Windows[1].Fee)
	assert.Equal(t, 31, a.Uncapped)
	assert.Equal(t, 31, a.Total)
	assert.False(t, a.Capped())

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, "a-1", ev.ID)
	assert.Equal(t, 6, ev.Passes)
	assert.Equal(t, 2, ev.Windows)
	assert.Equal(t, 31, ev.Total)
}

func TestAssessCapped(t *testing.T) {
	calc := newCalendarCalculator()
	a, err := calc.Assess(model.VehicleCar, []time.Time{
		pass(6, 0), pass(7, 0), pass(8, 0), pass(9, 30), pass(11, 30),
		pass(12, 30), pass(15, 30), pass(16, 30), pass(17, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, 78, a.Uncapped)
	assert.Equal(t, DailyMaximumFee, a.Total)
	assert.True(t, a.Capped())
	assert.Len(t, a.Windows, 6)
}

func TestPartition(t *testing.T) {
	assert.Empty(t, Partition(nil))
	ws := Partition([]time.Time{pass(6, 0)})
	require.Len(t, ws, 1)
	assert.Equal(t, pass(6, 0), ws[0].Start)
	assert.Equal(t, pass(6, 0), ws[0].End)
	assert.Equal(t, 8, ws[0].Fee)
}

func TestAssessTruncatesToMinute(t *testing.T) {
	calc := newCalendarCalculator()
	in := []time.Time{
		time.Date(2025, time.March, 7, 6, 29, 59, 0, time.UTC),
		time.Date(2025, time.March, 7, 7, 29, 59, 999, time.UTC),
	}
	a, err := calc.Assess(model.VehicleCar, in)
	require.NoError(t, err)
	require.Len(t, a.Windows, 1)
	assert.Equal(t, pass(6, 29), a.Windows[0].Start)
	assert.Equal(t, pass(7, 29), a.Windows[0].End)
	assert.Equal(t, 18, a.Total)
	assert.Equal(t, 59, in[0].Second())
}
