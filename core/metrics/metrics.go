package metrics

import (
	"time"

	"github.com/kilianp07/tollfee/core/model"
)

// FeeEvent describes one daily fee assessment.
type FeeEvent struct {
	ID        string
	Vehicle   model.Vehicle
	Date      time.Time
	Passes    int
	Windows   int
	Uncapped  int
	Total     int
	Capped    bool
	Exemption string
	Time      time.Time
}

// FeeRecorder records fee assessments for observability purposes.
type FeeRecorder interface {
	RecordAssessment(ev FeeEvent) error
}

// RejectionRecorder is implemented by recorders able to count rejected input.
type RejectionRecorder interface {
	RecordRejection(reason string) error
}

// NopRecorder implements FeeRecorder with no-op methods.
type NopRecorder struct{}

func (NopRecorder) RecordAssessment(FeeEvent) error { return nil }
func (NopRecorder) RecordRejection(string) error    { return nil }
