package metrics

// MultiRecorder fans out events to multiple recorders.
type MultiRecorder struct {
	Recorders []FeeRecorder
}

// NewMultiRecorder creates a MultiRecorder with the provided recorders.
func NewMultiRecorder(recs ...FeeRecorder) *MultiRecorder {
	return &MultiRecorder{Recorders: recs}
}

// RecordAssessment forwards the event to all recorders, returning the first error encountered.
func (m *MultiRecorder) RecordAssessment(ev FeeEvent) error {
	for _, r := range m.Recorders {
		if err := r.RecordAssessment(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRejection forwards to recorders implementing RejectionRecorder.
func (m *MultiRecorder) RecordRejection(reason string) error {
	for _, r := range m.Recorders {
		if rec, ok := r.(RejectionRecorder); ok {
			if err := rec.RecordRejection(reason); err != nil {
				return err
			}
		}
	}
	return nil
}
