package metrics

import (
	"time"

	coremetrics "github.com/kilianp07/tollfee/core/metrics"
	"github.com/kilianp07/tollfee/infra/logger"
)

// LogRecorder writes every assessment as a structured log line.
type LogRecorder struct {
	log logger.Logger
}

// NewLogRecorder returns a LogRecorder writing to l.
func NewLogRecorder(l logger.Logger) *LogRecorder {
	if l == nil {
		l = logger.NopLogger{}
	}
	return &LogRecorder{log: l}
}

func (r *LogRecorder) RecordAssessment(ev coremetrics.FeeEvent) error {
	r.log.Debugw("fee assessed", map[string]any{
		"id":        ev.ID,
		"vehicle":   ev.Vehicle.String(),
		"date":      ev.Date.Format(time.DateOnly),
		"passes":    ev.Passes,
		"windows":   ev.Windows,
		"uncapped":  ev.Uncapped,
		"total":     ev.Total,
		"exemption": ev.Exemption,
	})
	return nil
}

func (r *LogRecorder) RecordRejection(reason string) error {
	r.log.Warnf("assessment rejected: %s", reason)
	return nil
}
