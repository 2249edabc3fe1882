package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/tollfee/core/factory"
	coremetrics "github.com/kilianp07/tollfee/core/metrics"
	"github.com/kilianp07/tollfee/infra/logger"
)

// init registers built-in fee recorders.
func init() {
	_ = coremetrics.RegisterFeeRecorder("nop", func(map[string]any) (coremetrics.FeeRecorder, error) {
		return coremetrics.NopRecorder{}, nil
	})

	_ = coremetrics.RegisterFeeRecorder("prometheus", func(map[string]any) (coremetrics.FeeRecorder, error) {
		return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterFeeRecorder("log", func(conf map[string]any) (coremetrics.FeeRecorder, error) {
		var c struct {
			Component string `json:"component"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Component == "" {
			c.Component = "fees"
		}
		return NewLogRecorder(logger.New(c.Component)), nil
	})
}
