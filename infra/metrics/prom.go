package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/tollfee/core/metrics"
	"github.com/kilianp07/tollfee/infra/logger"
)

// PromRecorder records fee assessments in Prometheus metrics.
type PromRecorder struct {
	assessments *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	capped      prometheus.Counter
	fees        prometheus.Histogram
	windows     prometheus.Histogram
}

// NewPromRecorder registers fee metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// that are already registered are reused.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assessments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "toll_assessments_total",
		Help: "Total number of daily fee assessments",
	}, []string{"vehicle", "exemption"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "toll_rejections_total",
		Help: "Total number of assessments rejected for invalid input",
	}, []string{"reason"})
	capped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "toll_capped_total",
		Help: "Number of assessments reduced to the daily maximum",
	})
	fees := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "toll_daily_fee",
		Help:    "Daily fee charged per assessment",
		Buckets: []float64{0, 8, 13, 18, 26, 36, 48, 60},
	})
	windows := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "toll_windows_per_day",
		Help:    "Number of charge windows per assessment",
		Buckets: prometheus.LinearBuckets(0, 1, 10),
	})

	var err error
	if assessments, err = register(reg, assessments); err != nil {
		return nil, err
	}
	if rejections, err = register(reg, rejections); err != nil {
		return nil, err
	}
	if capped, err = register(reg, capped); err != nil {
		return nil, err
	}
	if fees, err = register(reg, fees); err != nil {
		return nil, err
	}
	if windows, err = register(reg, windows); err != nil {
		return nil, err
	}
	return &PromRecorder{
		assessments: assessments,
		rejections:  rejections,
		capped:      capped,
		fees:        fees,
		windows:     windows,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordAssessment updates the counters and histograms for one assessment.
func (p *PromRecorder) RecordAssessment(ev coremetrics.FeeEvent) error {
	exemption := ev.Exemption
	if exemption == "" {
		exemption = "none"
	}
	p.assessments.WithLabelValues(ev.Vehicle.String(), exemption).Inc()
	p.fees.Observe(float64(ev.Total))
	p.windows.Observe(float64(ev.Windows))
	if ev.Capped {
		p.capped.Inc()
	}
	return nil
}

// RecordRejection counts rejected input by reason.
func (p *PromRecorder) RecordRejection(reason string) error {
	p.rejections.WithLabelValues(reason).Inc()
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the given address.
// The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.New("metrics").Errorf("prom server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
