package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apitoll "github.com/kilianp07/tollfee/api/toll"
	"github.com/kilianp07/tollfee/config"
	"github.com/kilianp07/tollfee/core/exemption"
	"github.com/kilianp07/tollfee/core/holiday"
	coremetrics "github.com/kilianp07/tollfee/core/metrics"
	"github.com/kilianp07/tollfee/core/toll"
	"github.com/kilianp07/tollfee/infra/logger"
	"github.com/kilianp07/tollfee/infra/metrics"
)

// Calendar is the holiday source used by the service.
type Calendar interface {
	holiday.Provider
	apitoll.HolidayLister
}

// Service exposes the fee calculator over HTTP.
type Service struct {
	Calendar   Calendar
	Policy     *exemption.Policy
	Calculator *toll.Calculator
	handler    http.Handler
	log        logger.Logger
	cfg        *config.Config
}

// NewCalendar returns the holiday calendar selected by the configuration.
func NewCalendar(cfg config.TollConfig) Calendar {
	if cfg.Cached() {
		return holiday.NewCachedCalendar()
	}
	return holiday.Calendar{}
}

// NewCalculator wires calendar, policy and recorder into a Calculator.
func NewCalculator(cfg *config.Config, log logger.Logger) (*toll.Calculator, *exemption.Policy, Calendar, error) {
	cal := NewCalendar(cfg.Toll)
	policy := exemption.NewPolicy(cal, exemption.WithTollFreeMonth(cfg.Toll.Month()))

	sinks := cfg.Metrics.Sinks
	rec, err := coremetrics.NewFeeRecorder(sinks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fee recorder: %w", err)
	}
	if cfg.Metrics.PrometheusEnabled && !hasSink(cfg, "prometheus") {
		prom, err := metrics.NewPromRecorder()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("prom recorder: %w", err)
		}
		rec = coremetrics.NewMultiRecorder(rec, prom)
	}
	calc := toll.NewCalculator(policy,
		toll.WithLogger(log),
		toll.WithRecorder(rec),
		toll.WithIDGenerator(uuid.NewString),
	)
	return calc, policy, cal, nil
}

func hasSink(cfg *config.Config, typ string) bool {
	for _, s := range cfg.Metrics.Sinks {
		if strings.EqualFold(strings.TrimSpace(s.Type), typ) {
			return true
		}
	}
	return false
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")
	calc, policy, cal, err := NewCalculator(cfg, logger.New("calculator"))
	if err != nil {
		return nil, err
	}
	svc := &Service{Calendar: cal, Policy: policy, Calculator: calc, log: logg, cfg: cfg}
	svc.handler = svc.routes()
	return svc, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Service) Handler() http.Handler { return s.handler }

func (s *Service) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/toll/fee", apitoll.NewFeeHandler(s.Calculator, s.cfg.HTTP.Token))
	mux.Handle("/api/toll/exemption", apitoll.NewExemptionHandler(s.Policy))
	mux.Handle("/api/toll/holidays", apitoll.NewHolidaysHandler(s.Calendar))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.HTTP.Address)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the API on ln until the context is cancelled.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Infof("listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	timeout := time.Duration(s.cfg.HTTP.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Infof("server stopped")
	return nil
}
