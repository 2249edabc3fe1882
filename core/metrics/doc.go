package metrics

// Package metrics defines the FeeRecorder interface used to observe daily
// fee assessments. Recorders are built from configuration through a factory
// registry; several configured sinks are combined into a MultiRecorder.
// Concrete recorders such as the Prometheus one live in infra/metrics.
