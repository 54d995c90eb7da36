package cluster

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter.
var (
	tracer = otel.Tracer("dsm.cluster")
	meter  = otel.Meter("dsm.cluster")
)

// Metrics for clustering runs.
var (
	runDuration metric.Float64Histogram
	runTotal    metric.Int64Counter
	passTotal   metric.Int64Counter
	moveTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runDuration, err = meter.Float64Histogram(
			"dsm_cluster_run_duration_seconds",
			metric.WithDescription("Duration of clustering runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runTotal, err = meter.Int64Counter(
			"dsm_cluster_runs_total",
			metric.WithDescription("Total number of clustering runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		passTotal, err = meter.Int64Counter(
			"dsm_cluster_passes_total",
			metric.WithDescription("Total number of bid passes"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		moveTotal, err = meter.Int64Counter(
			"dsm_cluster_moves_total",
			metric.WithDescription("Total number of accepted item moves"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

// recordRunMetrics records one finished run.
func recordRunMetrics(ctx context.Context, d time.Duration, res *Result) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("cancelled", res.Cancelled))

	runDuration.Record(ctx, d.Seconds(), attrs)
	runTotal.Add(ctx, 1, attrs)
	passTotal.Add(ctx, int64(res.Passes))
	moveTotal.Add(ctx, int64(res.Moves))
}
