// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for stability runs.
var (
	tracer = otel.Tracer("bellwether.stability.engine")
	meter  = otel.Meter("bellwether.stability.engine")
)

// Metrics for stability runs.
var (
	runLatency   metric.Float64Histogram
	runTotal     metric.Int64Counter
	trialsRun    metric.Int64Counter
	trialsFailed metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the meters. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runLatency, err = meter.Float64Histogram(
			"stability_run_duration_seconds",
			metric.WithDescription("Duration of stability runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runTotal, err = meter.Int64Counter(
			"stability_run_total",
			metric.WithDescription("Total number of stability runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		trialsRun, err = meter.Int64Counter(
			"stability_trials_total",
			metric.WithDescription("Total number of Monte Carlo trials executed"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		trialsFailed, err = meter.Int64Counter(
			"stability_trials_failed_total",
			metric.WithDescription("Total number of failed Monte Carlo trials"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}
