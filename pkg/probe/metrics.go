/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package probe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verscan_probe_duration_seconds",
			Help:    "Time taken to probe a host end to end",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verscan_probe_total",
			Help: "Total number of probes by outcome",
		},
		[]string{"outcome"}, // installed, not_installed, ambiguous, unknown
	)

	probeSourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "verscan_probe_source_duration_seconds",
			Help:    "Time taken by individual version sources",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15},
		},
		[]string{"source"},
	)

	probeSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verscan_probe_source_failures_total",
			Help: "Version source reads downgraded to Unknown",
		},
		[]string{"source"},
	)

	probeUnknownSources = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "verscan_probe_unknown_sources",
			Help: "Number of Unknown sources in the last probe",
		},
	)
)
