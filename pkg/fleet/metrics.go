/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package fleet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verscan_fleet_batch_duration_seconds",
			Help:    "Time taken to collect a complete fleet batch",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 900, 1800},
		},
	)

	hostsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verscan_fleet_hosts_total",
			Help: "Hosts processed by outcome",
		},
		[]string{"outcome"}, // collected, unreachable, transport_error
	)
)
