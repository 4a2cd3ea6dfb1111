/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package fleet

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPerHostTimeout bounds one host's dispatch, reachability check
// included. A hung remote execution is treated like any transport error.
const DefaultPerHostTimeout = 3 * time.Minute

// waiter is the slice of rate.Limiter the collector uses.
type waiter interface {
	Wait(ctx context.Context) error
}

// Option configures a Collector.
type Option func(*Collector)

// WithConcurrency sets how many hosts are probed at once. The default of 1
// processes hosts sequentially in input order.
func WithConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithPerHostTimeout bounds each host's dispatch. Zero disables the bound.
func WithPerHostTimeout(d time.Duration) Option {
	return func(c *Collector) {
		c.perHostTimeout = d
	}
}

// WithRateLimit caps dispatches per second across all workers.
func WithRateLimit(perSecond float64) Option {
	return func(c *Collector) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithProgress registers a callback invoked after each host completes.
// Callbacks are serialized, the callback does not need to be safe for
// concurrent use.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(c *Collector) {
		c.progress = fn
	}
}

// WithSkipOnTransportError omits hosts whose dispatch fails mid-call instead
// of synthesizing a placeholder record. With this option the result can be
// shorter than the input host list.
func WithSkipOnTransportError() Option {
	return func(c *Collector) {
		c.skipOnTransportError = true
	}
}

// WithVersion stamps the tool version into synthesized placeholder records.
func WithVersion(v string) Option {
	return func(c *Collector) {
		c.version = v
	}
}
