/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package fleet

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fleetops/verscan/pkg/errors"
	"github.com/fleetops/verscan/pkg/record"
	"github.com/fleetops/verscan/pkg/transport"
	"github.com/fleetops/verscan/pkg/version"

	"golang.org/x/sync/errgroup"
)

// Outcome classifies how a host's collection ended.
type Outcome string

const (
	// OutcomeCollected means the probe ran and returned a record.
	OutcomeCollected Outcome = "collected"

	// OutcomeUnreachable means the host failed the reachability pre-check.
	OutcomeUnreachable Outcome = "unreachable"

	// OutcomeTransportError means dispatch failed after the pre-check.
	OutcomeTransportError Outcome = "transport_error"
)

// ProgressEvent is emitted after each host completes. Completed counts hosts
// finished so far, independent of dispatch order.
type ProgressEvent struct {
	Host      string
	Outcome   Outcome
	Completed int
	Total     int
}

// Percent returns batch completion as a 0-100 value.
func (e ProgressEvent) Percent() float64 {
	if e.Total == 0 {
		return 100
	}
	return float64(e.Completed) / float64(e.Total) * 100
}

// Collector fans the probe out across a fleet of hosts. One record per host,
// in input order; one host's fault never stops the batch.
type Collector struct {
	executor transport.Executor
	prober   transport.Prober

	version              string
	concurrency          int
	perHostTimeout       time.Duration
	limiter              waiter
	progress             func(ProgressEvent)
	skipOnTransportError bool
}

// New creates a Collector dispatching through the given executor and
// reachability prober.
func New(executor transport.Executor, prober transport.Prober, opts ...Option) *Collector {
	c := &Collector{
		executor:       executor,
		prober:         prober,
		concurrency:    1,
		perHostTimeout: DefaultPerHostTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectAll probes every host and returns one record per host in input
// order. Unreachable hosts get a placeholder record, and by default so do
// hosts whose dispatch fails mid-call; with WithSkipOnTransportError those
// are omitted instead. The only hard errors are a malformed minimum version
// and batch cancellation, in which case the records collected so far are
// returned alongside the error.
func (c *Collector) CollectAll(ctx context.Context, hosts []string, minimum string) ([]*record.Record, error) {
	if err := version.ValidateMinimum(minimum); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid minimum version", err)
	}

	start := time.Now()
	defer func() {
		batchDuration.Observe(time.Since(start).Seconds())
	}()

	slog.Info("starting fleet collection",
		slog.Int("hosts", len(hosts)),
		slog.String("minimum", minimum),
		slog.Int("concurrency", c.concurrency),
	)

	// per-index slots keep input order under any concurrency
	slots := make([]*record.Record, len(hosts))

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, host := range hosts {
		// cooperative cancellation checkpoint before each dispatch
		if err := ctx.Err(); err != nil {
			break
		}

		g.Go(func() error {
			if c.limiter != nil {
				if err := c.limiter.Wait(gctx); err != nil {
					return nil
				}
			}

			rec, outcome := c.collectHost(gctx, host, minimum)
			mu.Lock()
			slots[i] = rec
			completed++
			ev := ProgressEvent{Host: host, Outcome: outcome, Completed: completed, Total: len(hosts)}
			if c.progress != nil {
				c.progress(ev)
			}
			mu.Unlock()

			hostsTotal.WithLabelValues(string(outcome)).Inc()
			slog.Debug("host complete",
				slog.String("host", host),
				slog.String("outcome", string(outcome)),
				slog.Int("completed", ev.Completed),
				slog.Int("total", ev.Total),
			)
			return nil
		})
	}

	// workers never return errors, faults are contained per host
	_ = g.Wait()

	records := make([]*record.Record, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			records = append(records, r)
		}
	}

	s := Summarize(records)
	slog.Info("fleet collection complete",
		slog.Int("total", s.Total),
		slog.Int("passed", s.Passed),
		slog.Int("not_installed", s.NotInstalled),
		slog.Int("unknown", s.Unknown),
	)

	if err := ctx.Err(); err != nil {
		return records, errors.Wrap(errors.ErrCodeTimeout, "fleet collection canceled", err)
	}
	return records, nil
}

// collectHost produces the record and outcome for one host. A nil record
// means the host is skipped (transport error with skip behavior enabled).
func (c *Collector) collectHost(ctx context.Context, host, minimum string) (*record.Record, Outcome) {
	if !c.prober.IsReachable(ctx, host) {
		slog.Warn("host unreachable, synthesizing placeholder",
			slog.String("host", host),
		)
		return c.placeholder(host, minimum), OutcomeUnreachable
	}

	hctx := ctx
	if c.perHostTimeout > 0 {
		var cancel context.CancelFunc
		hctx, cancel = context.WithTimeout(ctx, c.perHostTimeout)
		defer cancel()
	}

	rec, err := c.executor.Execute(hctx, host, minimum)
	if err != nil {
		slog.Warn("host dispatch failed",
			slog.String("host", host),
			slog.String("code", string(errors.CodeOf(err))),
			slog.String("error", err.Error()),
		)
		if c.skipOnTransportError {
			return nil, OutcomeTransportError
		}
		return c.placeholder(host, minimum), OutcomeTransportError
	}

	if rec.Host == "" {
		rec.Host = host
	}
	return rec, OutcomeCollected
}

// placeholder synthesizes the record for a host that could not be probed:
// install state Unknown, every source Unknown, validation failed.
func (c *Collector) placeholder(host, minimum string) *record.Record {
	r := record.New(host, minimum)
	if c.version != "" {
		r.Metadata["version"] = c.version
	}
	r.Finalize()
	return r
}
