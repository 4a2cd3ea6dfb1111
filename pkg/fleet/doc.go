// Package fleet orchestrates probing a set of hosts and aggregates the
// results into a report.
//
// CollectAll dispatches the probe per host through an injected
// transport.Executor, after a thin reachability pre-check. Hosts that cannot
// be probed get a placeholder record with every source Unknown, so the
// result has one entry per input host in input order; the
// WithSkipOnTransportError option restores the historical behavior of
// omitting hosts whose dispatch fails mid-call.
//
// Dispatch is sequential by default and can be widened with
// WithConcurrency; input order is preserved either way. Per-host faults are
// contained at the host boundary: only a malformed minimum version or batch
// cancellation make CollectAll return an error.
//
//	c := fleet.New(executor, prober,
//	    fleet.WithConcurrency(8),
//	    fleet.WithProgress(func(ev fleet.ProgressEvent) {
//	        fmt.Printf("%.0f%%\n", ev.Percent())
//	    }),
//	)
//	records, err := c.CollectAll(ctx, hosts, "2.9.7653.47581")
package fleet
