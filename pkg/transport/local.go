/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"

	"github.com/fleetops/verscan/pkg/probe"
	"github.com/fleetops/verscan/pkg/record"
)

// LocalExecutor runs the probe in-process. Used for the local host and for
// single-host audits without a transport hop.
type LocalExecutor struct {
	// Probe is the probe to run. If nil, a default probe is used.
	Probe *probe.Probe
}

// Execute runs the probe locally. The probe never fails, so neither does
// this executor.
func (e *LocalExecutor) Execute(ctx context.Context, host, minimum string) (*record.Record, error) {
	p := e.Probe
	if p == nil {
		p = &probe.Probe{}
	}
	return p.Run(ctx, host, minimum), nil
}

// LocalProber reports every host reachable. Pairs with LocalExecutor.
type LocalProber struct{}

// IsReachable always returns true.
func (LocalProber) IsReachable(context.Context, string) bool {
	return true
}
