/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"

	"github.com/fleetops/verscan/pkg/record"
)

// Executor dispatches a probe to a host and returns its record. Transport
// faults (dial, auth, timeout, decode) surface as structured errors with
// code TRANSPORT or TIMEOUT; the caller contains them at the host boundary.
type Executor interface {
	Execute(ctx context.Context, host, minimum string) (*record.Record, error)
}

// Prober answers the network-level reachability pre-check for a host.
type Prober interface {
	IsReachable(ctx context.Context, host string) bool
}
