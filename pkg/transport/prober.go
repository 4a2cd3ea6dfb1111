/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"
)

// DefaultProbeTimeout bounds the reachability dial.
const DefaultProbeTimeout = 3 * time.Second

// TCPProber answers reachability by dialing the executor port. A thin
// pre-check only: a host that accepts the dial can still fail dispatch.
type TCPProber struct {
	// Port to dial. Defaults to DefaultSSHPort when zero.
	Port int

	// Timeout per dial. Defaults to DefaultProbeTimeout when zero.
	Timeout time.Duration
}

// IsReachable dials the host's executor port and reports whether the
// connection was accepted.
func (p *TCPProber) IsReachable(ctx context.Context, host string) bool {
	port := p.Port
	if port == 0 {
		port = DefaultSSHPort
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultProbeTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		slog.Debug("reachability check failed",
			slog.String("host", host),
			slog.String("error", err.Error()),
		)
		return false
	}
	if err := conn.Close(); err != nil {
		slog.Debug("closing reachability probe", slog.String("error", err.Error()))
	}
	return true
}
