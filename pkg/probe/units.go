/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package probe

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
)

// UnitResolver maps a service unit name to the binary it executes.
type UnitResolver interface {
	BinaryPath(ctx context.Context, unit string) (string, error)
}

// DBusUnitResolver resolves unit binaries through the systemd D-Bus API.
type DBusUnitResolver struct{}

// BinaryPath returns the first ExecStart path of the named unit.
func (DBusUnitResolver) BinaryPath(ctx context.Context, unit string) (string, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	props, err := conn.GetAllPropertiesContext(ctx, unit)
	if err != nil {
		return "", fmt.Errorf("failed to get unit properties for %s: %w", unit, err)
	}

	// ExecStart decodes as a list of exec tuples, path first
	execs, ok := props["ExecStart"].([][]interface{})
	if !ok || len(execs) == 0 || len(execs[0]) == 0 {
		return "", fmt.Errorf("unit %s has no ExecStart", unit)
	}
	path, ok := execs[0][0].(string)
	if !ok || path == "" {
		return "", fmt.Errorf("unit %s has a malformed ExecStart path", unit)
	}
	return path, nil
}
