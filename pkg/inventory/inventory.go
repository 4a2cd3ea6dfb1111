/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package inventory

import (
	"context"
	"fmt"
	"os"

	"github.com/fleetops/verscan/pkg/fileparse"
)

// Resolver enumerates the hosts to audit.
type Resolver interface {
	Resolve(ctx context.Context) ([]string, error)
}

// Static resolves to a fixed host list. With no hosts it resolves to the
// local host, so a bare audit run still audits something.
type Static []string

// Resolve returns the configured hosts, or the local hostname when empty.
func (s Static) Resolve(context.Context) ([]string, error) {
	if len(s) > 0 {
		return s, nil
	}
	name, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve local hostname: %w", err)
	}
	return []string{name}, nil
}

// FileResolver reads hosts from a file, one per line, "#" comments skipped.
type FileResolver struct {
	// Path of the host list file.
	Path string
}

// Resolve returns the hosts listed in the file, in file order.
func (f *FileResolver) Resolve(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hosts, err := fileparse.NewParser().GetLines(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read host list: %w", err)
	}
	return hosts, nil
}
