/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package probe

import (
	"context"
	"fmt"

	"github.com/fleetops/verscan/pkg/fileparse"
)

// DefaultProductInfoPath is where the product records its own version on
// hosts provisioned by the standard installer.
const DefaultProductInfoPath = "/etc/acme-sync/product-info"

// ProductRegistry reads the version the product registered for itself,
// independent of the installer's package entry.
type ProductRegistry interface {
	Version(ctx context.Context) (string, error)
}

// FileProductRegistry reads the product version from a key-value info file.
type FileProductRegistry struct {
	// Path of the product info file. Defaults to DefaultProductInfoPath
	// when empty.
	Path string
}

// Version returns the "version" value from the product info file.
func (r *FileProductRegistry) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := r.Path
	if path == "" {
		path = DefaultProductInfoPath
	}

	p := fileparse.NewParser(
		fileparse.WithFoldKeys(true),
		fileparse.WithVTrimChars(`"`),
	)
	m, err := p.GetMap(path)
	if err != nil {
		return "", err
	}

	v, ok := m["version"]
	if !ok || v == "" {
		return "", fmt.Errorf("no version key in product info file %q", path)
	}
	return v, nil
}
