/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package pkgstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fleetops/verscan/pkg/fileparse"
)

// Entry is one installed-package record from the host's installer registry.
type Entry struct {
	// DisplayName is the human-readable product name the entry was
	// registered under.
	DisplayName string

	// Version is the version string recorded at install time.
	Version string

	// InstallSize is the installed footprint in kilobytes. Zero when the
	// registry did not record a size.
	InstallSize int64
}

// Store queries the host's installer registry for package entries.
type Store interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// DefaultDir is where package entry files live on hosts provisioned by the
// standard installer.
const DefaultDir = "/var/lib/installer/registry"

// FileStore reads package entries from a directory of per-package key-value
// files, one file per installed package.
type FileStore struct {
	// Dir is the registry directory. Defaults to DefaultDir when empty.
	Dir string

	parser *fileparse.Parser
}

// NewFileStore creates a FileStore over the given directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		Dir: dir,
		parser: fileparse.NewParser(
			fileparse.WithFoldKeys(true),
			fileparse.WithVTrimChars(`"`),
		),
	}
}

// Entries reads every entry file in the registry directory. Files that cannot
// be parsed are logged and skipped; only a missing or unreadable directory is
// an error.
func (s *FileStore) Entries(ctx context.Context) ([]Entry, error) {
	dir := s.Dir
	if dir == "" {
		dir = DefaultDir
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry directory %q: %w", dir, err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.IsDir() {
			continue
		}

		path := filepath.Join(dir, f.Name())
		m, err := s.parser.GetMap(path)
		if err != nil {
			slog.Warn("skipping unparseable registry entry",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			continue
		}

		e := Entry{
			DisplayName: m["displayname"],
			Version:     m["displayversion"],
		}
		if raw, ok := m["estimatedsize"]; ok {
			size, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				slog.Debug("registry entry with non-numeric size",
					slog.String("path", path),
					slog.String("size", raw),
				)
			} else {
				e.InstallSize = size
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Match returns the entries whose display name contains the product name,
// case-insensitive, preserving registry order.
func Match(entries []Entry, product string) []Entry {
	product = strings.ToLower(product)
	var matches []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.DisplayName), product) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Primary selects the primary package among matching entries: the one with
// the largest installed size, first encountered winning ties. The primary is
// the main product install; smaller matches are auxiliary sub-packages.
func Primary(matches []Entry) (Entry, bool) {
	if len(matches) == 0 {
		return Entry{}, false
	}
	primary := matches[0]
	for _, e := range matches[1:] {
		if e.InstallSize > primary.InstallSize {
			primary = e
		}
	}
	return primary, true
}
