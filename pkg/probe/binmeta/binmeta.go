/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package binmeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultMarker precedes the embedded version string in binaries built with
// the product's toolchain.
const DefaultMarker = "ProductVersion:"

const (
	// DefaultMaxScan caps how much of a binary is scanned for the marker.
	DefaultMaxScan = 32 << 20

	// scanChunk is the read granularity while scanning.
	scanChunk = 64 << 10

	// maxVersionLen bounds the version token following the marker.
	maxVersionLen = 64
)

// ErrNoVersion indicates the marker was not found within the scan window or
// was not followed by a version token.
var ErrNoVersion = errors.New("no embedded version found")

// Reader extracts the embedded version string from a binary file on disk.
type Reader interface {
	Version(ctx context.Context, path string) (string, error)
}

// FileReader scans a binary for a version marker and returns the dotted
// numeric token that follows it.
type FileReader struct {
	// Marker is the byte sequence preceding the version. Defaults to
	// DefaultMarker when empty.
	Marker string

	// MaxScan caps the number of bytes scanned. Defaults to DefaultMaxScan
	// when zero.
	MaxScan int64
}

// Version scans the file at path for the marker and returns the version
// token following it. Returns ErrNoVersion if the marker is absent within
// the scan window.
func (r *FileReader) Version(ctx context.Context, path string) (string, error) {
	marker := []byte(r.Marker)
	if len(marker) == 0 {
		marker = []byte(DefaultMarker)
	}
	maxScan := r.MaxScan
	if maxScan == 0 {
		maxScan = DefaultMaxScan
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open binary %q: %w", path, err)
	}
	defer f.Close()

	var (
		buf     []byte
		chunk   = make([]byte, scanChunk)
		scanned int64
		found   bool
	)
	for scanned < maxScan {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := f.Read(chunk)
		if n > 0 {
			scanned += int64(n)
			buf = append(buf, chunk[:n]...)

			if !found {
				if i := bytes.Index(buf, marker); i >= 0 {
					buf = append([]byte(nil), buf[i+len(marker):]...)
					found = true
				} else if tail := len(buf) - len(marker) + 1; tail > 0 {
					// keep only enough tail to catch a marker split
					// across chunk boundaries
					buf = append([]byte(nil), buf[tail:]...)
				}
			}
			if found && len(buf) >= maxVersionLen {
				break
			}
		}
		if err != nil {
			break
		}
	}

	if !found {
		return "", fmt.Errorf("%q: %w", path, ErrNoVersion)
	}
	v := leadingVersion(buf)
	if v == "" {
		return "", fmt.Errorf("%q: %w", path, ErrNoVersion)
	}
	return v, nil
}

// leadingVersion extracts the dotted numeric token at the start of b,
// after optional spaces and NUL padding.
func leadingVersion(b []byte) string {
	s := strings.TrimLeft(string(b), " \x00")
	end := 0
	for end < len(s) && end < maxVersionLen {
		c := s[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	v := strings.Trim(s[:end], ".")
	if !strings.ContainsAny(v, "0123456789") {
		return ""
	}
	return v
}
