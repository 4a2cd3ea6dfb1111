/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package clitool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/fleetops/verscan/pkg/version"
)

// DefaultTimeout bounds a single CLI invocation. The product CLI is expected
// to answer well within this.
const DefaultTimeout = 15 * time.Second

// Runner invokes a command-line tool and captures its combined output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands on the local host.
type ExecRunner struct {
	// Timeout bounds each invocation. Defaults to DefaultTimeout when zero.
	Timeout time.Duration
}

// Output runs the named command and returns its combined stdout and stderr.
// Some product CLIs write the version banner to stderr.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", name, err)
	}
	return string(out), nil
}

// Schema maps line positions in the tool's version output to source names.
// The product CLI reports versions as colon-delimited lines in a fixed order,
// one sub-component per line.
type Schema []string

// Parse extracts named version values from raw CLI output according to the
// schema. Line i feeds the i-th schema name; the value is the trimmed text
// after the first colon. Short or malformed output never fails: positions
// without a usable value map to the Unknown sentinel.
func (s Schema) Parse(raw string) map[string]string {
	result := make(map[string]string, len(s))
	for _, name := range s {
		result[name] = version.Unknown
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i, name := range s {
		if i >= len(lines) {
			break
		}
		kv := strings.SplitN(lines[i], ":", 2)
		if len(kv) != 2 {
			continue
		}
		if v := strings.TrimSpace(kv[1]); v != "" {
			result[name] = v
		}
	}
	return result
}
