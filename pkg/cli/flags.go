/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/fleetops/verscan/pkg/serializer"
)

// Flags shared between the audit and probe commands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination. Supports: file paths and OCI references
	(oci://registry/repository:tag). Defaults to stdout.`,
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: string(serializer.FormatJSON),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
	}

	minimumFlag = &cli.StringFlag{
		Name:     "minimum",
		Aliases:  []string{"m"},
		Required: true,
		Usage:    "Minimum required product version (e.g. 2.9.7653.47581)",
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Sources: cli.EnvVars("KUBECONFIG"),
		Usage:   "Path to the kubeconfig file (default: automatic discovery)",
	}
)
