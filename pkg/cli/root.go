/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/fleetops/verscan/pkg/logging"
)

const (
	name           = "verscan"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command holding the audit and probe subcommands.
func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "Fleet software-version compliance auditor",
		Description: fmt.Sprintf(`verscan - fleet software-version compliance auditor

Version: %s
Commit:  %s
Built:   %s

Audits whether hosts run at least a required version of the managed product,
reconciling evidence from the installer registry, the product registry, the
product CLI, service binaries, and driver files.

audit - run the audit across a fleet of hosts and aggregate a report.
probe - collect the version record for the local host (the remote agent
        entrypoint used by the audit command over SSH).`, version, commit, date),
		Flags: []cli.Flag{
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			auditCmd(),
			probeCmd(),
		},
	}
}

// Run executes the CLI with a signal-aware context. SIGINT and SIGTERM cancel
// in-flight collection; partial results are still reported. This is called by
// main.main().
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
