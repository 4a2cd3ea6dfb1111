/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/fleetops/verscan/pkg/errors"
	"github.com/fleetops/verscan/pkg/record"

	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/crypto/ssh"
)

const (
	// DefaultSSHPort is the port probes are dispatched to.
	DefaultSSHPort = 22

	// DefaultDialTimeout bounds a single SSH dial attempt.
	DefaultDialTimeout = 10 * time.Second

	// DefaultCommandTimeout bounds the remote probe invocation.
	DefaultCommandTimeout = 2 * time.Minute

	dialRetries    = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 10 * time.Second
)

// SSHExecutor dispatches probes over SSH by running the verscan binary on
// the target host and decoding its JSON output.
type SSHExecutor struct {
	// User is the SSH login user.
	User string

	// Port is the SSH port. Defaults to DefaultSSHPort when zero.
	Port int

	// Signer authenticates the connection.
	Signer ssh.Signer

	// HostKeyCallback validates the remote host key. Defaults to accepting
	// any key when nil.
	HostKeyCallback ssh.HostKeyCallback

	// Binary is the remote verscan binary path. Defaults to "verscan" on
	// the remote PATH.
	Binary string

	// DialTimeout bounds each dial attempt. Defaults to DefaultDialTimeout.
	DialTimeout time.Duration

	// CommandTimeout bounds the remote invocation. Defaults to
	// DefaultCommandTimeout.
	CommandTimeout time.Duration
}

// NewSSHExecutor creates an executor authenticating with the given private
// key file.
func NewSSHExecutor(user, keyPath string) (*SSHExecutor, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key %q: %w", keyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %q: %w", keyPath, err)
	}
	return &SSHExecutor{User: user, Signer: signer}, nil
}

// Execute runs the probe on the host and returns its decoded record.
// Transient dial failures are retried with backoff; the remote command runs
// once under the command timeout.
func (e *SSHExecutor) Execute(ctx context.Context, host, minimum string) (*record.Record, error) {
	client, err := e.dial(ctx, host)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	timeout := e.CommandTimeout
	if timeout == 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := e.run(ctx, client, fmt.Sprintf("%s probe --minimum %s --format json", e.binary(), minimum))
	if err != nil {
		return nil, err
	}

	var r record.Record
	if err := json.Unmarshal(out, &r); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport,
			"failed to decode probe output", err,
			map[string]any{"host": host})
	}
	if r.Host == "" {
		r.Host = host
	}
	return &r, nil
}

func (e *SSHExecutor) dial(ctx context.Context, host string) (*ssh.Client, error) {
	port := e.Port
	if port == 0 {
		port = DefaultSSHPort
	}
	dialTimeout := e.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = DefaultDialTimeout
	}
	hostKey := e.HostKeyCallback
	if hostKey == nil {
		hostKey = ssh.InsecureIgnoreHostKey() //nolint:gosec // fleet default, callers supply a known-hosts callback
	}

	config := &ssh.ClientConfig{
		User:            e.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(e.Signer)},
		HostKeyCallback: hostKey,
		Timeout:         dialTimeout,
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	client, err := retry.DoWithData(func() (*ssh.Client, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conn, err := net.DialTimeout("tcp", addr, dialTimeout)
		if err != nil {
			return nil, err
		}
		c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return ssh.NewClient(c, chans, reqs), nil
	}, retry.Attempts(dialRetries), retry.Delay(initialBackoff), retry.MaxDelay(maxBackoff))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport,
			"failed to connect", err,
			map[string]any{"host": host, "addr": addr})
	}
	return client, nil
}

// run executes the command on a fresh session, honoring ctx by tearing the
// session down on cancellation. ssh sessions have no native deadline.
func (e *SSHExecutor) run(ctx context.Context, client *ssh.Client, cmd string) ([]byte, error) {
	session, err := client.NewSession()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, "failed to open session", err)
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.Output(cmd)
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		if err := session.Close(); err != nil {
			slog.Debug("session close after cancellation", slog.String("error", err.Error()))
		}
		return nil, errors.Wrap(errors.ErrCodeTimeout, "remote probe timed out", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, errors.Wrap(errors.ErrCodeTransport, "remote probe failed", res.err)
		}
		return res.out, nil
	}
}

func (e *SSHExecutor) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return "verscan"
}
