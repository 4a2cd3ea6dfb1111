// Package transport provides the injected remote-execution and reachability
// capabilities the fleet collector depends on.
//
// Executor runs the probe on a target host and returns the decoded record:
// SSHExecutor invokes the verscan binary over SSH, LocalExecutor runs the
// probe in-process for the local host. Prober is the thin reachability
// pre-check, TCPProber dials the executor port.
//
// All transport faults carry structured error codes (TRANSPORT, TIMEOUT,
// UNREACHABLE) so the fleet collector can classify them without string
// matching.
package transport
