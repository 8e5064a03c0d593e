// Package cli wires the diffsieve pipeline behind a cobra command.
//
// The root command reads a unified diff on stdin, resolves the
// repository root and effective configuration, and streams the
// filtered diff to stdout or through a downstream command. Exit codes
// are part of the external contract: 0 success, 1 configuration
// error, 2 I/O error, 3 repository resolution failure. A non-zero
// downstream exit status becomes the process exit status.
package cli
