// Package relay pipes filtered diff output through a downstream
// command, such as a syntax-highlighting pager filter.
//
// The relay keeps two copies progressing concurrently: the caller
// writes filtered bytes into the process's stdin while a goroutine
// drains the process's stdout into the final sink. Running both sides
// at once is what prevents the classic pipe deadlock where the child
// blocks on a full stdout buffer before it has consumed its input.
// While the relay runs, the drain goroutine is the only writer to the
// final sink.
//
// A downstream process that exits before consuming all input is
// normal (pagers quit early); the resulting broken-pipe writes are
// absorbed and remaining output is still drained.
package relay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// Relay is a running downstream process. It implements io.Writer for
// the filtered stream; Close signals end of input and reaps the
// process.
type Relay struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	drain  chan error
	broken bool
}

// Start launches the command through the shell with its stdout
// draining into sink. Stderr is inherited so downstream diagnostics
// stay visible.
func Start(command string, sink io.Writer) (*Relay, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("downstream stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("downstream stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting downstream command %q: %w", command, err)
	}

	r := &Relay{cmd: cmd, stdin: stdin, drain: make(chan error, 1)}
	go func() {
		_, err := io.Copy(sink, stdout)
		r.drain <- err
	}()
	return r, nil
}

// Write feeds filtered bytes to the downstream process. Once the
// process has gone away, writes succeed as no-ops so the filter can
// finish its pass without surfacing an error.
func (r *Relay) Write(p []byte) (int, error) {
	if r.broken {
		return len(p), nil
	}
	n, err := r.stdin.Write(p)
	if err != nil {
		if isBrokenPipe(err) {
			r.broken = true
			return len(p), nil
		}
		return n, err
	}
	return n, nil
}

// Close closes the process's stdin to signal end of input, waits for
// the output drain to finish, and reaps the process. The returned
// code is the downstream exit status; err is non-nil only for relay
// failures, not for a non-zero downstream exit.
func (r *Relay) Close() (code int, err error) {
	if cerr := r.stdin.Close(); cerr != nil && !isBrokenPipe(cerr) {
		err = fmt.Errorf("closing downstream input: %w", cerr)
	}

	if derr := <-r.drain; derr != nil && err == nil {
		err = fmt.Errorf("copying downstream output: %w", derr)
	}

	werr := r.cmd.Wait()
	if werr != nil {
		var exitErr *exec.ExitError
		if errors.As(werr, &exitErr) {
			return exitErr.ExitCode(), err
		}
		if err == nil {
			err = fmt.Errorf("waiting for downstream command: %w", werr)
		}
		return 0, err
	}
	return 0, err
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}
