// Package collector runs a command and captures a bounded amount of its
// combined stdout and stderr.
package collector

import (
	"context"
	"fmt"
	"io"

	"procwatch/internal/errkind"
)

// MaxLines is the largest line budget Collect accepts.
const MaxLines = 8192

// Process is a started child whose combined output can be read.
type Process interface {
	// Output returns the merged stdout/stderr stream, or nil if the
	// process has none.
	Output() io.Reader

	// Wait blocks until the process exits and returns its exit status.
	Wait() (int, error)

	// Kill terminates the process if it is still running and releases the
	// output stream. It is safe to call more than once.
	Kill()
}

// Spawner starts processes. With useShell set, argv[0] is a shell script
// run by /bin/sh and argv[1:] are its positional parameters; otherwise
// argv is executed directly.
type Spawner interface {
	Spawn(ctx context.Context, argv []string, useShell bool) (Process, error)
}

// Collector captures command output for one refresh cycle at a time.
type Collector struct {
	spawner Spawner
}

// New creates a Collector that starts processes with s.
func New(s Spawner) *Collector {
	return &Collector{spawner: s}
}

// Collect runs argv to completion and returns at most maxLines lines of
// its output. The child is always killed before Collect returns. If ctx is
// cancelled first, the child is killed and ctx.Err() is returned.
func (c *Collector) Collect(ctx context.Context, argv []string, useShell bool, maxLines int) (*Output, error) {
	if maxLines < 1 || maxLines > MaxLines {
		return nil, fmt.Errorf("%w: invalid number of maximum lines: %d", errkind.ErrInvalidArgument, maxLines)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", errkind.ErrInvalidArgument)
	}

	proc, err := c.spawner.Spawn(ctx, argv, useShell)
	if err != nil {
		return nil, fmt.Errorf("start command: %w", err)
	}
	defer proc.Kill()

	stream := proc.Output()
	if stream == nil {
		return nil, fmt.Errorf("%w: failed to open child process output", errkind.ErrCollector)
	}

	// The drain goroutine owns its Output until it hands it over here.
	drained := make(chan *Output, 1)
	go func() {
		drained <- drain(stream, maxLines)
	}()

	abort := func(err error) (*Output, error) {
		proc.Kill()
		<-drained
		return nil, err
	}

	status, err := proc.Wait()
	if ctx.Err() != nil {
		return abort(ctx.Err())
	}
	if err != nil {
		return abort(fmt.Errorf("wait for command: %w", err))
	}

	select {
	case out := <-drained:
		out.setExitStatus(status)
		return out, nil
	case <-ctx.Done():
		return abort(ctx.Err())
	}
}
