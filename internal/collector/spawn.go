package collector

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
)

// shellPath runs argv when a Spawner is asked for shell wrapping.
const shellPath = "/bin/sh"

// PipeSpawner starts processes with stdout and stderr joined on one pipe.
type PipeSpawner struct{}

// Spawn implements Spawner.
func (PipeSpawner) Spawn(ctx context.Context, argv []string, useShell bool) (Process, error) {
	cmd := command(ctx, argv, useShell)
	cmd.SysProcAttr = newSysProcAttr()

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}
	// Only the child holds the write end now, so the reader sees EOF when
	// the child (and anything it forked) is gone.
	pw.Close()

	return &execProcess{cmd: cmd, out: pr}, nil
}

// command builds the exec.Cmd for argv. Context cancellation kills the
// whole process group, not only the direct child.
func command(ctx context.Context, argv []string, useShell bool) *exec.Cmd {
	name, args := argv[0], argv[1:]
	if useShell {
		name, args = shellPath, append([]string{"-c"}, argv...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error {
		return killGroup(cmd)
	}
	return cmd
}

// execProcess is a Process backed by os/exec.
type execProcess struct {
	cmd  *exec.Cmd
	out  *os.File
	once sync.Once
}

func (p *execProcess) Output() io.Reader {
	return p.out
}

func (p *execProcess) Wait() (int, error) {
	return exitStatus(p.cmd.Wait())
}

func (p *execProcess) Kill() {
	p.once.Do(func() {
		killGroup(p.cmd)
		p.out.Close()
	})
}

// killGroup sends SIGKILL to the process group led by cmd's process.
// The group is gone already when the command has exited and left no
// children behind; that is not an error.
func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}

// exitStatus converts the result of exec.Cmd.Wait into an exit status.
// A process killed by a signal reports 128+signal, like a shell does.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return NoExitStatus, err
}
