package collector

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

const (
	defaultPTYCols = 80
	defaultPTYRows = 24
)

// PTYSpawner starts processes attached to a pseudo-terminal, so commands
// that only colorize their output on a terminal still do. The terminal
// merges stdout and stderr by itself.
type PTYSpawner struct {
	// Size reports the columns and rows to give the child. When nil or
	// failing, 80x24 is used.
	Size func() (cols, rows int, err error)
}

// Spawn implements Spawner.
func (s PTYSpawner) Spawn(ctx context.Context, argv []string, useShell bool) (Process, error) {
	cols, rows := defaultPTYCols, defaultPTYRows
	if s.Size != nil {
		if c, r, err := s.Size(); err == nil && c > 0 && r > 0 {
			cols, rows = c, r
		}
	}

	// pty.StartWithSize makes the child a session leader, which also makes
	// it leader of its own process group.
	cmd := command(ctx, argv, useShell)
	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, err
	}
	return &ptyProcess{cmd: cmd, ptm: ptm}, nil
}

// ptyProcess is a Process reading from the PTY master.
type ptyProcess struct {
	cmd  *exec.Cmd
	ptm  *os.File
	once sync.Once
}

func (p *ptyProcess) Output() io.Reader {
	return p.ptm
}

func (p *ptyProcess) Wait() (int, error) {
	return exitStatus(p.cmd.Wait())
}

func (p *ptyProcess) Kill() {
	p.once.Do(func() {
		killGroup(p.cmd)
		p.ptm.Close()
	})
}
