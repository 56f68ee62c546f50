// Package terminal is the boundary to the real terminal procwatch draws on.
package terminal

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"procwatch/internal/errkind"
)

// TTY writes frames to a terminal file and reports its size.
type TTY struct {
	f   *os.File
	out *bufio.Writer
}

// Open wraps f, which must be a terminal.
func Open(f *os.File) (*TTY, error) {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil, fmt.Errorf("%w: %s is not a tty", errkind.ErrPresentation, f.Name())
	}
	return &TTY{f: f, out: newWriter(f)}, nil
}

func newWriter(f *os.File) *bufio.Writer {
	return bufio.NewWriterSize(f, 64*1024)
}

// Size returns the terminal's columns and rows.
func (t *TTY) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: get terminal size: %v", errkind.ErrPresentation, err)
	}
	return width, height, nil
}

// Write buffers p until the next Flush.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Flush writes buffered output to the terminal.
func (t *TTY) Flush() error {
	return t.out.Flush()
}

// Setup prepares the host terminal to interpret ANSI sequences and returns
// the matching teardown. It is a no-op outside Windows consoles.
func Setup(f *os.File) (restore func() error, err error) {
	return termenv.EnableVirtualTerminalProcessing(termenv.NewOutput(f))
}
