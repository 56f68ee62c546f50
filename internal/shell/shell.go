// Package shell turns the watched command string into an argument vector.
package shell

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"

	"procwatch/internal/errkind"
)

// Invocation is a resolved command ready to hand to a collector.
type Invocation struct {
	Argv     []string
	UseShell bool
}

// Options controls how a command is resolved.
type Options struct {
	// Direct skips the shell and tokenizes the command shell-style.
	Direct bool

	// Shell overrides $SHELL. Either a path or a name looked up on PATH.
	Shell string
}

// LookPath resolves a shell name on PATH. Exposed as a variable so tests
// can override it.
var LookPath = exec.LookPath

// Resolve builds the Invocation for command. Unless opts.Direct is set,
// the configured shell (opts.Shell, then $SHELL) runs the command as
// `shell -c command`. Without a configured shell, the command is split
// into words and executed directly.
func Resolve(command string, opts Options) (Invocation, error) {
	if command == "" {
		return Invocation{}, fmt.Errorf("%w: invalid command: %q", errkind.ErrInvalidArgument, command)
	}

	name := opts.Shell
	if name == "" {
		name = os.Getenv("SHELL")
	}
	if opts.Direct || name == "" {
		argv, err := shlex.Split(command)
		if err != nil {
			return Invocation{}, fmt.Errorf("%w: split command %q: %v", errkind.ErrInvalidArgument, command, err)
		}
		if len(argv) == 0 {
			return Invocation{}, fmt.Errorf("%w: invalid command: %q", errkind.ErrInvalidArgument, command)
		}
		return Invocation{Argv: argv}, nil
	}

	path, err := find(name)
	if err != nil {
		return Invocation{}, err
	}
	return Invocation{Argv: []string{path, "-c", command}}, nil
}

// find returns name if it is an existing file, otherwise its PATH lookup.
func find(name string) (string, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	path, err := LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: failed to determine shell, tried %s", errkind.ErrEnvironment, name)
	}
	return path, nil
}
