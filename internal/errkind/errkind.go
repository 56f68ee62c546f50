// Package errkind defines the error categories shared across procwatch.
// Callers wrap these with fmt.Errorf("%w: ...") and test with errors.Is.
package errkind

import "errors"

var (
	// ErrInvalidArgument is returned for out-of-range or empty inputs,
	// before any I/O happens.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCollector is returned when a spawned child exposes no output stream.
	ErrCollector = errors.New("collector error")

	// ErrEnvironment is returned when a configured shell cannot be found.
	ErrEnvironment = errors.New("environment error")

	// ErrPresentation is returned when the output is not a usable terminal.
	ErrPresentation = errors.New("presentation error")
)
