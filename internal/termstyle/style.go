package termstyle

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Raw control sequences used when drawing frames. These are always emitted,
// independent of the enabled flag, since the frame is only ever written to
// a terminal.
var (
	// ClearLineRight erases from the cursor to the end of the line.
	ClearLineRight = termenv.CSI + termenv.EraseLineRightSeq

	// Reset clears all colors and styles.
	Reset = termenv.CSI + termenv.ResetSeq + "m"

	// FgBrightBlack switches the foreground to bright black (gray).
	FgBrightBlack = termenv.CSI + termenv.ANSIBrightBlack.Sequence(false) + "m"

	// FgBrightRed switches the foreground to bright red.
	FgBrightRed = termenv.CSI + termenv.ANSIBrightRed.Sequence(false) + "m"

	// FgDefault restores the default foreground color only.
	FgDefault = termenv.CSI + "39m"
)

// CursorPos moves the cursor to the 1-based column x and row y.
func CursorPos(x, y int) string {
	return termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, y, x)
}

// enabled tracks whether ANSI styling is active for diagnostic text.
// Defaults to true if stderr is a TTY.
var enabled = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

// SetEnabled overrides the auto-detected TTY check.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether styling is currently active.
func Enabled() bool {
	return enabled
}

func wrap(code, s string) string {
	if !enabled || s == "" {
		return s
	}
	return code + s + Reset
}

// Bold renders text in bold.
func Bold(s string) string { return wrap("\033[1m", s) }

// Dim renders text in dim/faint.
func Dim(s string) string { return wrap("\033[2m", s) }

// Red renders text in red.
func Red(s string) string { return wrap("\033[31m", s) }

// Yellow renders text in yellow.
func Yellow(s string) string { return wrap("\033[33m", s) }
