package watch

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ellipsis marks a status line whose left part was cut.
const ellipsis = "…"

// statusLeft describes the command being watched.
func statusLeft(command string, interval time.Duration, exitStatus int) string {
	return fmt.Sprintf("Every %.1fs: %s (exit status: %d)", interval.Seconds(), command, exitStatus)
}

// statusRight holds the optional debug counters and the time of day.
func statusRight(debug string, now time.Time) string {
	return debug + now.Format(" 15:04:05")
}

// debugCounters formats terminal size, byte accounting and phase timings.
func debugCounters(width, height int, totalRead, used int64, t Timings) string {
	return fmt.Sprintf("<<w=%d,h=%d B:%d->%d %.3fs+%.3fs>>",
		width, height, totalRead, used, t.Execution.Seconds(), t.Processing.Seconds())
}

// StatusLine joins left and right into exactly width columns. When both do
// not fit, left is cut and ends in an ellipsis. If right alone is too wide
// its start is dropped, keeping the clock visible.
func StatusLine(left, right string, width int) string {
	l, r := utf8.RuneCountInString(left), utf8.RuneCountInString(right)
	if l+r <= width {
		return left + strings.Repeat(" ", width-l-r) + right
	}
	if r > width-1 {
		right = lastRunes(right, width-1)
		r = width - 1
	}
	return firstRunes(left, width-r-1) + ellipsis + right
}

func firstRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

func lastRunes(s string, n int) string {
	skip := utf8.RuneCountInString(s) - n
	if skip <= 0 {
		return s
	}
	for i := range s {
		if skip == 0 {
			return s[i:]
		}
		skip--
	}
	return ""
}
