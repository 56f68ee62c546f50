// Package ansi measures and truncates lines that carry ANSI escape
// sequences.
//
// Two classes of CSI sequence are recognized. Cursor and erase commands
// (ESC[2K, ESC[3A, ...) are stripped before any width accounting and never
// reproduced. Color and style commands (ESC[1;31m) are kept verbatim but
// take no width. Anything else passes through as ordinary text.
package ansi

import (
	"regexp"
	"unicode/utf8"
)

var (
	nonColorSeq   = regexp.MustCompile(`\x1b\[\d*[ABCDEFGJKST]`)
	colorSeq      = regexp.MustCompile(`\x1b\[\d+(;\d+){0,2}m`)
	incompleteSeq = regexp.MustCompile(`\x1b[\[\d;]*$`)
)

// StripNonColor removes cursor movement and erase sequences from line.
func StripNonColor(line string) string {
	return nonColorSeq.ReplaceAllString(line, "")
}

// StripColor removes color and style sequences from line.
func StripColor(line string) string {
	return colorSeq.ReplaceAllString(line, "")
}

// VisibleLength returns the rune count of line with color and style
// sequences removed. Wide and combining characters count as one.
func VisibleLength(line string) int {
	return utf8.RuneCountInString(StripColor(line))
}

// StripIncompleteTrailing removes an unterminated escape sequence from the
// end of line, as left behind when a line is cut inside one.
func StripIncompleteTrailing(line string) string {
	return incompleteSeq.ReplaceAllString(line, "")
}
