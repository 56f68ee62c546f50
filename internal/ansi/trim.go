package ansi

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"procwatch/internal/errkind"
	"procwatch/internal/termstyle"
)

// MaxWidth is the widest row Trim accepts.
const MaxWidth = 8192

// Trim renders one terminal row from a captured line, limited to maxWidth
// visible columns.
//
// A line that fits is returned with a clear-to-end-of-line sequence and a
// newline, so leftovers from a longer previous frame are erased. A line
// that does not fit is cut right after its maxWidth-th visible rune and
// followed by a style reset, without a newline. Color sequences are never
// split by the cut: they end up either whole or not at all.
func Trim(line string, maxWidth int) (string, error) {
	if maxWidth < 1 || maxWidth > MaxWidth {
		return "", fmt.Errorf("%w: invalid maximum width: %d", errkind.ErrInvalidArgument, maxWidth)
	}

	line = StripNonColor(strings.TrimRightFunc(line, unicode.IsSpace))
	if VisibleLength(line) < maxWidth {
		return line + termstyle.ClearLineRight + "\n", nil
	}

	// Byte offset of every rune boundary, so cuts never split a rune.
	bounds := make([]int, 0, len(line)+1)
	for i := range line {
		bounds = append(bounds, i)
	}
	bounds = append(bounds, len(line))
	runes := len(bounds) - 1

	cut := maxWidth
	for cut < runes && countable(line[:bounds[cut]]) < maxWidth {
		cut++
	}
	return StripIncompleteTrailing(line[:bounds[cut]]) + termstyle.Reset, nil
}

// countable is the visible length of a candidate prefix, ignoring whatever
// escape sequence the prefix may have been cut inside of.
func countable(prefix string) int {
	return utf8.RuneCountInString(StripIncompleteTrailing(StripColor(prefix)))
}
