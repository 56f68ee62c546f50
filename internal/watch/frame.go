package watch

import (
	"bytes"
	"strings"

	"procwatch/internal/ansi"
	"procwatch/internal/termstyle"
)

// PaddingRow fills body rows the command did not produce.
var PaddingRow = termstyle.FgBrightBlack + "~" + termstyle.Reset + termstyle.ClearLineRight + "\n"

// Body renders captured lines into exactly height-1 rows. The last row is
// one column narrower so writing it never scrolls the terminal.
func Body(lines []string, width, height int) ([]string, error) {
	n := height - 1
	rows := make([]string, 0, n)
	for i, line := range lines {
		if i == n {
			break
		}
		w := width
		if i == n-1 {
			w = width - 1
		}
		row, err := ansi.Trim(line, w)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	for len(rows) < n {
		rows = append(rows, PaddingRow)
	}
	return rows, nil
}

// Frame assembles one full redraw: cursor home, the status row colored by
// exit status, the body, and the cursor parked at the bottom-right corner.
// The status row fills the full width, so the body starts on row two
// without an explicit newline.
func Frame(status string, exitStatus int, body []string, width, height int) []byte {
	var buf bytes.Buffer
	buf.WriteString(termstyle.CursorPos(1, 1))
	if exitStatus == 0 {
		buf.WriteString(termstyle.FgBrightBlack)
	} else {
		buf.WriteString(termstyle.FgBrightRed)
	}
	buf.WriteString(status)
	buf.WriteString(termstyle.FgDefault)
	buf.WriteString(strings.TrimSuffix(strings.Join(body, ""), "\n"))
	buf.WriteString(termstyle.CursorPos(width, height))
	return buf.Bytes()
}
