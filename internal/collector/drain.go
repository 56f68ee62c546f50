package collector

import (
	"bufio"
	"io"
)

// ChunkSize is the read size used to drain output past the line budget.
const ChunkSize = 8192

// drain reads r to the end. The first maxLines lines are kept; the rest of
// the stream is read in ChunkSize pieces and only counted, so the child
// never blocks on a full pipe. A chunk shorter than ChunkSize means the
// stream is exhausted. Read errors end the stream like EOF does.
func drain(r io.Reader, maxLines int) *Output {
	out := NewOutput()
	br := bufio.NewReaderSize(r, ChunkSize)

	for len(out.Lines) < maxLines {
		line, err := br.ReadString('\n')
		if line != "" {
			out.AddLine(line)
		}
		if err != nil {
			return out
		}
	}

	buf := make([]byte, ChunkSize)
	for {
		n, err := io.ReadFull(br, buf)
		out.TotalReadBytes += int64(n)
		if n < ChunkSize || err != nil {
			return out
		}
	}
}
