package collector

// NoExitStatus is the exit status of an Output whose process has not
// terminated yet.
const NoExitStatus = -1

// Output is what one collection captured from a child process.
//
// TotalReadBytes counts every byte read from the child, including the
// bytes drained and discarded once the line budget was used up.
// UsedBytes counts only the bytes kept in Lines, so it never exceeds
// TotalReadBytes.
type Output struct {
	Lines          []string
	ExitStatus     int
	TotalReadBytes int64
	UsedBytes      int64
}

// NewOutput returns an empty Output with an unknown exit status.
func NewOutput() *Output {
	return &Output{ExitStatus: NoExitStatus}
}

// AddLine appends a captured line and accounts for its bytes.
func (o *Output) AddLine(line string) {
	o.Lines = append(o.Lines, line)
	n := int64(len(line))
	o.TotalReadBytes += n
	o.UsedBytes += n
}

// setExitStatus records the exit status once; later calls are ignored.
func (o *Output) setExitStatus(status int) {
	if o.ExitStatus == NoExitStatus {
		o.ExitStatus = status
	}
}
