package activitylog

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Logger writes structured JSONL entries to an activity log file.
// All methods are safe for concurrent use. When disabled (w is nil),
// all methods are no-ops.
type Logger struct {
	mu    sync.Mutex
	w     *os.File
	actor string
	runID string
}

// New creates a Logger that appends to logPath. If enabled is false or the
// file cannot be opened, returns a no-op logger (safe to call methods on).
func New(enabled bool, logPath, actor, runID string) *Logger {
	if !enabled {
		return &Logger{}
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &Logger{}
	}
	return &Logger{w: f, actor: actor, runID: runID}
}

// Nop returns a disabled logger. All methods are no-ops.
func Nop() *Logger {
	return &Logger{}
}

// Enabled reports whether entries are written anywhere.
func (l *Logger) Enabled() bool {
	return l.w != nil
}

// entry is the common envelope for all log lines.
type entry struct {
	Timestamp string `json:"ts"`
	Actor     string `json:"actor"`
	RunID     string `json:"run_id"`
	Event     string `json:"event"`
}

// WatchStart logs the start of a watch run.
func (l *Logger) WatchStart(command string, argv []string, interval time.Duration, precise bool) {
	l.log(struct {
		entry
		Command    string   `json:"command"`
		Argv       []string `json:"argv"`
		IntervalMS int64    `json:"interval_ms"`
		Precise    bool     `json:"precise,omitempty"`
	}{
		entry:      l.entry("watch_start"),
		Command:    command,
		Argv:       argv,
		IntervalMS: interval.Milliseconds(),
		Precise:    precise,
	})
}

// Cycle describes one completed refresh.
type Cycle struct {
	Width          int
	Height         int
	ExitStatus     int
	Lines          int
	TotalReadBytes int64
	UsedBytes      int64
	Execution      time.Duration
	Processing     time.Duration
	Write          time.Duration
	Sleep          time.Duration
}

// CycleDone logs a completed refresh cycle.
func (l *Logger) CycleDone(c Cycle) {
	l.log(struct {
		entry
		Width          int   `json:"width"`
		Height         int   `json:"height"`
		ExitStatus     int   `json:"exit_status"`
		Lines          int   `json:"lines"`
		TotalReadBytes int64 `json:"total_read_bytes"`
		UsedBytes      int64 `json:"used_bytes"`
		ExecutionMS    int64 `json:"execution_ms"`
		ProcessingMS   int64 `json:"processing_ms"`
		WriteMS        int64 `json:"write_ms"`
		SleepMS        int64 `json:"sleep_ms"`
	}{
		entry:          l.entry("cycle"),
		Width:          c.Width,
		Height:         c.Height,
		ExitStatus:     c.ExitStatus,
		Lines:          c.Lines,
		TotalReadBytes: c.TotalReadBytes,
		UsedBytes:      c.UsedBytes,
		ExecutionMS:    c.Execution.Milliseconds(),
		ProcessingMS:   c.Processing.Milliseconds(),
		WriteMS:        c.Write.Milliseconds(),
		SleepMS:        c.Sleep.Milliseconds(),
	})
}

// WatchStop logs the end of a watch run. reason is "interrupt" or the
// error that ended the run.
func (l *Logger) WatchStop(cycles int, reason string) {
	l.log(struct {
		entry
		Cycles int    `json:"cycles"`
		Reason string `json:"reason"`
	}{
		entry:  l.entry("watch_stop"),
		Cycles: cycles,
		Reason: reason,
	})
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}

func (l *Logger) entry(event string) entry {
	return entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:     l.actor,
		RunID:     l.runID,
		Event:     event,
	}
}

func (l *Logger) log(v any) {
	if l.w == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')
	l.mu.Lock()
	l.w.Write(data)
	l.mu.Unlock()
}
