// Package watch runs a command over and over and redraws its output in
// place on a terminal.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"procwatch/internal/activitylog"
	"procwatch/internal/collector"
	"procwatch/internal/errkind"
	"procwatch/internal/shell"
)

// Smallest terminal a frame can be drawn on.
const (
	MinWidth  = 48
	MinHeight = 4
)

// MaxInterval bounds the time between two runs.
const MaxInterval = 24 * time.Hour

// Terminal is where frames are drawn.
type Terminal interface {
	io.Writer
	Size() (width, height int, err error)
	Flush() error
}

// Collector runs the command once and captures its output.
type Collector interface {
	Collect(ctx context.Context, argv []string, useShell bool, maxLines int) (*collector.Output, error)
}

// Options configures a Watcher.
type Options struct {
	// Command is shown in the status line as typed.
	Command string
	// Invocation is what actually gets executed.
	Invocation shell.Invocation
	Interval   time.Duration
	Precise    bool
	Debug      bool
}

// Watcher drives the refresh loop.
type Watcher struct {
	opts      Options
	term      Terminal
	collector Collector
	log       *activitylog.Logger

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	cycles int
}

// New validates opts and returns a Watcher drawing on term.
func New(opts Options, term Terminal, c Collector, log *activitylog.Logger) (*Watcher, error) {
	if opts.Command == "" {
		return nil, fmt.Errorf("%w: invalid command: %q", errkind.ErrInvalidArgument, opts.Command)
	}
	if opts.Interval < 0 || opts.Interval >= MaxInterval {
		return nil, fmt.Errorf("%w: invalid interval value: %g", errkind.ErrInvalidArgument, opts.Interval.Seconds())
	}
	if len(opts.Invocation.Argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", errkind.ErrInvalidArgument)
	}
	if log == nil {
		log = activitylog.Nop()
	}
	return &Watcher{
		opts:      opts,
		term:      term,
		collector: c,
		log:       log,
		now:       time.Now,
		sleep:     sleepContext,
	}, nil
}

// Run redraws until ctx is cancelled, which is a normal stop and returns
// nil. Any other failure ends the loop and is returned.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.WatchStart(w.opts.Command, w.opts.Invocation.Argv, w.opts.Interval, w.opts.Precise)
	for {
		if ctx.Err() != nil {
			return w.stop(nil)
		}
		d, err := w.cycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return w.stop(nil)
			}
			return w.stop(err)
		}
		w.cycles++
		if err := w.sleep(ctx, d); err != nil {
			return w.stop(nil)
		}
	}
}

func (w *Watcher) stop(err error) error {
	reason := "interrupt"
	if err != nil {
		reason = err.Error()
	}
	w.log.WatchStop(w.cycles, reason)
	return err
}

// cycle draws one frame and returns how long to sleep afterwards.
func (w *Watcher) cycle(ctx context.Context) (time.Duration, error) {
	width, height, err := w.term.Size()
	if err != nil {
		return 0, err
	}
	if width < MinWidth || height < MinHeight {
		return 0, fmt.Errorf("%w: terminal window too small: (%dx%d), need at least (%dx%d)",
			errkind.ErrPresentation, width, height, MinWidth, MinHeight)
	}

	var t Timings
	start := w.now()
	out, err := w.collector.Collect(ctx, w.opts.Invocation.Argv, w.opts.Invocation.UseShell, height-1)
	if err != nil {
		return 0, err
	}
	t.Execution = w.now().Sub(start)

	start = w.now()
	body, err := Body(out.Lines, width, height)
	if err != nil {
		return 0, err
	}
	end := w.now()
	t.Processing = end.Sub(start)

	var debug string
	if w.opts.Debug {
		debug = debugCounters(width, height, out.TotalReadBytes, out.UsedBytes, t)
	}
	status := StatusLine(statusLeft(w.opts.Command, w.opts.Interval, out.ExitStatus), statusRight(debug, end), width)

	start = w.now()
	if _, err := w.term.Write(Frame(status, out.ExitStatus, body, width, height)); err != nil {
		return 0, fmt.Errorf("write frame: %w", err)
	}
	if err := w.term.Flush(); err != nil {
		return 0, fmt.Errorf("write frame: %w", err)
	}
	t.Write = w.now().Sub(start)

	d := sleepFor(w.opts.Interval, w.opts.Precise, t)
	w.log.CycleDone(activitylog.Cycle{
		Width:          width,
		Height:         height,
		ExitStatus:     out.ExitStatus,
		Lines:          len(out.Lines),
		TotalReadBytes: out.TotalReadBytes,
		UsedBytes:      out.UsedBytes,
		Execution:      t.Execution,
		Processing:     t.Processing,
		Write:          t.Write,
		Sleep:          d,
	})
	return d, nil
}
