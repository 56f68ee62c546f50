package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"procwatch/internal/activitylog"
	"procwatch/internal/collector"
	"procwatch/internal/config"
	"procwatch/internal/shell"
	"procwatch/internal/terminal"
	"procwatch/internal/watch"
)

const defaultInterval = 1.0

// UsageError is a mistake on the command line: a bad flag or a missing
// command.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps the result of executing the root command to a process exit
// status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// settings is everything a watch run needs once flags and the config file
// have been merged.
type settings struct {
	Command  string
	Interval float64
	Precise  bool
	Debug    bool
	Direct   bool
	PTY      bool
	Shell    string
	LogFile  string
}

// runWatch starts the watch loop. Tests replace it.
var runWatch = watchCommand

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags settings
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "procwatch [flags] command [args...]",
		Short: "Run a command periodically and show its output full-screen",
		Long: `procwatch runs a command over and over and redraws its output in place,
trimmed to the terminal size, with a status line showing the exit status.

The command can be given as one quoted string or as a list of words; use --
to separate procwatch flags from the command's own flags.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Err: errors.New("no command given")}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			s := merge(cmd.Flags(), flags, cfg)
			s.Command = joinCommand(args)
			return runWatch(cmd.Context(), s)
		},
	}

	f := rootCmd.Flags()
	f.Float64VarP(&flags.Interval, "interval", "n", defaultInterval, "seconds to wait between command runs, positive floats and zero are accepted")
	f.BoolVarP(&flags.Precise, "precise", "p", false, "try to run the command precisely at intervals")
	f.BoolVarP(&flags.Debug, "debug", "v", false, "show debug information")
	f.BoolVarP(&flags.Direct, "exec", "x", false, "run the command directly instead of through the shell")
	f.BoolVar(&flags.PTY, "pty", false, "run the command in a pseudo-terminal")
	f.StringVar(&configPath, "config", "", "config file (default $PROCWATCH_CONFIG or <user config dir>/procwatch/config.yaml)")
	f.StringVar(&flags.LogFile, "log-file", "", "append a JSONL activity record per refresh to this file")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// merge overlays explicitly set flags on top of config file values; flags
// left at their defaults give way to the file.
func merge(fs *pflag.FlagSet, flags settings, cfg *config.Config) settings {
	s := flags
	if !fs.Changed("interval") && cfg.Interval != nil {
		s.Interval = *cfg.Interval
	}
	if !fs.Changed("precise") {
		s.Precise = cfg.Precise
	}
	if !fs.Changed("debug") {
		s.Debug = cfg.Debug
	}
	if !fs.Changed("pty") {
		s.PTY = cfg.PTY
	}
	if !fs.Changed("log-file") {
		s.LogFile = cfg.LogFile
	}
	s.Shell = cfg.Shell
	return s
}

// watchCommand draws s.Command on stdout until ctx is cancelled.
func watchCommand(ctx context.Context, s settings) error {
	interval, err := intervalDuration(s.Interval)
	if err != nil {
		return err
	}
	inv, err := shell.Resolve(s.Command, shell.Options{Direct: s.Direct, Shell: s.Shell})
	if err != nil {
		return err
	}

	tty, err := terminal.Open(os.Stdout)
	if err != nil {
		return err
	}
	restore, err := terminal.Setup(os.Stdout)
	if err != nil {
		return fmt.Errorf("set up terminal: %w", err)
	}
	defer restore()

	var spawner collector.Spawner = collector.PipeSpawner{}
	if s.PTY {
		// The child gets the body area, the status line stays ours.
		spawner = collector.PTYSpawner{Size: func() (int, int, error) {
			w, h, err := tty.Size()
			return w, h - 1, err
		}}
	}

	log := activitylog.New(s.LogFile != "", s.LogFile, resolveActor(), uuid.New().String())
	defer log.Close()

	w, err := watch.New(watch.Options{
		Command:    s.Command,
		Invocation: inv,
		Interval:   interval,
		Precise:    s.Precise,
		Debug:      s.Debug,
	}, tty, collector.New(spawner), log)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
