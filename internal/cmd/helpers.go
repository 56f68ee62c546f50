package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"procwatch/internal/errkind"
	"procwatch/internal/watch"
)

// resolveActor determines who is running procwatch, for the activity log.
// Resolution priority:
//  1. PROCWATCH_ACTOR env var
//  2. $USER env var
//  3. "unknown"
func resolveActor() string {
	if actor := os.Getenv("PROCWATCH_ACTOR"); actor != "" {
		return actor
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

// joinCommand rebuilds the watched command line from positional args.
func joinCommand(args []string) string {
	return strings.Join(args, " ")
}

// intervalDuration converts the interval in seconds, rejecting values the
// watch loop would refuse and those a time.Duration cannot hold.
func intervalDuration(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || seconds < 0 || seconds >= watch.MaxInterval.Seconds() {
		return 0, fmt.Errorf("%w: invalid interval value: %g", errkind.ErrInvalidArgument, seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
