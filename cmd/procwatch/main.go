package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"procwatch/internal/cmd"
	s "procwatch/internal/termstyle"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.NewRootCmd().ExecuteContext(ctx)
	stop()

	code := cmd.ExitCode(err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", s.Red("error:"), err)
		if code == 2 {
			fmt.Fprintln(os.Stderr, s.Dim("Run 'procwatch --help' for usage."))
		}
	}
	os.Exit(code)
}
