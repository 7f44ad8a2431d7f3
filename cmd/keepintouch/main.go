package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tartampluch/go-keepintouch/internal/cli"
	"github.com/tartampluch/go-keepintouch/internal/config"
)

// main delegates to runMain so deferred cleanups run before the process
// terminates; os.Exit does not run defers.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	// Root context cancels on SIGINT (Ctrl+C) or SIGTERM, which is what
	// stops a running `serve` gracefully.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
