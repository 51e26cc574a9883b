package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyenvanduocit/tradutor/cmd"
)

// set through -ldflags "-X main.version=..." by the release build
var (
	version = "v0.0.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run owns the process signals: the first interrupt cancels the command context,
// which stops the page server or aborts a pending one-shot translation.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Root.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	if err := cmd.Root.ExecuteContext(ctx); err != nil {
		slog.Error("tradutor failed", "error", err)
		return 1
	}
	return 0
}
