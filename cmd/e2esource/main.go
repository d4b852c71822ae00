package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"e2esource/internal/cli"
	"e2esource/internal/logging"
)

func main() {
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		logging.L().Error("e2esource failed", "err", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
