package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mito-shogi/wars-kif-service/internal/config"
	"github.com/mito-shogi/wars-kif-service/internal/logging"
	"github.com/mito-shogi/wars-kif-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run(context.Background(), os.Stderr))
}

// run loads configuration and blocks serving until ctx ends or a signal arrives.
// It returns the process exit code.
func run(parent context.Context, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, "failed to load .env:", err)
		return 1
	}
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
		Output:  stderr,
	})
	if err := cfg.Validate(); err != nil {
		logging.Error(logger, "invalid configuration", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx, cfg, logger)
	srv.Run(ctx, stop)
	return 0
}
