package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/kirillkom/ca-suite-backend/internal/adapters/cli"
	"github.com/kirillkom/ca-suite-backend/internal/config"
	"github.com/kirillkom/ca-suite-backend/internal/observability/logging"
)

func main() {
	fs := afero.NewOsFs()
	if err := config.LoadDotEnv(fs, ".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "casuite-cli", os.Getenv("LOG_LEVEL")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Env{FS: fs, Out: os.Stdout})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
