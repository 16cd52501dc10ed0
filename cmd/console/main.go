package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gesan-dev/backoffice-cli/internal/buildinfo"
	"github.com/gesan-dev/backoffice-cli/internal/client/cli"
	"github.com/gesan-dev/backoffice-cli/internal/client/config"
	"github.com/gesan-dev/backoffice-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
