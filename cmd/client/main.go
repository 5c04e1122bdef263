package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tixgo/internal/client/cli"
	"github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "shutdown error", "error", err)
		os.Exit(1)
	}
}
