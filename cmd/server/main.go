package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/dmitrijs2005/tixgo/internal/server"
	"github.com/dmitrijs2005/tixgo/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
