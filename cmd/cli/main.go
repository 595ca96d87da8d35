package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/gliphic/internal/client/cli"
	"github.com/dmitrijs2005/gliphic/internal/client/config"
	"github.com/dmitrijs2005/gliphic/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, closeLog, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeLog()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "shutdown", "error", err)
	}

}
