// Command server runs the gliphic reference server.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gliphic/internal/server"
	"github.com/dmitrijs2005/gliphic/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("gliphic server: %v", err)
	}
	app.Run(ctx)
}
