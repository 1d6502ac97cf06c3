package main

import (
	"context"
	"log"

	"github.com/campushub/identity/internal/server"
	"github.com/campushub/identity/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	ctx := context.Background()

	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
