package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"convo/internal/server"
	"convo/internal/server/config"
)

func main() {
	ctx := context.Background()

	// missing .env is fine, env vars may come from the environment itself
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
