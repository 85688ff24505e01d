package main

import (
	"context"
	"errors"
	"os"

	"github.com/hcollier/showscout/internal/services"
	"github.com/hcollier/showscout/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// .env is optional; config.toml and real environment variables still apply
	_ = godotenv.Load()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.ApplyLogConfig(logger, config.Logging)

	var catalog services.Catalog
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(
			config.Credentials.Spotify.ClientID,
			config.Credentials.Spotify.ClientSecret,
		); err == nil {
			catalog = svc
		}
	}

	var events services.EventFinder
	if config.Credentials.Ticketmaster.APIKey != "" {
		if svc, err := services.NewTicketmasterService(config.Credentials.Ticketmaster.APIKey); err == nil {
			events = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Events:  events,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "showscout",
		Usage:    "Find upcoming concerts for the artists in a Spotify playlist",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrAuthFailed) {
			logger.Fatalf("Spotify authentication failed: %v", err)
		}
		logger.Fatalf("application error: %v", err)
	}
}
