package main

import (
	"context"

	"github.com/hcollier/showscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a config.toml scaffold from the embedded example.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlainln("✓ Wrote %s", path)
	r.writePlain("Fill in the Spotify client credentials and Ticketmaster API key,\n")
	r.writePlain("or set SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and TICKETMASTER_API_KEY.\n")

	return nil
}
