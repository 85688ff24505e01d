package main

import (
	"context"
	"fmt"

	"github.com/hcollier/showscout/internal/services"
	"github.com/hcollier/showscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// SpotifyArtists resolves a playlist URL to its deduplicated primary artists.
//
// Debug surface for the resolver: shows exactly which (name, id) pairs a scan
// would iterate, in first-seen order.
func (r *Runner) SpotifyArtists(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify credentials not configured", shared.ErrServiceUnavailable)
	}

	playlistID, err := services.ParsePlaylistID(cmd.String("url"))
	if err != nil {
		return err
	}

	if err := r.catalog.Authenticate(ctx); err != nil {
		return err
	}

	artists, err := r.catalog.PlaylistArtists(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to resolve playlist %s: %w", playlistID, err)
	}

	if len(artists) == 0 {
		r.writePlainln("Playlist %s has no tracks.", playlistID)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d distinct artists:\n\n", len(artists))
	for i, a := range artists {
		r.writePlain("%d. %s (%s)\n", i+1, a.Name, a.ID)
	}

	return nil
}
