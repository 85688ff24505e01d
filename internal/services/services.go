// package services defines interfaces for the music catalog and event discovery APIs
//
// Spotify (catalog), Ticketmaster (events)
package services

import (
	"context"
	"time"

	"github.com/hcollier/showscout/internal/models"
)

// Catalog defines the music catalog operations the scan pipeline depends on.
type Catalog interface {
	// Authenticate performs the client-credentials exchange and stores the
	// bearer token. Must be called before any other method; a failure here is
	// fatal for the whole scan.
	Authenticate(ctx context.Context) error

	// PlaylistArtists resolves a playlist to its deduplicated primary artists
	// in first-seen order. An empty playlist yields an empty slice, not an error.
	PlaylistArtists(ctx context.Context, playlistID string) ([]models.ArtistRef, error)

	// Artist retrieves popularity, follower count and genres for one artist.
	Artist(ctx context.Context, artistID string) (*models.Artist, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// EventFinder defines the event discovery operations the scan pipeline depends on.
type EventFinder interface {
	// Search returns upcoming events matching the query, at most
	// [EventQuery.PageSize] of them. No matches yields an empty slice.
	Search(ctx context.Context, query EventQuery) ([]models.Event, error)

	// Name returns the name of the service (e.g., "Ticketmaster")
	Name() string
}

// EventQuery describes one keyword search against the events API.
type EventQuery struct {
	Keyword   string    // artist name, passed through as-is
	City      string    // optional; ignored when blank after trimming
	StartDate time.Time // inclusive, day precision
	EndDate   time.Time // inclusive, day precision
	PageSize  int       // events per artist; defaults to DefaultPageSize
}

// DefaultPageSize is the fixed first-page size used when a query does not set one.
const DefaultPageSize = 5
