// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

type followers struct {
	Total int `json:"total"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Genres     []string  `json:"genres"`
	Popularity int       `json:"popularity"`
	Followers  followers `json:"followers"`
	URI        string    `json:"uri"`
}

// SpotifyTrack represents the slice of a track the resolver reads.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string       `json:"added_at"`
	Track   SpotifyTrack `json:"track"`
}

// SpotifyPlaylistTracks represents one page of a playlist's tracks.
type SpotifyPlaylistTracks struct {
	Items []SpotifyPlaylistTrack `json:"items"`
	Total int                    `json:"total"`
}

// ParsePlaylistID extracts the playlist identifier from a share URL.
//
// Splits on the literal "playlist/" path segment and drops any query string.
// A URL without the marker is not a playlist URL and fails with
// [shared.ErrInvalidPlaylistURL].
func ParsePlaylistID(rawURL string) (string, error) {
	parts := strings.SplitN(rawURL, "playlist/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: no playlist/ segment in %q", shared.ErrInvalidPlaylistURL, rawURL)
	}

	id := parts[1]
	if i := strings.IndexByte(id, '?'); i >= 0 {
		id = id[:i]
	}
	return id, nil
}

// SpotifyService implements [Catalog] for the Spotify Web API.
// Uses the OAuth2 client-credentials grant; no end-user is involved.
type SpotifyService struct {
	conf       *clientcredentials.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given client credentials.
func NewSpotifyService(clientID, clientSecret string) (*SpotifyService, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: spotify client_id", shared.ErrMissingCredentials)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_secret", shared.ErrMissingCredentials)
	}

	return &SpotifyService{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		},
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate exchanges the client credentials for a bearer token.
//
// The token endpoint receives grant_type=client_credentials with the id:secret
// pair base64-encoded into a Basic authorization header. A response without a
// usable access_token fails with [shared.ErrAuthFailed].
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.conf.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: token response missing access_token", shared.ErrAuthFailed)
	}

	s.token = token
	return nil
}

// doRequest performs an authenticated GET against the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// PlaylistTracks retrieves the first page of a playlist's tracks.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) (*SpotifyPlaylistTracks, error) {
	var page SpotifyPlaylistTracks
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PlaylistArtists resolves a playlist to its primary artists.
//
// Only the first listed artist of each track counts, and the result is
// deduplicated by artist name in first-seen order. Two tracks whose lead
// artists share a display name but not an id still collapse to one entry.
func (s *SpotifyService) PlaylistArtists(ctx context.Context, playlistID string) ([]models.ArtistRef, error) {
	page, err := s.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	artists := []models.ArtistRef{}

	for _, item := range page.Items {
		if len(item.Track.Artists) == 0 {
			continue
		}

		primary := item.Track.Artists[0]
		if _, ok := seen[primary.Name]; ok {
			continue
		}
		seen[primary.Name] = struct{}{}
		artists = append(artists, models.ArtistRef{Name: primary.Name, ID: primary.ID})
	}

	return artists, nil
}

// Artist retrieves catalog metadata for one artist.
// Fields the API omits decode to their zero values, which are the documented
// defaults: popularity 0, followers 0, genres empty.
func (s *SpotifyService) Artist(ctx context.Context, artistID string) (*models.Artist, error) {
	var sa SpotifyArtist
	endpoint := fmt.Sprintf("/artists/%s", artistID)
	if err := s.doRequest(ctx, endpoint, &sa); err != nil {
		return nil, err
	}

	genres := sa.Genres
	if genres == nil {
		genres = []string{}
	}

	return &models.Artist{
		ID:         sa.ID,
		Name:       sa.Name,
		Popularity: sa.Popularity,
		Followers:  sa.Followers.Total,
		Genres:     genres,
	}, nil
}
