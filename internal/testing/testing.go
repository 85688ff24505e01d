// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/services"
)

// MockCatalog is a configurable test double for [services.Catalog].
// Safe for concurrent use; the scan engine may fetch artists in parallel.
type MockCatalog struct {
	mu          sync.Mutex
	AuthErr     error
	Artists     []models.ArtistRef
	ArtistsErr  error
	Metadata    map[string]*models.Artist
	MetadataErr error
	AuthCalls   int
	ListCalls   int
	MetadataIDs []string
}

func (m *MockCatalog) Authenticate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthCalls++
	return m.AuthErr
}

func (m *MockCatalog) PlaylistArtists(ctx context.Context, playlistID string) ([]models.ArtistRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ArtistsErr != nil {
		return nil, m.ArtistsErr
	}
	return m.Artists, nil
}

func (m *MockCatalog) Artist(ctx context.Context, artistID string) (*models.Artist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MetadataIDs = append(m.MetadataIDs, artistID)
	if m.MetadataErr != nil {
		return nil, m.MetadataErr
	}
	if a, ok := m.Metadata[artistID]; ok {
		return a, nil
	}
	return &models.Artist{ID: artistID, Genres: []string{}}, nil
}

func (m *MockCatalog) Name() string { return "mock-catalog" }

// MockEventFinder is a configurable test double for [services.EventFinder].
// Safe for concurrent use.
type MockEventFinder struct {
	mu          sync.Mutex
	Events      map[string][]models.Event // keyed by keyword
	Err         error
	ErrFor      map[string]error // per-keyword failures, checked before Err
	SearchCalls []services.EventQuery
}

func (m *MockEventFinder) Search(ctx context.Context, query services.EventQuery) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls = append(m.SearchCalls, query)
	if err, ok := m.ErrFor[query.Keyword]; ok {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events[query.Keyword], nil
}

func (m *MockEventFinder) Name() string { return "mock-events" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)
