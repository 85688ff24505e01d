// package tasks implements the playlist concert scan pipeline.
//
// The core abstraction is ScanEngine, which resolves a playlist to artists,
// searches upcoming events per artist, joins catalog metadata, and shapes the
// derived views. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/services"
	"github.com/hcollier/showscout/internal/shared"
)

// Outcome is the terminal state of a scan that did not fail.
type Outcome int

const (
	// OutcomeOK means at least one artist had events and the aggregation is populated.
	OutcomeOK Outcome = iota
	// OutcomeEmptyPlaylist means the playlist resolved to zero tracks; no event or artist calls were made.
	OutcomeEmptyPlaylist
	// OutcomeNoMatches means no artist produced any events after the full scan.
	OutcomeNoMatches
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmptyPlaylist:
		return "empty_playlist"
	case OutcomeNoMatches:
		return "no_matches"
	default:
		return ""
	}
}

// ScanRequest describes one scan run.
type ScanRequest struct {
	PlaylistURL string    // share URL containing a playlist/<id> segment
	City        string    // optional city filter, blank means none
	StartDate   time.Time // window start, day precision
	EndDate     time.Time // window end, day precision
	PageSize    int       // events per artist; 0 uses the service default
	Workers     int       // parallel per-artist fetches; <=1 means sequential
}

// ScanResult contains the outcome and derived views of one scan run.
type ScanResult struct {
	ID             string             `json:"id"`       // run correlation id
	Outcome        Outcome            `json:"-"`
	PlaylistID     string             `json:"playlist_id"`
	ArtistsScanned int                `json:"artists_scanned"`
	Aggregation    models.Aggregation `json:"aggregation"`
}

// ScanEngine defines the playlist concert scan operation.
type ScanEngine interface {
	// Run executes the full pipeline. Auth failures, malformed playlist URLs
	// and upstream request failures surface as errors; an empty playlist or a
	// scan with zero matches is a legitimate result, distinguished by Outcome.
	Run(ctx context.Context, req ScanRequest, progress chan<- ProgressUpdate) (*ScanResult, error)
}

// ConcertEngine implements [ScanEngine] on a catalog and an event finder.
type ConcertEngine struct {
	catalog services.Catalog
	events  services.EventFinder
}

// NewConcertEngine creates a new ConcertEngine with the provided services.
func NewConcertEngine(catalog services.Catalog, events services.EventFinder) *ConcertEngine {
	return &ConcertEngine{
		catalog: catalog,
		events:  events,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ConcertEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// wrapUpstream tags an error as an upstream request failure unless it already is one.
func wrapUpstream(msg string, err error) error {
	if errors.Is(err, shared.ErrAPIRequest) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, msg, err)
}

// artistScan is the per-artist unit of work joined back in first-seen order.
type artistScan struct {
	ref    models.ArtistRef
	result *models.ArtistResult // nil when the artist had zero events
	err    error
}

// Run executes the scan pipeline.
//
// Per-artist fetches may run on a bounded worker pool, but results join back
// by original playlist index, so output ordering and the choice of which
// failure surfaces are identical to a sequential run.
func (e *ConcertEngine) Run(ctx context.Context, req ScanRequest, progress chan<- ProgressUpdate) (*ScanResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if e.events == nil {
		return nil, fmt.Errorf("%w: event service not initialized", shared.ErrServiceUnavailable)
	}

	result := &ScanResult{ID: shared.GenerateID()}

	e.sendProgress(progress, acquireTokenUpdate())
	if err := e.catalog.Authenticate(ctx); err != nil {
		return nil, err
	}

	playlistID, err := services.ParsePlaylistID(req.PlaylistURL)
	if err != nil {
		return nil, err
	}
	result.PlaylistID = playlistID

	e.sendProgress(progress, resolvePlaylistUpdate(playlistID))
	artists, err := e.catalog.PlaylistArtists(ctx, playlistID)
	if err != nil {
		return nil, wrapUpstream(fmt.Sprintf("failed to resolve playlist %s", playlistID), err)
	}

	if len(artists) == 0 {
		result.Outcome = OutcomeEmptyPlaylist
		return result, nil
	}

	result.ArtistsScanned = len(artists)
	e.sendProgress(progress, resolvedPlaylistUpdate(len(artists)))

	scans := e.scanArtists(ctx, req, artists, progress)

	for i := range scans {
		if scans[i].err != nil {
			return nil, scans[i].err
		}
		if scans[i].result != nil {
			result.Aggregation.Append(*scans[i].result)
		}
	}

	e.sendProgress(progress, aggregateUpdate(len(result.Aggregation.Results), len(artists)))

	if len(result.Aggregation.Results) == 0 {
		result.Outcome = OutcomeNoMatches
		return result, nil
	}

	result.Outcome = OutcomeOK
	return result, nil
}

// scanArtists runs the per-artist fetches, sequentially or on a worker pool.
// The returned slice is indexed by the artists' first-seen order.
func (e *ConcertEngine) scanArtists(ctx context.Context, req ScanRequest, artists []models.ArtistRef, progress chan<- ProgressUpdate) []artistScan {
	scans := make([]artistScan, len(artists))

	workers := req.Workers
	if workers <= 1 {
		for i, ref := range artists {
			scans[i] = e.scanArtist(ctx, req, ref, progress, i+1, len(artists))
		}
		return scans
	}
	if workers > len(artists) {
		workers = len(artists)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scans[i] = e.scanArtist(ctx, req, artists[i], progress, i+1, len(artists))
			}
		}()
	}

	for i := range artists {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return scans
}

// scanArtist fetches events for one artist and, only when events exist,
// its catalog metadata. Artists with zero events are skipped entirely.
func (e *ConcertEngine) scanArtist(ctx context.Context, req ScanRequest, ref models.ArtistRef, progress chan<- ProgressUpdate, step, total int) artistScan {
	e.sendProgress(progress, searchEventsUpdate(step, total, ref.Name))

	events, err := e.events.Search(ctx, services.EventQuery{
		Keyword:   ref.Name,
		City:      req.City,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return artistScan{ref: ref, err: wrapUpstream(fmt.Sprintf("event search for %q failed", ref.Name), err)}
	}
	if len(events) == 0 {
		return artistScan{ref: ref}
	}

	e.sendProgress(progress, fetchArtistUpdate(step, total, ref.Name))

	artist, err := e.catalog.Artist(ctx, ref.ID)
	if err != nil {
		return artistScan{ref: ref, err: wrapUpstream(fmt.Sprintf("artist lookup for %q failed", ref.Name), err)}
	}

	return artistScan{ref: ref, result: &models.ArtistResult{Artist: *artist, Events: events}}
}
