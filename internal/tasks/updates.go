package tasks

import "fmt"

// ProgressUpdate represents a progress event during a scan.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	AcquireToken Phase = iota
	ResolvePlaylist
	SearchEvents
	FetchArtist
	Aggregate
)

func (p Phase) String() string {
	switch p {
	case AcquireToken:
		return "acquire_token"
	case ResolvePlaylist:
		return "resolve_playlist"
	case SearchEvents:
		return "search_events"
	case FetchArtist:
		return "fetch_artist"
	case Aggregate:
		return "aggregate"
	default:
		return ""
	}
}

func acquireTokenUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   AcquireToken,
		Step:    1,
		Total:   1,
		Message: "Acquiring Spotify access token...",
	}
}

func resolvePlaylistUpdate(playlistID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving playlist %s...", playlistID),
	}
}

func resolvedPlaylistUpdate(artistCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d distinct artists", artistCount),
		Data:    artistCount,
	}
}

func searchEventsUpdate(step, total int, artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchEvents,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching events: %s", step, total, artist),
	}
}

func fetchArtistUpdate(step, total int, artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching artist info: %s", step, total, artist),
	}
}

func aggregateUpdate(matched, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Aggregate,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("%d of %d artists have upcoming events", matched, total),
	}
}
