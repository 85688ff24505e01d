// package models defines the data model for playlist concert scans
package models

import (
	"net/url"
	"strings"
	"time"
)

// Sentinel strings substituted when the events API omits venue fields.
const (
	VenueNA   = "Venue N/A"
	CityNA    = "City N/A"
	CountryNA = "Country N/A"
	DateNA    = "Date N/A"
)

// ArtistRef is the (name, id) pair extracted from a playlist track.
//
// Deduplication happens by Name in first-seen order: two distinct artists
// sharing a display name collapse into one entry. That precision loss is
// intentional and relied on by downstream collections.
type ArtistRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Artist represents catalog metadata for one artist.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	Genres     []string `json:"genres"`
}

// Event represents a single upcoming live event.
type Event struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Venue         string   `json:"venue"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	LocalDate     string   `json:"local_date"`
	StartDateTime string   `json:"start_date_time,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	URL           string   `json:"url,omitempty"`
}

// FormattedDate renders LocalDate as "Jan 02, 2006".
//
// Returns the raw string unchanged when it does not parse, and the
// "Date N/A" sentinel when the date is absent.
func (e Event) FormattedDate() string {
	if e.LocalDate == "" {
		return DateNA
	}
	t, err := time.Parse("2006-01-02", e.LocalDate)
	if err != nil {
		return e.LocalDate
	}
	return t.Format("Jan 02, 2006")
}

// CalendarLink builds a Google Calendar template URL for the event.
//
// The start instant has "-" and ":" stripped and is used as both start and
// end, so the link always describes a zero-duration slot at the start time.
// Returns "" when the event has no start instant.
func (e Event) CalendarLink() string {
	if e.StartDateTime == "" {
		return ""
	}
	ts := strings.NewReplacer("-", "", ":", "").Replace(e.StartDateTime)
	return "https://www.google.com/calendar/render?action=TEMPLATE&text=" +
		url.QueryEscape(e.Name) + "&dates=" + ts + "/" + ts
}

// HasCoordinates reports whether the venue carried both latitude and longitude.
func (e Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// ArtistResult pairs one artist with its matched events.
// Produced only for artists with at least one event.
type ArtistResult struct {
	Artist Artist  `json:"artist"`
	Events []Event `json:"events"`
}

// ArtistCount is one row of the per-artist counts table.
type ArtistCount struct {
	Artist string `json:"artist"`
	Events int    `json:"events"`
}

// ScatterPoint is one entry of the popularity vs event-count series.
type ScatterPoint struct {
	Artist     string `json:"artist"`
	Popularity int    `json:"popularity"`
	Events     int    `json:"events"`
}

// GeoPoint is one venue location for map rendering.
type GeoPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Event string  `json:"event"`
}

// Aggregation holds the derived views built while iterating artist results.
// All slices preserve artist first-seen order; geo points are additionally
// ordered by event order within each artist.
type Aggregation struct {
	Counts    []ArtistCount  `json:"counts"`
	Scatter   []ScatterPoint `json:"scatter"`
	GeoPoints []GeoPoint     `json:"geo_points"`
	Results   []ArtistResult `json:"results"`
}

// Append folds one artist result into every derived collection.
func (a *Aggregation) Append(res ArtistResult) {
	a.Results = append(a.Results, res)
	a.Counts = append(a.Counts, ArtistCount{Artist: res.Artist.Name, Events: len(res.Events)})
	a.Scatter = append(a.Scatter, ScatterPoint{
		Artist:     res.Artist.Name,
		Popularity: res.Artist.Popularity,
		Events:     len(res.Events),
	})
	for _, ev := range res.Events {
		if ev.HasCoordinates() {
			a.GeoPoints = append(a.GeoPoints, GeoPoint{Lat: *ev.Latitude, Lon: *ev.Longitude, Event: ev.Name})
		}
	}
}

// TotalEvents returns the number of events across all artist results.
func (a *Aggregation) TotalEvents() int {
	total := 0
	for _, c := range a.Counts {
		total += c.Events
	}
	return total
}
