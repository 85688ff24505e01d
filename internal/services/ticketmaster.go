// Ticketmaster Discovery API implementation of [EventFinder]
//
// Response types based on https://developer.ticketmaster.com/products-and-docs/apis/discovery-api/v2/
package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/shared"
	"golang.org/x/time/rate"
)

const ticketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2"

type ticketmasterEventDate struct {
	LocalDate string `json:"localDate"`
	DateTime  string `json:"dateTime"`
}

type ticketmasterDates struct {
	Start ticketmasterEventDate `json:"start"`
}

type ticketmasterCity struct {
	Name string `json:"name"`
}

type ticketmasterCountry struct {
	Name string `json:"name"`
}

type ticketmasterLocation struct {
	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`
}

type ticketmasterVenue struct {
	Name     string               `json:"name"`
	City     ticketmasterCity     `json:"city"`
	Country  ticketmasterCountry  `json:"country"`
	Location ticketmasterLocation `json:"location"`
}

type ticketmasterEvent struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Dates    ticketmasterDates `json:"dates"`
	Embedded struct {
		Venues []ticketmasterVenue `json:"venues"`
	} `json:"_embedded"`
}

type ticketmasterEventsResponse struct {
	Embedded struct {
		Events []ticketmasterEvent `json:"events"`
	} `json:"_embedded"`
}

// TicketmasterService implements [EventFinder] for the Ticketmaster Discovery API.
//
// Requests are paced with a [rate.Limiter]; the API enforces per-key quotas.
type TicketmasterService struct {
	baseURL string
	apiKey  string
	client  *resty.Client
	limiter *rate.Limiter
}

// NewTicketmasterService creates a new Ticketmaster service with the given API key.
func NewTicketmasterService(apiKey string) (*TicketmasterService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: ticketmaster api_key", shared.ErrMissingCredentials)
	}

	return &TicketmasterService{
		baseURL: ticketmasterBaseURL,
		apiKey:  apiKey,
		client:  resty.New().SetTimeout(10 * time.Second),
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}, nil
}

func (s *TicketmasterService) Name() string {
	return "Ticketmaster"
}

// Search queries events.json for the given keyword and window.
//
// The date window expands to whole days (00:00:00Z to 23:59:59Z); the city
// parameter is sent only when non-blank after trimming. A response without
// _embedded.events is a legitimate empty result, not an error.
func (s *TicketmasterService) Search(ctx context.Context, query EventQuery) ([]models.Event, error) {
	if strings.TrimSpace(query.Keyword) == "" {
		return nil, fmt.Errorf("%w: empty keyword", shared.ErrInvalidArgument)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	size := query.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	params := map[string]string{
		"apikey":        s.apiKey,
		"keyword":       query.Keyword,
		"startDateTime": query.StartDate.Format("2006-01-02") + "T00:00:00Z",
		"endDateTime":   query.EndDate.Format("2006-01-02") + "T23:59:59Z",
		"size":          strconv.Itoa(size),
	}
	if city := strings.TrimSpace(query.City); city != "" {
		params["city"] = city
	}

	var eventsResp ticketmasterEventsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&eventsResp).
		Get(s.baseURL + "/events.json")
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: ticketmaster status %d", shared.ErrAPIRequest, resp.StatusCode())
	}

	events := make([]models.Event, 0, len(eventsResp.Embedded.Events))
	for _, tmEvent := range eventsResp.Embedded.Events {
		events = append(events, convertEvent(tmEvent))
	}

	return events, nil
}

// convertEvent maps a Discovery API event onto the domain model.
// Venue fields are read defensively: anything the response omits gets its
// sentinel rather than failing the whole search.
func convertEvent(tmEvent ticketmasterEvent) models.Event {
	event := models.Event{
		ID:            tmEvent.ID,
		Name:          tmEvent.Name,
		Venue:         models.VenueNA,
		City:          models.CityNA,
		Country:       models.CountryNA,
		LocalDate:     tmEvent.Dates.Start.LocalDate,
		StartDateTime: tmEvent.Dates.Start.DateTime,
		URL:           tmEvent.URL,
	}

	if len(tmEvent.Embedded.Venues) == 0 {
		return event
	}

	venue := tmEvent.Embedded.Venues[0]
	if venue.Name != "" {
		event.Venue = venue.Name
	}
	if venue.City.Name != "" {
		event.City = venue.City.Name
	}
	if venue.Country.Name != "" {
		event.Country = venue.Country.Name
	}

	lat, latErr := strconv.ParseFloat(venue.Location.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(venue.Location.Longitude, 64)
	if latErr == nil && lonErr == nil {
		event.Latitude = &lat
		event.Longitude = &lon
	}

	return event
}
