package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/shared"
	"golang.org/x/time/rate"
)

const discoveryJSON = `{
	"_embedded": {
		"events": [
			{
				"id": "ev1",
				"name": "Muse Live",
				"url": "https://tickets.example.com/ev1",
				"dates": {"start": {"localDate": "2026-09-05", "dateTime": "2026-09-05T19:30:00Z"}},
				"_embedded": {
					"venues": [
						{
							"name": "Olympiastadion",
							"city": {"name": "Berlin"},
							"country": {"name": "Germany"},
							"location": {"latitude": "52.5145", "longitude": "13.2395"}
						}
					]
				}
			},
			{
				"id": "ev2",
				"name": "Muse Acoustic",
				"dates": {"start": {"localDate": "2026-09-12"}},
				"_embedded": {
					"venues": [
						{
							"city": {"name": "Hamburg"},
							"location": {"latitude": "not-a-number", "longitude": "9.9937"}
						}
					]
				}
			},
			{
				"id": "ev3",
				"name": "Muse Secret Show",
				"dates": {"start": {}}
			}
		]
	}
}`

func newTestTicketmaster(t *testing.T, handler http.Handler) (*TicketmasterService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &TicketmasterService{
		baseURL: server.URL,
		apiKey:  "test-key",
		client:  resty.New().SetTimeout(5 * time.Second),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}, server
}

func testQuery() EventQuery {
	return EventQuery{
		Keyword:   "Muse",
		City:      "Berlin",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		PageSize:  5,
	}
}

func TestTicketmasterSearch(t *testing.T) {
	t.Run("sends the expected query parameters", func(t *testing.T) {
		var params url.Values
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		})
		svc, _ := newTestTicketmaster(t, handler)

		if _, err := svc.Search(context.Background(), testQuery()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := map[string]string{
			"apikey":        "test-key",
			"keyword":       "Muse",
			"city":          "Berlin",
			"startDateTime": "2026-09-01T00:00:00Z",
			"endDateTime":   "2026-11-30T23:59:59Z",
			"size":          "5",
		}
		for key, want := range expected {
			if got := params.Get(key); got != want {
				t.Errorf("param %s: expected %q, got %q", key, want, got)
			}
		}
	})

	t.Run("omits a blank city", func(t *testing.T) {
		var params url.Values
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		})
		svc, _ := newTestTicketmaster(t, handler)

		query := testQuery()
		query.City = "   "
		if _, err := svc.Search(context.Background(), query); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if params.Has("city") {
			t.Errorf("expected no city param, got %q", params.Get("city"))
		}
	})

	t.Run("falls back to the default page size", func(t *testing.T) {
		var params url.Values
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		})
		svc, _ := newTestTicketmaster(t, handler)

		query := testQuery()
		query.PageSize = 0
		if _, err := svc.Search(context.Background(), query); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := params.Get("size"); got != "5" {
			t.Errorf("expected default size 5, got %q", got)
		}
	})

	t.Run("converts events with venue sentinels and coordinates", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(discoveryJSON))
		})
		svc, _ := newTestTicketmaster(t, handler)

		events, err := svc.Search(context.Background(), testQuery())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("expected 3 events, got %d", len(events))
		}

		full := events[0]
		if full.Venue != "Olympiastadion" || full.City != "Berlin" || full.Country != "Germany" {
			t.Errorf("unexpected venue fields: %+v", full)
		}
		if !full.HasCoordinates() {
			t.Fatal("expected coordinates on the first event")
		}
		if *full.Latitude != 52.5145 || *full.Longitude != 13.2395 {
			t.Errorf("unexpected coordinates: %v, %v", *full.Latitude, *full.Longitude)
		}
		if full.StartDateTime != "2026-09-05T19:30:00Z" {
			t.Errorf("unexpected start instant: %q", full.StartDateTime)
		}

		partial := events[1]
		if partial.Venue != models.VenueNA {
			t.Errorf("expected venue sentinel, got %q", partial.Venue)
		}
		if partial.City != "Hamburg" {
			t.Errorf("expected city from response, got %q", partial.City)
		}
		if partial.Country != models.CountryNA {
			t.Errorf("expected country sentinel, got %q", partial.Country)
		}
		if partial.HasCoordinates() {
			t.Error("expected no coordinates when latitude does not parse")
		}

		bare := events[2]
		if bare.Venue != models.VenueNA || bare.City != models.CityNA || bare.Country != models.CountryNA {
			t.Errorf("expected all sentinels for a venueless event, got %+v", bare)
		}
		if bare.LocalDate != "" {
			t.Errorf("expected empty local date, got %q", bare.LocalDate)
		}
		if bare.FormattedDate() != models.DateNA {
			t.Errorf("expected date sentinel, got %q", bare.FormattedDate())
		}
	})

	t.Run("treats a response without events as empty", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"page": {"totalElements": 0}}`))
		})
		svc, _ := newTestTicketmaster(t, handler)

		events, err := svc.Search(context.Background(), testQuery())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected no events, got %d", len(events))
		}
	})

	t.Run("rejects an empty keyword", func(t *testing.T) {
		svc, _ := newTestTicketmaster(t, http.NotFoundHandler())

		query := testQuery()
		query.Keyword = "  "
		_, err := svc.Search(context.Background(), query)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("surfaces a non-200 status", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		svc, _ := newTestTicketmaster(t, handler)

		_, err := svc.Search(context.Background(), testQuery())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestNewTicketmasterService(t *testing.T) {
	t.Run("rejects a missing api key", func(t *testing.T) {
		if _, err := NewTicketmasterService(""); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
