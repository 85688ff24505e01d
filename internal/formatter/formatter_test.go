package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hcollier/showscout/internal/models"
)

func testAggregation() *models.Aggregation {
	lat, lon := 52.5145, 13.2395
	agg := &models.Aggregation{}
	agg.Append(models.ArtistResult{
		Artist: models.Artist{ID: "a1", Name: "Muse", Popularity: 78, Followers: 1200000, Genres: []string{"rock"}},
		Events: []models.Event{
			{
				Name:          "Muse Live",
				Venue:         "Olympiastadion",
				City:          "Berlin",
				Country:       "Germany",
				LocalDate:     "2026-09-05",
				StartDateTime: "2026-09-05T19:30:00Z",
				Latitude:      &lat,
				Longitude:     &lon,
			},
			{Name: "Muse Acoustic", Venue: models.VenueNA, City: models.CityNA, Country: models.CountryNA},
		},
	})
	agg.Append(models.ArtistResult{
		Artist: models.Artist{ID: "a2", Name: "Foals", Popularity: 60},
		Events: []models.Event{{Name: "Foals Tour", Venue: "Columbiahalle", City: "Berlin", Country: "Germany", LocalDate: "2026-10-01"}},
	})
	return agg
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(testAggregation())

	if !strings.Contains(out, "Concert Count per Artist") {
		t.Error("expected the summary header")
	}
	for _, artist := range []string{"Muse", "Foals"} {
		if !strings.Contains(out, artist) {
			t.Errorf("expected %s in summary", artist)
		}
	}
	if !strings.Contains(out, "█") {
		t.Error("expected bar characters")
	}
}

func TestRenderScatter(t *testing.T) {
	out := RenderScatter(testAggregation())

	if !strings.Contains(out, "Popularity vs. Number of Concerts") {
		t.Error("expected the scatter header")
	}
	if !strings.Contains(out, "78/100") {
		t.Errorf("expected popularity rendering, got:\n%s", out)
	}
}

func TestRenderGeoPoints(t *testing.T) {
	t.Run("lists coordinates", func(t *testing.T) {
		out := RenderGeoPoints(testAggregation())
		if !strings.Contains(out, "52.5145") || !strings.Contains(out, "Muse Live") {
			t.Errorf("expected coordinates and event name, got:\n%s", out)
		}
	})

	t.Run("empty when no events carried coordinates", func(t *testing.T) {
		if out := RenderGeoPoints(&models.Aggregation{}); out != "" {
			t.Errorf("expected empty output, got %q", out)
		}
	})
}

func TestRenderDetails(t *testing.T) {
	out := RenderDetails(testAggregation())

	if !strings.Contains(out, "Muse: 2 upcoming concert(s)") {
		t.Errorf("expected artist heading, got:\n%s", out)
	}
	if !strings.Contains(out, "Olympiastadion (Berlin, Germany)") {
		t.Error("expected venue line")
	}
	if !strings.Contains(out, "Sep 05, 2026") {
		t.Error("expected formatted date")
	}
	if !strings.Contains(out, models.VenueNA) {
		t.Error("expected venue sentinel for the sparse event")
	}
	if !strings.Contains(out, "https://www.google.com/calendar/render") {
		t.Error("expected calendar link for the event with a start instant")
	}
	if !strings.Contains(out, "Genres: rock") {
		t.Error("expected genres line")
	}
	if !strings.Contains(out, "Genres: N/A") {
		t.Error("expected genre fallback for an artist without genres")
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(testAggregation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		{"Artist", "Popularity", "Concerts"},
		{"Muse", "78", "2"},
		{"Foals", "60", "1"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestExportToJSON(t *testing.T) {
	data, err := ExportToJSON(testAggregation(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.Aggregation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Counts) != 2 || decoded.Counts[0].Artist != "Muse" {
		t.Errorf("unexpected decoded counts: %+v", decoded.Counts)
	}
}

func TestWriteCSVExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	written, err := WriteCSVExport(testAggregation(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != path {
		t.Errorf("expected %q, got %q", path, written)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "Artist,Popularity,Concerts") {
		t.Errorf("unexpected file contents: %q", data)
	}
}
