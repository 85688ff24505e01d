// package formatter renders scan aggregations for the terminal and exports them to CSV/JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hcollier/showscout/internal/models"
	"github.com/hcollier/showscout/internal/shared"
)

const maxBarWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1)
	artistStyle = lipgloss.NewStyle().Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// RenderSummary renders the per-artist counts table as a terminal bar chart.
func RenderSummary(agg *models.Aggregation) string {
	var buf bytes.Buffer

	buf.WriteString(headerStyle.Render("Concert Count per Artist"))
	buf.WriteString("\n")

	maxCount := 0
	nameWidth := 0
	for _, c := range agg.Counts {
		if c.Events > maxCount {
			maxCount = c.Events
		}
		if len(c.Artist) > nameWidth {
			nameWidth = len(c.Artist)
		}
	}

	for _, c := range agg.Counts {
		width := c.Events * maxBarWidth / maxCount
		if width == 0 {
			width = 1
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		buf.WriteString(fmt.Sprintf("%-*s %s %d\n", nameWidth, c.Artist, bar, c.Events))
	}

	return buf.String()
}

// RenderScatter renders the popularity vs event-count series as a table.
func RenderScatter(agg *models.Aggregation) string {
	var buf bytes.Buffer

	buf.WriteString(headerStyle.Render("Popularity vs. Number of Concerts"))
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf("%-30s %12s %10s\n", "Artist", "Popularity", "Concerts"))

	for _, p := range agg.Scatter {
		buf.WriteString(fmt.Sprintf("%-30s %9d/100 %10d\n", p.Artist, p.Popularity, p.Events))
	}

	return buf.String()
}

// RenderGeoPoints renders venue coordinates for map consumers.
func RenderGeoPoints(agg *models.Aggregation) string {
	if len(agg.GeoPoints) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(headerStyle.Render("Concert Locations"))
	buf.WriteString("\n")

	for _, p := range agg.GeoPoints {
		buf.WriteString(fmt.Sprintf("%9.4f, %9.4f  %s\n", p.Lat, p.Lon, p.Event))
	}

	return buf.String()
}

// RenderDetails renders every artist's events with formatted dates and calendar links.
func RenderDetails(agg *models.Aggregation) string {
	var buf bytes.Buffer

	for _, res := range agg.Results {
		genres := "N/A"
		if len(res.Artist.Genres) > 0 {
			genres = strings.Join(res.Artist.Genres, ", ")
		}

		buf.WriteString(artistStyle.Render(fmt.Sprintf("%s: %d upcoming concert(s)", res.Artist.Name, len(res.Events))))
		buf.WriteString("\n")
		buf.WriteString(fmt.Sprintf("  Popularity: %d/100  Followers: %d  Genres: %s\n", res.Artist.Popularity, res.Artist.Followers, genres))

		for _, ev := range res.Events {
			buf.WriteString(fmt.Sprintf("  • %s\n", ev.Name))
			buf.WriteString(fmt.Sprintf("    Venue: %s (%s, %s)\n", ev.Venue, ev.City, ev.Country))
			buf.WriteString(fmt.Sprintf("    Date: %s\n", ev.FormattedDate()))
			if link := ev.CalendarLink(); link != "" {
				buf.WriteString(faintStyle.Render(fmt.Sprintf("    Add to calendar: %s", link)))
				buf.WriteString("\n")
			}
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// ExportToCSV converts the scatter series to CSV with columns: Artist, Popularity, Concerts
func ExportToCSV(agg *models.Aggregation) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Artist", "Popularity", "Concerts"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range agg.Scatter {
		record := []string{
			p.Artist,
			strconv.Itoa(p.Popularity),
			strconv.Itoa(p.Events),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts the full aggregation to JSON.
func ExportToJSON(agg *models.Aggregation, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(agg, pretty)
}

// WriteCSVExport exports the aggregation to a CSV file at path.
func WriteCSVExport(agg *models.Aggregation, path string) (string, error) {
	if path == "" {
		path = "scan_results.csv"
	}

	csvData, err := ExportToCSV(agg)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
