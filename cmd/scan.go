package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hcollier/showscout/internal/formatter"
	"github.com/hcollier/showscout/internal/shared"
	"github.com/hcollier/showscout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// buildScanRequest assembles a [tasks.ScanRequest] from flags, falling back to
// the configured scan defaults for city, window, page size and workers.
func (r *Runner) buildScanRequest(cmd *cli.Command) (tasks.ScanRequest, error) {
	var req tasks.ScanRequest

	windowDays := r.config.Scan.WindowDays
	if windowDays <= 0 {
		windowDays = 90
	}

	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, windowDays)

	if s := cmd.String("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return req, fmt.Errorf("%w: --from must be YYYY-MM-DD: %v", shared.ErrInvalidFlag, err)
		}
		from = parsed
		to = from.AddDate(0, 0, windowDays)
	}
	if s := cmd.String("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return req, fmt.Errorf("%w: --to must be YYYY-MM-DD: %v", shared.ErrInvalidFlag, err)
		}
		to = parsed
	}

	if to.Before(from) {
		return req, fmt.Errorf("%w: end date %s is before start date %s", shared.ErrInvalidArgument, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	city := cmd.String("city")
	if city == "" {
		city = r.config.Scan.City
	}

	size := cmd.Int("size")
	if size <= 0 {
		size = r.config.Scan.PageSize
	}

	workers := cmd.Int("workers")
	if workers <= 0 {
		workers = r.config.Scan.Workers
	}

	req = tasks.ScanRequest{
		PlaylistURL: cmd.String("url"),
		City:        city,
		StartDate:   from,
		EndDate:     to,
		PageSize:    size,
		Workers:     workers,
	}
	return req, nil
}

// Scan runs the full playlist concert scan and renders the aggregation.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify credentials not configured (run 'showscout setup config')", shared.ErrServiceUnavailable)
	}
	if r.events == nil {
		return fmt.Errorf("%w: Ticketmaster API key not configured (run 'showscout setup config')", shared.ErrServiceUnavailable)
	}

	req, err := r.buildScanRequest(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("starting scan", "url", req.PlaylistURL, "city", req.City,
		"from", req.StartDate.Format("2006-01-02"), "to", req.EndDate.Format("2006-01-02"))

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.engine.Run(ctx, req, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	switch result.Outcome {
	case tasks.OutcomeEmptyPlaylist:
		r.writePlainln("The playlist has no tracks, nothing to scan.")
		return nil
	case tasks.OutcomeNoMatches:
		r.writePlainln("Scanned %d artists: none have upcoming concerts in this window.", result.ArtistsScanned)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", formatter.RenderSummary(&result.Aggregation))
	r.writePlain("%s\n", formatter.RenderScatter(&result.Aggregation))
	if geo := formatter.RenderGeoPoints(&result.Aggregation); geo != "" {
		r.writePlain("%s\n", geo)
	}
	if cmd.Bool("details") {
		r.writePlain("%s", formatter.RenderDetails(&result.Aggregation))
	}

	if path := cmd.String("csv"); path != "" {
		file, err := formatter.WriteCSVExport(&result.Aggregation, path)
		if err != nil {
			return err
		}
		r.logger.Info("counts exported", "file", file)
	}

	return nil
}
