package main

import (
	"context"
	"fmt"

	"github.com/hcollier/showscout/internal/services"
	"github.com/hcollier/showscout/internal/shared"
	"github.com/urfave/cli/v3"
)

// EventsSearch queries the event discovery API for a single keyword.
func (r *Runner) EventsSearch(ctx context.Context, cmd *cli.Command) error {
	if r.events == nil {
		return fmt.Errorf("%w: Ticketmaster API key not configured", shared.ErrServiceUnavailable)
	}

	keyword := cmd.StringArg("keyword")
	if keyword == "" {
		return fmt.Errorf("%w: keyword", shared.ErrMissingArgument)
	}

	req, err := r.buildScanRequest(cmd)
	if err != nil {
		return err
	}

	events, err := r.events.Search(ctx, services.EventQuery{
		Keyword:   keyword,
		City:      req.City,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return fmt.Errorf("event search failed: %w", err)
	}

	if len(events) == 0 {
		r.writePlainln("No upcoming events for %q in this window.", keyword)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(events, true)
	}

	r.writePlain("Found %d events for %q:\n\n", len(events), keyword)
	for i, ev := range events {
		r.writePlain("%d. %s\n", i+1, ev.Name)
		r.writePlain("   %s (%s, %s) on %s\n", ev.Venue, ev.City, ev.Country, ev.FormattedDate())
		if link := ev.CalendarLink(); link != "" {
			r.writePlain("   %s\n", link)
		}
	}

	return nil
}
