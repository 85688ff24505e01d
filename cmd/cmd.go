// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// dateFlags returns the shared date-window flags.
func dateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "from",
			Usage: "Window start date (YYYY-MM-DD, defaults to today)",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Window end date (YYYY-MM-DD, defaults to today + configured window)",
		},
	}
}

// scanCommand runs the full playlist concert scan
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "scan",
		Aliases: []string{"s"},
		Usage:   "Scan a playlist for artists with upcoming concerts",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "Spotify playlist URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "city",
				Usage: "Only include events in this city",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Events per artist (first page only)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel per-artist fetches (1 = sequential)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Also write artist counts to this CSV file",
			},
			&cli.BoolFlag{
				Name:  "details",
				Usage: "Show per-artist event details",
				Value: true,
			},
		}, dateFlags()...),
		Action: r.Scan,
	}
}

// spotifyCommand handles Spotify debug operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "artists",
				Usage: "Resolve a playlist to its deduplicated primary artists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "Spotify playlist URL",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyArtists,
			},
		},
	}
}

// eventsCommand handles direct event discovery queries
func eventsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Ticketmaster event operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search upcoming events for a keyword",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "keyword",
					},
				},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "city",
						Usage: "Only include events in this city",
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Maximum events to return",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				}, dateFlags()...),
				Action: r.EventsSearch,
			},
		},
	}
}

// setupCommand handles setup operations for configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml scaffold",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination path",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive scanning.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for a playlist scan",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "Spotify playlist URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "city",
				Usage: "Only include events in this city",
			},
		}, dateFlags()...),
		Action: r.TUI,
	}
}
