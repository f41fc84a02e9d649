// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles database setup and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// serveCommand starts the catalog HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the catalog HTTP API",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// seedCommand populates the catalog from the external provider.
func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Fetch tracks from the iTunes Search API and populate the catalog",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "tracks-per-sub-genre",
				Usage: "Tracks to fetch per sub-genre (overrides config)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent fetch workers",
				Value: 3,
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Provider requests per second (overrides config)",
			},
		},
		Action: r.Seed,
	}
}

// catalogCommand handles read-only catalog queries.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Query the local catalog",
		Commands: []*cli.Command{
			{
				Name:  "genres",
				Usage: "List genres with sub-genres and track counts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogGenres,
			},
			{
				Name:    "stats",
				Aliases: []string{"statistics"},
				Usage:   "Show catalog statistics",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogStats,
			},
			{
				Name:  "featured",
				Usage: "List the most recently added tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of tracks (1-100)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogFeatured,
			},
			{
				Name:  "track",
				Usage: "Show a single track by id",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.CatalogTrack,
			},
			{
				Name:  "search",
				Usage: "Search tracks by keyword and filters",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "keyword",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "genre-id",
						Usage: "Restrict to one genre",
					},
					&cli.IntFlag{
						Name:  "min-bpm",
						Usage: "Minimum BPM",
					},
					&cli.IntFlag{
						Name:  "max-bpm",
						Usage: "Maximum BPM",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Write results to a CSV file at the given path",
					},
				},
				Action: r.CatalogSearch,
			},
		},
	}
}

// searchCommand launches the interactive search overlay.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"tui"},
		Usage:   "Launch the interactive search overlay",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.SearchTUI,
	}
}
