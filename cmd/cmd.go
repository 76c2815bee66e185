// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// setupCommand initializes the database and imports the catalog.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize the database and import the catalog",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// serveCommand runs the recommendation HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the recommendation HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// recommendCommand samples song recommendations for explicit preferences.
func recommendCommand(r *Runner) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "genres",
			Aliases:  []string{"g"},
			Usage:    "Comma-separated list of genres",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "artists",
			Aliases: []string{"a"},
			Usage:   "Comma-separated list of favorite artists to boost",
		},
		&cli.StringFlag{
			Name:  "song-type",
			Usage: "Filter by audio availability (any, any_file, preview, full, preview,full)",
			Value: "any",
		},
		&cli.StringFlag{
			Name:  "export",
			Usage: "Export results (csv, markdown, text)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output path for the export",
		},
	}
	flags = append(flags, jsonFlags()...)

	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Sample song recommendations for a set of genres",
		Flags:   flags,
		Action:  r.Recommend,
	}
}

// exportCommand runs concurrent per-genre batch exports.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export recommendation batches for every genre",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "genres",
				Usage: "Comma-separated list of genres (defaults to all)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (json, csv, markdown, txt)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent export workers (max 10)",
			},
			&cli.StringFlag{
				Name:  "song-type",
				Usage: "Filter songs by audio availability",
				Value: "any",
			},
		},
		Action: r.Export,
	}
}

// searchCommand handles fuzzy catalog search.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Fuzzy-search the catalog",
		Commands: []*cli.Command{
			{
				Name:  "artists",
				Usage: "Search artists by name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  jsonFlags(),
				Action: r.SearchArtists,
			},
			{
				Name:  "songs",
				Usage: "Search songs by name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  jsonFlags(),
				Action: r.SearchSongs,
			},
		},
	}
}

// lookupCommand fetches single catalog records by id.
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Look up catalog records",
		Commands: []*cli.Command{
			{
				Name:  "song",
				Usage: "Look up a song by id or external id",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "id",
						Usage: "Catalog song id",
						Value: -1,
					},
					&cli.StringFlag{
						Name:  "external-id",
						Usage: "External platform id (e.g. a Spotify track id)",
					},
				}, jsonFlags()...),
				Action: r.LookupSong,
			},
			{
				Name:  "artist",
				Usage: "Look up an artist by id",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Catalog artist id",
						Required: true,
					},
				}, jsonFlags()...),
				Action: r.LookupArtist,
			},
		},
	}
}

// genresCommand lists the genre universe, optionally narrowed by age.
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "List known genres",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "age",
				Usage: "Narrow to genres suggested for this age (0-100)",
				Value: -1,
			},
		}, jsonFlags()...),
		Action: r.Genres,
	}
}

// authCommand handles OAuth2 authorization against listening platforms.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize with a listening platform",
		Commands: []*cli.Command{
			{
				Name:   "spotify",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthSpotify,
			},
			{
				Name:   "genius",
				Usage:  "Authenticate with Genius using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthGenius,
			},
		},
	}
}

// prefsCommand infers preferences from a platform's listening history.
func prefsCommand(r *Runner) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "platform",
			Aliases:  []string{"p"},
			Usage:    "Listening platform (spotify or genius)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "recommend",
			Usage: "Sample recommendations from the inferred preferences",
		},
		&cli.StringFlag{
			Name:  "song-type",
			Usage: "Filter recommended songs by audio availability",
			Value: "any",
		},
	}
	flags = append(flags, jsonFlags()...)

	return &cli.Command{
		Name:    "prefs",
		Aliases: []string{"preferences"},
		Usage:   "Infer genre and artist preferences from listening history",
		Flags:   flags,
		Action:  r.Prefs,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive recommendation browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "song-type",
				Usage: "Filter songs by audio availability",
				Value: "any",
			},
		},
		Action: r.TUI,
	}
}
