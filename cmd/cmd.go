// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/jukebox/internal/formatter"
	"github.com/urfave/cli/v3"
)

// setupCommand handles first-run setup of the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration to --config",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// catalogCommand handles catalog inspection and import.
func catalogCommand(r *Runner) *cli.Command {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Usage: "Catalog source (file, dir, m3u, db, http); defaults to [catalog].source",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "Catalog locator; defaults to [catalog].path",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Give up waiting for the catalog after this long (0 waits forever)",
		},
	}

	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Load the catalog and print its songs",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (text, csv, markdown, json)",
						Value:   formatter.Formats[0],
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Shorthand for --format json",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				}, sourceFlags...),
				Action: r.CatalogList,
			},
			{
				Name:   "import",
				Usage:  "Load a catalog and replace the database catalog with it",
				Flags:  sourceFlags,
				Action: r.CatalogImport,
			},
		},
	}
}

// serveCommand runs the HTTP page and API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the song page over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address; defaults to [server].host:[server].port",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the page in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive song list",
		Action:  r.TUI,
	}
}
