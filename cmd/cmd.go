// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that touches the database.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// ownerFlag identifies the collection owner for CLI operations.
func ownerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "owner",
		Aliases:  []string{"u"},
		Usage:    "Owner id to operate on",
		Required: true,
	}
}

// setupCommand initializes the database schema.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent migration instead",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the collection API over HTTP",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Override the configured port",
			},
		},
		Action: r.Serve,
	}
}

// exportCommand writes an owner's forest to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export an owner's collections to a file",
		Flags: []cli.Flag{
			configFlag(),
			ownerFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to a generated filename)",
			},
			&cli.BoolFlag{
				Name:  "content",
				Usage: "Include item memberships",
				Value: true,
			},
		},
		Action: r.Export,
	}
}

// importCommand restores collections from a file.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import collections from a JSON file",
		Flags: []cli.Flag{
			configFlag(),
			ownerFlag(),
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the import document",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "merge",
				Usage: "Create new collections on name conflicts instead of skipping",
			},
		},
		Action: r.Import,
	}
}

// searchCommand looks up collections by name or description.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search an owner's collections",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			ownerFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}
