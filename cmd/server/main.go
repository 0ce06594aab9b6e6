// Package main implements the entry point for the stash API server, which
// serves user registration, login and per-user item CRUD over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/stash-api/internal/platform/postgres"
	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "stash-api: %v\n", err)
		os.Exit(1)
	}
}

// newCLI creates the command-line application.
func newCLI() *cli.App {
	return &cli.App{
		Name:    "stash-api",
		Usage:   "REST API for users and their items",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Usage:   "load environment variables from `FILE` before reading configuration",
				EnvVars: []string{"STASH_ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending migrations before serving",
					},
				},
				Action: serveAction,
			},
			{
				Name:      "migrate",
				Usage:     "manage the database schema",
				ArgsUsage: "up|down|status|version",
				Action:    migrateAction,
			},
		},
		DefaultCommand: "serve",
	}
}

func serveAction(c *cli.Context) error {
	cfg, log, err := loadAppConfig(c.StringSlice("env-file"))
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(c.Context, cfg, log)
	if err != nil {
		return err
	}

	if c.Bool("migrate") {
		if err := runMigrations(c.Context, db, postgres.MigrateUp, log); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	return app.startHTTPServer(c.Context, app.setupRouter())
}

func migrateAction(c *cli.Context) error {
	command := c.Args().First()
	if command == "" {
		command = "up"
	}
	if !validMigrateCommand(command) {
		return fmt.Errorf("unknown migrate command %q (want up, down, status or version)", command)
	}

	cfg, log, err := loadAppConfig(c.StringSlice("env-file"))
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	return runMigrations(c.Context, db, command, log)
}
