package main

import (
	"context"
	"database/sql"
	"log/slog"
	"slices"

	"github.com/phrazzld/stash-api/internal/platform/postgres"
)

var migrateCommands = []string{
	postgres.MigrateUp,
	postgres.MigrateDown,
	postgres.MigrateStatus,
	postgres.MigrateVersion,
}

func validMigrateCommand(command string) bool {
	return slices.Contains(migrateCommands, command)
}

// runMigrations executes a goose command against db using the embedded
// migration files.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	return postgres.NewMigrator(db, logger).Run(ctx, command)
}
