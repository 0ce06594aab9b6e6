package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/phrazzld/stash-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_items.sql"}, files)
}

func TestMigratorRun(t *testing.T) {
	db, _ := newMockDB(t)

	origUp, origDown, origStatus, origVersion := gooseUpContext, gooseDownContext, gooseStatusContext, gooseVersionContext
	t.Cleanup(func() {
		gooseUpContext, gooseDownContext, gooseStatusContext, gooseVersionContext = origUp, origDown, origStatus, origVersion
	})

	var called []string
	record := func(name string) func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			if dir != "." {
				return errors.New("unexpected dir")
			}
			called = append(called, name)
			return nil
		}
	}
	gooseUpContext = record(MigrateUp)
	gooseDownContext = record(MigrateDown)
	gooseStatusContext = record(MigrateStatus)
	gooseVersionContext = func(context.Context, *sql.DB) (int64, error) {
		called = append(called, MigrateVersion)
		return 2, nil
	}

	m := NewMigrator(db, nil)
	for _, cmd := range []string{MigrateUp, MigrateDown, MigrateStatus, MigrateVersion} {
		require.NoError(t, m.Run(context.Background(), cmd))
	}

	assert.Equal(t, []string{MigrateUp, MigrateDown, MigrateStatus, MigrateVersion}, called)
}

func TestMigratorRunErrors(t *testing.T) {
	db, _ := newMockDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	m := NewMigrator(db, nil)

	err := m.Run(context.Background(), MigrateUp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration up failed: boom")

	err = m.Run(context.Background(), "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
