package postgres

import (
	"context"
	"database/sql"
	"iter"
	"log/slog"
)

// DefaultListLimit bounds list queries when the caller passes a negative limit.
const DefaultListLimit = 100

type scanner interface {
	Scan(dest ...any) error
}

// queryIter runs query lazily each time the returned sequence is ranged
// over and yields one scanned value per row. Rows are closed when the
// consumer stops early, on error, or after the last row.
func queryIter[T any](
	ctx context.Context,
	db interface {
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	},
	log *slog.Logger,
	scan func(scanner) (T, error),
	query string,
	args ...any,
) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to run list query", slog.String("error", err.Error()))
			yield(zero, MapError(err))
			return
		}
		defer func() {
			if err := rows.Close(); err != nil {
				log.Error("failed to close rows", slog.String("error", err.Error()))
			}
		}()

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				log.Error("failed to scan row", slog.String("error", err.Error()))
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			log.Error("error after scanning rows", slog.String("error", err.Error()))
			yield(zero, MapError(err))
		}
	}
}

func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = DefaultListLimit
	}
	return offset, limit
}
