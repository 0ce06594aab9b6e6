package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/platform/logger"
	"github.com/phrazzld/stash-api/internal/store"
)

const itemColumns = `id, title, description, owner_id, created_at, updated_at`

// PostgresItemStore implements store.ItemStore on PostgreSQL.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore binds an item store to db. If logger is nil, the
// default logger is used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

var _ store.ItemStore = (*PostgresItemStore)(nil)

// Create implements store.ItemStore.Create.
// A foreign key violation means the owner does not exist and is reported
// as store.ErrUserNotFound.
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO items (title, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, item.Title, item.Description, item.OwnerID).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("item owner does not exist", slog.Int64("owner_id", item.OwnerID))
			return fmt.Errorf("%w: owner %d: %w", store.ErrUserNotFound, item.OwnerID, err)
		}
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", item.OwnerID))
		return MapError(err)
	}

	log.Info("item created",
		slog.Int64("item_id", item.ID),
		slog.Int64("owner_id", item.OwnerID))
	return nil
}

// GetByID implements store.ItemStore.GetByID.
func (s *PostgresItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.notFoundOr(log, err, "failed to get item", id)
	}
	return item, nil
}

// List implements store.ItemStore.List.
func (s *PostgresItemStore) List(ctx context.Context, offset, limit int) iter.Seq2[*domain.Item, error] {
	offset, limit = normalizePage(offset, limit)
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id LIMIT $1 OFFSET $2`
	return queryIter(ctx, s.db, logger.FromContextOrDefault(ctx, s.logger), scanItem, query, limit, offset)
}

// ListByOwner implements store.ItemStore.ListByOwner.
func (s *PostgresItemStore) ListByOwner(ctx context.Context, ownerID int64) iter.Seq2[*domain.Item, error] {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY id`
	return queryIter(ctx, s.db, logger.FromContextOrDefault(ctx, s.logger), scanItem, query, ownerID)
}

// Update implements store.ItemStore.Update.
func (s *PostgresItemStore) Update(ctx context.Context, id int64, title, description string) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateItemContent(title, description); err != nil {
		log.Warn("item validation failed during update", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		UPDATE items
		SET title = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + itemColumns
	item, err := scanItem(s.db.QueryRowContext(ctx, query, title, description, id))
	if err != nil {
		return nil, s.notFoundOr(log, err, "failed to update item", id)
	}

	log.Info("item updated", slog.Int64("item_id", id))
	return item, nil
}

// Delete implements store.ItemStore.Delete.
func (s *PostgresItemStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return false, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Warn("failed to get rows affected", slog.String("error", err.Error()))
	}
	log.Info("item deleted",
		slog.Int64("item_id", id),
		slog.Int64("rows_affected", affected))
	return true, nil
}

func (s *PostgresItemStore) notFoundOr(log *slog.Logger, err error, msg string, id int64) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		log.Debug("item not found", slog.Int64("item_id", id))
		return store.ErrItemNotFound
	}
	log.Error(msg, slog.String("error", err.Error()), slog.Int64("item_id", id))
	return mapped
}

func scanItem(row scanner) (*domain.Item, error) {
	var it domain.Item
	if err := row.Scan(&it.ID, &it.Title, &it.Description, &it.OwnerID, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
