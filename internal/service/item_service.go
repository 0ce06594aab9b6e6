package service

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

// ItemService provides item CRUD.
//
// Mutations do not check that the caller owns the item; any authenticated
// caller may update or delete any item.
type ItemService interface {
	// CreateItem stores a new item for ownerID.
	// Returns store.ErrUserNotFound if the owner does not exist.
	CreateItem(ctx context.Context, db store.DBTX, ownerID int64, title, description string) (*domain.Item, error)

	// GetItem returns store.ErrItemNotFound if the item does not exist.
	GetItem(ctx context.Context, db store.DBTX, itemID int64) (*domain.Item, error)

	// ListItems yields one page of items ordered by ID.
	ListItems(ctx context.Context, db store.DBTX, page Page) iter.Seq2[*domain.Item, error]

	// ListUserItems returns every item owned by ownerID.
	ListUserItems(ctx context.Context, db store.DBTX, ownerID int64) ([]*domain.Item, error)

	// UpdateItem replaces title and description.
	// Returns store.ErrItemNotFound if the item does not exist.
	UpdateItem(ctx context.Context, db store.DBTX, itemID int64, title, description string) (*domain.Item, error)

	// DeleteItem removes the item. It reports true even when nothing was deleted.
	DeleteItem(ctx context.Context, db store.DBTX, itemID int64) (bool, error)
}

// ItemServiceImpl implements ItemService.
type ItemServiceImpl struct {
	stores store.Factory
	logger *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(stores store.Factory, logger *slog.Logger) ItemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemServiceImpl{
		stores: stores,
		logger: logger.With("component", "item_service"),
	}
}

// CreateItem implements ItemService.
func (s *ItemServiceImpl) CreateItem(
	ctx context.Context,
	db store.DBTX,
	ownerID int64,
	title, description string,
) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := domain.NewItem(ownerID, title, description)
	if err != nil {
		log.Debug("rejected item", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	if err := s.stores.Items(db).Create(ctx, item); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("item owner not found", "owner_id", ownerID)
		} else {
			log.Error("failed to save item", "error", err, "owner_id", ownerID)
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	log.Info("item created", "item_id", item.ID, "owner_id", ownerID)
	return item, nil
}

// GetItem implements ItemService.
func (s *ItemServiceImpl) GetItem(ctx context.Context, db store.DBTX, itemID int64) (*domain.Item, error) {
	item, err := s.stores.Items(db).GetByID(ctx, itemID)
	if err != nil {
		s.logItemError(ctx, err, "failed to retrieve item", itemID)
		return nil, fmt.Errorf("failed to retrieve item: %w", err)
	}
	return item, nil
}

// ListItems implements ItemService.
func (s *ItemServiceImpl) ListItems(ctx context.Context, db store.DBTX, page Page) iter.Seq2[*domain.Item, error] {
	return s.stores.Items(db).List(ctx, page.Skip, page.Limit)
}

// ListUserItems implements ItemService.
func (s *ItemServiceImpl) ListUserItems(ctx context.Context, db store.DBTX, ownerID int64) ([]*domain.Item, error) {
	items, err := store.Collect(s.stores.Items(db).ListByOwner(ctx, ownerID))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list user items",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to list user items: %w", err)
	}
	return items, nil
}

// UpdateItem implements ItemService.
func (s *ItemServiceImpl) UpdateItem(
	ctx context.Context,
	db store.DBTX,
	itemID int64,
	title, description string,
) (*domain.Item, error) {
	item, err := s.stores.Items(db).Update(ctx, itemID, title, description)
	if err != nil {
		s.logItemError(ctx, err, "failed to update item", itemID)
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("item updated", "item_id", itemID)
	return item, nil
}

// DeleteItem implements ItemService.
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, db store.DBTX, itemID int64) (bool, error) {
	ok, err := s.stores.Items(db).Delete(ctx, itemID)
	if err != nil {
		s.logItemError(ctx, err, "failed to delete item", itemID)
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("item deleted", "item_id", itemID)
	return ok, nil
}

func (s *ItemServiceImpl) logItemError(ctx context.Context, err error, msg string, itemID int64) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if errors.Is(err, store.ErrItemNotFound) || errors.Is(err, domain.ErrValidation) {
		log.Debug(msg, "error", err, "item_id", itemID)
		return
	}
	log.Error(msg, "error", err, "item_id", itemID)
}
