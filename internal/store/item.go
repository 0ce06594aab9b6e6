package store

import (
	"context"
	"iter"

	"github.com/phrazzld/stash-api/internal/domain"
)

// ItemStore defines item persistence.
type ItemStore interface {
	// Create inserts the item and sets its ID and timestamps from the store.
	// Returns ErrUserNotFound if item.OwnerID does not reference a user.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	// List yields at most limit items ordered by ID, skipping the first offset.
	// A zero limit yields nothing.
	List(ctx context.Context, offset, limit int) iter.Seq2[*domain.Item, error]

	// ListByOwner yields every item owned by ownerID, ordered by ID.
	ListByOwner(ctx context.Context, ownerID int64) iter.Seq2[*domain.Item, error]

	// Update replaces title and description and returns the stored row.
	// Returns ErrItemNotFound if the item does not exist. The owner never changes.
	Update(ctx context.Context, id int64, title, description string) (*domain.Item, error)

	// Delete removes the item. Deleting an absent item is not an error and
	// still reports true.
	Delete(ctx context.Context, id int64) (bool, error)
}
