package store

import (
	"context"
	"iter"

	"github.com/phrazzld/stash-api/internal/domain"
)

// UserStore defines user persistence. Implementations are bound to a single
// DBTX (normally the request's session handle).
type UserStore interface {
	// Create inserts the user and sets its ID and CreatedAt from the store.
	// user.HashedPassword must already be set.
	// Returns ErrEmailExists if the email is already taken, including when a
	// concurrent insert wins the race.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List yields at most limit users ordered by ID, skipping the first offset.
	// A zero limit yields nothing. The sequence is lazy; each range re-runs the query.
	List(ctx context.Context, offset, limit int) iter.Seq2[*domain.User, error]
}
