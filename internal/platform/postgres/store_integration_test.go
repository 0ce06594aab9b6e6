//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/platform/postgres"
	"github.com/phrazzld/stash-api/internal/store"
	"github.com/phrazzld/stash-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.NewString())
}

func createUser(t *testing.T, users store.UserStore) *domain.User {
	t.Helper()
	u := &domain.User{Email: uniqueEmail(), HashedPassword: "hash"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestIntegration_UserAndItemLifecycle(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	factory := postgres.NewFactory(nil)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := factory.Users(tx)
		items := factory.Items(tx)

		owner := createUser(t, users)
		assert.Positive(t, owner.ID)

		byEmail, err := users.GetByEmail(ctx, owner.Email)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.HashedPassword)

		item, err := domain.NewItem(owner.ID, "Bread", "rye")
		require.NoError(t, err)
		require.NoError(t, items.Create(ctx, item))
		assert.Positive(t, item.ID)

		owned, err := store.Collect(items.ListByOwner(ctx, owner.ID))
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, "Bread", owned[0].Title)

		updated, err := items.Update(ctx, item.ID, "Loaf", "")
		require.NoError(t, err)
		assert.Equal(t, "Loaf", updated.Title)
		assert.Empty(t, updated.Description)
		assert.Equal(t, owner.ID, updated.OwnerID)

		_, err = items.Delete(ctx, item.ID)
		require.NoError(t, err)

		_, err = items.GetByID(ctx, item.ID)
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})
}

func TestIntegration_ItemRequiresExistingOwner(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	factory := postgres.NewFactory(nil)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		item, err := domain.NewItem(1<<40, "Orphan", "")
		require.NoError(t, err)

		err = factory.Items(tx).Create(context.Background(), item)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestIntegration_ListUsersPaginates(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	factory := postgres.NewFactory(nil)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := factory.Users(tx)
		for range 3 {
			createUser(t, users)
		}

		all, err := store.Collect(users.List(context.Background(), 0, 1000))
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(all), 3)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID, "users are ordered by id")
		}

		page, err := store.Collect(users.List(context.Background(), 1, 2))
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, all[1].ID, page[0].ID)
	})
}

// Runs outside a transaction: the unique index has to arbitrate between
// separate sessions.
func TestIntegration_ConcurrentDuplicateEmail(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	scope := store.NewScope(db, nil, nil)
	factory := postgres.NewFactory(nil)
	email := uniqueEmail()
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM users WHERE email = $1`, email)
	})

	const workers = 6
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dupes   int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := scope.Do(context.Background(), func(ctx context.Context, h *store.Handle) error {
				return factory.Users(h).Create(ctx, &domain.User{Email: email, HashedPassword: "hash"})
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, store.ErrEmailExists):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, dupes)
}
