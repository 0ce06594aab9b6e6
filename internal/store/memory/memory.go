// Package memory provides an in-process store.Factory. It enforces the same
// uniqueness and ownership rules as the PostgreSQL schema and is used to
// exercise services and handlers without a database.
package memory

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/store"
)

const defaultListLimit = 100

// DB holds all users and items. It is safe for concurrent use.
type DB struct {
	mu         sync.Mutex
	users      map[int64]domain.User
	emails     map[string]int64
	items      map[int64]domain.Item
	nextUserID int64
	nextItemID int64
	now        func() time.Time
}

// New returns an empty DB.
func New() *DB {
	return &DB{
		users:  make(map[int64]domain.User),
		emails: make(map[string]int64),
		items:  make(map[int64]domain.Item),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ store.Factory = (*DB)(nil)

// Users returns a user store over d. The handle is ignored.
func (d *DB) Users(store.DBTX) store.UserStore { return userStore{d} }

// Items returns an item store over d. The handle is ignored.
func (d *DB) Items(store.DBTX) store.ItemStore { return itemStore{d} }

// UserCount returns the number of stored users.
func (d *DB) UserCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.users)
}

type userStore struct{ d *DB }

func (s userStore) Create(_ context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: hashed password is required", store.ErrInvalidEntity)
	}

	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, taken := s.d.emails[user.Email]; taken {
		return store.ErrEmailExists
	}

	s.d.nextUserID++
	user.ID = s.d.nextUserID
	user.CreatedAt = s.d.now()

	stored := *user
	stored.Password = ""
	s.d.users[user.ID] = stored
	s.d.emails[user.Email] = user.ID
	return nil
}

func (s userStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	u, ok := s.d.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	id, ok := s.d.emails[domain.NormalizeEmail(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	u := s.d.users[id]
	return &u, nil
}

func (s userStore) List(_ context.Context, offset, limit int) iter.Seq2[*domain.User, error] {
	return func(yield func(*domain.User, error) bool) {
		s.d.mu.Lock()
		snapshot := make([]domain.User, 0, len(s.d.users))
		for _, u := range s.d.users {
			snapshot = append(snapshot, u)
		}
		s.d.mu.Unlock()

		slices.SortFunc(snapshot, func(a, b domain.User) int { return cmpID(a.ID, b.ID) })
		for _, u := range page(snapshot, offset, limit) {
			if !yield(&u, nil) {
				return
			}
		}
	}
}

type itemStore struct{ d *DB }

func (s itemStore) Create(_ context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.users[item.OwnerID]; !ok {
		return fmt.Errorf("%w: owner %d", store.ErrUserNotFound, item.OwnerID)
	}

	s.d.nextItemID++
	now := s.d.now()
	item.ID = s.d.nextItemID
	item.CreatedAt = now
	item.UpdatedAt = now
	s.d.items[item.ID] = *item
	return nil
}

func (s itemStore) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	it, ok := s.d.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return &it, nil
}

func (s itemStore) List(_ context.Context, offset, limit int) iter.Seq2[*domain.Item, error] {
	return s.seq(func(domain.Item) bool { return true }, offset, limit)
}

func (s itemStore) ListByOwner(_ context.Context, ownerID int64) iter.Seq2[*domain.Item, error] {
	return s.seq(func(it domain.Item) bool { return it.OwnerID == ownerID }, 0, -1)
}

func (s itemStore) seq(keep func(domain.Item) bool, offset, limit int) iter.Seq2[*domain.Item, error] {
	return func(yield func(*domain.Item, error) bool) {
		s.d.mu.Lock()
		snapshot := make([]domain.Item, 0, len(s.d.items))
		for _, it := range s.d.items {
			if keep(it) {
				snapshot = append(snapshot, it)
			}
		}
		s.d.mu.Unlock()

		slices.SortFunc(snapshot, func(a, b domain.Item) int { return cmpID(a.ID, b.ID) })
		if limit >= 0 {
			snapshot = page(snapshot, offset, limit)
		}
		for _, it := range snapshot {
			if !yield(&it, nil) {
				return
			}
		}
	}
}

func (s itemStore) Update(_ context.Context, id int64, title, description string) (*domain.Item, error) {
	if err := domain.ValidateItemContent(title, description); err != nil {
		return nil, err
	}

	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	it, ok := s.d.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	it.Title = title
	it.Description = description
	it.UpdatedAt = s.d.now()
	s.d.items[id] = it
	return &it, nil
}

func (s itemStore) Delete(_ context.Context, id int64) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	delete(s.d.items, id)
	return true, nil
}

// page applies offset/limit with the same defaults as the SQL stores.
// A non-positive limit means the default limit.
func page[T any](all []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = defaultListLimit
	}
	if offset >= len(all) {
		return nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

func cmpID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
