package mocks

import (
	"context"
	"iter"

	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore is a testify mock of store.UserStore.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *UserStore) List(ctx context.Context, offset, limit int) iter.Seq2[*domain.User, error] {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(iter.Seq2[*domain.User, error])
}

// ItemStore is a testify mock of store.ItemStore.
type ItemStore struct {
	mock.Mock
}

var _ store.ItemStore = (*ItemStore)(nil)

// Create is a mock implementation of store.ItemStore.Create
func (m *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ItemStore.GetByID
func (m *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*domain.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.ItemStore.List
func (m *ItemStore) List(ctx context.Context, offset, limit int) iter.Seq2[*domain.Item, error] {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).(iter.Seq2[*domain.Item, error])
}

// ListByOwner is a mock implementation of store.ItemStore.ListByOwner
func (m *ItemStore) ListByOwner(ctx context.Context, ownerID int64) iter.Seq2[*domain.Item, error] {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(iter.Seq2[*domain.Item, error])
}

// Update is a mock implementation of store.ItemStore.Update
func (m *ItemStore) Update(ctx context.Context, id int64, title, description string) (*domain.Item, error) {
	args := m.Called(ctx, id, title, description)
	if item, ok := args.Get(0).(*domain.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.ItemStore.Delete
func (m *ItemStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// StoreFactory returns the configured stores for any handle.
type StoreFactory struct {
	UserStore store.UserStore
	ItemStore store.ItemStore
}

var _ store.Factory = (*StoreFactory)(nil)

// Users implements store.Factory.
func (f *StoreFactory) Users(store.DBTX) store.UserStore { return f.UserStore }

// Items implements store.Factory.
func (f *StoreFactory) Items(store.DBTX) store.ItemStore { return f.ItemStore }

// Seq yields vals followed by err, if err is non-nil.
func Seq[T any](err error, vals ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, v := range vals {
			if !yield(v, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}
