// Package mocks provides shared test doubles for service and API tests.
//
// Token and password mocks use function fields with default values; store
// mocks are built on testify/mock:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, int64(1)).Return(nil, store.ErrUserNotFound)
//	factory := &mocks.StoreFactory{UserStore: users}
package mocks
