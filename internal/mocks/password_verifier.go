package mocks

import (
	"sync"

	"github.com/phrazzld/stash-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier and auth.PasswordHasher
// for testing. Hash returns "hashed:" + password unless HashFn is set.
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// HashFn allows for custom hashing in tests
	HashFn func(password string) (string, error)

	mu                sync.Mutex
	compareCallCount  int
	compareCalledWith [2]string
}

var (
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
	_ auth.PasswordHasher   = (*MockPasswordVerifier)(nil)
)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.compareCallCount++
	m.compareCalledWith = [2]string{hashedPassword, password}
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return auth.ErrPasswordMismatch
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// CompareCalls returns the number of Compare calls and the arguments of the
// most recent one.
func (m *MockPasswordVerifier) CompareCalls() (count int, hashedPassword, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compareCallCount, m.compareCalledWith[0], m.compareCalledWith[1]
}
