package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/platform/logger"
	"github.com/phrazzld/stash-api/internal/service/auth"
	"github.com/phrazzld/stash-api/internal/store"
)

// UserService provides user registration and lookup.
type UserService interface {
	// CreateUser validates the input, hashes the password and stores the user.
	// Returns store.ErrEmailExists if the email is taken.
	CreateUser(ctx context.Context, db store.DBTX, email, password string) (*domain.User, error)

	// GetUser returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, db store.DBTX, userID int64) (*domain.User, error)

	// GetUserByEmail returns store.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, db store.DBTX, email string) (*domain.User, error)

	// ListUsers yields one page of users ordered by ID.
	ListUsers(ctx context.Context, db store.DBTX, page Page) iter.Seq2[*domain.User, error]
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	stores store.Factory
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(stores store.Factory, hasher auth.PasswordHasher, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		stores: stores,
		hasher: hasher,
		logger: logger.With("component", "user_service"),
	}
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, db store.DBTX, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		log.Debug("rejected user registration", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.stores.Users(db).Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to create user with existing email")
		} else {
			log.Error("failed to save user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, db store.DBTX, userID int64) (*domain.User, error) {
	user, err := s.stores.Users(db).GetByID(ctx, userID)
	if err != nil {
		s.logLookupError(ctx, err, "user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail implements UserService.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, db store.DBTX, email string) (*domain.User, error) {
	user, err := s.stores.Users(db).GetByEmail(ctx, email)
	if err != nil {
		s.logLookupError(ctx, err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, db store.DBTX, page Page) iter.Seq2[*domain.User, error] {
	return s.stores.Users(db).List(ctx, page.Skip, page.Limit)
}

func (s *UserServiceImpl) logLookupError(ctx context.Context, err error, args ...any) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug("user not found", args...)
		return
	}
	log.Error("failed to retrieve user", append([]any{"error", err}, args...)...)
}
