package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/stash-api/internal/platform/logger"
	"github.com/phrazzld/stash-api/internal/service/auth"
	"github.com/phrazzld/stash-api/internal/store"
)

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "bearer"

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	UserID      int64
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// AuthService exchanges credentials for an access token.
type AuthService interface {
	// Login returns store.ErrUserNotFound for an unknown email and
	// auth.ErrInvalidCredentials for a wrong password.
	Login(ctx context.Context, db store.DBTX, email, password string) (*LoginResult, error)
}

// AuthServiceImpl implements AuthService.
type AuthServiceImpl struct {
	stores        store.Factory
	verifier      auth.PasswordVerifier
	tokens        auth.JWTService
	tokenLifetime time.Duration
	logger        *slog.Logger
}

// NewAuthService creates a new AuthService. tokenLifetime is reported to
// clients as expires_in and must match the JWT service configuration.
func NewAuthService(
	stores store.Factory,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		stores:        stores,
		verifier:      verifier,
		tokens:        tokens,
		tokenLifetime: tokenLifetime,
		logger:        logger.With("component", "auth_service"),
	}
}

// Login implements AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, db store.DBTX, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.stores.Users(db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
		} else {
			log.Error("failed to look up user for login", "error", err)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, fmt.Errorf("login failed: %w", auth.ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("login failed: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResult{
		UserID:      user.ID,
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   s.tokenLifetime,
	}, nil
}
