package auth

import (
	"context"
	"fmt"

	"github.com/phrazzld/stash-api/internal/config"
)

// DefaultJWTConfig returns an auth configuration suitable for tests.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// GenerateAuthHeaderForTesting returns "Bearer <token>" for userID signed
// with DefaultJWTConfig.
func GenerateAuthHeaderForTesting(userID int64) (string, error) {
	svc, err := NewJWTService(DefaultJWTConfig())
	if err != nil {
		return "", fmt.Errorf("failed to create JWT service: %w", err)
	}
	token, err := svc.GenerateToken(context.Background(), userID)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}
