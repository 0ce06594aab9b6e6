package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/stash-api/internal/service"
	"github.com/phrazzld/stash-api/internal/service/auth"
	"github.com/phrazzld/stash-api/internal/store"
	"github.com/phrazzld/stash-api/internal/store/memory"
	"github.com/stretchr/testify/require"
)

// noDB stands in for the session handle; the memory factory ignores it.
var noDB store.DBTX

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type services struct {
	db    *memory.DB
	users service.UserService
	items service.ItemService
	auth  service.AuthService
}

func newServices(t *testing.T) services {
	t.Helper()
	cfg := auth.DefaultJWTConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	bcrypt := auth.NewBcryptVerifier(cfg.BCryptCost)

	db := memory.New()
	return services{
		db:    db,
		users: service.NewUserService(db, bcrypt, quietLogger),
		items: service.NewItemService(db, quietLogger),
		auth:  service.NewAuthService(db, bcrypt, tokens, cfg.TokenLifetime(), quietLogger),
	}
}
