package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	apimw "github.com/phrazzld/stash-api/internal/api/middleware"
	"github.com/phrazzld/stash-api/internal/service"
	"github.com/phrazzld/stash-api/internal/service/auth"
	"github.com/phrazzld/stash-api/internal/store"
	"github.com/phrazzld/stash-api/internal/store/memory"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type harness struct {
	t       *testing.T
	handler http.Handler
	data    *memory.DB
	inUse   func() int
}

// newHarness wires the real router, middleware and services over an
// in-memory store. Session handles are leased from a sqlmock pool so their
// release can be observed; the memory stores ignore them.
func newHarness(t *testing.T, opts ...func(*Routes)) *harness {
	t.Helper()

	pool, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	cfg := auth.DefaultJWTConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	bcrypt := auth.NewBcryptVerifier(cfg.BCryptCost)

	data := memory.New()
	users := service.NewUserService(data, bcrypt, quietLogger)
	items := service.NewItemService(data, quietLogger)
	authSvc := service.NewAuthService(data, bcrypt, tokens, cfg.TokenLifetime(), quietLogger)

	routes := Routes{
		Index:        NewIndexHandler("stash-api", "test", quietLogger),
		Auth:         NewAuthHandler(authSvc, quietLogger),
		Users:        NewUserHandler(users, items, quietLogger),
		Items:        NewItemHandler(items, quietLogger),
		Authenticate: apimw.NewAuthMiddleware(tokens).Authenticate,
		Session:      apimw.NewSessionMiddleware(store.NewScope(pool, nil, quietLogger), 5*time.Second),
	}
	for _, opt := range opts {
		opt(&routes)
	}

	r := chi.NewRouter()
	r.Use(chimw.StripSlashes)
	r.Use(apimw.NewTraceMiddleware(quietLogger))
	RegisterRoutes(r, routes)

	return &harness{
		t:       t,
		handler: r,
		data:    data,
		inUse:   func() int { return pool.Stats().InUse },
	}
}

func (h *harness) do(method, path, authHeader string, body any) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}

	r := httptest.NewRequest(method, path, reader)
	if reader != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		r.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, r)
	return w
}

// register creates a user and logs in, returning the user's ID and a bearer header.
func (h *harness) register(email, password string) (int64, string) {
	h.t.Helper()

	w := h.do(http.MethodPost, "/users/", "", UserCreateRequest{Email: email, Password: password})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	var user UserResponse
	decode(h.t, w, &user)

	w = h.do(http.MethodPost, "/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	var token TokenResponse
	decode(h.t, w, &token)

	return user.ID, "Bearer " + token.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func apimwRateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	return apimw.NewRateLimiter(perMinute, burst, nil).Limit
}
