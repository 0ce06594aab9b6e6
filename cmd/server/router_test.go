package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterOperationalEndpoints(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"stash-api"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stash_http_requests_total")
	assert.Contains(t, w.Body.String(), "stash_session_handles_in_use")
}

func TestRouterCORSPreflight(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApplication(t)

	r := httptest.NewRequest(http.MethodOptions, "/users/", nil)
	r.Header.Set("Origin", "https://example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, r)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterRequiresToken(t *testing.T) {
	t.Parallel()
	app, db, mock := newTestApplication(t)

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query may run for a rejected request")
}

func TestRouterCreateUserThroughPostgresStore(t *testing.T) {
	t.Parallel()
	app, db, mock := newTestApplication(t)

	mock.ExpectQuery(`INSERT INTO users \(email, hashed_password\)`).
		WithArgs("a@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	r := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "hashed_password")

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Zero(t, db.Stats().InUse, "session handle must be back in the pool")
}

func TestRouterLoginThrottle(t *testing.T) {
	t.Parallel()
	app, _, mock := newTestApplication(t)
	app.config.Server.LoginRatePerMinute = 1
	app.config.Server.LoginBurst = 1
	router := app.setupRouter()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}))

	login := func() int {
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
		r.RemoteAddr = "192.0.2.10:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNotFound, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouterLoginThrottleIgnoresForwardedHeaders(t *testing.T) {
	t.Parallel()
	app, _, mock := newTestApplication(t)
	app.config.Server.LoginRatePerMinute = 1
	app.config.Server.LoginBurst = 1
	router := app.setupRouter()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}))

	codes := make([]int, 0, 5)
	for i := range 5 {
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
		r.RemoteAddr = "192.0.2.10:5000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		r.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusNotFound, codes[0])
	for _, code := range codes[1:] {
		assert.Equal(t, http.StatusTooManyRequests, code, "rotating forwarded headers must not reset the limit")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouterLoginThrottleTrustedProxy(t *testing.T) {
	t.Parallel()
	app, _, mock := newTestApplication(t)
	app.config.Server.LoginRatePerMinute = 1
	app.config.Server.LoginBurst = 1
	app.config.Server.TrustProxyHeaders = true
	router := app.setupRouter()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at"}))

	// Two proxy connections forwarding the same client share one bucket.
	login := func(peer string) int {
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
		r.RemoteAddr = peer
		r.Header.Set("X-Real-IP", "198.51.100.7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNotFound, login("10.0.0.1:4000"))
	assert.Equal(t, http.StatusTooManyRequests, login("10.0.0.2:4000"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouterCountsRecoveredPanics(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	mux, ok := router.(chi.Router)
	require.True(t, ok)
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(),
		`stash_http_requests_total{method="GET",route="/boom",status="500"} 1`)
}
