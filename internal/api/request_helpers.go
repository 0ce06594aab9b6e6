package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/stash-api/internal/api/shared"
	"github.com/phrazzld/stash-api/internal/domain"
	"github.com/phrazzld/stash-api/internal/service"
	"github.com/phrazzld/stash-api/internal/store"
)

var errNoSession = errors.New("no session handle in request context")

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// getPage parses the skip and limit query parameters. Absent values take
// the defaults; non-numeric or negative values are rejected.
func getPage(r *http.Request) (service.Page, error) {
	q := r.URL.Query()
	skip, err := queryInt(q.Get("skip"), 0)
	if err != nil {
		return service.Page{}, service.ErrInvalidPage
	}
	limit, err := queryInt(q.Get("limit"), service.DefaultPageLimit)
	if err != nil {
		return service.Page{}, service.ErrInvalidPage
	}
	return service.NewPage(skip, limit)
}

func queryInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// requestContext returns the authenticated user ID (zero when the route is
// public) and the session handle. It writes an error response and reports
// false if the handle is missing or an authenticated route lacks a user.
func requestContext(w http.ResponseWriter, r *http.Request, requireUser bool) (int64, store.DBTX, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if requireUser && !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return 0, nil, false
	}

	h, ok := shared.HandleFromContext(r.Context())
	if !ok {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", errNoSession)
		return 0, nil, false
	}
	return userID, h, true
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
