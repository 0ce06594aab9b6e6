package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/stash-api/internal/api/shared"
)

// IndexHandler serves the unauthenticated informational endpoints.
type IndexHandler struct {
	name    string
	version string
	logger  *slog.Logger
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(name, version string, logger *slog.Logger) *IndexHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexHandler{name: name, version: version, logger: logger}
}

// Index handles GET /.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, IndexResponse{
		Name:    h.name,
		Version: h.version,
		Docs:    "See the README for the API reference",
	})
}

// Health handles GET /health.
func (h *IndexHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Error("Failed to write health check response", "error", err)
	}
}
