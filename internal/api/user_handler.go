package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/stash-api/internal/api/shared"
	"github.com/phrazzld/stash-api/internal/platform/logger"
	"github.com/phrazzld/stash-api/internal/service"
	"github.com/phrazzld/stash-api/internal/store"
)

// UserHandler serves the user resources.
type UserHandler struct {
	userService service.UserService
	itemService service.ItemService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, itemService service.ItemService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		itemService: itemService,
		logger:      logger.With("component", "user_handler"),
	}
}

// CreateUser handles POST /users/. Registration is public.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, false)
	if !ok {
		return
	}

	var req UserCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), db, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user, nil))
}

// ListUsers handles GET /users/.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Users are collected before their items are queried: the session
	// handle serves one open result set at a time.
	users, err := store.Collect(h.userService.ListUsers(r.Context(), db, page))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		items, err := h.itemService.ListUserItems(r.Context(), db, user.ID)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		response = append(response, userToResponse(user, items))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	userID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithUser(w, r, db, userID)
}

// GetCurrentUser handles GET /user/, returning the caller.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	callerID, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	h.respondWithUser(w, r, db, callerID)
}

func (h *UserHandler) respondWithUser(w http.ResponseWriter, r *http.Request, db store.DBTX, userID int64) {
	user, err := h.userService.GetUser(r.Context(), db, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	items, err := h.itemService.ListUserItems(r.Context(), db, user.ID)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("failed to load items for user", "error", err, "user_id", user.ID)
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user, items))
}
