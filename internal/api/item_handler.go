package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/stash-api/internal/api/shared"
	"github.com/phrazzld/stash-api/internal/service"
	"github.com/phrazzld/stash-api/internal/store"
)

// ItemHandler serves the item resources.
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemHandler{
		itemService: itemService,
		logger:      logger.With("component", "item_handler"),
	}
}

// CreateItem handles POST /user/{id}/item/. The path ID names the owner,
// which need not be the caller.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	ownerID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), db, ownerID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// GetItem handles GET /user/item/{id}.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	itemID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	item, err := h.itemService.GetItem(r.Context(), db, itemID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// UpdateItem handles PUT /user/item/{id}.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	itemID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), db, itemID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /user/item/{id}.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	itemID, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if _, err := h.itemService.DeleteItem(r.Context(), db, itemID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Item with id: %d was deleted successfully!", itemID),
	})
}

// ListItems handles GET /items/.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	_, db, ok := requestContext(w, r, true)
	if !ok {
		return
	}

	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	items, err := store.Collect(h.itemService.ListItems(r.Context(), db, page))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}
