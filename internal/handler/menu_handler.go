package handler

import (
	"net/http"

	"cafe-order/internal/service"
	"cafe-order/pkg/logger"
)

type MenuHandler struct {
	customerService service.CustomerServiceInterface
	logger          *logger.Logger
}

func NewMenuHandler(customerService service.CustomerServiceInterface, log *logger.Logger) *MenuHandler {
	return &MenuHandler{
		customerService: customerService,
		logger:          log.WithComponent("menu_handler"),
	}
}

// List handles GET /api/v1/menu
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	items, err := h.customerService.GetMenuItems()
	if err != nil {
		h.logger.Error("Failed to get menu items", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}

	writeJSONResponse(w, http.StatusOK, items)
}

// Get handles GET /api/v1/menu/{id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	segments := pathSegments(r, "/api/v1/menu/")
	if len(segments) != 1 {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	item, err := h.customerService.GetMenuItem(segments[0])
	if err != nil {
		h.logger.Warn("Menu item lookup failed", "item_id", segments[0], "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, item)
}
