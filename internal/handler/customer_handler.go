package handler

import (
	"net/http"

	"cafe-order/internal/service"
	"cafe-order/models"
	"cafe-order/pkg/logger"
)

// CustomerHandler serves user, point card, favorite and cart routes.
type CustomerHandler struct {
	customerService service.CustomerServiceInterface
	logger          *logger.Logger
}

func NewCustomerHandler(customerService service.CustomerServiceInterface, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          log.WithComponent("customer_handler"),
	}
}

// Users dispatches /api/v1/users/{id}[/pointcard|/favorites[/{itemID}]]
func (h *CustomerHandler) Users(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/users/")
	if len(segments) == 0 {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	userID := segments[0]
	switch {
	case len(segments) == 1 && r.Method == http.MethodGet:
		h.getUser(w, userID)
	case len(segments) == 1 && r.Method == http.MethodPatch:
		h.updateUser(w, r, userID)
	case len(segments) == 2 && segments[1] == "pointcard" && r.Method == http.MethodGet:
		h.getPointCard(w, userID)
	case len(segments) == 2 && segments[1] == "favorites" && r.Method == http.MethodGet:
		h.getFavorites(w, userID)
	case len(segments) == 3 && segments[1] == "favorites" && r.Method == http.MethodPost:
		h.toggleFavorite(w, userID, segments[2])
	default:
		writeErrorResponse(w, http.StatusNotFound, "Not found")
	}
}

func (h *CustomerHandler) getUser(w http.ResponseWriter, userID string) {
	user, err := h.customerService.GetUser(userID)
	if err != nil {
		h.logger.Warn("User lookup failed", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

func (h *CustomerHandler) updateUser(w http.ResponseWriter, r *http.Request, userID string) {
	var req service.UpdateUserRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for update user", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.customerService.UpdateUser(userID, req)
	if err != nil {
		h.logger.Warn("Failed to update user", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

func (h *CustomerHandler) getPointCard(w http.ResponseWriter, userID string) {
	card, err := h.customerService.GetPointCard(userID)
	if err != nil {
		h.logger.Warn("Point card lookup failed", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, card)
}

func (h *CustomerHandler) getFavorites(w http.ResponseWriter, userID string) {
	favorites, err := h.customerService.GetFavorites(userID)
	if err != nil {
		h.logger.Warn("Favorites lookup failed", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, favorites)
}

func (h *CustomerHandler) toggleFavorite(w http.ResponseWriter, userID, itemID string) {
	favorites, err := h.customerService.ToggleFavorite(userID, itemID)
	if err != nil {
		h.logger.Warn("Failed to toggle favorite", "user_id", userID, "item_id", itemID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, favorites)
}

// Cart handles GET and PUT /api/v1/cart
func (h *CustomerHandler) Cart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.customerService.GetCart()
		if err != nil {
			h.logger.Error("Failed to get cart", "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		writeJSONResponse(w, http.StatusOK, items)
	case http.MethodPut:
		var items []models.CartItem
		if err := parseRequestBody(r, &items); err != nil {
			h.logger.Warn("Invalid request body for save cart", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := h.customerService.SaveCart(items); err != nil {
			h.logger.Warn("Failed to save cart", "error", err)
			writeErrorResponse(w, statusForError(err), err.Error())
			return
		}
		writeJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
	default:
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
