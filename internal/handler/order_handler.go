package handler

import (
	"net/http"

	"cafe-order/internal/service"
	"cafe-order/pkg/logger"
)

type OrderHandler struct {
	customerService service.CustomerServiceInterface
	logger          *logger.Logger
}

func NewOrderHandler(customerService service.CustomerServiceInterface, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		customerService: customerService,
		logger:          log.WithComponent("order_handler"),
	}
}

// Collection handles GET and POST /api/v1/orders
func (h *OrderHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *OrderHandler) list(w http.ResponseWriter, _ *http.Request) {
	orders, err := h.customerService.GetOrders()
	if err != nil {
		h.logger.Error("Failed to get orders", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	writeJSONResponse(w, http.StatusOK, orders)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for create order", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.customerService.CreateOrder(req)
	if err != nil {
		h.logger.Warn("Failed to create order", "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	writeJSONResponse(w, http.StatusCreated, order)
}

// Get handles GET /api/v1/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	segments := pathSegments(r, "/api/v1/orders/")
	if len(segments) != 1 {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.customerService.GetOrderByID(segments[0])
	if err != nil {
		h.logger.Warn("Order lookup failed", "order_id", segments[0], "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, order)
}
