package handler

import (
	"net/http"
	"strconv"
	"time"

	"cafe-order/internal/service"
	"cafe-order/models"
	"cafe-order/pkg/logger"
)

const defaultTopSellerLimit = 5

type AdminHandler struct {
	adminService service.AdminServiceInterface
	logger       *logger.Logger
}

func NewAdminHandler(adminService service.AdminServiceInterface, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       log.WithComponent("admin_handler"),
	}
}

// Dashboard handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		h.logger.Error("Failed to get dashboard stats", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	writeJSONResponse(w, http.StatusOK, stats)
}

// Alerts handles GET /api/v1/admin/alerts
func (h *AdminHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	alerts, err := h.adminService.GetInventoryAlerts()
	if err != nil {
		h.logger.Error("Failed to get inventory alerts", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch inventory alerts")
		return
	}
	writeJSONResponse(w, http.StatusOK, alerts)
}

type statusUpdateRequest struct {
	Status  models.OrderStatus `json:"status"`
	StaffID string             `json:"staff_id"`
}

type staffRequest struct {
	StaffID string `json:"staff_id"`
}

// Orders dispatches /api/v1/admin/orders[/{id}/status|advance|cancel]
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/admin/orders")

	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		h.listOrders(w)
	case len(segments) == 2 && r.Method == http.MethodPost:
		h.mutateOrder(w, r, segments[0], segments[1])
	default:
		writeErrorResponse(w, http.StatusNotFound, "Not found")
	}
}

func (h *AdminHandler) listOrders(w http.ResponseWriter) {
	orders, err := h.adminService.GetAdminOrders()
	if err != nil {
		h.logger.Error("Failed to get admin orders", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	writeJSONResponse(w, http.StatusOK, orders)
}

func (h *AdminHandler) mutateOrder(w http.ResponseWriter, r *http.Request, orderID, action string) {
	var (
		order models.AdminOrder
		err   error
	)

	switch action {
	case "status":
		var req statusUpdateRequest
		if err := parseRequestBody(r, &req); err != nil {
			h.logger.Warn("Invalid request body for status update", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		order, err = h.adminService.UpdateOrderStatus(orderID, req.Status, req.StaffID)
	case "advance":
		var req staffRequest
		if err := parseRequestBody(r, &req); err != nil {
			h.logger.Warn("Invalid request body for advance", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		order, err = h.adminService.AdvanceOrder(orderID, req.StaffID)
	case "cancel":
		var req staffRequest
		if err := parseRequestBody(r, &req); err != nil {
			h.logger.Warn("Invalid request body for cancel", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		order, err = h.adminService.CancelOrder(orderID, req.StaffID)
	default:
		writeErrorResponse(w, http.StatusNotFound, "Not found")
		return
	}

	if err != nil {
		h.logger.Warn("Order mutation failed", "order_id", orderID, "action", action, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, order)
}

type stockUpdateRequest struct {
	InStock bool `json:"in_stock"`
}

// MenuStock handles PUT /api/v1/admin/menu/{id}/stock
func (h *AdminHandler) MenuStock(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/admin/menu/")
	if len(segments) != 2 || segments[1] != "stock" || r.Method != http.MethodPut {
		writeErrorResponse(w, http.StatusNotFound, "Not found")
		return
	}

	var req stockUpdateRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for stock update", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.adminService.UpdateInventoryStatus(segments[0], req.InStock)
	if err != nil {
		h.logger.Warn("Failed to update stock status", "item_id", segments[0], "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, item)
}

// Sales handles GET /api/v1/admin/sales?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AdminHandler) Sales(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	from, err := parseDateParam(r, "from")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	// Make the range inclusive of the whole 'to' day.
	to = to.Add(24*time.Hour - time.Nanosecond)

	sales, err := h.adminService.GetSalesData(from, to)
	if err != nil {
		h.logger.Error("Failed to get sales data", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch sales data")
		return
	}
	writeJSONResponse(w, http.StatusOK, sales)
}

// TopItems handles GET /api/v1/admin/top-items?limit=N
func (h *AdminHandler) TopItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := defaultTopSellerLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	items, err := h.adminService.GetTopSellingItems(limit)
	if err != nil {
		h.logger.Error("Failed to get top selling items", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch top selling items")
		return
	}
	writeJSONResponse(w, http.StatusOK, items)
}

type addPointsRequest struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// Customers dispatches /api/v1/admin/customers[/{id}/points|orders|favorites]
func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r, "/api/v1/admin/customers")

	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		h.listCustomers(w)
	case len(segments) == 2 && segments[1] == "points" && r.Method == http.MethodPost:
		h.addPoints(w, r, segments[0])
	case len(segments) == 2 && segments[1] == "orders" && r.Method == http.MethodGet:
		h.customerOrders(w, segments[0])
	case len(segments) == 2 && segments[1] == "favorites" && r.Method == http.MethodGet:
		h.customerFavorites(w, segments[0])
	default:
		writeErrorResponse(w, http.StatusNotFound, "Not found")
	}
}

func (h *AdminHandler) listCustomers(w http.ResponseWriter) {
	customers, err := h.adminService.GetCustomers()
	if err != nil {
		h.logger.Error("Failed to get customers", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	writeJSONResponse(w, http.StatusOK, customers)
}

func (h *AdminHandler) addPoints(w http.ResponseWriter, r *http.Request, userID string) {
	var req addPointsRequest
	if err := parseRequestBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for add points", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.adminService.AddPoints(userID, req.Points, req.Reason); err != nil {
		h.logger.Warn("Failed to add points", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) customerOrders(w http.ResponseWriter, userID string) {
	orders, err := h.adminService.GetCustomerOrders(userID)
	if err != nil {
		h.logger.Warn("Failed to get customer orders", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, orders)
}

func (h *AdminHandler) customerFavorites(w http.ResponseWriter, userID string) {
	favorites, err := h.adminService.GetCustomerFavorites(userID)
	if err != nil {
		h.logger.Warn("Failed to get customer favorites", "user_id", userID, "error", err)
		writeErrorResponse(w, statusForError(err), err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, favorites)
}

// parseDateParam reads a required YYYY-MM-DD query parameter in local time.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, missingParamError(name)
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, invalidParamError(name)
	}
	return t, nil
}

type paramError string

func (e paramError) Error() string { return string(e) }

func missingParamError(name string) error {
	return paramError("missing required parameter: " + name)
}

func invalidParamError(name string) error {
	return paramError("invalid date parameter: " + name + " (expected YYYY-MM-DD)")
}
