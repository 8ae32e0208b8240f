package router

import (
	"net/http"

	"cafe-order/internal/handler"
)

// NewRouter wires the customer and admin API surfaces onto one mux.
func NewRouter(
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	customerHandler *handler.CustomerHandler,
	adminHandler *handler.AdminHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Customer surface
	mux.HandleFunc("/api/v1/menu", menuHandler.List)
	mux.HandleFunc("/api/v1/menu/", menuHandler.Get)
	mux.HandleFunc("/api/v1/orders", orderHandler.Collection)
	mux.HandleFunc("/api/v1/orders/", orderHandler.Get)
	mux.HandleFunc("/api/v1/users/", customerHandler.Users)
	mux.HandleFunc("/api/v1/cart", customerHandler.Cart)

	// Admin surface
	mux.HandleFunc("/api/v1/admin/dashboard", adminHandler.Dashboard)
	mux.HandleFunc("/api/v1/admin/alerts", adminHandler.Alerts)
	mux.HandleFunc("/api/v1/admin/orders", adminHandler.Orders)
	mux.HandleFunc("/api/v1/admin/orders/", adminHandler.Orders)
	mux.HandleFunc("/api/v1/admin/menu/", adminHandler.MenuStock)
	mux.HandleFunc("/api/v1/admin/sales", adminHandler.Sales)
	mux.HandleFunc("/api/v1/admin/top-items", adminHandler.TopItems)
	mux.HandleFunc("/api/v1/admin/customers", adminHandler.Customers)
	mux.HandleFunc("/api/v1/admin/customers/", adminHandler.Customers)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}
