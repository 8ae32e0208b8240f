package models

import "time"

// CustomerInfo is the admin view of who placed an order.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// AdminOrder is an order enriched with admin-only derived fields.
type AdminOrder struct {
	Order
	CustomerInfo    CustomerInfo `json:"customer_info"`
	PreparationTime int          `json:"preparation_time,omitempty"` // minutes
	Notes           string       `json:"notes,omitempty"`
}

// ItemSold is the per-item rollup inside one day's sales data.
type ItemSold struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Revenue  int    `json:"revenue"`
}

// SalesData is one calendar day's aggregation over completed orders.
// Recomputed on every query, never persisted.
type SalesData struct {
	Date        time.Time  `json:"date"`
	TotalAmount int        `json:"total_amount"`
	OrderCount  int        `json:"order_count"`
	ItemsSold   []ItemSold `json:"items_sold"`
}

// DayComparison is the percent change against the previous day.
type DayComparison struct {
	Sales  float64 `json:"sales"`
	Orders float64 `json:"orders"`
}

type DashboardStats struct {
	TodaySales            int           `json:"today_sales"`
	TodayOrders           int           `json:"today_orders"`
	AverageOrderValue     float64       `json:"average_order_value"`
	PreviousDayComparison DayComparison `json:"previous_day_comparison"`
}

type AlertType string

const (
	AlertOutOfStock AlertType = "out-of-stock"
	AlertLowStock   AlertType = "low-stock"
)

type InventoryAlert struct {
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	CurrentStock int       `json:"current_stock"`
	AlertType    AlertType `json:"alert_type"`
}

// TopSellingItem pairs a menu item with its sold quantity for ranking.
type TopSellingItem struct {
	Item      MenuItem `json:"item"`
	SoldCount int      `json:"sold_count"`
}

// CustomerSummary is a user plus their last visit, derived from orders
// by customer id.
type CustomerSummary struct {
	User
	LastVisit *time.Time `json:"last_visit"`
}
