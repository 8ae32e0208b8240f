package models

import "time"

// OrderType distinguishes in-store from takeout orders.
type OrderType string

const (
	OrderDineIn  OrderType = "dine-in"
	OrderTakeout OrderType = "takeout"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// nextStatus is the fixed lookup driving the advance operation.
// Terminal states have no entry.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

// NextStatus returns the state an order advances to from s. The second
// return value is false for completed and cancelled, which are terminal.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

// CanTransition reports whether moving an order from one status to
// another is legal: the single forward step, or cancellation while the
// order is still pending.
func CanTransition(from, to OrderStatus) bool {
	if from == StatusPending && to == StatusCancelled {
		return true
	}
	next, ok := nextStatus[from]
	return ok && next == to
}

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem embeds the menu item by value: the snapshot taken at order
// time, not a live reference to the menu collection.
type OrderItem struct {
	MenuItem       MenuItem          `json:"menu_item"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
	Subtotal       int               `json:"subtotal"`
}

// StatusChange is one entry of an order's append-only status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	StaffID   string      `json:"staff_id,omitempty"`
}

type Order struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone,omitempty"`
	Items         []OrderItem    `json:"items"`
	Type          OrderType      `json:"type"`
	Status        OrderStatus    `json:"status"`
	TotalAmount   int            `json:"total_amount"`
	EstimatedTime int            `json:"estimated_time,omitempty"` // minutes
	PickupTime    string         `json:"pickup_time,omitempty"`
	Note          string         `json:"note,omitempty"`
	StatusHistory []StatusChange `json:"status_history"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CartItem is an order line still in the cart, before checkout.
type CartItem struct {
	MenuItem       MenuItem          `json:"menu_item"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
}
