package service

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"cafe-order/internal/repositories"
	"cafe-order/models"
	"cafe-order/pkg/logger"
)

// Chance that an in-stock item emits a synthetic low-stock alert, and
// the default preparation time reported on admin orders.
const (
	lowStockChance         = 0.2
	defaultPreparationTime = 15
)

type AdminServiceInterface interface {
	GetDashboardStats() (models.DashboardStats, error)
	GetInventoryAlerts() ([]models.InventoryAlert, error)
	GetAdminOrders() ([]models.AdminOrder, error)
	UpdateOrderStatus(orderID string, status models.OrderStatus, staffID string) (models.AdminOrder, error)
	AdvanceOrder(orderID, staffID string) (models.AdminOrder, error)
	CancelOrder(orderID, staffID string) (models.AdminOrder, error)
	UpdateInventoryStatus(itemID string, inStock bool) (models.MenuItem, error)
	GetSalesData(from, to time.Time) ([]models.SalesData, error)
	GetTopSellingItems(limit int) ([]models.TopSellingItem, error)
	AddPoints(userID string, points int, reason string) error
	GetCustomers() ([]models.CustomerSummary, error)
	GetCustomerOrders(userID string) ([]models.Order, error)
	GetCustomerFavorites(userID string) ([]models.MenuItem, error)
}

// AdminService is the store-side façade: status management, stock
// toggles, aggregation queries and customer operations.
type AdminService struct {
	orderRepo repositories.OrderRepositoryInterface
	menuRepo  repositories.MenuRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	rand      *rand.Rand
	logger    *logger.Logger
}

// NewAdminService creates the admin façade. rng drives the simulated
// low-stock alerts; tests pass a seeded source.
func NewAdminService(
	orderRepo repositories.OrderRepositoryInterface,
	menuRepo repositories.MenuRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	rng *rand.Rand,
	log *logger.Logger,
) *AdminService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AdminService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		userRepo:  userRepo,
		rand:      rng,
		logger:    log.WithComponent("admin_service"),
	}
}

// GetDashboardStats aggregates today's orders and compares them against
// yesterday's.
func (s *AdminService) GetDashboardStats() (models.DashboardStats, error) {
	s.logger.Info("Calculating dashboard stats")

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get orders for dashboard stats", "error", err)
		return models.DashboardStats{}, err
	}

	today := dayOf(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	var todaySales, todayCount, prevSales, prevCount int
	for _, order := range orders {
		switch dayOf(order.CreatedAt) {
		case today:
			todaySales += order.TotalAmount
			todayCount++
		case yesterday:
			prevSales += order.TotalAmount
			prevCount++
		}
	}

	stats := models.DashboardStats{
		TodaySales:  todaySales,
		TodayOrders: todayCount,
		PreviousDayComparison: models.DayComparison{
			Sales:  percentChange(todaySales, prevSales),
			Orders: percentChange(todayCount, prevCount),
		},
	}
	if todayCount > 0 {
		stats.AverageOrderValue = float64(todaySales) / float64(todayCount)
	}

	s.logger.Info("Dashboard stats calculated", "today_sales", todaySales, "today_orders", todayCount)
	return stats, nil
}

// GetInventoryAlerts reports every out-of-stock item, plus simulated
// low-stock alerts for in-stock items. The low-stock path is synthetic:
// there is no per-item stock count to read, so quantity and occurrence
// come from the injected random source.
func (s *AdminService) GetInventoryAlerts() ([]models.InventoryAlert, error) {
	items, err := s.menuRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get menu items for inventory alerts", "error", err)
		return nil, err
	}

	alerts := make([]models.InventoryAlert, 0)
	for _, item := range items {
		if !item.InStock {
			alerts = append(alerts, models.InventoryAlert{
				ItemID:       item.ID,
				ItemName:     item.Name,
				CurrentStock: 0,
				AlertType:    models.AlertOutOfStock,
			})
			continue
		}
		if s.rand.Float64() < lowStockChance {
			alerts = append(alerts, models.InventoryAlert{
				ItemID:       item.ID,
				ItemName:     item.Name,
				CurrentStock: s.rand.Intn(5) + 1,
				AlertType:    models.AlertLowStock,
			})
		}
	}

	s.logger.Info("Inventory alerts generated", "count", len(alerts))
	return alerts, nil
}

// GetAdminOrders returns all orders with the admin-only derived fields.
func (s *AdminService) GetAdminOrders() ([]models.AdminOrder, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get orders", "error", err)
		return nil, err
	}

	users, err := s.userRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get users for admin orders", "error", err)
		return nil, err
	}
	usersByID := make(map[string]models.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}

	adminOrders := make([]models.AdminOrder, len(orders))
	for i, order := range orders {
		adminOrders[i] = s.toAdminOrder(order, usersByID)
	}

	s.logger.Info("Retrieved admin orders", "count", len(adminOrders))
	return adminOrders, nil
}

// UpdateOrderStatus moves an order to the given status, rejecting
// transitions the state machine does not allow, and appends a history
// entry stamped with the acting staff id.
func (s *AdminService) UpdateOrderStatus(orderID string, status models.OrderStatus, staffID string) (models.AdminOrder, error) {
	s.logger.Info("Updating order status", "order_id", orderID, "status", status, "staff_id", staffID)

	if !models.ValidStatus(status) {
		return models.AdminOrder{}, fmt.Errorf("invalid order status: %s", status)
	}
	if staffID == "" {
		staffID = "staff001"
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		s.logger.Warn("Order not found for status update", "order_id", orderID, "error", err)
		return models.AdminOrder{}, err
	}

	if !models.CanTransition(order.Status, status) {
		s.logger.Warn("Rejected status transition",
			"order_id", orderID, "from", order.Status, "to", status)
		return models.AdminOrder{}, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, order.Status, status)
	}

	now := time.Now()
	order.Status = status
	order.UpdatedAt = now
	order.StatusHistory = append(order.StatusHistory, models.StatusChange{
		Status:    status,
		Timestamp: now,
		StaffID:   staffID,
	})

	if err := s.orderRepo.Update(orderID, order); err != nil {
		s.logger.Error("Failed to persist status update", "order_id", orderID, "error", err)
		return models.AdminOrder{}, err
	}

	s.logger.Info("Order status updated", "order_id", orderID, "status", status)
	return s.lookupAdminOrder(order)
}

// AdvanceOrder moves an order one step forward along the fixed status
// progression. Terminal states have no next step.
func (s *AdminService) AdvanceOrder(orderID, staffID string) (models.AdminOrder, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return models.AdminOrder{}, err
	}

	next, ok := models.NextStatus(order.Status)
	if !ok {
		s.logger.Warn("Order has no next status", "order_id", orderID, "status", order.Status)
		return models.AdminOrder{}, fmt.Errorf("%w: no next status from %s", models.ErrInvalidTransition, order.Status)
	}

	return s.UpdateOrderStatus(orderID, next, staffID)
}

// CancelOrder cancels an order. Only legal while the order is pending.
func (s *AdminService) CancelOrder(orderID, staffID string) (models.AdminOrder, error) {
	return s.UpdateOrderStatus(orderID, models.StatusCancelled, staffID)
}

// UpdateInventoryStatus flips a menu item's in-stock flag.
func (s *AdminService) UpdateInventoryStatus(itemID string, inStock bool) (models.MenuItem, error) {
	return s.menuRepo.SetInStock(itemID, inStock)
}

// GetSalesData groups completed orders inside the range by calendar
// day, with per-day totals and per-item rollups, ascending by date.
func (s *AdminService) GetSalesData(from, to time.Time) ([]models.SalesData, error) {
	s.logger.Info("Calculating sales data", "from", from, "to", to)

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get orders for sales data", "error", err)
		return nil, err
	}

	byDay := make(map[time.Time]*models.SalesData)
	for _, order := range orders {
		if order.Status != models.StatusCompleted {
			continue
		}
		if order.CreatedAt.Before(from) || order.CreatedAt.After(to) {
			continue
		}

		day := dayOf(order.CreatedAt)
		entry, ok := byDay[day]
		if !ok {
			entry = &models.SalesData{Date: day}
			byDay[day] = entry
		}

		entry.TotalAmount += order.TotalAmount
		entry.OrderCount++

		for _, item := range order.Items {
			merged := false
			for i := range entry.ItemsSold {
				if entry.ItemsSold[i].ItemID == item.MenuItem.ID {
					entry.ItemsSold[i].Quantity += item.Quantity
					entry.ItemsSold[i].Revenue += item.Subtotal
					merged = true
					break
				}
			}
			if !merged {
				entry.ItemsSold = append(entry.ItemsSold, models.ItemSold{
					ItemID:   item.MenuItem.ID,
					Quantity: item.Quantity,
					Revenue:  item.Subtotal,
				})
			}
		}
	}

	result := make([]models.SalesData, 0, len(byDay))
	for _, entry := range byDay {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	s.logger.Info("Sales data calculated", "days", len(result))
	return result, nil
}

// GetTopSellingItems ranks today's completed sales by quantity,
// descending, with item id as the stable secondary key. The result is
// truncated to limit.
func (s *AdminService) GetTopSellingItems(limit int) ([]models.TopSellingItem, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get orders for top sellers", "error", err)
		return nil, err
	}
	menuItems, err := s.menuRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get menu items for top sellers", "error", err)
		return nil, err
	}

	menuByID := make(map[string]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		menuByID[item.ID] = item
	}

	today := dayOf(time.Now())
	counts := make(map[string]int)
	for _, order := range orders {
		if order.Status != models.StatusCompleted || dayOf(order.CreatedAt) != today {
			continue
		}
		for _, item := range order.Items {
			counts[item.MenuItem.ID] += item.Quantity
		}
	}

	ranking := make([]models.TopSellingItem, 0, len(counts))
	for itemID, count := range counts {
		item, ok := menuByID[itemID]
		if !ok {
			s.logger.Warn("Sold item missing from menu", "item_id", itemID)
			continue
		}
		ranking = append(ranking, models.TopSellingItem{Item: item, SoldCount: count})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].SoldCount != ranking[j].SoldCount {
			return ranking[i].SoldCount > ranking[j].SoldCount
		}
		return ranking[i].Item.ID < ranking[j].Item.ID
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	s.logger.Info("Top selling items calculated", "count", len(ranking))
	return ranking, nil
}

// AddPoints adds points to a user's balance. The reason is logged but
// not persisted; there is no points ledger.
func (s *AdminService) AddPoints(userID string, points int, reason string) error {
	s.logger.Info("Adding points", "user_id", userID, "points", points, "reason", reason)

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	user.Points += points
	if err := s.userRepo.Update(userID, user); err != nil {
		s.logger.Error("Failed to persist point balance", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("Points added", "user_id", userID, "new_balance", user.Points)
	return nil
}

// GetCustomers lists users with their last visit, derived by matching
// orders on customer id.
func (s *AdminService) GetCustomers() ([]models.CustomerSummary, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get users", "error", err)
		return nil, err
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get orders for customer list", "error", err)
		return nil, err
	}

	lastVisit := make(map[string]time.Time)
	for _, order := range orders {
		if visit, ok := lastVisit[order.CustomerID]; !ok || order.CreatedAt.After(visit) {
			lastVisit[order.CustomerID] = order.CreatedAt
		}
	}

	summaries := make([]models.CustomerSummary, len(users))
	for i, user := range users {
		summaries[i] = models.CustomerSummary{User: user}
		if visit, ok := lastVisit[user.ID]; ok {
			visitCopy := visit
			summaries[i].LastVisit = &visitCopy
		}
	}

	s.logger.Info("Retrieved customers", "count", len(summaries))
	return summaries, nil
}

// GetCustomerOrders returns a customer's orders, newest first, capped
// at the ten most recent.
func (s *AdminService) GetCustomerOrders(userID string) ([]models.Order, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get orders for customer history", "error", err)
		return nil, err
	}

	history := make([]models.Order, 0)
	for _, order := range orders {
		if order.CustomerID == user.ID {
			history = append(history, order)
		}
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
	if len(history) > 10 {
		history = history[:10]
	}

	return history, nil
}

// GetCustomerFavorites returns the menu items a customer has favorited.
func (s *AdminService) GetCustomerFavorites(userID string) ([]models.MenuItem, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	menuItems, err := s.menuRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get menu items for favorites", "error", err)
		return nil, err
	}

	favoriteSet := make(map[string]bool, len(user.FavoriteItems))
	for _, id := range user.FavoriteItems {
		favoriteSet[id] = true
	}

	favorites := make([]models.MenuItem, 0, len(favoriteSet))
	for _, item := range menuItems {
		if favoriteSet[item.ID] {
			favorites = append(favorites, item)
		}
	}

	return favorites, nil
}

// lookupAdminOrder enriches one order, resolving its customer record.
func (s *AdminService) lookupAdminOrder(order models.Order) (models.AdminOrder, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return models.AdminOrder{}, err
	}
	usersByID := make(map[string]models.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}
	return s.toAdminOrder(order, usersByID), nil
}

// toAdminOrder derives the admin-only fields. Customer info comes from
// the user record when the customer id resolves, otherwise from the
// order's own snapshot fields.
func (s *AdminService) toAdminOrder(order models.Order, usersByID map[string]models.User) models.AdminOrder {
	info := models.CustomerInfo{
		Name:  order.CustomerName,
		Phone: order.CustomerPhone,
	}
	if user, ok := usersByID[order.CustomerID]; ok {
		info.Name = user.Name
		info.Email = user.Email
		if info.Phone == "" {
			info.Phone = user.Phone
		}
	}

	return models.AdminOrder{
		Order:           order,
		CustomerInfo:    info,
		PreparationTime: defaultPreparationTime,
		Notes:           order.Note,
	}
}

// dayOf truncates a timestamp to its local calendar day.
func dayOf(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// percentChange returns the percent change from prev to current, 0 when
// there is no previous value to compare against.
func percentChange(current, prev int) float64 {
	if prev == 0 {
		return 0
	}
	return (float64(current) - float64(prev)) / float64(prev) * 100
}
