package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe-order/internal/repositories"
	"cafe-order/internal/store"
	"cafe-order/models"
)

// newAdminFixture builds an admin service over a store seeded with the
// fixture menu and users but no orders, so aggregation tests control
// exactly which orders exist.
func newAdminFixture(t *testing.T, seed int64) (*AdminService, repositories.OrderRepositoryInterface) {
	t.Helper()

	s := store.NewMemoryStore()
	menuData, err := json.Marshal(store.SeedMenuItems())
	require.NoError(t, err)
	require.NoError(t, s.Put(store.KeyMenuItems, menuData))
	userData, err := json.Marshal(store.SeedUsers())
	require.NoError(t, err)
	require.NoError(t, s.Put(store.KeyUsers, userData))

	log := testLogger()
	orderRepo := repositories.NewOrderRepository(s, log)
	svc := NewAdminService(
		orderRepo,
		repositories.NewMenuRepository(s, log),
		repositories.NewUserRepository(s, log),
		rand.New(rand.NewSource(seed)),
		log,
	)
	return svc, orderRepo
}

func adminTestOrder(id, customerID string, status models.OrderStatus, createdAt time.Time, items []models.OrderItem) models.Order {
	total := 0
	for _, item := range items {
		total += item.Subtotal
	}
	return models.Order{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: "Test Customer",
		Type:         models.OrderDineIn,
		Status:       status,
		TotalAmount:  total,
		Items:        items,
		StatusHistory: []models.StatusChange{
			{Status: models.StatusPending, Timestamp: createdAt, StaffID: "system"},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func orderLine(menuItemID string, quantity, subtotal int) models.OrderItem {
	return models.OrderItem{
		MenuItem: models.MenuItem{ID: menuItemID, Name: "Item " + menuItemID, Price: subtotal / quantity, Category: models.CategoryDrink, InStock: true},
		Quantity: quantity,
		Subtotal: subtotal,
	}
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	svc, _ := newAdminFixture(t, 1)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TodaySales)
	assert.Equal(t, 0, stats.TodayOrders)
	assert.Equal(t, 0.0, stats.AverageOrderValue)
	assert.Equal(t, 0.0, stats.PreviousDayComparison.Sales)
	assert.Equal(t, 0.0, stats.PreviousDayComparison.Orders)
}

func TestDashboardStats(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusCompleted, now,
		[]models.OrderItem{orderLine("1", 2, 1000)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-B", "user002", models.StatusPending, now,
		[]models.OrderItem{orderLine("2", 1, 500)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-C", "user001", models.StatusCompleted, yesterday,
		[]models.OrderItem{orderLine("1", 2, 1000)})))

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 1500, stats.TodaySales)
	assert.Equal(t, 2, stats.TodayOrders)
	assert.InDelta(t, 750.0, stats.AverageOrderValue, 0.001)
	assert.InDelta(t, 50.0, stats.PreviousDayComparison.Sales, 0.001)
	assert.InDelta(t, 100.0, stats.PreviousDayComparison.Orders, 0.001)
}

func TestSalesData(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)

	now := time.Now()
	dayBefore := now.AddDate(0, 0, -2)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusCompleted, now,
		[]models.OrderItem{orderLine("1", 2, 900), orderLine("7", 1, 480)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-B", "user002", models.StatusCompleted, now,
		[]models.OrderItem{orderLine("1", 1, 450)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-C", "user001", models.StatusCompleted, dayBefore,
		[]models.OrderItem{orderLine("2", 1, 380)})))
	// Pending orders never count toward sales.
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-D", "user002", models.StatusPending, now,
		[]models.OrderItem{orderLine("3", 1, 500)})))
	// Out of range.
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-E", "user001", models.StatusCompleted, now.AddDate(0, 0, -30),
		[]models.OrderItem{orderLine("1", 1, 450)})))

	sales, err := svc.GetSalesData(now.AddDate(0, 0, -7), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	// Ascending by date, one entry per day.
	assert.True(t, sales[0].Date.Before(sales[1].Date))

	older := sales[0]
	assert.Equal(t, 380, older.TotalAmount)
	assert.Equal(t, 1, older.OrderCount)

	today := sales[1]
	assert.Equal(t, 1830, today.TotalAmount)
	assert.Equal(t, 2, today.OrderCount)

	// Item "1" appears in two orders and must be merged into one rollup.
	var itemOne models.ItemSold
	for _, sold := range today.ItemsSold {
		if sold.ItemID == "1" {
			itemOne = sold
		}
	}
	assert.Equal(t, 3, itemOne.Quantity)
	assert.Equal(t, 1350, itemOne.Revenue)
}

func TestTopSellingItems(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)

	now := time.Now()
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusCompleted, now,
		[]models.OrderItem{orderLine("2", 5, 1900), orderLine("7", 3, 1440)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-B", "user002", models.StatusCompleted, now,
		[]models.OrderItem{orderLine("3", 3, 1500)})))
	// Not completed, must not count.
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-C", "user001", models.StatusPreparing, now,
		[]models.OrderItem{orderLine("1", 10, 4500)})))
	// Completed but yesterday, must not count.
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-D", "user001", models.StatusCompleted, now.AddDate(0, 0, -1),
		[]models.OrderItem{orderLine("1", 10, 4500)})))

	top, err := svc.GetTopSellingItems(5)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// Quantity 5 first; the 3-3 tie breaks on item id ascending.
	assert.Equal(t, "2", top[0].Item.ID)
	assert.Equal(t, 5, top[0].SoldCount)
	assert.Equal(t, "3", top[1].Item.ID)
	assert.Equal(t, "7", top[2].Item.ID)

	// The ranked items carry the catalog record, not the order snapshot.
	assert.Equal(t, "Iced Coffee", top[0].Item.Name)

	limited, err := svc.GetTopSellingItems(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "2", limited[0].Item.ID)

	_, err = svc.GetTopSellingItems(0)
	assert.Error(t, err)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusPending, time.Now(),
		[]models.OrderItem{orderLine("1", 1, 450)})))

	updated, err := svc.UpdateOrderStatus("ORDER-A", models.StatusPreparing, "staff042")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, models.StatusPreparing, updated.StatusHistory[1].Status)
	assert.Equal(t, "staff042", updated.StatusHistory[1].StaffID)

	// Customer info resolves from the user record.
	assert.Equal(t, "Taro Yamada", updated.CustomerInfo.Name)

	// Skipping a step is rejected and nothing is persisted.
	_, err = svc.UpdateOrderStatus("ORDER-A", models.StatusCompleted, "staff042")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	got, err := orderRepo.GetByID("ORDER-A")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
	assert.Len(t, got.StatusHistory, 2)
}

func TestUpdateOrderStatusDefaultsStaffID(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusPending, time.Now(),
		[]models.OrderItem{orderLine("1", 1, 450)})))

	updated, err := svc.UpdateOrderStatus("ORDER-A", models.StatusPreparing, "")
	require.NoError(t, err)
	assert.Equal(t, "staff001", updated.StatusHistory[1].StaffID)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	svc, _ := newAdminFixture(t, 1)

	_, err := svc.UpdateOrderStatus("ORDER-404", models.StatusPreparing, "staff001")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestCancelOrder(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusPending, time.Now(),
		[]models.OrderItem{orderLine("1", 1, 450)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-B", "user001", models.StatusPreparing, time.Now(),
		[]models.OrderItem{orderLine("1", 1, 450)})))

	cancelled, err := svc.CancelOrder("ORDER-A", "staff001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Cancellation is only legal from pending.
	_, err = svc.CancelOrder("ORDER-B", "staff001")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestAdvanceOrder(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusPending, time.Now(),
		[]models.OrderItem{orderLine("1", 1, 450)})))

	for _, want := range []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusCompleted} {
		updated, err := svc.AdvanceOrder("ORDER-A", "staff001")
		require.NoError(t, err)
		assert.Equal(t, want, updated.Status)
	}

	// Completed is terminal.
	_, err := svc.AdvanceOrder("ORDER-A", "staff001")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestInventoryAlerts(t *testing.T) {
	svc, _ := newAdminFixture(t, 7)

	alerts, err := svc.GetInventoryAlerts()
	require.NoError(t, err)

	// The fixture menu has exactly one out-of-stock item.
	var outOfStock []models.InventoryAlert
	for _, alert := range alerts {
		switch alert.AlertType {
		case models.AlertOutOfStock:
			outOfStock = append(outOfStock, alert)
		case models.AlertLowStock:
			assert.GreaterOrEqual(t, alert.CurrentStock, 1)
			assert.LessOrEqual(t, alert.CurrentStock, 5)
		default:
			t.Fatalf("unexpected alert type %q", alert.AlertType)
		}
	}
	require.Len(t, outOfStock, 1)
	assert.Equal(t, "9", outOfStock[0].ItemID)
	assert.Equal(t, 0, outOfStock[0].CurrentStock)
}

func TestInventoryAlertsDeterministic(t *testing.T) {
	first, _ := newAdminFixture(t, 99)
	second, _ := newAdminFixture(t, 99)

	a, err := first.GetInventoryAlerts()
	require.NoError(t, err)
	b, err := second.GetInventoryAlerts()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestUpdateInventoryStatus(t *testing.T) {
	svc, _ := newAdminFixture(t, 1)

	item, err := svc.UpdateInventoryStatus("1", false)
	require.NoError(t, err)
	assert.False(t, item.InStock)

	item, err = svc.UpdateInventoryStatus("9", true)
	require.NoError(t, err)
	assert.True(t, item.InStock)

	_, err = svc.UpdateInventoryStatus("999", true)
	assert.ErrorIs(t, err, models.ErrMenuItemNotFound)
}

func TestAddPoints(t *testing.T) {
	svc, _ := newAdminFixture(t, 1)

	before, err := svc.userRepo.GetByID("user002")
	require.NoError(t, err)

	require.NoError(t, svc.AddPoints("user002", 100, "drink purchase"))

	after, err := svc.userRepo.GetByID("user002")
	require.NoError(t, err)
	assert.Equal(t, before.Points+100, after.Points)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.FavoriteItems, after.FavoriteItems)

	assert.ErrorIs(t, svc.AddPoints("nobody", 100, "x"), models.ErrUserNotFound)
}

func TestGetCustomers(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)

	visit := time.Now().Add(-2 * time.Hour)
	later := time.Now().Add(-30 * time.Minute)
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-A", "user001", models.StatusCompleted, visit,
		[]models.OrderItem{orderLine("1", 1, 450)})))
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-B", "user001", models.StatusCompleted, later,
		[]models.OrderItem{orderLine("1", 1, 450)})))

	customers, err := svc.GetCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 2)

	byID := make(map[string]models.CustomerSummary, len(customers))
	for _, c := range customers {
		byID[c.User.ID] = c
	}

	// user001 ordered twice; the later visit wins.
	require.NotNil(t, byID["user001"].LastVisit)
	assert.True(t, byID["user001"].LastVisit.Equal(later))

	// user002 has no orders.
	assert.Nil(t, byID["user002"].LastVisit)
}

func TestGetCustomerOrders(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)

	now := time.Now()
	for i := 0; i < 12; i++ {
		require.NoError(t, orderRepo.Add(adminTestOrder(
			fmt.Sprintf("ORDER-%02d", i), "user001", models.StatusCompleted,
			now.Add(-time.Duration(i)*time.Hour),
			[]models.OrderItem{orderLine("1", 1, 450)})))
	}
	require.NoError(t, orderRepo.Add(adminTestOrder("ORDER-OTHER", "user002", models.StatusCompleted, now,
		[]models.OrderItem{orderLine("2", 1, 380)})))

	history, err := svc.GetCustomerOrders("user001")
	require.NoError(t, err)

	// Capped at ten, newest first, only user001's orders.
	require.Len(t, history, 10)
	assert.Equal(t, "ORDER-00", history[0].ID)
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].CreatedAt.After(history[i].CreatedAt))
		assert.Equal(t, "user001", history[i].CustomerID)
	}

	_, err = svc.GetCustomerOrders("nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestGetCustomerFavorites(t *testing.T) {
	svc, _ := newAdminFixture(t, 1)

	favorites, err := svc.GetCustomerFavorites("user001")
	require.NoError(t, err)
	require.Len(t, favorites, 3)

	ids := make([]string, len(favorites))
	for i, item := range favorites {
		ids[i] = item.ID
	}
	assert.ElementsMatch(t, []string{"1", "3", "7"}, ids)
}

func TestGetAdminOrders(t *testing.T) {
	svc, orderRepo := newAdminFixture(t, 1)

	order := adminTestOrder("ORDER-A", "user001", models.StatusPending, time.Now(),
		[]models.OrderItem{orderLine("1", 1, 450)})
	order.Note = "no ice"
	require.NoError(t, orderRepo.Add(order))

	unknown := adminTestOrder("ORDER-B", "walk-in", models.StatusPending, time.Now(),
		[]models.OrderItem{orderLine("2", 1, 380)})
	unknown.CustomerName = "Walk-in Guest"
	require.NoError(t, orderRepo.Add(unknown))

	orders, err := svc.GetAdminOrders()
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byID := make(map[string]models.AdminOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	// Known customer id resolves to the user record.
	assert.Equal(t, "Taro Yamada", byID["ORDER-A"].CustomerInfo.Name)
	assert.Equal(t, "taro@example.com", byID["ORDER-A"].CustomerInfo.Email)
	assert.Equal(t, "no ice", byID["ORDER-A"].Notes)
	assert.Equal(t, defaultPreparationTime, byID["ORDER-A"].PreparationTime)

	// Unknown customer id falls back to the order's own fields.
	assert.Equal(t, "Walk-in Guest", byID["ORDER-B"].CustomerInfo.Name)
	assert.Empty(t, byID["ORDER-B"].CustomerInfo.Email)
}
