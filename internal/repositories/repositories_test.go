package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe-order/internal/store"
	"cafe-order/models"
	"cafe-order/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  logger.LevelError,
		Format: "text",
		Output: "stderr",
	})
}

func testMenuItem(id string, price int) models.MenuItem {
	return models.MenuItem{
		ID:       id,
		Name:     "Item " + id,
		Price:    price,
		Category: models.CategoryDrink,
		InStock:  true,
	}
}

func testOrder(id string, status models.OrderStatus, createdAt time.Time) models.Order {
	item := testMenuItem("1", 450)
	return models.Order{
		ID:           id,
		CustomerID:   "user001",
		CustomerName: "Taro Yamada",
		Type:         models.OrderDineIn,
		Status:       status,
		TotalAmount:  450,
		Items: []models.OrderItem{
			{MenuItem: item, Quantity: 1, Subtotal: 450},
		},
		StatusHistory: []models.StatusChange{
			{Status: models.StatusPending, Timestamp: createdAt, StaffID: "system"},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestOrderRepositoryAddAndGet(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	order := testOrder("ORDER-1", models.StatusPending, time.Now())
	require.NoError(t, repo.Add(order))

	got, err := repo.GetByID("ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, order.CustomerID, got.CustomerID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 450, got.TotalAmount)
}

func TestOrderRepositoryNewestFirst(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	require.NoError(t, repo.Add(testOrder("ORDER-1", models.StatusPending, time.Now().Add(-time.Hour))))
	require.NoError(t, repo.Add(testOrder("ORDER-2", models.StatusPending, time.Now())))

	orders, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORDER-2", orders[0].ID)
	assert.Equal(t, "ORDER-1", orders[1].ID)
}

func TestOrderRepositoryDuplicateID(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	order := testOrder("ORDER-1", models.StatusPending, time.Now())
	require.NoError(t, repo.Add(order))

	err := repo.Add(order)
	assert.ErrorIs(t, err, models.ErrDuplicateOrder)
}

func TestOrderRepositoryGetMissing(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	_, err := repo.GetByID("ORDER-404")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderRepositoryUpdate(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	order := testOrder("ORDER-1", models.StatusPending, time.Now())
	require.NoError(t, repo.Add(order))

	order.Status = models.StatusPreparing
	require.NoError(t, repo.Update("ORDER-1", order))

	got, err := repo.GetByID("ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
}

func TestOrderRepositoryUpdateMissing(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	err := repo.Update("ORDER-404", testOrder("ORDER-404", models.StatusPending, time.Now()))
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderRepositoryValidation(t *testing.T) {
	repo := NewOrderRepository(store.NewMemoryStore(), testLogger())

	tests := []struct {
		name   string
		mutate func(*models.Order)
	}{
		{"empty id", func(o *models.Order) { o.ID = "" }},
		{"empty customer name", func(o *models.Order) { o.CustomerName = "" }},
		{"no items", func(o *models.Order) { o.Items = nil }},
		{"zero quantity", func(o *models.Order) { o.Items[0].Quantity = 0 }},
		{"negative total", func(o *models.Order) { o.TotalAmount = -1 }},
		{"unknown status", func(o *models.Order) { o.Status = "closed" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testOrder("ORDER-X", models.StatusPending, time.Now())
			tt.mutate(&order)
			assert.Error(t, repo.Add(order))
		})
	}
}

func TestMenuRepositorySetInStock(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, store.SeedIfEmpty(s, testLogger()))
	repo := NewMenuRepository(s, testLogger())

	item, err := repo.SetInStock("1", false)
	require.NoError(t, err)
	assert.False(t, item.InStock)

	got, err := repo.GetByID("1")
	require.NoError(t, err)
	assert.False(t, got.InStock)

	_, err = repo.SetInStock("999", true)
	assert.ErrorIs(t, err, models.ErrMenuItemNotFound)
}

func TestMenuRepositoryEmptyStore(t *testing.T) {
	repo := NewMenuRepository(store.NewMemoryStore(), testLogger())

	items, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.GetByID("1")
	assert.ErrorIs(t, err, models.ErrMenuItemNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, store.SeedIfEmpty(s, testLogger()))
	repo := NewUserRepository(s, testLogger())

	user, err := repo.GetByID("user001")
	require.NoError(t, err)

	user.Points += 100
	require.NoError(t, repo.Update("user001", user))

	got, err := repo.GetByID("user001")
	require.NoError(t, err)
	assert.Equal(t, user.Points, got.Points)
}

func TestUserRepositoryRejectsNegativePoints(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, store.SeedIfEmpty(s, testLogger()))
	repo := NewUserRepository(s, testLogger())

	user, err := repo.GetByID("user001")
	require.NoError(t, err)

	user.Points = -10
	assert.Error(t, repo.Update("user001", user))
}

func TestCartRepositoryRoundTrip(t *testing.T) {
	repo := NewCartRepository(store.NewMemoryStore(), testLogger())

	items, err := repo.Get()
	require.NoError(t, err)
	assert.Empty(t, items)

	cart := []models.CartItem{
		{MenuItem: testMenuItem("1", 450), Quantity: 2, Customizations: map[string]string{"size": "L"}},
	}
	require.NoError(t, repo.Save(cart))

	got, err := repo.Get()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "L", got[0].Customizations["size"])
}
