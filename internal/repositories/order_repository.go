package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cafe-order/internal/store"
	"cafe-order/models"
	"cafe-order/pkg/logger"
)

type OrderRepositoryInterface interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (models.Order, error)
	Add(order models.Order) error
	Update(id string, order models.Order) error
}

type OrderRepository struct {
	store  store.Store
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewOrderRepository(s store.Store, log *logger.Logger) *OrderRepository {
	return &OrderRepository{
		store:  s,
		logger: log.WithComponent("order_repository"),
	}
}

// GetAll retrieves all orders, newest first. New orders are prepended
// on Add, so storage order is already newest-first.
func (r *OrderRepository) GetAll() ([]models.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	orders, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load orders", "error", err)
		return nil, err
	}

	r.logger.Debug("Retrieved orders", "count", len(orders))
	return orders, nil
}

// GetByID retrieves a single order by ID.
func (r *OrderRepository) GetByID(id string) (models.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	orders, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load orders", "error", err)
		return models.Order{}, err
	}

	for _, order := range orders {
		if order.ID == id {
			return order, nil
		}
	}

	r.logger.Warn("Order not found", "order_id", id)
	return models.Order{}, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
}

// Add validates and prepends a new order.
func (r *OrderRepository) Add(order models.Order) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.validateOrder(order); err != nil {
		r.logger.Error("Failed to validate order", "error", err, "order_id", order.ID)
		return err
	}

	orders, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load orders", "error", err)
		return err
	}

	for _, existing := range orders {
		if existing.ID == order.ID {
			r.logger.Warn("Attempted to add duplicate order", "order_id", order.ID)
			return fmt.Errorf("%w: %s", models.ErrDuplicateOrder, order.ID)
		}
	}

	orders = append([]models.Order{order}, orders...)
	if err := r.save(orders); err != nil {
		r.logger.Error("Failed to save orders after add", "error", err)
		return err
	}

	r.logger.Info("Added new order", "order_id", order.ID, "customer_id", order.CustomerID)
	return nil
}

// Update replaces an existing order in place.
func (r *OrderRepository) Update(id string, order models.Order) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.validateOrder(order); err != nil {
		r.logger.Error("Failed to validate order", "error", err, "order_id", id)
		return err
	}

	orders, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load orders", "error", err)
		return err
	}

	for i := range orders {
		if orders[i].ID == id {
			order.ID = id
			orders[i] = order
			if err := r.save(orders); err != nil {
				r.logger.Error("Failed to save orders after update", "error", err, "order_id", id)
				return err
			}
			r.logger.Info("Updated order", "order_id", id, "status", order.Status)
			return nil
		}
	}

	r.logger.Warn("Attempted to update non-existent order", "order_id", id)
	return fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
}

// load is the single decode boundary for the orders collection.
// Timestamps come back as time.Time; a missing key is the empty list.
func (r *OrderRepository) load() ([]models.Order, error) {
	data, err := r.store.Get(store.KeyOrders)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []models.Order{}, nil
		}
		return nil, err
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders collection: %v", err)
	}
	return orders, nil
}

func (r *OrderRepository) save(orders []models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to encode orders collection: %v", err)
	}
	return r.store.Put(store.KeyOrders, data)
}

// validateOrder validates order data
func (r *OrderRepository) validateOrder(order models.Order) error {
	if order.ID == "" {
		return fmt.Errorf("order ID cannot be empty")
	}
	if order.CustomerName == "" {
		return fmt.Errorf("customer name cannot be empty")
	}
	if !models.ValidStatus(order.Status) {
		return fmt.Errorf("invalid order status: %s", order.Status)
	}
	if order.TotalAmount < 0 {
		return fmt.Errorf("total amount cannot be negative")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order must have at least one item")
	}

	for i, item := range order.Items {
		if item.MenuItem.ID == "" {
			return fmt.Errorf("item %d: menu item ID cannot be empty", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
	}

	return nil
}
