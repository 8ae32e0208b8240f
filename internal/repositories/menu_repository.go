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

type MenuRepositoryInterface interface {
	GetAll() ([]models.MenuItem, error)
	GetByID(id string) (models.MenuItem, error)
	SetInStock(id string, inStock bool) (models.MenuItem, error)
}

type MenuRepository struct {
	store  store.Store
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewMenuRepository(s store.Store, log *logger.Logger) *MenuRepository {
	return &MenuRepository{
		store:  s,
		logger: log.WithComponent("menu_repository"),
	}
}

// GetAll retrieves the whole menu collection.
func (r *MenuRepository) GetAll() ([]models.MenuItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	items, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load menu items", "error", err)
		return nil, err
	}

	r.logger.Debug("Retrieved menu items", "count", len(items))
	return items, nil
}

// GetByID retrieves a single menu item.
func (r *MenuRepository) GetByID(id string) (models.MenuItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	items, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load menu items", "error", err)
		return models.MenuItem{}, err
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	r.logger.Warn("Menu item not found", "item_id", id)
	return models.MenuItem{}, fmt.Errorf("%w: %s", models.ErrMenuItemNotFound, id)
}

// SetInStock flips the in-stock flag of one item and returns the
// updated record.
func (r *MenuRepository) SetInStock(id string, inStock bool) (models.MenuItem, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	items, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load menu items", "error", err)
		return models.MenuItem{}, err
	}

	for i := range items {
		if items[i].ID == id {
			items[i].InStock = inStock
			if err := r.save(items); err != nil {
				r.logger.Error("Failed to save menu items", "error", err, "item_id", id)
				return models.MenuItem{}, err
			}
			r.logger.Info("Updated stock status", "item_id", id, "in_stock", inStock)
			return items[i], nil
		}
	}

	r.logger.Warn("Menu item not found for stock update", "item_id", id)
	return models.MenuItem{}, fmt.Errorf("%w: %s", models.ErrMenuItemNotFound, id)
}

// load is the single decode boundary for the menu collection. A missing
// key is the empty menu.
func (r *MenuRepository) load() ([]models.MenuItem, error) {
	data, err := r.store.Get(store.KeyMenuItems)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []models.MenuItem{}, nil
		}
		return nil, err
	}

	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu collection: %v", err)
	}
	return items, nil
}

func (r *MenuRepository) save(items []models.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode menu collection: %v", err)
	}
	return r.store.Put(store.KeyMenuItems, data)
}
