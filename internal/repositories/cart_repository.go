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

type CartRepositoryInterface interface {
	Get() ([]models.CartItem, error)
	Save(items []models.CartItem) error
}

// CartRepository holds the single shared cart. There is one cart per
// deployment, not per user.
type CartRepository struct {
	store  store.Store
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewCartRepository(s store.Store, log *logger.Logger) *CartRepository {
	return &CartRepository{
		store:  s,
		logger: log.WithComponent("cart_repository"),
	}
}

func (r *CartRepository) Get() ([]models.CartItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	data, err := r.store.Get(store.KeyCart)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []models.CartItem{}, nil
		}
		r.logger.Error("Failed to load cart", "error", err)
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart collection: %v", err)
	}
	return items, nil
}

func (r *CartRepository) Save(items []models.CartItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart collection: %v", err)
	}
	if err := r.store.Put(store.KeyCart, data); err != nil {
		r.logger.Error("Failed to save cart", "error", err)
		return err
	}

	r.logger.Debug("Cart saved", "count", len(items))
	return nil
}
