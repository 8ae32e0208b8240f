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

type UserRepositoryInterface interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (models.User, error)
	Update(id string, user models.User) error
}

type UserRepository struct {
	store  store.Store
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewUserRepository(s store.Store, log *logger.Logger) *UserRepository {
	return &UserRepository{
		store:  s,
		logger: log.WithComponent("user_repository"),
	}
}

func (r *UserRepository) GetAll() ([]models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load users", "error", err)
		return nil, err
	}

	r.logger.Debug("Retrieved users", "count", len(users))
	return users, nil
}

func (r *UserRepository) GetByID(id string) (models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load users", "error", err)
		return models.User{}, err
	}

	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}

	r.logger.Warn("User not found", "user_id", id)
	return models.User{}, fmt.Errorf("%w: %s", models.ErrUserNotFound, id)
}

// Update replaces a user record. Point balances must stay non-negative.
func (r *UserRepository) Update(id string, user models.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if user.Points < 0 {
		return fmt.Errorf("points balance cannot be negative")
	}

	users, err := r.load()
	if err != nil {
		r.logger.Error("Failed to load users", "error", err)
		return err
	}

	for i := range users {
		if users[i].ID == id {
			user.ID = id
			users[i] = user
			if err := r.save(users); err != nil {
				r.logger.Error("Failed to save users after update", "error", err, "user_id", id)
				return err
			}
			r.logger.Info("Updated user", "user_id", id)
			return nil
		}
	}

	r.logger.Warn("Attempted to update non-existent user", "user_id", id)
	return fmt.Errorf("%w: %s", models.ErrUserNotFound, id)
}

// load is the single decode boundary for the users collection.
func (r *UserRepository) load() ([]models.User, error) {
	data, err := r.store.Get(store.KeyUsers)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []models.User{}, nil
		}
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users collection: %v", err)
	}
	return users, nil
}

func (r *UserRepository) save(users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users collection: %v", err)
	}
	return r.store.Put(store.KeyUsers, data)
}
