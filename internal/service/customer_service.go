package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"cafe-order/internal/repositories"
	"cafe-order/models"
	"cafe-order/pkg/logger"
)

// Estimated preparation time drawn at order creation, in minutes.
const (
	minEstimatedTime = 10
	maxEstimatedTime = 25
)

type CreateOrderItemRequest struct {
	MenuItemID     string            `json:"menu_item_id"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

type CreateOrderRequest struct {
	CustomerID    string                   `json:"customer_id"`
	CustomerName  string                   `json:"customer_name"`
	CustomerPhone string                   `json:"customer_phone,omitempty"`
	Type          models.OrderType         `json:"type"`
	Items         []CreateOrderItemRequest `json:"items"`
	PickupTime    string                   `json:"pickup_time,omitempty"`
	Note          string                   `json:"note,omitempty"`
}

// UpdateUserRequest carries a partial user update; nil fields are left
// unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type CustomerServiceInterface interface {
	GetMenuItems() ([]models.MenuItem, error)
	GetMenuItem(id string) (models.MenuItem, error)
	GetOrders() ([]models.Order, error)
	GetOrderByID(id string) (models.Order, error)
	CreateOrder(req CreateOrderRequest) (models.Order, error)
	GetUser(id string) (models.User, error)
	UpdateUser(id string, req UpdateUserRequest) (models.User, error)
	GetPointCard(userID string) (models.PointCard, error)
	ToggleFavorite(userID, itemID string) ([]string, error)
	GetFavorites(userID string) ([]string, error)
	GetCart() ([]models.CartItem, error)
	SaveCart(items []models.CartItem) error
}

// CustomerService is the customer-facing façade over the collections.
type CustomerService struct {
	orderRepo repositories.OrderRepositoryInterface
	menuRepo  repositories.MenuRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	cartRepo  repositories.CartRepositoryInterface
	rand      *rand.Rand
	logger    *logger.Logger
}

// NewCustomerService creates the customer façade. rng drives the
// estimated-time draw; tests pass a seeded source.
func NewCustomerService(
	orderRepo repositories.OrderRepositoryInterface,
	menuRepo repositories.MenuRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cartRepo repositories.CartRepositoryInterface,
	rng *rand.Rand,
	log *logger.Logger,
) *CustomerService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CustomerService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		userRepo:  userRepo,
		cartRepo:  cartRepo,
		rand:      rng,
		logger:    log.WithComponent("customer_service"),
	}
}

// GetMenuItems returns the whole menu.
func (s *CustomerService) GetMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

// GetMenuItem returns a single menu item.
func (s *CustomerService) GetMenuItem(id string) (models.MenuItem, error) {
	if id == "" {
		return models.MenuItem{}, fmt.Errorf("menu item ID is required")
	}
	return s.menuRepo.GetByID(id)
}

// GetOrders returns all orders, newest first.
func (s *CustomerService) GetOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID returns a single order.
func (s *CustomerService) GetOrderByID(id string) (models.Order, error) {
	if id == "" {
		return models.Order{}, fmt.Errorf("order ID is required")
	}
	return s.orderRepo.GetByID(id)
}

// CreateOrder validates the request, snapshots the menu items, computes
// subtotals and the total, and persists a new pending order with its
// initial history entry.
func (s *CustomerService) CreateOrder(req CreateOrderRequest) (models.Order, error) {
	s.logger.Info("Creating new order", "customer_id", req.CustomerID, "items", len(req.Items))

	if err := s.validateOrderData(req); err != nil {
		s.logger.Warn("Create failed: invalid data", "error", err)
		return models.Order{}, err
	}

	now := time.Now()
	order := models.Order{
		ID:            fmt.Sprintf("ORDER-%s", uuid.NewString()),
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Type:          req.Type,
		Status:        models.StatusPending,
		PickupTime:    req.PickupTime,
		Note:          req.Note,
		EstimatedTime: s.rand.Intn(maxEstimatedTime-minEstimatedTime+1) + minEstimatedTime,
		StatusHistory: []models.StatusChange{
			{Status: models.StatusPending, Timestamp: now, StaffID: "system"},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Items:     make([]models.OrderItem, len(req.Items)),
	}

	for i, item := range req.Items {
		menuItem, err := s.menuRepo.GetByID(item.MenuItemID)
		if err != nil {
			s.logger.Warn("Menu item not found for order", "menu_item_id", item.MenuItemID, "error", err)
			return models.Order{}, err
		}

		subtotal := itemSubtotal(menuItem, item.Quantity, item.Customizations)
		order.Items[i] = models.OrderItem{
			MenuItem:       menuItem,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
			Subtotal:       subtotal,
		}
		order.TotalAmount += subtotal
	}

	if err := s.orderRepo.Add(order); err != nil {
		s.logger.Error("Failed to add order", "error", err)
		return models.Order{}, err
	}

	s.logger.Info("Order created", "order_id", order.ID, "total_amount", order.TotalAmount)
	return order, nil
}

// GetUser returns a user record.
func (s *CustomerService) GetUser(id string) (models.User, error) {
	if id == "" {
		return models.User{}, fmt.Errorf("user ID is required")
	}
	return s.userRepo.GetByID(id)
}

// UpdateUser applies a partial update and returns the new record.
func (s *CustomerService) UpdateUser(id string, req UpdateUserRequest) (models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return models.User{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(id, user); err != nil {
		return models.User{}, err
	}

	s.logger.Info("User updated", "user_id", id)
	return user, nil
}

// GetPointCard builds the loyalty card view for a user.
func (s *CustomerService) GetPointCard(userID string) (models.PointCard, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return models.PointCard{}, err
	}

	return models.PointCard{
		UserID: user.ID,
		Points: user.Points,
		Tier:   models.TierForPoints(user.Points),
		QRCode: fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=CAFE-USER-%s", user.ID),
	}, nil
}

// ToggleFavorite adds or removes an item from a user's favorites and
// returns the new list.
func (s *CustomerService) ToggleFavorite(userID, itemID string) ([]string, error) {
	if _, err := s.menuRepo.GetByID(itemID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	found := false
	favorites := make([]string, 0, len(user.FavoriteItems)+1)
	for _, id := range user.FavoriteItems {
		if id == itemID {
			found = true
			continue
		}
		favorites = append(favorites, id)
	}
	if !found {
		favorites = append(favorites, itemID)
	}

	user.FavoriteItems = favorites
	if err := s.userRepo.Update(userID, user); err != nil {
		return nil, err
	}

	s.logger.Info("Toggled favorite", "user_id", userID, "item_id", itemID, "favorited", !found)
	return favorites, nil
}

// GetFavorites returns a user's favorite item ids.
func (s *CustomerService) GetFavorites(userID string) ([]string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return user.FavoriteItems, nil
}

// GetCart returns the current cart contents.
func (s *CustomerService) GetCart() ([]models.CartItem, error) {
	return s.cartRepo.Get()
}

// SaveCart replaces the cart contents.
func (s *CustomerService) SaveCart(items []models.CartItem) error {
	for i, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("cart item %d: quantity must be positive", i+1)
		}
	}
	return s.cartRepo.Save(items)
}

// validateOrderData validates the data for order creation
func (s *CustomerService) validateOrderData(req CreateOrderRequest) error {
	if req.CustomerID == "" {
		return fmt.Errorf("customer ID is required")
	}
	if req.CustomerName == "" {
		return fmt.Errorf("customer name is required")
	}
	if req.Type != models.OrderDineIn && req.Type != models.OrderTakeout {
		return fmt.Errorf("invalid order type: %s", req.Type)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("order must have at least one item")
	}
	for i, item := range req.Items {
		if item.MenuItemID == "" {
			return fmt.Errorf("item %d: menu item ID is required", i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i+1)
		}
	}
	return nil
}

// itemSubtotal prices one order line: base price adjusted by the chosen
// customization options, times quantity.
func itemSubtotal(item models.MenuItem, quantity int, chosen map[string]string) int {
	price := item.Price
	for _, group := range item.Customizations {
		selected, ok := chosen[string(group.Type)]
		if !ok {
			continue
		}
		for _, option := range group.Options {
			if option.Name == selected {
				price += option.PriceModifier
				break
			}
		}
	}
	return price * quantity
}
