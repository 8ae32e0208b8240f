package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cafe-order/models"
	"cafe-order/pkg/logger"
)

// SeedIfEmpty writes the fixture collections, but only for keys that
// have never been written. Already-populated collections are left
// untouched, so restarting the server does not reset state.
func SeedIfEmpty(s Store, log *logger.Logger) error {
	log = log.WithComponent("seed")

	menu := SeedMenuItems()
	if err := seedCollection(s, KeyMenuItems, menu, log); err != nil {
		return err
	}
	if err := seedCollection(s, KeyOrders, SeedOrders(menu), log); err != nil {
		return err
	}
	if err := seedCollection(s, KeyUsers, SeedUsers(), log); err != nil {
		return err
	}
	return nil
}

func seedCollection(s Store, key string, value interface{}, log *logger.Logger) error {
	_, err := s.Get(key)
	if err == nil {
		log.Debug("Collection already present, skipping seed", "key", key)
		return nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal seed data for %s: %v", key, err)
	}
	if err := s.Put(key, data); err != nil {
		return err
	}

	log.Info("Seeded collection", "key", key)
	return nil
}

func sizeCustomization() models.Customization {
	return models.Customization{
		Type: models.CustomizationSize,
		Options: []models.CustomizationOption{
			{Name: "S", PriceModifier: -50},
			{Name: "M", PriceModifier: 0},
			{Name: "L", PriceModifier: 50},
		},
	}
}

func sweetnessCustomization() models.Customization {
	return models.Customization{
		Type: models.CustomizationSweetness,
		Options: []models.CustomizationOption{
			{Name: "unsweetened", PriceModifier: 0},
			{Name: "light", PriceModifier: 0},
			{Name: "regular", PriceModifier: 0},
		},
	}
}

func milkCustomization() models.Customization {
	return models.Customization{
		Type: models.CustomizationMilk,
		Options: []models.CustomizationOption{
			{Name: "regular", PriceModifier: 0},
			{Name: "soy", PriceModifier: 50},
			{Name: "oat", PriceModifier: 50},
		},
	}
}

// SeedMenuItems returns the fixture menu.
func SeedMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:          "1",
			Name:        "Caffe Latte",
			Price:       450,
			Category:    models.CategoryDrink,
			Image:       "https://images.unsplash.com/photo-1561882468-9110e03e0f78?w=400",
			Description: "Rich espresso balanced with creamy steamed milk",
			Allergens:   []string{"milk"},
			Customizations: []models.Customization{
				sizeCustomization(), sweetnessCustomization(), milkCustomization(),
			},
			InStock:   true,
			IsPopular: true,
		},
		{
			ID:             "2",
			Name:           "Iced Coffee",
			Price:          380,
			Category:       models.CategoryDrink,
			Image:          "https://images.unsplash.com/photo-1461023058943-07fcbe16d735?w=400",
			Description:    "Clean, crisp cold-brewed coffee",
			Customizations: []models.Customization{sizeCustomization()},
			InStock:        true,
			IsNew:          true,
		},
		{
			ID:          "3",
			Name:        "Matcha Latte",
			Price:       500,
			Category:    models.CategoryDrink,
			Image:       "https://images.unsplash.com/photo-1515823064-d6e0c04616a7?w=400",
			Description: "Premium Kyoto matcha with steamed milk",
			Allergens:   []string{"milk"},
			Customizations: []models.Customization{
				sizeCustomization(), sweetnessCustomization(),
			},
			InStock:   true,
			IsPopular: true,
		},
		{
			ID:          "4",
			Name:        "Croissant Sandwich",
			Price:       580,
			Category:    models.CategoryFood,
			Image:       "https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400",
			Description: "Buttery croissant with ham, cheese and fresh greens",
			Allergens:   []string{"wheat", "milk", "egg"},
			InStock:     true,
		},
		{
			ID:          "5",
			Name:        "Bagel Sandwich",
			Price:       620,
			Category:    models.CategoryFood,
			Image:       "https://images.unsplash.com/photo-1592894869086-f828b161e90a?w=400",
			Description: "Chewy bagel with smoked salmon and cream cheese",
			Allergens:   []string{"wheat", "milk", "fish"},
			InStock:     true,
		},
		{
			ID:          "6",
			Name:        "Quiche Plate",
			Price:       980,
			Category:    models.CategoryFood,
			Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=400",
			Description: "Homemade quiche with a side salad",
			Allergens:   []string{"wheat", "milk", "egg"},
			InStock:     true,
			IsPopular:   true,
		},
		{
			ID:          "7",
			Name:        "Cheesecake",
			Price:       480,
			Category:    models.CategoryDessert,
			Image:       "https://images.unsplash.com/photo-1533134242443-d4fd215305ad?w=400",
			Description: "Dense baked cheesecake with a crisp biscuit base",
			Allergens:   []string{"milk", "egg", "wheat"},
			InStock:     true,
			IsPopular:   true,
		},
		{
			ID:          "8",
			Name:        "Tiramisu",
			Price:       520,
			Category:    models.CategoryDessert,
			Image:       "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?w=400",
			Description: "Espresso-soaked sponge layered with mascarpone",
			Allergens:   []string{"milk", "egg", "wheat"},
			InStock:     true,
		},
		{
			ID:          "9",
			Name:        "Chiffon Cake",
			Price:       420,
			Category:    models.CategoryDessert,
			Image:       "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400",
			Description: "Light, airy chiffon cake with whipped cream",
			Allergens:   []string{"egg", "wheat"},
			InStock:     false,
		},
		{
			ID:          "10",
			Name:        "Original Mug",
			Price:       1800,
			Category:    models.CategoryGoods,
			Image:       "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=400",
			Description: "Ceramic mug with the shop logo",
			InStock:     true,
		},
		{
			ID:          "11",
			Name:        "Coffee Beans (House Blend)",
			Price:       1200,
			Category:    models.CategoryGoods,
			Image:       "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400",
			Description: "200g of our house blend, whole beans",
			InStock:     true,
			IsNew:       true,
		},
		{
			ID:          "12",
			Name:        "Drip Bag Set",
			Price:       980,
			Category:    models.CategoryGoods,
			Image:       "https://images.unsplash.com/photo-1606791405792-1004f1718d0c?w=400",
			Description: "Five single-serve drip bags to brew at home",
			InStock:     true,
		},
	}
}

// SeedOrders returns the fixture orders, with item snapshots taken from
// the given menu and the initial pending history entry every order
// carries.
func SeedOrders(menu []models.MenuItem) []models.Order {
	byID := make(map[string]models.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	created1 := time.Now().Add(-90 * time.Minute)
	updated1 := created1.Add(2 * time.Minute)
	created2 := time.Now().Add(-105 * time.Minute)
	updated2 := created2.Add(10 * time.Minute)

	return []models.Order{
		{
			ID:           "ORDER-001",
			CustomerID:   "user001",
			CustomerName: "Taro Yamada",
			CustomerPhone: "090-1234-5678",
			Items: []models.OrderItem{
				{
					MenuItem: byID["1"],
					Quantity: 2,
					Customizations: map[string]string{
						"size": "M", "sweetness": "regular", "milk": "regular",
					},
					Subtotal: 900,
				},
				{
					MenuItem: byID["7"],
					Quantity: 1,
					Subtotal: 480,
				},
			},
			Type:          models.OrderDineIn,
			Status:        models.StatusPreparing,
			TotalAmount:   1380,
			EstimatedTime: 10,
			StatusHistory: []models.StatusChange{
				{Status: models.StatusPending, Timestamp: created1, StaffID: "system"},
				{Status: models.StatusPreparing, Timestamp: updated1, StaffID: "staff001"},
			},
			CreatedAt: created1,
			UpdatedAt: updated1,
		},
		{
			ID:           "ORDER-002",
			CustomerID:   "user002",
			CustomerName: "Hanako Sato",
			Items: []models.OrderItem{
				{
					MenuItem:       byID["2"],
					Quantity:       1,
					Customizations: map[string]string{"size": "L"},
					Subtotal:       430,
				},
				{
					MenuItem: byID["5"],
					Quantity: 1,
					Subtotal: 620,
				},
			},
			Type:          models.OrderTakeout,
			Status:        models.StatusReady,
			TotalAmount:   1050,
			EstimatedTime: 15,
			PickupTime:    "11:00",
			Note:          "Please toast the bagel",
			StatusHistory: []models.StatusChange{
				{Status: models.StatusPending, Timestamp: created2, StaffID: "system"},
				{Status: models.StatusPreparing, Timestamp: created2.Add(3 * time.Minute), StaffID: "staff001"},
				{Status: models.StatusReady, Timestamp: updated2, StaffID: "staff001"},
			},
			CreatedAt: created2,
			UpdatedAt: updated2,
		},
	}
}

// SeedUsers returns the fixture customers.
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:            "user001",
			Name:          "Taro Yamada",
			Email:         "taro@example.com",
			Phone:         "090-1234-5678",
			Points:        1250,
			FavoriteItems: []string{"1", "3", "7"},
		},
		{
			ID:            "user002",
			Name:          "Hanako Sato",
			Email:         "hanako@example.com",
			Points:        420,
			FavoriteItems: []string{"2"},
		},
	}
}
