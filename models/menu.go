package models

// MenuCategory is the closed set of menu categories.
type MenuCategory string

const (
	CategoryDrink   MenuCategory = "drink"
	CategoryFood    MenuCategory = "food"
	CategoryDessert MenuCategory = "dessert"
	CategoryGoods   MenuCategory = "goods"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c MenuCategory) bool {
	switch c {
	case CategoryDrink, CategoryFood, CategoryDessert, CategoryGoods:
		return true
	}
	return false
}

// CustomizationType tags a group of selectable price modifiers.
type CustomizationType string

const (
	CustomizationSize      CustomizationType = "size"
	CustomizationSweetness CustomizationType = "sweetness"
	CustomizationMilk      CustomizationType = "milk"
	CustomizationTopping   CustomizationType = "topping"
)

type CustomizationOption struct {
	Name          string `json:"name"`
	PriceModifier int    `json:"price_modifier"`
}

type Customization struct {
	Type    CustomizationType     `json:"type"`
	Options []CustomizationOption `json:"options"`
}

// MenuItem is a sellable product. Price is an integer yen amount.
type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          int             `json:"price"`
	Category       MenuCategory    `json:"category"`
	Image          string          `json:"image"`
	Description    string          `json:"description"`
	Allergens      []string        `json:"allergens,omitempty"`
	Customizations []Customization `json:"customizations,omitempty"`
	InStock        bool            `json:"in_stock"`
	IsPopular      bool            `json:"is_popular,omitempty"`
	IsNew          bool            `json:"is_new,omitempty"`
}
